package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gondwana/booking-rates-service/internal/app/config"
	"github.com/gondwana/booking-rates-service/internal/app/dto"
	"github.com/gondwana/booking-rates-service/internal/app/endpoints"
	"github.com/gondwana/booking-rates-service/internal/app/service"
	"github.com/gondwana/booking-rates-service/internal/app/transport"
	"github.com/gondwana/booking-rates-service/internal/pkg/logger"
	"github.com/gondwana/booking-rates-service/internal/pkg/ratesprovider"
)

// @title           Booking Rates Aggregation Service API
// @version         0.0.1
// @description     booking-rates-service
// @host      localhost:8080
// @BasePath  /
func main() {
	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config) {
	endpts := makeEndpoints(ctx, &cfg)
	router := transport.MakeHTTPRouter(&cfg, endpts)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

func makeEndpoints(ctx context.Context, cfg *config.Config) endpoints.Endpoints {
	// init validator
	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	unitTypeIDs, err := cfg.Provider.DefaultUnitTypeIDs()
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse unit type ids", slog.String("error", err.Error()))
		panic(err)
	}

	client := ratesprovider.NewClient(cfg.Provider.RatesAPIURL, ratesprovider.RetryPolicy{
		MaxRetries:  cfg.Provider.MaxRetries,
		Delay:       cfg.Provider.RetryDelay,
		TimeoutBase: cfg.Provider.AttemptTimeoutBase,
		TimeoutStep: cfg.Provider.AttemptTimeoutStep,
	})

	ratesService := service.NewRatesService(client, unitTypeIDs, cfg.Provider.RequestDeadline)

	return endpoints.Endpoints{
		RatesEndpoint: endpoints.MakeRatesEndpoint(ratesService),
	}
}
