package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/gondwana/booking-rates-service/internal/app/dto"
	"github.com/gondwana/booking-rates-service/internal/pkg/rates"
	"github.com/gondwana/booking-rates-service/internal/pkg/ratesprovider"
	"golang.org/x/sync/errgroup"
)

// RatesClient posts one provider payload and returns the raw body or a
// terminal failure.
type RatesClient interface {
	Send(ctx context.Context, payload ratesprovider.Payload) ([]byte, error)
}

// RatesService fans one booking query out across unit types and collects a
// normalized quote per unit. Failures are data at this boundary: a unit
// that cannot be priced still yields a structurally valid quote with its
// error attached, and FetchRates itself never fails the request.
type RatesService struct {
	Client          RatesClient
	UnitTypeIDs     []int64
	RequestDeadline time.Duration
}

func NewRatesService(client RatesClient, unitTypeIDs []int64, requestDeadline time.Duration) *RatesService {
	return &RatesService{
		Client:          client,
		UnitTypeIDs:     unitTypeIDs,
		RequestDeadline: requestDeadline,
	}
}

// FetchRates queries the provider for every unit type in the working set.
// FetchRates godoc
// @Summary      Fetch accommodation rates
// @Tags         Rates
// @Description  Query the rates provider per unit type and return normalized quotes
// @Param        request  body      dto.BookingQuery  true  "Booking Query"
// @Success      200      {object}  dto.RatesResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/v1/rates [post]
func (s *RatesService) FetchRates(ctx context.Context, query dto.BookingQuery) (dto.RatesResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.RequestDeadline)
	defer cancel()

	unitTypeIDs := s.workingSet(query)

	// Quotes land in fixed slots keyed by input position so the output
	// order is deterministic regardless of which branch finishes first.
	quotes := make([]dto.RateQuote, len(unitTypeIDs))

	var group errgroup.Group
	group.SetLimit(len(unitTypeIDs))

	for i, unitTypeID := range unitTypeIDs {
		i, unitTypeID := i, unitTypeID
		group.Go(func() error {
			// Branches never return an error: one unit's failure must
			// not cancel its siblings.
			quotes[i] = s.fetchUnit(ctx, query, unitTypeID)

			return nil
		})
	}

	_ = group.Wait()

	return dto.RatesResponse{
		Success: true,
		Data:    quotes,
	}, nil
}

// workingSet resolves the unit types to query: the pinned unit type when
// the request names one, otherwise the configured default set.
func (s *RatesService) workingSet(query dto.BookingQuery) []int64 {
	if query.UnitTypeID != nil {
		return []int64{*query.UnitTypeID}
	}

	return s.UnitTypeIDs
}

func (s *RatesService) fetchUnit(ctx context.Context, query dto.BookingQuery, unitTypeID int64) dto.RateQuote {
	payload, err := ratesprovider.Transform(query, unitTypeID)
	if err != nil {
		slog.WarnContext(ctx, "payload transform failed",
			slog.Int64("unit_type_id", unitTypeID),
			slog.String("error", err.Error()))

		return rates.FailureQuote(query, unitTypeID, err.Error())
	}

	body, err := s.Client.Send(ctx, payload)
	if err != nil {
		slog.WarnContext(ctx, "rates provider call failed",
			slog.Int64("unit_type_id", unitTypeID),
			slog.String("error", err.Error()))

		return rates.FailureQuote(query, unitTypeID, err.Error())
	}

	return rates.Normalize(body, query, unitTypeID)
}
