package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/gondwana/booking-rates-service/internal/app/dto"
)

type RatesService interface {
	FetchRates(ctx context.Context, query dto.BookingQuery) (dto.RatesResponse, error)
}

type Endpoints struct {
	RatesEndpoint RatesEndpoint
}

type RatesEndpoint struct {
	FetchRates endpoint.Endpoint
}

func MakeRatesEndpoint(service RatesService) RatesEndpoint {
	return RatesEndpoint{
		FetchRates: makeFetchRatesEndpoint(service),
	}
}

func makeFetchRatesEndpoint(service RatesService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		query, ok := req.(*dto.BookingQuery)
		if !ok || query == nil {
			return nil, errors.New("invalid type")
		}

		response, err := service.FetchRates(ctx, *query)
		if err != nil {
			return nil, fmt.Errorf("rates service: %w", err)
		}

		return response, nil
	}
}
