package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/google/uuid"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
	httptransport "github.com/mraditya/flight-journal-service/internal/pkg/transport/http"
)

type FlightService interface {
	CreateFlight(ctx context.Context, req dto.FlightRequest) (dto.Flight, error)
	GetFlight(ctx context.Context, id uuid.UUID) (dto.Flight, error)
	ListFlights(ctx context.Context, filter dto.FlightFilter) (dto.FlightListResponse, error)
	ListUpcomingFlights(ctx context.Context) (dto.FlightListResponse, error)
	ListPastFlights(ctx context.Context) (dto.FlightListResponse, error)
	UpdateFlight(ctx context.Context, id uuid.UUID, req dto.FlightRequest) (dto.Flight, error)
	DeleteFlight(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (dto.FlightStats, error)
}

type FlightEndpoint struct {
	CreateFlight endpoint.Endpoint
	GetFlight    endpoint.Endpoint
	ListFlights  endpoint.Endpoint
	ListUpcoming endpoint.Endpoint
	ListPast     endpoint.Endpoint
	UpdateFlight endpoint.Endpoint
	DeleteFlight endpoint.Endpoint
	Stats        endpoint.Endpoint
}

func MakeFlightEndpoint(service FlightService) FlightEndpoint {
	return FlightEndpoint{
		CreateFlight: makeCreateFlightEndpoint(service),
		GetFlight:    makeGetFlightEndpoint(service),
		ListFlights:  makeListFlightsEndpoint(service),
		ListUpcoming: makeListUpcomingEndpoint(service),
		ListPast:     makeListPastEndpoint(service),
		UpdateFlight: makeUpdateFlightEndpoint(service),
		DeleteFlight: makeDeleteFlightEndpoint(service),
		Stats:        makeStatsEndpoint(service),
	}
}

func makeCreateFlightEndpoint(service FlightService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.FlightRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		flight, err := service.CreateFlight(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("flight service: %w", err)
		}

		return flight, nil
	}
}

func makeGetFlightEndpoint(service FlightService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*httptransport.IDRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		flight, err := service.GetFlight(ctx, request.ID)
		if err != nil {
			return nil, fmt.Errorf("flight service: %w", err)
		}

		return flight, nil
	}
}

func makeListFlightsEndpoint(service FlightService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		filter, ok := req.(*dto.FlightFilter)
		if !ok || filter == nil {
			return nil, errors.New("invalid type")
		}

		flights, err := service.ListFlights(ctx, *filter)
		if err != nil {
			return nil, fmt.Errorf("flight service: %w", err)
		}

		return flights, nil
	}
}

func makeListUpcomingEndpoint(service FlightService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		flights, err := service.ListUpcomingFlights(ctx)
		if err != nil {
			return nil, fmt.Errorf("flight service: %w", err)
		}

		return flights, nil
	}
}

func makeListPastEndpoint(service FlightService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		flights, err := service.ListPastFlights(ctx)
		if err != nil {
			return nil, fmt.Errorf("flight service: %w", err)
		}

		return flights, nil
	}
}

func makeUpdateFlightEndpoint(service FlightService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*httptransport.IDWithBody[dto.FlightRequest])
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		flight, err := service.UpdateFlight(ctx, request.ID, *request.Body)
		if err != nil {
			return nil, fmt.Errorf("flight service: %w", err)
		}

		return flight, nil
	}
}

func makeDeleteFlightEndpoint(service FlightService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*httptransport.IDRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		if err := service.DeleteFlight(ctx, request.ID); err != nil {
			return nil, fmt.Errorf("flight service: %w", err)
		}

		return nil, nil
	}
}

func makeStatsEndpoint(service FlightService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		stats, err := service.Stats(ctx)
		if err != nil {
			return nil, fmt.Errorf("flight service: %w", err)
		}

		return stats, nil
	}
}
