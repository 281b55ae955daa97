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

type GroupService interface {
	CreateGroup(ctx context.Context, req dto.GroupRequest) (dto.FlightGroup, error)
	GetGroup(ctx context.Context, id uuid.UUID) (dto.FlightGroup, error)
	ListGroups(ctx context.Context) (dto.GroupListResponse, error)
	UpdateGroup(ctx context.Context, id uuid.UUID, req dto.GroupRequest) (dto.FlightGroup, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	AddFlights(ctx context.Context, id uuid.UUID, req dto.GroupFlightsRequest) (dto.GroupFlightsResponse, error)
	RemoveFlights(ctx context.Context, id uuid.UUID, req dto.GroupFlightsRequest) (dto.GroupFlightsResponse, error)
	Itinerary(ctx context.Context, id uuid.UUID) (dto.ItineraryResponse, error)
	AutoGroup(ctx context.Context) (dto.AutoGroupResponse, error)
}

type GroupEndpoint struct {
	CreateGroup   endpoint.Endpoint
	GetGroup      endpoint.Endpoint
	ListGroups    endpoint.Endpoint
	UpdateGroup   endpoint.Endpoint
	DeleteGroup   endpoint.Endpoint
	AddFlights    endpoint.Endpoint
	RemoveFlights endpoint.Endpoint
	Itinerary     endpoint.Endpoint
	AutoGroup     endpoint.Endpoint
}

func MakeGroupEndpoint(service GroupService) GroupEndpoint {
	return GroupEndpoint{
		CreateGroup:   makeCreateGroupEndpoint(service),
		GetGroup:      makeGetGroupEndpoint(service),
		ListGroups:    makeListGroupsEndpoint(service),
		UpdateGroup:   makeUpdateGroupEndpoint(service),
		DeleteGroup:   makeDeleteGroupEndpoint(service),
		AddFlights:    makeAddFlightsEndpoint(service),
		RemoveFlights: makeRemoveFlightsEndpoint(service),
		Itinerary:     makeItineraryEndpoint(service),
		AutoGroup:     makeAutoGroupEndpoint(service),
	}
}

func makeCreateGroupEndpoint(service GroupService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.GroupRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		group, err := service.CreateGroup(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("group service: %w", err)
		}

		return group, nil
	}
}

func makeGetGroupEndpoint(service GroupService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*httptransport.IDRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		group, err := service.GetGroup(ctx, request.ID)
		if err != nil {
			return nil, fmt.Errorf("group service: %w", err)
		}

		return group, nil
	}
}

func makeListGroupsEndpoint(service GroupService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		groups, err := service.ListGroups(ctx)
		if err != nil {
			return nil, fmt.Errorf("group service: %w", err)
		}

		return groups, nil
	}
}

func makeUpdateGroupEndpoint(service GroupService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*httptransport.IDWithBody[dto.GroupRequest])
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		group, err := service.UpdateGroup(ctx, request.ID, *request.Body)
		if err != nil {
			return nil, fmt.Errorf("group service: %w", err)
		}

		return group, nil
	}
}

func makeDeleteGroupEndpoint(service GroupService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*httptransport.IDRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		if err := service.DeleteGroup(ctx, request.ID); err != nil {
			return nil, fmt.Errorf("group service: %w", err)
		}

		return nil, nil
	}
}

func makeAddFlightsEndpoint(service GroupService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*httptransport.IDWithBody[dto.GroupFlightsRequest])
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		result, err := service.AddFlights(ctx, request.ID, *request.Body)
		if err != nil {
			return nil, fmt.Errorf("group service: %w", err)
		}

		return result, nil
	}
}

func makeRemoveFlightsEndpoint(service GroupService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*httptransport.IDWithBody[dto.GroupFlightsRequest])
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		result, err := service.RemoveFlights(ctx, request.ID, *request.Body)
		if err != nil {
			return nil, fmt.Errorf("group service: %w", err)
		}

		return result, nil
	}
}

func makeItineraryEndpoint(service GroupService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*httptransport.IDRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		itinerary, err := service.Itinerary(ctx, request.ID)
		if err != nil {
			return nil, fmt.Errorf("group service: %w", err)
		}

		return itinerary, nil
	}
}

func makeAutoGroupEndpoint(service GroupService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		result, err := service.AutoGroup(ctx)
		if err != nil {
			return nil, fmt.Errorf("group service: %w", err)
		}

		return result, nil
	}
}
