package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
)

type InboxService interface {
	Import(ctx context.Context, req dto.InboxMessage) (dto.InboxImportResponse, error)
	ForwardingAddress(ctx context.Context) (dto.ForwardingAddressResponse, error)
}

type InboxEndpoint struct {
	Import            endpoint.Endpoint
	ForwardingAddress endpoint.Endpoint
}

func MakeInboxEndpoint(service InboxService) InboxEndpoint {
	return InboxEndpoint{
		Import:            makeImportEndpoint(service),
		ForwardingAddress: makeForwardingAddressEndpoint(service),
	}
}

func makeImportEndpoint(service InboxService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.InboxMessage)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		result, err := service.Import(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("inbox service: %w", err)
		}

		return result, nil
	}
}

func makeForwardingAddressEndpoint(service InboxService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		address, err := service.ForwardingAddress(ctx)
		if err != nil {
			return nil, fmt.Errorf("inbox service: %w", err)
		}

		return address, nil
	}
}
