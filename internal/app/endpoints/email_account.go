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

type EmailAccountService interface {
	CreateAccount(ctx context.Context, req dto.EmailAccountRequest) (dto.EmailAccount, error)
	GetAccount(ctx context.Context, id uuid.UUID) (dto.EmailAccount, error)
	ListAccounts(ctx context.Context) (dto.EmailAccountListResponse, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, req dto.EmailAccountRequest) (dto.EmailAccount, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

type EmailAccountEndpoint struct {
	CreateAccount endpoint.Endpoint
	GetAccount    endpoint.Endpoint
	ListAccounts  endpoint.Endpoint
	UpdateAccount endpoint.Endpoint
	DeleteAccount endpoint.Endpoint
}

func MakeEmailAccountEndpoint(service EmailAccountService) EmailAccountEndpoint {
	return EmailAccountEndpoint{
		CreateAccount: makeCreateAccountEndpoint(service),
		GetAccount:    makeGetAccountEndpoint(service),
		ListAccounts:  makeListAccountsEndpoint(service),
		UpdateAccount: makeUpdateAccountEndpoint(service),
		DeleteAccount: makeDeleteAccountEndpoint(service),
	}
}

func makeCreateAccountEndpoint(service EmailAccountService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.EmailAccountRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		account, err := service.CreateAccount(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("email account service: %w", err)
		}

		return account, nil
	}
}

func makeGetAccountEndpoint(service EmailAccountService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*httptransport.IDRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		account, err := service.GetAccount(ctx, request.ID)
		if err != nil {
			return nil, fmt.Errorf("email account service: %w", err)
		}

		return account, nil
	}
}

func makeListAccountsEndpoint(service EmailAccountService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		accounts, err := service.ListAccounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("email account service: %w", err)
		}

		return accounts, nil
	}
}

func makeUpdateAccountEndpoint(service EmailAccountService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*httptransport.IDWithBody[dto.EmailAccountRequest])
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		account, err := service.UpdateAccount(ctx, request.ID, *request.Body)
		if err != nil {
			return nil, fmt.Errorf("email account service: %w", err)
		}

		return account, nil
	}
}

func makeDeleteAccountEndpoint(service EmailAccountService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*httptransport.IDRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		if err := service.DeleteAccount(ctx, request.ID); err != nil {
			return nil, fmt.Errorf("email account service: %w", err)
		}

		return nil, nil
	}
}
