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

type AirlineRuleService interface {
	CreateRule(ctx context.Context, req dto.AirlineRuleRequest) (dto.AirlineRule, error)
	GetRule(ctx context.Context, id uuid.UUID) (dto.AirlineRule, error)
	ListRules(ctx context.Context) (dto.AirlineRuleListResponse, error)
	UpdateRule(ctx context.Context, id uuid.UUID, req dto.AirlineRuleRequest) (dto.AirlineRule, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error
}

type AirlineRuleEndpoint struct {
	CreateRule endpoint.Endpoint
	GetRule    endpoint.Endpoint
	ListRules  endpoint.Endpoint
	UpdateRule endpoint.Endpoint
	DeleteRule endpoint.Endpoint
}

func MakeAirlineRuleEndpoint(service AirlineRuleService) AirlineRuleEndpoint {
	return AirlineRuleEndpoint{
		CreateRule: makeCreateRuleEndpoint(service),
		GetRule:    makeGetRuleEndpoint(service),
		ListRules:  makeListRulesEndpoint(service),
		UpdateRule: makeUpdateRuleEndpoint(service),
		DeleteRule: makeDeleteRuleEndpoint(service),
	}
}

func makeCreateRuleEndpoint(service AirlineRuleService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.AirlineRuleRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		rule, err := service.CreateRule(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("airline rule service: %w", err)
		}

		return rule, nil
	}
}

func makeGetRuleEndpoint(service AirlineRuleService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*httptransport.IDRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		rule, err := service.GetRule(ctx, request.ID)
		if err != nil {
			return nil, fmt.Errorf("airline rule service: %w", err)
		}

		return rule, nil
	}
}

func makeListRulesEndpoint(service AirlineRuleService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		rules, err := service.ListRules(ctx)
		if err != nil {
			return nil, fmt.Errorf("airline rule service: %w", err)
		}

		return rules, nil
	}
}

func makeUpdateRuleEndpoint(service AirlineRuleService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*httptransport.IDWithBody[dto.AirlineRuleRequest])
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		rule, err := service.UpdateRule(ctx, request.ID, *request.Body)
		if err != nil {
			return nil, fmt.Errorf("airline rule service: %w", err)
		}

		return rule, nil
	}
}

func makeDeleteRuleEndpoint(service AirlineRuleService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*httptransport.IDRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		if err := service.DeleteRule(ctx, request.ID); err != nil {
			return nil, fmt.Errorf("airline rule service: %w", err)
		}

		return nil, nil
	}
}
