package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
	"github.com/mraditya/flight-journal-service/internal/app/repository"
	"github.com/mraditya/flight-journal-service/internal/pkg/mailparse"
)

type AirlineRuleService struct {
	Rules repository.AirlineRuleRepo
}

func NewAirlineRuleService(rules repository.AirlineRuleRepo) *AirlineRuleService {
	return &AirlineRuleService{
		Rules: rules,
	}
}

// builtinRuleID derives a stable UUID for a builtin rule so the same
// rule keeps the same ID across restarts without a database row.
func builtinRuleID(airlineCode string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("airline-rule:"+airlineCode))
}

func builtinAirlineRules() []dto.AirlineRule {
	builtin := mailparse.BuiltinRules()
	rules := make([]dto.AirlineRule, len(builtin))

	for i, rule := range builtin {
		rules[i] = dto.AirlineRule{
			ID:             builtinRuleID(rule.AirlineCode),
			AirlineName:    rule.AirlineName,
			AirlineCode:    rule.AirlineCode,
			SenderPattern:  rule.SenderPattern,
			SubjectPattern: rule.SubjectPattern,
			BodyPattern:    rule.BodyPattern,
			DateLayout:     rule.DateLayout,
			TimeLayout:     rule.TimeLayout,
			Active:         true,
			Builtin:        true,
			Priority:       rule.Priority,
		}
	}

	return rules
}

func isBuiltinRuleID(id uuid.UUID) bool {
	for _, rule := range mailparse.BuiltinRules() {
		if builtinRuleID(rule.AirlineCode) == id {
			return true
		}
	}

	return false
}

// CreateRule godoc
// @Summary      Add a custom airline parsing rule
// @Tags         Airline Rules
// @Param        request  body      dto.AirlineRuleRequest  true  "Rule"
// @Success      201      {object}  dto.AirlineRule
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/airline-rules [post]
func (s *AirlineRuleService) CreateRule(ctx context.Context, req dto.AirlineRuleRequest) (dto.AirlineRule, error) {
	created, err := s.Rules.Create(ctx, ruleFromRequest(req))
	if err != nil {
		return dto.AirlineRule{}, fmt.Errorf("failed to create airline rule: %w", err)
	}

	return created, nil
}

// GetRule godoc
// @Summary      Get an airline parsing rule
// @Tags         Airline Rules
// @Param        id  path      string  true  "Rule ID"
// @Success      200  {object}  dto.AirlineRule
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/airline-rules/{id} [get]
func (s *AirlineRuleService) GetRule(ctx context.Context, id uuid.UUID) (dto.AirlineRule, error) {
	for _, rule := range builtinAirlineRules() {
		if rule.ID == id {
			return rule, nil
		}
	}

	rule, err := s.Rules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return dto.AirlineRule{}, ErrAirlineRuleNotFound
		}

		return dto.AirlineRule{}, fmt.Errorf("failed to get airline rule: %w", err)
	}

	return rule, nil
}

// ListRules godoc
// @Summary      List airline parsing rules
// @Tags         Airline Rules
// @Description  Builtin rules and stored custom rules, highest priority first
// @Success      200  {object}  dto.AirlineRuleListResponse
// @Router       /api/v1/airline-rules [get]
func (s *AirlineRuleService) ListRules(ctx context.Context) (dto.AirlineRuleListResponse, error) {
	stored, err := s.Rules.List(ctx)
	if err != nil {
		return dto.AirlineRuleListResponse{}, fmt.Errorf("failed to list airline rules: %w", err)
	}

	rules := append(builtinAirlineRules(), stored...)
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}

		return rules[i].AirlineName < rules[j].AirlineName
	})

	return dto.AirlineRuleListResponse{
		Rules: rules,
		Total: len(rules),
	}, nil
}

// UpdateRule godoc
// @Summary      Update a custom airline parsing rule
// @Tags         Airline Rules
// @Param        id       path      string                  true  "Rule ID"
// @Param        request  body      dto.AirlineRuleRequest  true  "Rule"
// @Success      200      {object}  dto.AirlineRule
// @Failure      403      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/v1/airline-rules/{id} [put]
func (s *AirlineRuleService) UpdateRule(ctx context.Context, id uuid.UUID, req dto.AirlineRuleRequest) (dto.AirlineRule, error) {
	if isBuiltinRuleID(id) {
		return dto.AirlineRule{}, ErrBuiltinRuleImmutable
	}

	rule := ruleFromRequest(req)
	rule.ID = id

	updated, err := s.Rules.Update(ctx, rule)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return dto.AirlineRule{}, ErrAirlineRuleNotFound
		}

		return dto.AirlineRule{}, fmt.Errorf("failed to update airline rule: %w", err)
	}

	return updated, nil
}

// DeleteRule godoc
// @Summary      Delete a custom airline parsing rule
// @Tags         Airline Rules
// @Param        id  path  string  true  "Rule ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/airline-rules/{id} [delete]
func (s *AirlineRuleService) DeleteRule(ctx context.Context, id uuid.UUID) error {
	if isBuiltinRuleID(id) {
		return ErrBuiltinRuleImmutable
	}

	if err := s.Rules.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return ErrAirlineRuleNotFound
		}

		return fmt.Errorf("failed to delete airline rule: %w", err)
	}

	return nil
}

// EffectiveRules returns every active rule in matching order: builtins
// plus active stored customs, highest priority first.
func (s *AirlineRuleService) EffectiveRules(ctx context.Context) ([]mailparse.Rule, error) {
	stored, err := s.Rules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list airline rules: %w", err)
	}

	rules := mailparse.BuiltinRules()
	for _, rule := range stored {
		if !rule.Active {
			continue
		}

		rules = append(rules, mailparse.Rule{
			AirlineName:    rule.AirlineName,
			AirlineCode:    rule.AirlineCode,
			SenderPattern:  rule.SenderPattern,
			SubjectPattern: rule.SubjectPattern,
			BodyPattern:    rule.BodyPattern,
			DateLayout:     rule.DateLayout,
			TimeLayout:     rule.TimeLayout,
			Priority:       rule.Priority,
		})
	}

	return mailparse.SortRules(rules), nil
}

func ruleFromRequest(req dto.AirlineRuleRequest) dto.AirlineRule {
	rule := dto.AirlineRule{
		AirlineName:    req.AirlineName,
		AirlineCode:    req.AirlineCode,
		SenderPattern:  req.SenderPattern,
		SubjectPattern: req.SubjectPattern,
		BodyPattern:    req.BodyPattern,
		DateLayout:     req.DateLayout,
		TimeLayout:     req.TimeLayout,
		Active:         true,
		Priority:       req.Priority,
	}

	if req.Active != nil {
		rule.Active = *req.Active
	}

	return rule
}
