//go:build unit

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
	"github.com/mraditya/flight-journal-service/internal/app/repository"
)

type MockAirlineRuleRepo struct {
	mock.Mock
}

func NewMockAirlineRuleRepo(t *testing.T) *MockAirlineRuleRepo {
	m := &MockAirlineRuleRepo{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAirlineRuleRepo) Create(ctx context.Context, rule dto.AirlineRule) (dto.AirlineRule, error) {
	args := m.Called(ctx, rule)
	return args.Get(0).(dto.AirlineRule), args.Error(1)
}

func (m *MockAirlineRuleRepo) GetByID(ctx context.Context, id uuid.UUID) (dto.AirlineRule, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dto.AirlineRule), args.Error(1)
}

func (m *MockAirlineRuleRepo) List(ctx context.Context) ([]dto.AirlineRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.AirlineRule), args.Error(1)
}

func (m *MockAirlineRuleRepo) Update(ctx context.Context, rule dto.AirlineRule) (dto.AirlineRule, error) {
	args := m.Called(ctx, rule)
	return args.Get(0).(dto.AirlineRule), args.Error(1)
}

func (m *MockAirlineRuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestAirlineRuleService_ListRules_MergesBuiltinAndStored(t *testing.T) {
	repo := NewMockAirlineRuleRepo(t)

	custom := dto.AirlineRule{
		ID:            uuid.New(),
		AirlineName:   "My Charter",
		SenderPattern: `charter\.example`,
		BodyPattern:   `unused`,
		Active:        true,
		Priority:      99,
	}
	repo.On("List", mock.Anything).Return([]dto.AirlineRule{custom}, nil)

	got, err := NewAirlineRuleService(repo).ListRules(context.Background())
	require.NoError(t, err)
	require.Greater(t, got.Total, 1)

	// Highest priority first, so the custom rule leads.
	assert.Equal(t, "My Charter", got.Rules[0].AirlineName)
	for _, rule := range got.Rules[1:] {
		assert.True(t, rule.Builtin)
	}
}

func TestAirlineRuleService_BuiltinRulesAreImmutable(t *testing.T) {
	repo := NewMockAirlineRuleRepo(t)
	s := NewAirlineRuleService(repo)

	builtin := builtinRuleID("LA")

	_, err := s.UpdateRule(context.Background(), builtin, dto.AirlineRuleRequest{})
	assert.ErrorIs(t, err, ErrBuiltinRuleImmutable)

	err = s.DeleteRule(context.Background(), builtin)
	assert.ErrorIs(t, err, ErrBuiltinRuleImmutable)
}

func TestAirlineRuleService_GetRule(t *testing.T) {
	repo := NewMockAirlineRuleRepo(t)
	s := NewAirlineRuleService(repo)

	t.Run("builtin_by_stable_id", func(t *testing.T) {
		got, err := s.GetRule(context.Background(), builtinRuleID("SK"))
		require.NoError(t, err)
		assert.True(t, got.Builtin)
		assert.Equal(t, "SK", got.AirlineCode)
	})

	t.Run("unknown_id", func(t *testing.T) {
		id := uuid.New()
		repo.On("GetByID", mock.Anything, id).Return(dto.AirlineRule{}, repository.ErrRecordNotFound)

		_, err := s.GetRule(context.Background(), id)
		assert.ErrorIs(t, err, ErrAirlineRuleNotFound)
	})
}
