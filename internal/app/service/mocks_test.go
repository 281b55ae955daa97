//go:build unit

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
	"github.com/mraditya/flight-journal-service/internal/pkg/mailparse"
)

type MockFlightRepo struct {
	mock.Mock
}

func NewMockFlightRepo(t *testing.T) *MockFlightRepo {
	m := &MockFlightRepo{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFlightRepo) Create(ctx context.Context, flight dto.Flight) (dto.Flight, error) {
	args := m.Called(ctx, flight)
	return args.Get(0).(dto.Flight), args.Error(1)
}

func (m *MockFlightRepo) GetByID(ctx context.Context, id uuid.UUID) (dto.Flight, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dto.Flight), args.Error(1)
}

func (m *MockFlightRepo) List(ctx context.Context, filter dto.FlightFilter) ([]dto.Flight, error) {
	args := m.Called(ctx, filter)
	return flightsArg(args.Get(0)), args.Error(1)
}

func (m *MockFlightRepo) ListUpcoming(ctx context.Context, now time.Time) ([]dto.Flight, error) {
	args := m.Called(ctx, now)
	return flightsArg(args.Get(0)), args.Error(1)
}

func (m *MockFlightRepo) ListPast(ctx context.Context, now time.Time) ([]dto.Flight, error) {
	args := m.Called(ctx, now)
	return flightsArg(args.Get(0)), args.Error(1)
}

func (m *MockFlightRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]dto.Flight, error) {
	args := m.Called(ctx, groupID)
	return flightsArg(args.Get(0)), args.Error(1)
}

func (m *MockFlightRepo) ListUngrouped(ctx context.Context) ([]dto.Flight, error) {
	args := m.Called(ctx)
	return flightsArg(args.Get(0)), args.Error(1)
}

func (m *MockFlightRepo) Update(ctx context.Context, flight dto.Flight) (dto.Flight, error) {
	args := m.Called(ctx, flight)
	return args.Get(0).(dto.Flight), args.Error(1)
}

func (m *MockFlightRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightRepo) AssignGroup(ctx context.Context, flightIDs []uuid.UUID, groupID uuid.UUID) (int, error) {
	args := m.Called(ctx, flightIDs, groupID)
	return args.Int(0), args.Error(1)
}

func (m *MockFlightRepo) UnassignGroup(ctx context.Context, flightIDs []uuid.UUID, groupID uuid.UUID) (int, error) {
	args := m.Called(ctx, flightIDs, groupID)
	return args.Int(0), args.Error(1)
}

func (m *MockFlightRepo) ExistsByMessageID(ctx context.Context, messageID string) (bool, error) {
	args := m.Called(ctx, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightRepo) Stats(ctx context.Context) (dto.FlightStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(dto.FlightStats), args.Error(1)
}

func flightsArg(v interface{}) []dto.Flight {
	if v == nil {
		return nil
	}
	return v.([]dto.Flight)
}

type MockGroupRepo struct {
	mock.Mock
}

func NewMockGroupRepo(t *testing.T) *MockGroupRepo {
	m := &MockGroupRepo{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockGroupRepo) Create(ctx context.Context, group dto.FlightGroup) (dto.FlightGroup, error) {
	args := m.Called(ctx, group)
	return args.Get(0).(dto.FlightGroup), args.Error(1)
}

func (m *MockGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (dto.FlightGroup, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dto.FlightGroup), args.Error(1)
}

func (m *MockGroupRepo) List(ctx context.Context) ([]dto.FlightGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.FlightGroup), args.Error(1)
}

func (m *MockGroupRepo) ListAutoGenerated(ctx context.Context) ([]dto.FlightGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.FlightGroup), args.Error(1)
}

func (m *MockGroupRepo) Update(ctx context.Context, group dto.FlightGroup) (dto.FlightGroup, error) {
	args := m.Called(ctx, group)
	return args.Get(0).(dto.FlightGroup), args.Error(1)
}

func (m *MockGroupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStatsCacher struct {
	mock.Mock
}

func NewMockStatsCacher(t *testing.T) *MockStatsCacher {
	m := &MockStatsCacher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockStatsCacher) AcquireLock(ctx context.Context, timeout time.Duration) (bool, error) {
	args := m.Called(ctx, timeout)
	return args.Bool(0), args.Error(1)
}

func (m *MockStatsCacher) ReleaseLock(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatsCacher) GetStats(ctx context.Context) (dto.FlightStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(dto.FlightStats), args.Error(1)
}

func (m *MockStatsCacher) SetStats(ctx context.Context, stats dto.FlightStats, expiration time.Duration) error {
	args := m.Called(ctx, stats, expiration)
	return args.Error(0)
}

func (m *MockStatsCacher) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockRuleSource struct {
	mock.Mock
}

func NewMockRuleSource(t *testing.T) *MockRuleSource {
	m := &MockRuleSource{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRuleSource) EffectiveRules(ctx context.Context) ([]mailparse.Rule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mailparse.Rule), args.Error(1)
}

type MockAutoGrouper struct {
	mock.Mock
}

func NewMockAutoGrouper(t *testing.T) *MockAutoGrouper {
	m := &MockAutoGrouper{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAutoGrouper) AutoGroup(ctx context.Context) (dto.AutoGroupResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(dto.AutoGroupResponse), args.Error(1)
}

type MockEmailAccountRepo struct {
	mock.Mock
}

func NewMockEmailAccountRepo(t *testing.T) *MockEmailAccountRepo {
	m := &MockEmailAccountRepo{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEmailAccountRepo) Create(ctx context.Context, account dto.EmailAccount, password string) (dto.EmailAccount, error) {
	args := m.Called(ctx, account, password)
	return args.Get(0).(dto.EmailAccount), args.Error(1)
}

func (m *MockEmailAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (dto.EmailAccount, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dto.EmailAccount), args.Error(1)
}

func (m *MockEmailAccountRepo) List(ctx context.Context) ([]dto.EmailAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.EmailAccount), args.Error(1)
}

func (m *MockEmailAccountRepo) Update(ctx context.Context, account dto.EmailAccount, password string) (dto.EmailAccount, error) {
	args := m.Called(ctx, account, password)
	return args.Get(0).(dto.EmailAccount), args.Error(1)
}

func (m *MockEmailAccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmailAccountRepo) TouchLastSynced(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
