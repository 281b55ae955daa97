//go:build unit

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
	"github.com/mraditya/flight-journal-service/internal/pkg/mailparse"
)

func newInboxService(flights *MockFlightRepo, accounts *MockEmailAccountRepo,
	rules *MockRuleSource, grouper *MockAutoGrouper, cache *MockStatsCacher) *InboxService {
	s := NewInboxService(flights, accounts, rules, grouper, cache, true, "journal.example.com")
	s.Now = func() time.Time { return time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC) }

	return s
}

func latamMessage() dto.InboxMessage {
	return dto.InboxMessage{
		Sender:    "LATAM <info@info.latam.com>",
		Subject:   "Confirmação de compra",
		MessageID: "<msg-1@latam.com>",
		Body: `Olá Rafael
Código de reserva: ABC123

Voo de ida
16 de mar. de 2026 09:30 São Paulo (GRU)
LA 8064
16 de mar. de 2026 17:45 Frankfurt (FRA)

Lista de passageiros
- Rafael Souza`,
	}
}

func TestInboxService_Import(t *testing.T) {
	flights := NewMockFlightRepo(t)
	accounts := NewMockEmailAccountRepo(t)
	rules := NewMockRuleSource(t)
	grouper := NewMockAutoGrouper(t)
	cache := NewMockStatsCacher(t)

	msg := latamMessage()

	rules.On("EffectiveRules", mock.Anything).Return(mailparse.SortRules(mailparse.BuiltinRules()), nil)
	flights.On("ExistsByMessageID", mock.Anything, msg.MessageID).Return(false, nil)

	stored := dto.Flight{
		AirlineName:      "LATAM Airlines",
		AirlineCode:      "LA",
		FlightNumber:     "LA8064",
		BookingReference: "ABC123",
		DepartureAirport: "GRU",
		DepartureTime:    time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC),
		ArrivalAirport:   "FRA",
		ArrivalTime:      time.Date(2026, 3, 16, 17, 45, 0, 0, time.UTC),
		PassengerName:    "Rafael Souza",
		Status:           dto.StatusCompleted,
		DurationMinutes:  495,
		EmailSubject:     msg.Subject,
		EmailMessageID:   msg.MessageID,
	}
	flights.On("Create", mock.Anything, stored).Return(stored, nil)
	cache.On("Invalidate", mock.Anything).Return(nil)
	grouper.On("AutoGroup", mock.Anything).Return(dto.AutoGroupResponse{}, nil)

	got, err := newInboxService(flights, accounts, rules, grouper, cache).Import(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, "LATAM Airlines", got.RuleMatched)
	assert.Equal(t, 1, got.FlightsImported)
	assert.Equal(t, 0, got.FlightsSkipped)
	require.Len(t, got.Flights, 1)
	assert.Equal(t, "LA8064", got.Flights[0].FlightNumber)
}

func TestInboxService_Import_NoRuleMatched(t *testing.T) {
	flights := NewMockFlightRepo(t)
	accounts := NewMockEmailAccountRepo(t)
	rules := NewMockRuleSource(t)
	grouper := NewMockAutoGrouper(t)
	cache := NewMockStatsCacher(t)

	rules.On("EffectiveRules", mock.Anything).Return(mailparse.SortRules(mailparse.BuiltinRules()), nil)

	_, err := newInboxService(flights, accounts, rules, grouper, cache).Import(context.Background(), dto.InboxMessage{
		Sender:  "offers@randomshop.example",
		Subject: "Huge sale",
		Body:    "everything must go",
	})
	assert.ErrorIs(t, err, ErrNoRuleMatched)
}

func TestInboxService_Import_DuplicateMessageSkipped(t *testing.T) {
	flights := NewMockFlightRepo(t)
	accounts := NewMockEmailAccountRepo(t)
	rules := NewMockRuleSource(t)
	grouper := NewMockAutoGrouper(t)
	cache := NewMockStatsCacher(t)

	msg := latamMessage()

	rules.On("EffectiveRules", mock.Anything).Return(mailparse.SortRules(mailparse.BuiltinRules()), nil)
	flights.On("ExistsByMessageID", mock.Anything, msg.MessageID).Return(true, nil)

	got, err := newInboxService(flights, accounts, rules, grouper, cache).Import(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, 0, got.FlightsImported)
	assert.Equal(t, 1, got.FlightsSkipped)
	assert.Empty(t, got.Flights)
}

func TestInboxService_ForwardingAddress(t *testing.T) {
	flights := NewMockFlightRepo(t)
	accounts := NewMockEmailAccountRepo(t)
	rules := NewMockRuleSource(t)
	grouper := NewMockAutoGrouper(t)
	cache := NewMockStatsCacher(t)

	s := newInboxService(flights, accounts, rules, grouper, cache)

	got, err := s.ForwardingAddress(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Enabled)
	assert.Equal(t, "journal@journal.example.com", got.Address)

	s.ForwardingEnabled = false
	got, err = s.ForwardingAddress(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Enabled)
	assert.Empty(t, got.Address)
}
