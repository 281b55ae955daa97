package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
	"github.com/mraditya/flight-journal-service/internal/app/repository"
	"github.com/mraditya/flight-journal-service/internal/pkg/mailparse"
)

// RuleSource supplies the active parsing rules in matching order.
type RuleSource interface {
	EffectiveRules(ctx context.Context) ([]mailparse.Rule, error)
}

// AutoGrouper organises ungrouped flights into trips after an import.
type AutoGrouper interface {
	AutoGroup(ctx context.Context) (dto.AutoGroupResponse, error)
}

type InboxService struct {
	Flights           repository.FlightRepo
	Accounts          repository.EmailAccountRepo
	Rules             RuleSource
	Grouper           AutoGrouper
	Cache             StatsCacher
	ForwardingEnabled bool
	ForwardingDomain  string
	Now               func() time.Time
}

func NewInboxService(flights repository.FlightRepo, accounts repository.EmailAccountRepo,
	rules RuleSource, grouper AutoGrouper, cache StatsCacher,
	forwardingEnabled bool, forwardingDomain string) *InboxService {
	return &InboxService{
		Flights:           flights,
		Accounts:          accounts,
		Rules:             rules,
		Grouper:           grouper,
		Cache:             cache,
		ForwardingEnabled: forwardingEnabled,
		ForwardingDomain:  forwardingDomain,
		Now:               time.Now,
	}
}

// Import godoc
// @Summary      Import flights from a forwarded confirmation email
// @Tags         Inbox
// @Description  Matches the message against the airline rules, extracts flight segments and journals them
// @Param        request  body      dto.InboxMessage  true  "Message"
// @Success      200      {object}  dto.InboxImportResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      422      {object}  dto.ErrorResponse
// @Router       /api/v1/inbox/import [post]
func (s *InboxService) Import(ctx context.Context, req dto.InboxMessage) (dto.InboxImportResponse, error) {
	msg := mailparse.Message{
		Sender:    req.Sender,
		Subject:   req.Subject,
		Body:      req.Body,
		MessageID: req.MessageID,
		Date:      req.Date,
	}

	rules, err := s.Rules.EffectiveRules(ctx)
	if err != nil {
		return dto.InboxImportResponse{}, err
	}

	rule := mailparse.MatchRule(msg, rules)
	if rule == nil {
		return dto.InboxImportResponse{}, ErrNoRuleMatched
	}

	extracted, err := mailparse.ExtractFlights(msg, *rule)
	if err != nil {
		return dto.InboxImportResponse{}, fmt.Errorf("failed to extract flights: %w", err)
	}

	resp := dto.InboxImportResponse{
		RuleMatched: rule.AirlineName,
		Flights:     []dto.Flight{},
	}

	// A message already imported once is skipped wholesale so the same
	// forward cannot duplicate an itinerary.
	if req.MessageID != "" {
		exists, err := s.Flights.ExistsByMessageID(ctx, req.MessageID)
		if err != nil {
			return dto.InboxImportResponse{}, fmt.Errorf("failed to check for duplicate message: %w", err)
		}
		if exists {
			resp.FlightsSkipped = len(extracted)

			return resp, nil
		}
	}

	accountID, err := s.resolveAccount(ctx, req.AccountID)
	if err != nil {
		return dto.InboxImportResponse{}, err
	}

	now := s.Now()
	for _, segment := range extracted {
		flight := flightFromExtracted(segment, req, accountID)
		deriveFlight(&flight, now)

		created, err := s.Flights.Create(ctx, flight)
		if err != nil {
			return resp, fmt.Errorf("failed to store imported flight: %w", err)
		}

		resp.Flights = append(resp.Flights, created)
		resp.FlightsImported++
	}

	if resp.FlightsImported > 0 {
		s.afterImport(ctx, accountID)
	}

	return resp, nil
}

// ForwardingAddress godoc
// @Summary      Address users forward airline emails to
// @Tags         Inbox
// @Success      200  {object}  dto.ForwardingAddressResponse
// @Router       /api/v1/inbox/forwarding-address [get]
func (s *InboxService) ForwardingAddress(_ context.Context) (dto.ForwardingAddressResponse, error) {
	if !s.ForwardingEnabled || s.ForwardingDomain == "" {
		return dto.ForwardingAddressResponse{}, nil
	}

	return dto.ForwardingAddressResponse{
		Enabled: true,
		Address: "journal@" + s.ForwardingDomain,
		Domain:  s.ForwardingDomain,
	}, nil
}

func (s *InboxService) resolveAccount(ctx context.Context, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrEmailAccountNotFound
	}

	if _, err := s.Accounts.GetByID(ctx, id); err != nil {
		return nil, ErrEmailAccountNotFound
	}

	return &id, nil
}

// afterImport runs the bookkeeping that follows a successful import.
// Failures here are logged, not returned: the flights are already
// journalled.
func (s *InboxService) afterImport(ctx context.Context, accountID *uuid.UUID) {
	if accountID != nil {
		if err := s.Accounts.TouchLastSynced(ctx, *accountID, s.Now()); err != nil {
			slog.WarnContext(ctx, "failed to record account sync time", slog.String("error", err.Error()))
		}
	}

	if err := s.Cache.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "failed to invalidate stats cache", slog.String("error", err.Error()))
	}

	if _, err := s.Grouper.AutoGroup(ctx); err != nil {
		slog.WarnContext(ctx, "auto-grouping after import failed", slog.String("error", err.Error()))
	}
}

func flightFromExtracted(segment mailparse.ExtractedFlight, req dto.InboxMessage, accountID *uuid.UUID) dto.Flight {
	return dto.Flight{
		AirlineName:      segment.AirlineName,
		AirlineCode:      segment.AirlineCode,
		FlightNumber:     segment.FlightNumber,
		BookingReference: segment.BookingReference,
		DepartureAirport: segment.DepartureAirport,
		DepartureCity:    segment.DepartureCity,
		DepartureTime:    segment.DepartureTime,
		ArrivalAirport:   segment.ArrivalAirport,
		ArrivalCity:      segment.ArrivalCity,
		ArrivalTime:      segment.ArrivalTime,
		PassengerName:    segment.PassengerName,
		Seat:             segment.Seat,
		CabinClass:       segment.CabinClass,
		EmailAccountID:   accountID,
		EmailSubject:     req.Subject,
		EmailMessageID:   req.MessageID,
		ManuallyAdded:    false,
	}
}
