package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
	"github.com/mraditya/flight-journal-service/internal/app/repository"
	"github.com/mraditya/flight-journal-service/internal/pkg/utils"
)

// StatsCacher is the subset of the stats cache used by the services.
type StatsCacher interface {
	AcquireLock(ctx context.Context, timeout time.Duration) (bool, error)
	ReleaseLock(ctx context.Context) error
	GetStats(ctx context.Context) (dto.FlightStats, error)
	SetStats(ctx context.Context, stats dto.FlightStats, expiration time.Duration) error
	Invalidate(ctx context.Context) error
}

type FlightService struct {
	Flights              repository.FlightRepo
	Cache                StatsCacher
	StatsCacheExpiration time.Duration
	StatsLockTimeout     time.Duration
	Now                  func() time.Time
}

func NewFlightService(flights repository.FlightRepo, cache StatsCacher,
	statsCacheExpiration time.Duration, statsLockTimeout time.Duration) *FlightService {
	return &FlightService{
		Flights:              flights,
		Cache:                cache,
		StatsCacheExpiration: statsCacheExpiration,
		StatsLockTimeout:     statsLockTimeout,
		Now:                  time.Now,
	}
}

// deriveFlight fills the computed fields before a write: the duration
// when the caller did not supply one, and the status from the arrival
// time. A manual "cancelled" is never overridden.
func deriveFlight(flight *dto.Flight, now time.Time) {
	if flight.DurationMinutes <= 0 {
		minutes := int(flight.ArrivalTime.Sub(flight.DepartureTime).Minutes())
		if minutes < 1 {
			minutes = 1
		}
		flight.DurationMinutes = minutes
	}

	if flight.Status == dto.StatusCancelled {
		return
	}

	if flight.ArrivalTime.Before(now) {
		flight.Status = dto.StatusCompleted
	} else {
		flight.Status = dto.StatusUpcoming
	}
}

// CreateFlight godoc
// @Summary      Add a flight
// @Tags         Flights
// @Param        request  body      dto.FlightRequest  true  "Flight"
// @Success      201      {object}  dto.Flight
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/flights [post]
func (s *FlightService) CreateFlight(ctx context.Context, req dto.FlightRequest) (dto.Flight, error) {
	flight := flightFromRequest(req)
	flight.ManuallyAdded = true
	deriveFlight(&flight, s.Now())

	created, err := s.Flights.Create(ctx, flight)
	if err != nil {
		return dto.Flight{}, fmt.Errorf("failed to create flight: %w", err)
	}

	s.invalidateStats(ctx)

	return created, nil
}

// GetFlight godoc
// @Summary      Get a flight
// @Tags         Flights
// @Param        id  path      string  true  "Flight ID"
// @Success      200  {object}  dto.Flight
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/flights/{id} [get]
func (s *FlightService) GetFlight(ctx context.Context, id uuid.UUID) (dto.Flight, error) {
	flight, err := s.Flights.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return dto.Flight{}, ErrFlightNotFound
		}

		return dto.Flight{}, fmt.Errorf("failed to get flight: %w", err)
	}

	return flight, nil
}

// ListFlights godoc
// @Summary      List flights
// @Tags         Flights
// @Param        status        query     string  false  "Filter by status"
// @Param        airline_code  query     string  false  "Filter by airline code"
// @Success      200  {object}  dto.FlightListResponse
// @Router       /api/v1/flights [get]
func (s *FlightService) ListFlights(ctx context.Context, filter dto.FlightFilter) (dto.FlightListResponse, error) {
	flights, err := s.Flights.List(ctx, filter)
	if err != nil {
		return dto.FlightListResponse{}, fmt.Errorf("failed to list flights: %w", err)
	}

	return flightList(flights), nil
}

// ListUpcomingFlights godoc
// @Summary      List upcoming flights
// @Tags         Flights
// @Success      200  {object}  dto.FlightListResponse
// @Router       /api/v1/flights/upcoming [get]
func (s *FlightService) ListUpcomingFlights(ctx context.Context) (dto.FlightListResponse, error) {
	flights, err := s.Flights.ListUpcoming(ctx, s.Now())
	if err != nil {
		return dto.FlightListResponse{}, fmt.Errorf("failed to list upcoming flights: %w", err)
	}

	return flightList(flights), nil
}

// ListPastFlights godoc
// @Summary      List past flights
// @Tags         Flights
// @Success      200  {object}  dto.FlightListResponse
// @Router       /api/v1/flights/past [get]
func (s *FlightService) ListPastFlights(ctx context.Context) (dto.FlightListResponse, error) {
	flights, err := s.Flights.ListPast(ctx, s.Now())
	if err != nil {
		return dto.FlightListResponse{}, fmt.Errorf("failed to list past flights: %w", err)
	}

	return flightList(flights), nil
}

// UpdateFlight godoc
// @Summary      Update a flight
// @Tags         Flights
// @Param        id       path      string             true  "Flight ID"
// @Param        request  body      dto.FlightRequest  true  "Flight"
// @Success      200      {object}  dto.Flight
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/v1/flights/{id} [put]
func (s *FlightService) UpdateFlight(ctx context.Context, id uuid.UUID, req dto.FlightRequest) (dto.Flight, error) {
	existing, err := s.GetFlight(ctx, id)
	if err != nil {
		return dto.Flight{}, err
	}

	flight := flightFromRequest(req)
	flight.ID = existing.ID
	flight.ManuallyAdded = existing.ManuallyAdded
	// Times may have changed, so the duration is always recomputed.
	flight.DurationMinutes = 0
	deriveFlight(&flight, s.Now())

	updated, err := s.Flights.Update(ctx, flight)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return dto.Flight{}, ErrFlightNotFound
		}

		return dto.Flight{}, fmt.Errorf("failed to update flight: %w", err)
	}

	s.invalidateStats(ctx)

	return updated, nil
}

// DeleteFlight godoc
// @Summary      Delete a flight
// @Tags         Flights
// @Param        id  path  string  true  "Flight ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/flights/{id} [delete]
func (s *FlightService) DeleteFlight(ctx context.Context, id uuid.UUID) error {
	if err := s.Flights.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return ErrFlightNotFound
		}

		return fmt.Errorf("failed to delete flight: %w", err)
	}

	s.invalidateStats(ctx)

	return nil
}

// Stats godoc
// @Summary      Aggregate flight statistics
// @Tags         Flights
// @Success      200  {object}  dto.FlightStats
// @Router       /api/v1/flights/stats [get]
func (s *FlightService) Stats(ctx context.Context) (dto.FlightStats, error) {
	cacheHit := false

	stats, err := s.Cache.GetStats(ctx)
	if err == nil {
		cacheHit = true
	} else {
		slog.WarnContext(ctx, "failed to get stats from cache", slog.String("error", err.Error()))
	}

	// cache miss: recompute from the database and store for the next
	// reader. The lock keeps concurrent recomputations from stampeding.
	if !cacheHit {
		stats, err = s.Flights.Stats(ctx)
		if err != nil {
			return dto.FlightStats{}, fmt.Errorf("failed to compute stats: %w", err)
		}

		stats.TotalDurationHours = math.Round(float64(stats.TotalDurationMinutes)/60*10) / 10
		stats.TotalDuration = utils.ConvertMinutesToDuration(int64(stats.TotalDurationMinutes))

		acquired, err := s.Cache.AcquireLock(ctx, s.StatsLockTimeout)
		if err != nil {
			return dto.FlightStats{}, fmt.Errorf("failed to acquire lock: %w", err)
		}
		defer s.Cache.ReleaseLock(ctx)

		if acquired {
			if err := s.Cache.SetStats(ctx, stats, s.StatsCacheExpiration); err != nil {
				return dto.FlightStats{}, fmt.Errorf("failed to set stats to cache: %w", err)
			}
		}
	}

	stats.CacheHit = cacheHit

	return stats, nil
}

func (s *FlightService) invalidateStats(ctx context.Context) {
	if err := s.Cache.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "failed to invalidate stats cache", slog.String("error", err.Error()))
	}
}

func flightFromRequest(req dto.FlightRequest) dto.Flight {
	return dto.Flight{
		GroupID:          req.GroupID,
		AirlineName:      req.AirlineName,
		AirlineCode:      req.AirlineCode,
		FlightNumber:     req.FlightNumber,
		BookingReference: req.BookingReference,
		DepartureAirport: req.DepartureAirport,
		DepartureCity:    req.DepartureCity,
		DepartureTime:    req.DepartureTime,
		ArrivalAirport:   req.ArrivalAirport,
		ArrivalCity:      req.ArrivalCity,
		ArrivalTime:      req.ArrivalTime,
		PassengerName:    req.PassengerName,
		Seat:             req.Seat,
		CabinClass:       req.CabinClass,
		Status:           req.Status,
		Notes:            req.Notes,
	}
}

func flightList(flights []dto.Flight) dto.FlightListResponse {
	if flights == nil {
		flights = []dto.Flight{}
	}

	return dto.FlightListResponse{
		Flights: flights,
		Total:   len(flights),
	}
}
