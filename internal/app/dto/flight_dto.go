package dto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mraditya/flight-journal-service/internal/pkg/exception"
)

// Flight statuses. Status is recomputed on every write from the arrival
// time, except that a manual "cancelled" is never overridden.
const (
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Flight is a single journalled flight, either added manually or imported
// from a forwarded confirmation email.
type Flight struct {
	ID               uuid.UUID  `json:"id"`
	GroupID          *uuid.UUID `json:"group_id,omitempty"`
	AirlineName      string     `json:"airline_name"`
	AirlineCode      string     `json:"airline_code"`
	FlightNumber     string     `json:"flight_number"`
	BookingReference string     `json:"booking_reference"`
	DepartureAirport string     `json:"departure_airport"`
	DepartureCity    string     `json:"departure_city"`
	DepartureTime    time.Time  `json:"departure_time"`
	ArrivalAirport   string     `json:"arrival_airport"`
	ArrivalCity      string     `json:"arrival_city"`
	ArrivalTime      time.Time  `json:"arrival_time"`
	PassengerName    string     `json:"passenger_name"`
	Seat             string     `json:"seat"`
	CabinClass       string     `json:"cabin_class"`
	Status           string     `json:"status"`
	DurationMinutes  int        `json:"duration_minutes"`
	EmailAccountID   *uuid.UUID `json:"email_account_id,omitempty"`
	EmailSubject     string     `json:"email_subject,omitempty"`
	EmailMessageID   string     `json:"email_message_id,omitempty"`
	ManuallyAdded    bool       `json:"is_manually_added"`
	Notes            string     `json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// FlightRequest is the write payload for creating or updating a flight.
type FlightRequest struct {
	AirlineName      string     `json:"airline_name"`
	AirlineCode      string     `json:"airline_code"`
	FlightNumber     string     `json:"flight_number" validate:"required"`
	BookingReference string     `json:"booking_reference"`
	DepartureAirport string     `json:"departure_airport" validate:"required,len=3,uppercase"`
	DepartureCity    string     `json:"departure_city"`
	DepartureTime    time.Time  `json:"departure_time" validate:"required"`
	ArrivalAirport   string     `json:"arrival_airport" validate:"required,len=3,uppercase"`
	ArrivalCity      string     `json:"arrival_city"`
	ArrivalTime      time.Time  `json:"arrival_time" validate:"required"`
	PassengerName    string     `json:"passenger_name"`
	Seat             string     `json:"seat"`
	CabinClass       string     `json:"cabin_class" validate:"omitempty,oneof=economy premium_economy business first"`
	Status           string     `json:"status" validate:"omitempty,oneof=upcoming completed cancelled"`
	GroupID          *uuid.UUID `json:"group_id,omitempty"`
	Notes            string     `json:"notes"`
}

func (r *FlightRequest) Bind(_ *http.Request) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (r *FlightRequest) Validate() error {
	if err := ValidateSingleError(r); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

// FlightFilter carries the optional list filters from query parameters.
type FlightFilter struct {
	Status      string
	AirlineCode string
}

type FlightListResponse struct {
	Flights []Flight `json:"flights"`
	Total   int      `json:"total"`
}

// FlightStats is the aggregate view over all journalled flights.
type FlightStats struct {
	TotalFlights         int      `json:"total_flights"`
	TotalDurationMinutes int      `json:"total_duration_minutes"`
	TotalDurationHours   float64  `json:"total_duration_hours"`
	TotalDuration        string   `json:"total_duration"`
	UniqueAirlines       []string `json:"unique_airlines"`
	UniqueAirportsCount  int      `json:"unique_airports_count"`
	UniqueAirports       []string `json:"unique_airports"`
	CacheHit             bool     `json:"cache_hit"`
}
