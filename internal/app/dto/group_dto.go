package dto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mraditya/flight-journal-service/internal/pkg/exception"
)

// FlightGroup is a named collection of flights representing one trip.
// The date/route fields are derived from the member flights on read and
// are never stored.
type FlightGroup struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	AutoGenerated bool       `json:"is_auto_generated"`
	Flights       []Flight   `json:"flights"`
	FlightCount   int        `json:"flight_count"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	RouteStops    []string   `json:"route_stops"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// GroupRequest is the write payload for creating or updating a group.
// FlightIDs, when present, replaces the group membership on update.
type GroupRequest struct {
	Name        string      `json:"name" validate:"required,max=255"`
	Description string      `json:"description"`
	FlightIDs   []uuid.UUID `json:"flight_ids,omitempty"`
}

func (r *GroupRequest) Bind(_ *http.Request) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (r *GroupRequest) Validate() error {
	if err := ValidateSingleError(r); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

// GroupFlightsRequest adds or removes a set of flights from a group.
type GroupFlightsRequest struct {
	FlightIDs []uuid.UUID `json:"flight_ids" validate:"required,min=1"`
}

func (r *GroupFlightsRequest) Bind(_ *http.Request) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (r *GroupFlightsRequest) Validate() error {
	if err := ValidateSingleError(r); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

type GroupListResponse struct {
	Groups []FlightGroup `json:"groups"`
	Total  int           `json:"total"`
}

type GroupFlightsResponse struct {
	FlightsAdded   int `json:"flights_added,omitempty"`
	FlightsRemoved int `json:"flights_removed,omitempty"`
}

// ItineraryLeg is one continuous journey segment: a maximal run of
// flights connected by layovers of at most 24 hours.
type ItineraryLeg struct {
	RouteSummary string   `json:"route_summary"`
	Flights      []Flight `json:"flights"`
}

// ItineraryResponse is the derived leg view of a group. It is recomputed
// from the current flight list on every request.
type ItineraryResponse struct {
	GroupID uuid.UUID      `json:"group_id"`
	Legs    []ItineraryLeg `json:"legs"`
}

// AutoGroupResponse summarises one auto-grouping run.
type AutoGroupResponse struct {
	GroupsCreated  int    `json:"groups_created"`
	FlightsGrouped int    `json:"flights_grouped"`
	GroupsMerged   int    `json:"groups_merged"`
	Message        string `json:"message"`
}
