package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
	"github.com/mraditya/flight-journal-service/internal/app/repository"
	"github.com/mraditya/flight-journal-service/internal/pkg/journey"
)

type GroupService struct {
	Groups  repository.GroupRepo
	Flights repository.FlightRepo
}

func NewGroupService(groups repository.GroupRepo, flights repository.FlightRepo) *GroupService {
	return &GroupService{
		Groups:  groups,
		Flights: flights,
	}
}

// CreateGroup godoc
// @Summary      Create a flight group
// @Tags         Groups
// @Param        request  body      dto.GroupRequest  true  "Group"
// @Success      201      {object}  dto.FlightGroup
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/groups [post]
func (s *GroupService) CreateGroup(ctx context.Context, req dto.GroupRequest) (dto.FlightGroup, error) {
	group, err := s.Groups.Create(ctx, dto.FlightGroup{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return dto.FlightGroup{}, fmt.Errorf("failed to create group: %w", err)
	}

	if len(req.FlightIDs) > 0 {
		if _, err := s.Flights.AssignGroup(ctx, req.FlightIDs, group.ID); err != nil {
			return dto.FlightGroup{}, fmt.Errorf("failed to assign flights to group: %w", err)
		}
	}

	return s.withDerivedFields(ctx, group)
}

// GetGroup godoc
// @Summary      Get a flight group with its flights
// @Tags         Groups
// @Param        id  path      string  true  "Group ID"
// @Success      200  {object}  dto.FlightGroup
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/groups/{id} [get]
func (s *GroupService) GetGroup(ctx context.Context, id uuid.UUID) (dto.FlightGroup, error) {
	group, err := s.Groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return dto.FlightGroup{}, ErrGroupNotFound
		}

		return dto.FlightGroup{}, fmt.Errorf("failed to get group: %w", err)
	}

	return s.withDerivedFields(ctx, group)
}

// ListGroups godoc
// @Summary      List flight groups
// @Tags         Groups
// @Success      200  {object}  dto.GroupListResponse
// @Router       /api/v1/groups [get]
func (s *GroupService) ListGroups(ctx context.Context) (dto.GroupListResponse, error) {
	groups, err := s.Groups.List(ctx)
	if err != nil {
		return dto.GroupListResponse{}, fmt.Errorf("failed to list groups: %w", err)
	}

	result := []dto.FlightGroup{}
	for _, group := range groups {
		decorated, err := s.withDerivedFields(ctx, group)
		if err != nil {
			return dto.GroupListResponse{}, err
		}
		result = append(result, decorated)
	}

	return dto.GroupListResponse{
		Groups: result,
		Total:  len(result),
	}, nil
}

// UpdateGroup godoc
// @Summary      Update a flight group
// @Tags         Groups
// @Param        id       path      string            true  "Group ID"
// @Param        request  body      dto.GroupRequest  true  "Group"
// @Success      200      {object}  dto.FlightGroup
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/v1/groups/{id} [put]
func (s *GroupService) UpdateGroup(ctx context.Context, id uuid.UUID, req dto.GroupRequest) (dto.FlightGroup, error) {
	group, err := s.Groups.Update(ctx, dto.FlightGroup{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return dto.FlightGroup{}, ErrGroupNotFound
		}

		return dto.FlightGroup{}, fmt.Errorf("failed to update group: %w", err)
	}

	// A flight list in the request replaces the whole membership.
	if req.FlightIDs != nil {
		if err := s.replaceMembership(ctx, id, req.FlightIDs); err != nil {
			return dto.FlightGroup{}, err
		}
	}

	return s.withDerivedFields(ctx, group)
}

// DeleteGroup godoc
// @Summary      Delete a flight group
// @Tags         Groups
// @Param        id  path  string  true  "Group ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/groups/{id} [delete]
func (s *GroupService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	// Member flights are detached by the foreign key, never deleted.
	if err := s.Groups.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return ErrGroupNotFound
		}

		return fmt.Errorf("failed to delete group: %w", err)
	}

	return nil
}

// AddFlights godoc
// @Summary      Add flights to a group
// @Tags         Groups
// @Param        id       path      string                   true  "Group ID"
// @Param        request  body      dto.GroupFlightsRequest  true  "Flight IDs"
// @Success      200      {object}  dto.GroupFlightsResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/v1/groups/{id}/flights [post]
func (s *GroupService) AddFlights(ctx context.Context, id uuid.UUID, req dto.GroupFlightsRequest) (dto.GroupFlightsResponse, error) {
	if _, err := s.GetGroup(ctx, id); err != nil {
		return dto.GroupFlightsResponse{}, err
	}

	added, err := s.Flights.AssignGroup(ctx, req.FlightIDs, id)
	if err != nil {
		return dto.GroupFlightsResponse{}, fmt.Errorf("failed to add flights to group: %w", err)
	}

	return dto.GroupFlightsResponse{FlightsAdded: added}, nil
}

// RemoveFlights godoc
// @Summary      Remove flights from a group
// @Tags         Groups
// @Param        id       path      string                   true  "Group ID"
// @Param        request  body      dto.GroupFlightsRequest  true  "Flight IDs"
// @Success      200      {object}  dto.GroupFlightsResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/v1/groups/{id}/flights [delete]
func (s *GroupService) RemoveFlights(ctx context.Context, id uuid.UUID, req dto.GroupFlightsRequest) (dto.GroupFlightsResponse, error) {
	if _, err := s.GetGroup(ctx, id); err != nil {
		return dto.GroupFlightsResponse{}, err
	}

	removed, err := s.Flights.UnassignGroup(ctx, req.FlightIDs, id)
	if err != nil {
		return dto.GroupFlightsResponse{}, fmt.Errorf("failed to remove flights from group: %w", err)
	}

	return dto.GroupFlightsResponse{FlightsRemoved: removed}, nil
}

// Itinerary godoc
// @Summary      Leg-by-leg itinerary of a group
// @Tags         Groups
// @Description  Splits the group's flights into journey legs joined by layovers of at most 24 hours
// @Param        id  path      string  true  "Group ID"
// @Success      200  {object}  dto.ItineraryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/groups/{id}/itinerary [get]
func (s *GroupService) Itinerary(ctx context.Context, id uuid.UUID) (dto.ItineraryResponse, error) {
	if _, err := s.Groups.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return dto.ItineraryResponse{}, ErrGroupNotFound
		}

		return dto.ItineraryResponse{}, fmt.Errorf("failed to get group: %w", err)
	}

	flights, err := s.Flights.ListByGroup(ctx, id)
	if err != nil {
		return dto.ItineraryResponse{}, fmt.Errorf("failed to list group flights: %w", err)
	}

	legs := []dto.ItineraryLeg{}
	for _, leg := range journey.GroupIntoLegs(flights) {
		legs = append(legs, dto.ItineraryLeg{
			RouteSummary: journey.LegRouteSummary(leg),
			Flights:      leg,
		})
	}

	return dto.ItineraryResponse{
		GroupID: id,
		Legs:    legs,
	}, nil
}

// AutoGroup godoc
// @Summary      Automatically organise ungrouped flights into trips
// @Tags         Groups
// @Description  Groups by shared booking reference, then clusters the rest by proximity, then merges overlapping auto-generated groups
// @Success      200  {object}  dto.AutoGroupResponse
// @Router       /api/v1/groups/auto-group [post]
func (s *GroupService) AutoGroup(ctx context.Context) (dto.AutoGroupResponse, error) {
	ungrouped, err := s.Flights.ListUngrouped(ctx)
	if err != nil {
		return dto.AutoGroupResponse{}, fmt.Errorf("failed to list ungrouped flights: %w", err)
	}

	var resp dto.AutoGroupResponse

	// Flights sharing a booking reference belong to the same trip no
	// matter how far apart they fly. A reference with a single flight
	// still gets a group: the booking itself marks a trip.
	grouped := map[uuid.UUID]bool{}
	for _, flights := range flightsByBookingReference(ungrouped) {
		if err := s.createAutoGroup(ctx, flights); err != nil {
			return resp, err
		}

		resp.GroupsCreated++
		resp.FlightsGrouped += len(flights)
		for _, f := range flights {
			grouped[f.ID] = true
		}
	}

	// What's left is clustered by time proximity; a lone flight stays
	// ungrouped.
	var remaining []dto.Flight
	for _, f := range ungrouped {
		if !grouped[f.ID] {
			remaining = append(remaining, f)
		}
	}

	for _, cluster := range journey.ClusterByProximity(remaining, journey.ProximityWindow) {
		if len(cluster) < 2 {
			continue
		}

		if err := s.createAutoGroup(ctx, cluster); err != nil {
			return resp, err
		}

		resp.GroupsCreated++
		resp.FlightsGrouped += len(cluster)
	}

	merges, err := s.mergeAutoGroups(ctx)
	if err != nil {
		return resp, err
	}
	resp.GroupsMerged = merges

	resp.Message = fmt.Sprintf("created %d groups from %d flights, merged %d",
		resp.GroupsCreated, resp.FlightsGrouped, resp.GroupsMerged)

	return resp, nil
}

func (s *GroupService) createAutoGroup(ctx context.Context, flights []dto.Flight) error {
	group, err := s.Groups.Create(ctx, dto.FlightGroup{
		Name:          journey.TripName(flights),
		AutoGenerated: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create auto group: %w", err)
	}

	ids := make([]uuid.UUID, len(flights))
	for i, f := range flights {
		ids[i] = f.ID
	}

	if _, err := s.Flights.AssignGroup(ctx, ids, group.ID); err != nil {
		return fmt.Errorf("failed to assign flights to auto group: %w", err)
	}

	return nil
}

type groupSpan struct {
	group   dto.FlightGroup
	flights []dto.Flight
	start   time.Time
	end     time.Time
}

// mergeAutoGroups repeatedly merges pairs of auto-generated groups whose
// time spans come within the proximity window, until none remain. Manual
// groups are never touched.
func (s *GroupService) mergeAutoGroups(ctx context.Context) (int, error) {
	merges := 0

	for {
		spans, err := s.autoGroupSpans(ctx)
		if err != nil {
			return merges, err
		}

		mergedThisRound := false

		for i := 0; i+1 < len(spans); i++ {
			gap := spans[i+1].start.Sub(spans[i].end)
			if gap > journey.ProximityWindow {
				continue
			}

			if err := s.mergePair(ctx, spans[i], spans[i+1]); err != nil {
				return merges, err
			}

			merges++
			mergedThisRound = true

			break
		}

		if !mergedThisRound {
			return merges, nil
		}
	}
}

func (s *GroupService) autoGroupSpans(ctx context.Context) ([]groupSpan, error) {
	groups, err := s.Groups.ListAutoGenerated(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto groups: %w", err)
	}

	var spans []groupSpan
	for _, group := range groups {
		flights, err := s.Flights.ListByGroup(ctx, group.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list group flights: %w", err)
		}
		if len(flights) == 0 {
			continue
		}

		spans = append(spans, groupSpan{
			group:   group,
			flights: flights,
			start:   flights[0].DepartureTime,
			end:     flights[len(flights)-1].ArrivalTime,
		})
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].start.Before(spans[j].start)
	})

	return spans, nil
}

func (s *GroupService) mergePair(ctx context.Context, dst, src groupSpan) error {
	ids := make([]uuid.UUID, len(src.flights))
	for i, f := range src.flights {
		ids[i] = f.ID
	}

	if _, err := s.Flights.AssignGroup(ctx, ids, dst.group.ID); err != nil {
		return fmt.Errorf("failed to move flights into merged group: %w", err)
	}

	if err := s.Groups.Delete(ctx, src.group.ID); err != nil {
		return fmt.Errorf("failed to delete merged group: %w", err)
	}

	combined := append(append([]dto.Flight{}, dst.flights...), src.flights...)
	sort.Slice(combined, func(i, j int) bool {
		return combined[i].DepartureTime.Before(combined[j].DepartureTime)
	})

	dst.group.Name = journey.TripName(combined)
	if _, err := s.Groups.Update(ctx, dst.group); err != nil {
		return fmt.Errorf("failed to rename merged group: %w", err)
	}

	return nil
}

func (s *GroupService) replaceMembership(ctx context.Context, id uuid.UUID, flightIDs []uuid.UUID) error {
	current, err := s.Flights.ListByGroup(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list group flights: %w", err)
	}

	keep := map[uuid.UUID]bool{}
	for _, fid := range flightIDs {
		keep[fid] = true
	}

	var toRemove []uuid.UUID
	for _, f := range current {
		if !keep[f.ID] {
			toRemove = append(toRemove, f.ID)
		}
	}

	if len(toRemove) > 0 {
		if _, err := s.Flights.UnassignGroup(ctx, toRemove, id); err != nil {
			return fmt.Errorf("failed to detach flights from group: %w", err)
		}
	}

	if len(flightIDs) > 0 {
		if _, err := s.Flights.AssignGroup(ctx, flightIDs, id); err != nil {
			return fmt.Errorf("failed to assign flights to group: %w", err)
		}
	}

	return nil
}

// flightsByBookingReference collects flights sharing a non-empty booking
// reference, preserving first-seen order so group creation is stable.
func flightsByBookingReference(flights []dto.Flight) [][]dto.Flight {
	index := map[string]int{}
	var groups [][]dto.Flight

	for _, f := range flights {
		if f.BookingReference == "" {
			continue
		}

		i, ok := index[f.BookingReference]
		if !ok {
			i = len(groups)
			index[f.BookingReference] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], f)
	}

	return groups
}

// withDerivedFields fills the fields computed from the member flights:
// the flight list itself, the date span, and the route.
func (s *GroupService) withDerivedFields(ctx context.Context, group dto.FlightGroup) (dto.FlightGroup, error) {
	flights, err := s.Flights.ListByGroup(ctx, group.ID)
	if err != nil {
		return dto.FlightGroup{}, fmt.Errorf("failed to list group flights: %w", err)
	}
	if flights == nil {
		flights = []dto.Flight{}
	}

	group.Flights = flights
	group.FlightCount = len(flights)
	group.RouteStops = journey.RouteStops(flights)

	if len(flights) > 0 {
		start := flights[0].DepartureTime
		end := flights[len(flights)-1].ArrivalTime
		group.StartDate = &start
		group.EndDate = &end
		group.Origin = flights[0].DepartureAirport
		group.Destination = journey.TripDestination(flights, group.Origin)
	}

	return group, nil
}
