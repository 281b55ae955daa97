package journey

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
)

// ProximityWindow is the maximum arrival-to-departure gap for two
// flights to be considered part of the same trip during auto-grouping.
// Deliberately looser than MaxLegLayover: a weekend stay still belongs
// to the trip even though it ends the journey leg.
const ProximityWindow = 48 * time.Hour

// ClusterByProximity splits a chronologically ordered flight list into
// trip candidates: consecutive flights whose gap is at most maxGap stay
// in the same cluster. Unlike leg grouping there is no lower bound, so
// overlapping flights cluster together.
func ClusterByProximity(flights []dto.Flight, maxGap time.Duration) [][]dto.Flight {
	if len(flights) == 0 {
		return [][]dto.Flight{}
	}

	clusters := [][]dto.Flight{}
	current := []dto.Flight{flights[0]}

	for i := 1; i < len(flights); i++ {
		gap := flights[i].DepartureTime.Sub(flights[i-1].ArrivalTime)
		if gap <= maxGap {
			current = append(current, flights[i])
			continue
		}

		clusters = append(clusters, current)
		current = []dto.Flight{flights[i]}
	}

	return append(clusters, current)
}

// TripDestination determines the main destination of a trip.
//
// One-way trips (ARN → FRA → GRU) resolve to the last arrival. Round
// trips resolve to the first non-origin arrival followed by a stay of
// 24 hours or more, falling back to the midpoint flight's arrival.
func TripDestination(flights []dto.Flight, origin string) string {
	if len(flights) == 0 {
		return origin
	}

	lastArrival := flights[len(flights)-1].ArrivalAirport
	if lastArrival != origin {
		return lastArrival
	}

	for i := 0; i < len(flights)-1; i++ {
		gap := flights[i+1].DepartureTime.Sub(flights[i].ArrivalTime)
		if gap >= MaxLegLayover && flights[i].ArrivalAirport != origin {
			return flights[i].ArrivalAirport
		}
	}

	mid := (len(flights) - 1) / 2
	if arr := flights[mid].ArrivalAirport; arr != origin {
		return arr
	}

	return flights[0].ArrivalAirport
}

// RouteStops returns the ordered airport codes of the full route, with
// consecutive duplicates collapsed.
func RouteStops(flights []dto.Flight) []string {
	if len(flights) == 0 {
		return []string{}
	}

	stops := []string{flights[0].DepartureAirport}
	for _, f := range flights {
		if f.ArrivalAirport != "" && f.ArrivalAirport != stops[len(stops)-1] {
			stops = append(stops, f.ArrivalAirport)
		}
	}

	return stops
}

// CityForAirport finds a display city name for an airport code from the
// flight data itself, or "" when none of the flights name it.
func CityForAirport(flights []dto.Flight, airport string) string {
	for _, f := range flights {
		if f.DepartureAirport == airport && f.DepartureCity != "" {
			return f.DepartureCity
		}
		if f.ArrivalAirport == airport && f.ArrivalCity != "" {
			return f.ArrivalCity
		}
	}

	return ""
}

// TripName builds a display name for a trip from its ordered flights,
// e.g. "Stockholm → São Paulo (Mar 2026) [ABC123]". Booking references,
// when present, are deduplicated, sorted and appended.
func TripName(flights []dto.Flight) string {
	if len(flights) == 0 {
		return ""
	}

	first := flights[0]
	origin := first.DepartureAirport
	destination := TripDestination(flights, origin)

	originName := first.DepartureCity
	if originName == "" {
		originName = origin
	}
	destName := CityForAirport(flights, destination)
	if destName == "" {
		destName = destination
	}

	name := fmt.Sprintf("%s → %s (%s)", originName, destName,
		first.DepartureTime.Format("Jan 2006"))

	if refs := bookingReferences(flights); len(refs) > 0 {
		name = fmt.Sprintf("%s [%s]", name, strings.Join(refs, "/"))
	}

	return name
}

func bookingReferences(flights []dto.Flight) []string {
	seen := map[string]bool{}
	refs := []string{}
	for _, f := range flights {
		if f.BookingReference != "" && !seen[f.BookingReference] {
			seen[f.BookingReference] = true
			refs = append(refs, f.BookingReference)
		}
	}
	sort.Strings(refs)

	return refs
}
