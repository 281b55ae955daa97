//go:build unit

package journey

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
)

func TestClusterByProximity_Closure(t *testing.T) {
	clusterRequest := func(flights []dto.Flight, wantClusters [][]string) func(t *testing.T) {
		return func(t *testing.T) {
			got := ClusterByProximity(flights, ProximityWindow)

			gotClusters := make([][]string, len(got))
			for i, cluster := range got {
				gotClusters[i] = make([]string, len(cluster))
				for j, f := range cluster {
					gotClusters[i][j] = f.FlightNumber
				}
			}

			diff := cmp.Diff(wantClusters, gotClusters)
			if diff != "" {
				t.Fatalf("ClusterByProximity result mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("empty", clusterRequest(nil, [][]string{}))

	t.Run("within_48h_same_trip", clusterRequest([]dto.Flight{
		mkFlight("A", "ARN", "FRA", at(1, 6, 0), at(1, 8, 0)),
		mkFlight("B", "FRA", "GRU", at(3, 7, 0), at(3, 19, 0)), // 47h after A lands
	}, [][]string{{"A", "B"}}))

	t.Run("beyond_48h_splits", clusterRequest([]dto.Flight{
		mkFlight("A", "ARN", "FRA", at(1, 6, 0), at(1, 8, 0)),
		mkFlight("B", "FRA", "GRU", at(4, 9, 0), at(4, 21, 0)),
	}, [][]string{{"A"}, {"B"}}))

	// Proximity clustering has no lower bound: overlapping flights stay
	// in the same trip candidate, unlike leg grouping.
	t.Run("overlap_same_trip", clusterRequest([]dto.Flight{
		mkFlight("A", "ARN", "FRA", at(1, 6, 0), at(1, 8, 0)),
		mkFlight("B", "CPH", "FRA", at(1, 7, 0), at(1, 9, 0)),
	}, [][]string{{"A", "B"}}))
}

func TestTripDestination_Closure(t *testing.T) {
	destRequest := func(flights []dto.Flight, origin, want string) func(t *testing.T) {
		return func(t *testing.T) {
			assert.Equal(t, want, TripDestination(flights, origin))
		}
	}

	t.Run("no_flights_falls_back_to_origin", destRequest(nil, "ARN", "ARN"))

	t.Run("one_way_last_arrival", destRequest([]dto.Flight{
		mkFlight("A", "ARN", "FRA", at(1, 6, 0), at(1, 8, 0)),
		mkFlight("B", "FRA", "GRU", at(1, 10, 0), at(1, 22, 0)),
	}, "ARN", "GRU"))

	// Round trip: GRU is the first arrival followed by a stay >= 24h,
	// so it wins over the FRA connections.
	t.Run("round_trip_first_long_stay", destRequest([]dto.Flight{
		mkFlight("A", "ARN", "FRA", at(1, 6, 0), at(1, 8, 0)),
		mkFlight("B", "FRA", "GRU", at(1, 10, 0), at(1, 22, 0)),
		mkFlight("C", "GRU", "FRA", at(10, 1, 0), at(10, 13, 0)),
		mkFlight("D", "FRA", "ARN", at(10, 15, 0), at(10, 17, 0)),
	}, "ARN", "GRU"))

	// All gaps short: fall back to the midpoint flight's arrival.
	t.Run("round_trip_midpoint_fallback", destRequest([]dto.Flight{
		mkFlight("A", "ARN", "FRA", at(1, 6, 0), at(1, 8, 0)),
		mkFlight("B", "FRA", "ARN", at(1, 10, 0), at(1, 12, 0)),
	}, "ARN", "FRA"))
}

func TestRouteStops_Closure(t *testing.T) {
	stopsRequest := func(flights []dto.Flight, want []string) func(t *testing.T) {
		return func(t *testing.T) {
			diff := cmp.Diff(want, RouteStops(flights))
			if diff != "" {
				t.Fatalf("RouteStops result mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("empty", stopsRequest(nil, []string{}))

	t.Run("full_route", stopsRequest([]dto.Flight{
		mkFlight("A", "ARN", "FRA", at(1, 6, 0), at(1, 8, 0)),
		mkFlight("B", "FRA", "GRU", at(1, 10, 0), at(1, 22, 0)),
		mkFlight("C", "GRU", "ARN", at(9, 1, 0), at(9, 15, 0)),
	}, []string{"ARN", "FRA", "GRU", "ARN"}))

	// A positioning flight landing where it took off does not repeat.
	t.Run("consecutive_duplicates_collapsed", stopsRequest([]dto.Flight{
		mkFlight("A", "ARN", "FRA", at(1, 6, 0), at(1, 8, 0)),
		mkFlight("B", "CPH", "FRA", at(2, 6, 0), at(2, 8, 0)),
	}, []string{"ARN", "FRA"}))
}

func TestTripName_Closure(t *testing.T) {
	nameRequest := func(flights []dto.Flight, want string) func(t *testing.T) {
		return func(t *testing.T) {
			assert.Equal(t, want, TripName(flights))
		}
	}

	flightWithCity := func(num, dep, depCity, arr, arrCity, ref string, depAt, arrAt time.Time) dto.Flight {
		f := mkFlight(num, dep, arr, depAt, arrAt)
		f.DepartureCity = depCity
		f.ArrivalCity = arrCity
		f.BookingReference = ref
		return f
	}

	t.Run("empty", nameRequest(nil, ""))

	t.Run("city_names_and_ref", nameRequest([]dto.Flight{
		flightWithCity("A", "ARN", "Stockholm", "GRU", "São Paulo", "ABC123", at(1, 6, 0), at(1, 20, 0)),
	}, "Stockholm → São Paulo (Mar 2026) [ABC123]"))

	t.Run("airport_codes_when_no_city", nameRequest([]dto.Flight{
		mkFlight("A", "ARN", "GRU", at(1, 6, 0), at(1, 20, 0)),
	}, "ARN → GRU (Mar 2026)"))

	t.Run("multiple_refs_sorted", nameRequest([]dto.Flight{
		flightWithCity("A", "ARN", "", "GRU", "", "ZZZ999", at(1, 6, 0), at(1, 20, 0)),
		flightWithCity("B", "GRU", "", "ARN", "", "ABC123", at(10, 6, 0), at(10, 20, 0)),
	}, "ARN → GRU (Mar 2026) [ABC123/ZZZ999]"))
}
