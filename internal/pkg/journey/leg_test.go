//go:build unit

package journey

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
)

func mkFlight(id, dep, arr string, depAt, arrAt time.Time) dto.Flight {
	return dto.Flight{
		FlightNumber:     id,
		DepartureAirport: dep,
		ArrivalAirport:   arr,
		DepartureTime:    depAt,
		ArrivalTime:      arrAt,
	}
}

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 3, day, hour, minute, 0, 0, time.UTC)
}

func TestGroupIntoLegs_Closure(t *testing.T) {
	groupRequest := func(flights []dto.Flight, wantLegs [][]string) func(t *testing.T) {
		return func(t *testing.T) {
			got := GroupIntoLegs(flights)

			gotLegs := make([][]string, len(got))
			for i, leg := range got {
				gotLegs[i] = make([]string, len(leg))
				for j, f := range leg {
					gotLegs[i][j] = f.FlightNumber
				}
			}

			diff := cmp.Diff(wantLegs, gotLegs)
			if diff != "" {
				t.Fatalf("GroupIntoLegs result mismatch (-want +got):\n%s", diff)
			}
		}
	}

	// SCL→GRU arriving 10:00, GRU→FRA departing 14:00 same day (4h gap),
	// FRA→ARN departing three days later.
	a := mkFlight("A", "SCL", "GRU", at(1, 2, 0), at(1, 10, 0))
	b := mkFlight("B", "GRU", "FRA", at(1, 14, 0), at(2, 5, 0))
	c := mkFlight("C", "FRA", "ARN", at(5, 9, 0), at(5, 11, 0))

	t.Run("empty_input", groupRequest(nil, [][]string{}))
	t.Run("single_flight", groupRequest([]dto.Flight{a}, [][]string{{"A"}}))
	t.Run("connection_and_new_leg", groupRequest([]dto.Flight{a, b, c}, [][]string{{"A", "B"}, {"C"}}))

	t.Run("zero_gap_same_leg", groupRequest([]dto.Flight{
		mkFlight("A", "SCL", "GRU", at(1, 2, 0), at(1, 10, 0)),
		mkFlight("B", "GRU", "FRA", at(1, 10, 0), at(2, 5, 0)),
	}, [][]string{{"A", "B"}}))

	t.Run("exactly_24h_same_leg", groupRequest([]dto.Flight{
		mkFlight("A", "SCL", "GRU", at(1, 2, 0), at(1, 10, 0)),
		mkFlight("B", "GRU", "FRA", at(2, 10, 0), at(3, 5, 0)),
	}, [][]string{{"A", "B"}}))

	t.Run("24h_plus_one_minute_splits", groupRequest([]dto.Flight{
		mkFlight("A", "SCL", "GRU", at(1, 2, 0), at(1, 10, 0)),
		mkFlight("B", "GRU", "FRA", at(2, 10, 1), at(3, 5, 0)),
	}, [][]string{{"A"}, {"B"}}))

	t.Run("negative_gap_starts_new_leg", groupRequest([]dto.Flight{
		mkFlight("A", "SCL", "GRU", at(1, 2, 0), at(1, 10, 0)),
		mkFlight("B", "GRU", "FRA", at(1, 9, 0), at(2, 5, 0)),
	}, [][]string{{"A"}, {"B"}}))
}

// Concatenating all legs in order must reproduce the input exactly:
// no flight dropped, duplicated or reordered.
func TestGroupIntoLegs_PreservesInput(t *testing.T) {
	flights := []dto.Flight{
		mkFlight("A", "SCL", "GRU", at(1, 2, 0), at(1, 10, 0)),
		mkFlight("B", "GRU", "FRA", at(1, 14, 0), at(2, 5, 0)),
		mkFlight("C", "FRA", "ARN", at(5, 9, 0), at(5, 11, 0)),
		mkFlight("D", "ARN", "CPH", at(5, 8, 0), at(5, 9, 30)), // out of order on purpose
		mkFlight("E", "CPH", "OSL", at(9, 8, 0), at(9, 9, 0)),
	}

	legs := GroupIntoLegs(flights)

	var flattened []dto.Flight
	for _, leg := range legs {
		assert.NotEmpty(t, leg, "legs must never be empty")
		flattened = append(flattened, leg...)
	}

	diff := cmp.Diff(flights, flattened)
	if diff != "" {
		t.Fatalf("flattened legs do not reproduce input (-want +got):\n%s", diff)
	}
}

func TestLegRouteSummary_Closure(t *testing.T) {
	summaryRequest := func(leg []dto.Flight, want string) func(t *testing.T) {
		return func(t *testing.T) {
			got := LegRouteSummary(leg)
			assert.Equal(t, want, got)
		}
	}

	t.Run("empty_leg", summaryRequest(nil, ""))

	t.Run("single_flight_no_layover", summaryRequest([]dto.Flight{
		mkFlight("A", "JFK", "LHR", at(1, 8, 0), at(1, 20, 0)),
	}, "JFK → LHR"))

	t.Run("whole_hour_layover", summaryRequest([]dto.Flight{
		mkFlight("A", "SCL", "GRU", at(1, 2, 0), at(1, 10, 0)),
		mkFlight("B", "GRU", "FRA", at(1, 14, 0), at(2, 5, 0)),
	}, "SCL → GRU (4h layover) → FRA"))

	t.Run("hours_and_minutes_layover", summaryRequest([]dto.Flight{
		mkFlight("A", "SCL", "GRU", at(1, 2, 0), at(1, 10, 0)),
		mkFlight("B", "GRU", "FRA", at(1, 11, 35), at(2, 5, 0)),
	}, "SCL → GRU (1h35m layover) → FRA"))

	t.Run("three_flight_leg", summaryRequest([]dto.Flight{
		mkFlight("A", "ARN", "FRA", at(1, 6, 0), at(1, 8, 0)),
		mkFlight("B", "FRA", "GRU", at(1, 10, 0), at(1, 22, 0)),
		mkFlight("C", "GRU", "SCL", at(2, 1, 30), at(2, 5, 0)),
	}, "ARN → FRA (2h layover) → GRU (3h30m layover) → SCL"))
}

func TestFormatLayover_Closure(t *testing.T) {
	formatRequest := func(gap time.Duration, want string) func(t *testing.T) {
		return func(t *testing.T) {
			assert.Equal(t, want, FormatLayover(gap))
		}
	}

	t.Run("zero", formatRequest(0, "0h"))
	t.Run("whole_hours", formatRequest(4*time.Hour, "4h"))
	t.Run("hours_and_minutes", formatRequest(90*time.Minute, "1h30m"))
	t.Run("minutes_only", formatRequest(45*time.Minute, "0h45m"))
	t.Run("seconds_round_up", formatRequest(time.Hour+59*time.Minute+45*time.Second, "1h60m"))
	// Negative gaps are not clamped; malformed data renders as-is.
	t.Run("negative_unclamped", formatRequest(-90*time.Minute, "-2h-30m"))
}
