// Package journey derives trip-level views from ordered flight lists:
// journey legs joined by short layovers, proximity clusters used for
// auto-grouping, and route/destination display helpers.
//
// Every function is pure. Inputs are expected to be sorted ascending by
// departure time; callers own the ordering and it is not re-checked here.
package journey

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
)

// MaxLegLayover is the longest gap between an arrival and the next
// departure that still counts as a connection within the same leg.
const MaxLegLayover = 24 * time.Hour

// GroupIntoLegs partitions a chronologically ordered flight list into
// legs: maximal runs where each flight departs between 0 and 24 hours
// (inclusive) after the previous one lands. A negative gap (next flight
// departs before the previous arrives) starts a new leg rather than
// failing; malformed data degrades the grouping, it never errors.
//
// An empty input yields an empty result, never a single empty leg.
func GroupIntoLegs(flights []dto.Flight) [][]dto.Flight {
	legs := [][]dto.Flight{}
	if len(flights) == 0 {
		return legs
	}

	current := []dto.Flight{flights[0]}
	for i := 1; i < len(flights); i++ {
		gap := flights[i].DepartureTime.Sub(flights[i-1].ArrivalTime)
		if gap >= 0 && gap <= MaxLegLayover {
			current = append(current, flights[i])
			continue
		}

		legs = append(legs, current)
		current = []dto.Flight{flights[i]}
	}

	return append(legs, current)
}

// LegRouteSummary renders one leg as a display route, e.g.
//
//	SCL → GRU (4h layover) → FRA
//
// The string starts with the first flight's departure airport; every
// arrival airport follows, each preceded by an arrow. Connections after
// the first flight get a layover annotation before their arrow. The
// layover duration is not clamped: out-of-order timestamps render a
// negative duration, which is an accepted display-layer limitation.
func LegRouteSummary(leg []dto.Flight) string {
	if len(leg) == 0 {
		return ""
	}

	var route strings.Builder
	route.WriteString(leg[0].DepartureAirport)

	for i, f := range leg {
		if i > 0 {
			gap := f.DepartureTime.Sub(leg[i-1].ArrivalTime)
			route.WriteString(fmt.Sprintf(" (%s layover)", FormatLayover(gap)))
		}

		route.WriteString(" → ")
		route.WriteString(f.ArrivalAirport)
	}

	return route.String()
}

// FormatLayover formats a layover gap as "4h" or "1h35m". Hours are
// floored and the minute remainder is rounded, so "1h60m" is possible
// for gaps a breath under two hours.
func FormatLayover(gap time.Duration) string {
	const (
		msPerHour   = 3.6e6
		msPerMinute = 6e4
	)

	ms := float64(gap.Milliseconds())
	hours := int(math.Floor(ms / msPerHour))
	minutes := int(math.Round(math.Mod(ms, msPerHour) / msPerMinute))

	if minutes != 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}

	return fmt.Sprintf("%dh", hours)
}
