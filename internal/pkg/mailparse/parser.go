package mailparse

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

const defaultTimeLayout = "15:04"

// ExtractFlights applies a rule's body pattern to a message and returns
// every flight segment it captures. Matches missing a required group or
// an unrecoverable date are skipped, not fatal: one bad segment should
// not lose the rest of the itinerary. An invalid body regex is the only
// error condition.
func ExtractFlights(msg Message, rule Rule) ([]ExtractedFlight, error) {
	bodyRe, err := regexp.Compile("(?is)" + rule.BodyPattern)
	if err != nil {
		return nil, fmt.Errorf("compile body pattern for %s: %w", rule.AirlineName, err)
	}

	names := bodyRe.SubexpNames()
	group := func(match []int, name string) string {
		for i, n := range names {
			if n == name && 2*i < len(match) && match[2*i] >= 0 {
				return strings.TrimSpace(msg.Body[match[2*i]:match[2*i+1]])
			}
		}
		return ""
	}

	sharedBooking := fallbackBookingReference(msg)
	sharedPassenger := fallbackPassenger(msg.Body)

	var flights []ExtractedFlight

	for _, match := range bodyRe.FindAllStringSubmatchIndex(msg.Body, -1) {
		flightNumber := group(match, "flight_number")
		depAirport := group(match, "departure_airport")
		arrAirport := group(match, "arrival_airport")
		depClock := group(match, "departure_time")
		arrClock := group(match, "arrival_time")

		if flightNumber == "" || depAirport == "" || arrAirport == "" ||
			depClock == "" || arrClock == "" {
			slog.Warn("segment match missing required groups, skipping",
				slog.String("airline", rule.AirlineName))
			continue
		}

		depDate, ok := segmentDate(msg, rule, group(match, "departure_date"), match[0])
		if !ok {
			slog.Warn("could not determine departure date for segment, skipping",
				slog.String("airline", rule.AirlineName),
				slog.String("flight_number", flightNumber))
			continue
		}

		depTime, ok := combineDateClock(depDate, depClock, rule.TimeLayout)
		if !ok {
			continue
		}

		arrDate := depDate
		if raw := group(match, "arrival_date"); raw != "" {
			if parsed, parsedOK := parseRuleDate(raw, rule.DateLayout); parsedOK {
				arrDate = resolveYear(parsed, msg)
			}
		}

		arrTime, ok := combineDateClock(arrDate, arrClock, rule.TimeLayout)
		if !ok {
			continue
		}
		// Overnight flight without an explicit arrival date: landing
		// "earlier" than departure means the next day.
		if arrTime.Before(depTime) {
			arrTime = arrTime.Add(24 * time.Hour)
		}

		booking := group(match, "booking_reference")
		if booking == "" {
			booking = sharedBooking
		}

		passenger := group(match, "passenger_name")
		if passenger == "" {
			passenger = sharedPassenger
		}

		flights = append(flights, ExtractedFlight{
			AirlineName:      rule.AirlineName,
			AirlineCode:      rule.AirlineCode,
			FlightNumber:     normalizeFlightNumber(flightNumber, rule.AirlineCode),
			BookingReference: booking,
			DepartureAirport: depAirport,
			DepartureCity:    group(match, "departure_city"),
			DepartureTime:    depTime,
			ArrivalAirport:   arrAirport,
			ArrivalCity:      group(match, "arrival_city"),
			ArrivalTime:      arrTime,
			PassengerName:    passenger,
			Seat:             group(match, "seat"),
			CabinClass:       strings.ToLower(group(match, "cabin_class")),
		})
	}

	return flights, nil
}

// segmentDate resolves the departure date of one segment: the captured
// group first, then the closest date preceding the match in the body,
// then the message date.
func segmentDate(msg Message, rule Rule, captured string, matchStart int) (time.Time, bool) {
	if captured != "" {
		if t, ok := parseRuleDate(captured, rule.DateLayout); ok {
			return resolveYear(t, msg), true
		}
	}

	if t, ok := closestPrecedingDate(msg.Body, matchStart); ok {
		return t, true
	}

	if msg.Date != nil {
		d := msg.Date.UTC()
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

func parseRuleDate(raw, layout string) (time.Time, bool) {
	if layout != "" {
		if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return t, true
		}
	}

	return ParseFlightDate(raw)
}

func combineDateClock(date time.Time, clock, layout string) (time.Time, bool) {
	if layout == "" {
		layout = defaultTimeLayout
	}

	t, err := time.Parse(layout, clock)
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, time.UTC), true
}

// resolveYear fills in the year of a date parsed from a layout without
// one (Azul prints "02/03"). The message date anchors the year; a date
// already past relative to it belongs to the next year.
func resolveYear(t time.Time, msg Message) time.Time {
	if t.Year() != 0 {
		return t
	}

	ref := time.Now().UTC()
	if msg.Date != nil {
		ref = msg.Date.UTC()
	}

	resolved := time.Date(ref.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	if resolved.Before(refDay) {
		resolved = resolved.AddDate(1, 0, 0)
	}

	return resolved
}

var digitsOnlyRe = regexp.MustCompile(`^\d+$`)

// normalizeFlightNumber strips whitespace and prefixes a bare numeric
// flight number with the airline code (Azul prints "Voo 4849").
func normalizeFlightNumber(raw, airlineCode string) string {
	number := strings.Join(strings.Fields(raw), "")
	if airlineCode != "" && digitsOnlyRe.MatchString(number) {
		number = airlineCode + number
	}

	return number
}
