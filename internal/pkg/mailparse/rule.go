// Package mailparse extracts flights from forwarded airline confirmation
// emails using regex rules. A rule carries a sender pattern, an optional
// subject pattern and a body pattern with named capture groups; builtin
// rules ship in code and users may add their own.
//
// Expected named groups: flight_number, departure_airport,
// arrival_airport, departure_time, arrival_time. Optional:
// departure_date, arrival_date, departure_city, arrival_city,
// booking_reference, passenger_name, seat, cabin_class. When
// departure_date is not captured, the closest preceding date in the body
// (or the message date) is used.
package mailparse

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"time"
)

// Message is one already-fetched email. Body is plain text or HTML with
// tags stripped by the forwarder; no mail protocol handling happens here.
type Message struct {
	Sender    string
	Subject   string
	Body      string
	MessageID string
	Date      *time.Time
}

// Rule describes how to recognise and parse one airline's emails.
type Rule struct {
	AirlineName    string
	AirlineCode    string
	SenderPattern  string
	SubjectPattern string
	BodyPattern    string
	DateLayout     string
	TimeLayout     string
	Priority       int
	Builtin        bool
}

// ExtractedFlight is the parsed result before persistence.
type ExtractedFlight struct {
	AirlineName      string
	AirlineCode      string
	FlightNumber     string
	BookingReference string
	DepartureAirport string
	DepartureCity    string
	DepartureTime    time.Time
	ArrivalAirport   string
	ArrivalCity      string
	ArrivalTime      time.Time
	PassengerName    string
	Seat             string
	CabinClass       string
}

// MatchRule returns the first rule whose sender pattern (and subject
// pattern, when set) matches the message. Rules must already be sorted
// by descending priority. A rule with an invalid regex is skipped with a
// warning rather than failing the whole run.
func MatchRule(msg Message, rules []Rule) *Rule {
	for i := range rules {
		rule := &rules[i]

		senderRe, err := regexp.Compile("(?i)" + rule.SenderPattern)
		if err != nil {
			slog.Warn("invalid sender regex in airline rule",
				slog.String("airline", rule.AirlineName), slog.String("error", err.Error()))
			continue
		}
		if !senderRe.MatchString(msg.Sender) {
			continue
		}

		if rule.SubjectPattern != "" {
			subjectRe, err := regexp.Compile("(?i)" + rule.SubjectPattern)
			if err != nil {
				slog.Warn("invalid subject regex in airline rule",
					slog.String("airline", rule.AirlineName), slog.String("error", err.Error()))
				continue
			}
			if !subjectRe.MatchString(msg.Subject) {
				continue
			}
		}

		return rule
	}

	return nil
}

// sharedBookingRe finds a booking reference anywhere in the subject or
// body when the body pattern does not capture one. Covers EN/PT/ES/SV
// labels seen in real confirmation emails.
var sharedBookingRe = regexp.MustCompile(
	`(?i)(?:c[óo]digo\s+de\s+reserva|booking\s*(?:ref|code|reference)|` +
		`bokning|reserva|PNR|confirmation\s*code)[:\s\[]+([A-Z0-9]{5,8})`)

// sharedPassengerRe finds the passenger from a "passenger list" label.
var sharedPassengerRe = regexp.MustCompile(
	`(?i)(?:lista\s+de\s+passageiros|passenger\s*(?:list|name))` +
		`[\s:]*[-•·]?\s*([A-ZÀ-ÿ][a-zA-ZÀ-ÿ]+(?:\s+[A-ZÀ-ÿ][a-zA-ZÀ-ÿ]+)*)`)

func fallbackBookingReference(msg Message) string {
	if m := sharedBookingRe.FindStringSubmatch(msg.Subject + "\n" + msg.Body); m != nil {
		return m[1]
	}

	return ""
}

func fallbackPassenger(body string) string {
	if m := sharedPassengerRe.FindStringSubmatch(body); m != nil {
		return m[1]
	}

	return ""
}

// SortRules orders rules for matching: highest priority first, then
// airline name for a stable order.
func SortRules(rules []Rule) []Rule {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}

		return sorted[i].AirlineName < sorted[j].AirlineName
	})

	return sorted
}

func (r Rule) String() string {
	return fmt.Sprintf("%s (%s)", r.AirlineName, r.AirlineCode)
}
