//go:build unit

package mailparse

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtinRule(t *testing.T, code string) Rule {
	t.Helper()
	for _, r := range BuiltinRules() {
		if r.AirlineCode == code {
			return r
		}
	}
	t.Fatalf("no builtin rule with code %s", code)
	return Rule{}
}

func TestMatchRule_Closure(t *testing.T) {
	matchRequest := func(msg Message, rules []Rule, wantAirline string) func(t *testing.T) {
		return func(t *testing.T) {
			got := MatchRule(msg, SortRules(rules))
			if wantAirline == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, wantAirline, got.AirlineName)
		}
	}

	latam := Message{
		Sender:  "LATAM <info@info.latam.com>",
		Subject: "Confirmação de compra - Código de reserva: ABC123",
	}

	t.Run("latam_sender_and_subject", matchRequest(latam, BuiltinRules(), "LATAM Airlines"))

	t.Run("unknown_sender", matchRequest(Message{
		Sender:  "offers@randomshop.example",
		Subject: "Your booking",
	}, BuiltinRules(), ""))

	t.Run("sender_match_subject_mismatch", matchRequest(Message{
		Sender:  "news@flysas.com",
		Subject: "EuroBonus points expiring",
	}, BuiltinRules(), ""))

	t.Run("higher_priority_custom_rule_wins", matchRequest(latam, append(BuiltinRules(), Rule{
		AirlineName:   "My LATAM Override",
		SenderPattern: `latam\.com`,
		BodyPattern:   `unused`,
		Priority:      99,
	}), "My LATAM Override"))

	t.Run("invalid_regex_skipped", matchRequest(latam, append([]Rule{{
		AirlineName:   "Broken",
		SenderPattern: `latam\.com(`,
		BodyPattern:   `unused`,
		Priority:      99,
	}}, BuiltinRules()...), "LATAM Airlines"))
}

func TestExtractFlights_LATAM(t *testing.T) {
	msg := Message{
		Sender:  "LATAM <info@info.latam.com>",
		Subject: "Confirmação de compra",
		Body: `Olá Rafael
Código de reserva: ABC123

Voo de ida
16 de mar. de 2026 09:30 São Paulo (GRU)
LA 8064
16 de mar. de 2026 17:45 Frankfurt (FRA)

Lista de passageiros
- Rafael Souza`,
	}

	flights, err := ExtractFlights(msg, builtinRule(t, "LA"))
	require.NoError(t, err)
	require.Len(t, flights, 1)

	want := ExtractedFlight{
		AirlineName:      "LATAM Airlines",
		AirlineCode:      "LA",
		FlightNumber:     "LA8064",
		BookingReference: "ABC123",
		DepartureAirport: "GRU",
		DepartureTime:    time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC),
		ArrivalAirport:   "FRA",
		ArrivalTime:      time.Date(2026, 3, 16, 17, 45, 0, 0, time.UTC),
		PassengerName:    "Rafael Souza",
	}
	if diff := cmp.Diff(want, flights[0]); diff != "" {
		t.Fatalf("ExtractFlights result mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractFlights_Azul_YearlessDatesAndBareNumbers(t *testing.T) {
	sent := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	msg := Message{
		Sender:  "Azul <noreply@voeazul-news.com.br>",
		Subject: "Confirmação de bilhete eletrônico",
		Date:    &sent,
		Body: `Seu itinerário

Código de reserva: ZX3344

GRU
São Paulo
02/03 • 13:20
Voo 4849
CNF
Belo Horizonte
02/03 • 14:35

CNF
Belo Horizonte
05/03 • 10:00
Voo 4852
GRU
São Paulo
05/03 • 11:15
`,
	}

	flights, err := ExtractFlights(msg, builtinRule(t, "AD"))
	require.NoError(t, err)
	require.Len(t, flights, 2)

	// "02/03" carries no year: it resolves against the message date, and
	// the bare "4849" gets the airline prefix.
	want := ExtractedFlight{
		AirlineName:      "Azul Brazilian Airlines",
		AirlineCode:      "AD",
		FlightNumber:     "AD4849",
		BookingReference: "ZX3344",
		DepartureAirport: "GRU",
		DepartureTime:    time.Date(2026, 3, 2, 13, 20, 0, 0, time.UTC),
		ArrivalAirport:   "CNF",
		ArrivalTime:      time.Date(2026, 3, 2, 14, 35, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, flights[0]); diff != "" {
		t.Fatalf("ExtractFlights result mismatch (-want +got):\n%s", diff)
	}

	got := flights[1]
	assert.Equal(t, "AD4852", got.FlightNumber)
	assert.Equal(t, "CNF", got.DepartureAirport)
	assert.Equal(t, "GRU", got.ArrivalAirport)
	assert.Equal(t, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC), got.DepartureTime)
}

func TestExtractFlights_Azul_DateBeforeMessageDateRollsToNextYear(t *testing.T) {
	sent := time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC)
	msg := Message{
		Sender:  "Azul <noreply@voeazul-news.com.br>",
		Subject: "Confirmação de reserva",
		Date:    &sent,
		Body: `
VCP
Campinas
05/01 • 08:10
Voo 2510
REC
Recife
05/01 • 11:20
`,
	}

	flights, err := ExtractFlights(msg, builtinRule(t, "AD"))
	require.NoError(t, err)
	require.Len(t, flights, 1)

	// January 5 is behind a December message date, so it is next year's.
	assert.Equal(t, time.Date(2027, 1, 5, 8, 10, 0, 0, time.UTC), flights[0].DepartureTime)
	assert.Equal(t, time.Date(2027, 1, 5, 11, 20, 0, 0, time.UTC), flights[0].ArrivalTime)
}

func TestExtractFlights_SAS_DateFromPrecedingText(t *testing.T) {
	msg := Message{
		Sender:  "SAS <no-reply@flysas.com>",
		Subject: "Din flygning 16 Mar 2026, Bokning: XYZ789",
		Body: `Din flygning 16 Mar 2026
Bokning: XYZ789

Stockholm ARN - Copenhagen CPH
09:35 - 10:45 (1h 10m)
SK 1403 | SAS
`,
	}

	flights, err := ExtractFlights(msg, builtinRule(t, "SK"))
	require.NoError(t, err)
	require.Len(t, flights, 1)

	got := flights[0]
	assert.Equal(t, "SK1403", got.FlightNumber)
	assert.Equal(t, "ARN", got.DepartureAirport)
	assert.Equal(t, "CPH", got.ArrivalAirport)
	assert.Equal(t, "Stockholm", got.DepartureCity)
	assert.Equal(t, "Copenhagen", got.ArrivalCity)
	assert.Equal(t, "XYZ789", got.BookingReference)
	assert.Equal(t, time.Date(2026, 3, 16, 9, 35, 0, 0, time.UTC), got.DepartureTime)
	assert.Equal(t, time.Date(2026, 3, 16, 10, 45, 0, 0, time.UTC), got.ArrivalTime)
}

func TestExtractFlights_MessageDateFallbackAndOvernight(t *testing.T) {
	sent := time.Date(2026, 3, 15, 18, 2, 11, 0, time.UTC)
	msg := Message{
		Sender:  "Lufthansa <noreply@lufthansa.com>",
		Subject: "Your booking confirmation",
		Body:    "LH 441 FRA 22:00 - IAH 06:15",
		Date:    &sent,
	}

	flights, err := ExtractFlights(msg, builtinRule(t, "LH"))
	require.NoError(t, err)
	require.Len(t, flights, 1)

	got := flights[0]
	assert.Equal(t, "LH441", got.FlightNumber)
	assert.Equal(t, time.Date(2026, 3, 15, 22, 0, 0, 0, time.UTC), got.DepartureTime)
	// Arrival clock is before departure: overnight, lands next day.
	assert.Equal(t, time.Date(2026, 3, 16, 6, 15, 0, 0, time.UTC), got.ArrivalTime)
}

func TestExtractFlights_NoDateSkipsSegment(t *testing.T) {
	msg := Message{
		Sender:  "Lufthansa <noreply@lufthansa.com>",
		Subject: "Your booking confirmation",
		Body:    "LH 441 FRA 22:00 - IAH 06:15",
	}

	flights, err := ExtractFlights(msg, builtinRule(t, "LH"))
	require.NoError(t, err)
	assert.Empty(t, flights)
}

func TestExtractFlights_InvalidBodyPattern(t *testing.T) {
	_, err := ExtractFlights(Message{Body: "anything"}, Rule{
		AirlineName: "Broken",
		BodyPattern: `(?P<flight_number>[`,
	})
	assert.Error(t, err)
}
