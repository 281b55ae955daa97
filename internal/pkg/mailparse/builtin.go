package mailparse

// Regex building blocks shared by the builtin rules. The body patterns
// run against plain text where the forwarder has inserted newlines after
// block-level HTML elements.
const (
	datePart = `\d{1,2}\s+(?:de\s+)?[A-Za-zÀ-ÿ]+\.?\s+(?:de\s+)?\d{4}`
	timePart = `\d{1,2}:\d{2}`
)

// BuiltinRules returns the airline rules that ship with the system.
// Users cannot edit or delete these; a custom rule with a higher
// priority shadows them instead.
func BuiltinRules() []Rule {
	return []Rule{
		{
			// LATAM group (LA/JJ/4C/4M). Real emails come from
			// info@info.latam.com with PT/ES/EN subjects; the itinerary
			// lists date, time and airport for departure and arrival
			// with the flight number in between.
			AirlineName:   "LATAM Airlines",
			AirlineCode:   "LA",
			SenderPattern: `(latam\.com|latamairlines\.com|info\.latam\.|@latam\.)`,
			SubjectPattern: `(itinerar|confirm|reserv|booking|e-?ticket|` +
				`compr|viage|viaje|vuelo|voo|trip|travel)`,
			BodyPattern: `(?P<departure_date>` + datePart + `)` +
				`\s+(?P<departure_time>` + timePart + `)` +
				`.*?\((?P<departure_airport>[A-Z]{3})\)` +
				`.*?(?P<flight_number>(?:LA|JJ|4C|4M)\s*\d{3,5})` +
				`.*?(?P<arrival_date>` + datePart + `)` +
				`\s+(?P<arrival_time>` + timePart + `)` +
				`.*?\((?P<arrival_airport>[A-Z]{3})\)`,
			Priority: 10,
			Builtin:  true,
		},
		{
			// SAS (SK). Emails from flysas.com, subjects in EN/SV.
			// Per leg: "<City> <AIRPORT> - <City> <AIRPORT>" then
			// "<dep_time> - <arr_time>" then the SK flight number; the
			// travel date appears once above the legs, so it is
			// recovered as the closest preceding date.
			AirlineName:    "SAS Scandinavian Airlines",
			AirlineCode:    "SK",
			SenderPattern:  `(flysas\.com|sas\.se|sas\.dk|sas\.no)`,
			SubjectPattern: `(flight|flygning|resa|booking|bokning)`,
			BodyPattern: `(?P<departure_city>[A-Za-zÀ-ÿ. ]+?)\s+` +
				`(?P<departure_airport>[A-Z]{3})\s*[-–]\s*` +
				`(?P<arrival_city>[A-Za-zÀ-ÿ. ]+?)\s+` +
				`(?P<arrival_airport>[A-Z]{3})` +
				`.*?(?P<departure_time>` + timePart + `)\s*[-–]\s*` +
				`(?P<arrival_time>` + timePart + `)` +
				`.*?(?P<flight_number>SK\s*\d{2,4})`,
			Priority: 10,
			Builtin:  true,
		},
		{
			// Azul (AD). Emails from voeazul-news.com.br. Per leg the
			// forwarded text stacks airport code, city, "DD/MM • HH:MM"
			// and "Voo NNNN" on separate lines. Dates carry no year (the
			// parser infers it from the message date) and flight numbers
			// carry no airline prefix.
			AirlineName:   "Azul Brazilian Airlines",
			AirlineCode:   "AD",
			SenderPattern: `(voeazul[\w-]*\.com\.br|azullinhasaereas\.com|@azul\.com)`,
			SubjectPattern: `(itinerar|confirm|reserv|booking|e-?ticket|` +
				`compr|viage|voo|passagem|bilhete|trip|travel)`,
			BodyPattern: `\n\s*(?P<departure_airport>[A-Z]{3})\s*\n` +
				`.*?(?P<departure_date>\d{2}/\d{2})\s*[•·]\s*` +
				`(?P<departure_time>` + timePart + `)` +
				`.*?(?:Voo|Flight)\s+(?P<flight_number>\d{3,5})` +
				`.*?\n\s*(?P<arrival_airport>[A-Z]{3})\s*\n` +
				`.*?(?P<arrival_date>\d{2}/\d{2})\s*[•·]\s*` +
				`(?P<arrival_time>` + timePart + `)`,
			DateLayout: "02/01",
			Priority:   10,
			Builtin:    true,
		},
		{
			// Lufthansa (LH). Emails from lufthansa.com; per leg the
			// structure is "LH <number>  <AIRPORT> <time> - <AIRPORT>
			// <time>" with the date on the preceding line.
			AirlineName:    "Lufthansa",
			AirlineCode:    "LH",
			SenderPattern:  `(lufthansa\.com|@lh\.)`,
			SubjectPattern: `(booking|confirmation|itinerary|buchung|best[äa]tigung)`,
			BodyPattern: `(?P<flight_number>LH\s*\d{2,4})` +
				`.*?(?P<departure_airport>[A-Z]{3})\s+` +
				`(?P<departure_time>` + timePart + `)\s*[-–]\s*` +
				`(?P<arrival_airport>[A-Z]{3})\s+` +
				`(?P<arrival_time>` + timePart + `)`,
			Priority: 5,
			Builtin:  true,
		},
	}
}
