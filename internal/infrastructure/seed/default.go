package seed

import "airops-service/internal/domain/entity"

// Default returns the built-in schedule: Riga hub departures, a handful of
// European transfer points and their onward New York legs.
func Default() *Catalog {
	catalog := &Catalog{
		Airports: []entity.Airport{
			{Code: "RIX", Name: "Riga International", CityName: "Riga", TzName: "Europe/Riga"},
			{Code: "TLL", Name: "Lennart Meri Tallinn", CityName: "Tallinn", TzName: "Europe/Tallinn"},
			{Code: "VNO", Name: "Vilnius International", CityName: "Vilnius", TzName: "Europe/Vilnius"},
			{Code: "HEL", Name: "Helsinki-Vantaa", CityName: "Helsinki", TzName: "Europe/Helsinki"},
			{Code: "ARN", Name: "Stockholm Arlanda", CityName: "Stockholm", TzName: "Europe/Stockholm"},
			{Code: "FRA", Name: "Frankfurt am Main", CityName: "Frankfurt", TzName: "Europe/Berlin"},
			{Code: "AMS", Name: "Amsterdam Schiphol", CityName: "Amsterdam", TzName: "Europe/Amsterdam"},
			{Code: "LHR", Name: "London Heathrow", CityName: "London", TzName: "Europe/London"},
			{Code: "CDG", Name: "Paris Charles de Gaulle", CityName: "Paris", TzName: "Europe/Paris"},
			{Code: "JFK", Name: "John F. Kennedy International", CityName: "New York", TzName: "America/New_York"},
		},
		Airlines: []entity.Airline{
			{Code: "BT", Name: "airBaltic"},
			{Code: "LH", Name: "Lufthansa"},
			{Code: "KL", Name: "KLM Royal Dutch Airlines"},
			{Code: "BA", Name: "British Airways"},
			{Code: "AF", Name: "Air France"},
			{Code: "AY", Name: "Finnair"},
		},
		Flights: []entity.Flight{
			{ID: "FL001", FlightNumber: "BT 211", Origin: "RIX", Destination: "FRA", Departure: "06:30", Gate: "A4", Aircraft: "A220-300"},
			{ID: "FL002", FlightNumber: "BT 617", Origin: "RIX", Destination: "AMS", Departure: "07:15", Gate: "A7", Aircraft: "A220-300"},
			{ID: "FL003", FlightNumber: "BT 301", Origin: "RIX", Destination: "LHR", Departure: "08:00", Gate: "B2", Aircraft: "A220-300"},
			{ID: "FL004", FlightNumber: "BT 691", Origin: "RIX", Destination: "CDG", Departure: "08:40", Gate: "B5", Aircraft: "A220-300"},
			{ID: "FL005", FlightNumber: "BT 101", Origin: "RIX", Destination: "TLL", Departure: "09:10", Gate: "C1", Aircraft: "Q400"},
			{ID: "FL006", FlightNumber: "BT 341", Origin: "RIX", Destination: "VNO", Departure: "09:45", Gate: "C3", Aircraft: "Q400"},
			{ID: "FL007", FlightNumber: "LH 400", Origin: "FRA", Destination: "JFK", Departure: "10:30", Gate: "Z25", Aircraft: "B747-8"},
			{ID: "FL008", FlightNumber: "BA 117", Origin: "LHR", Destination: "JFK", Departure: "11:00", Gate: "B36", Aircraft: "B777-300ER"},
			{ID: "FL009", FlightNumber: "BT 651", Origin: "RIX", Destination: "ARN", Departure: "11:25", Gate: "A2", Aircraft: "A220-300"},
			{ID: "FL010", FlightNumber: "KL 641", Origin: "AMS", Destination: "JFK", Departure: "12:45", Gate: "E18", Aircraft: "B787-10"},
			{ID: "FL011", FlightNumber: "BT 671", Origin: "RIX", Destination: "JFK", Departure: "13:05", Gate: "A9", Aircraft: "A321LR"},
			{ID: "FL012", FlightNumber: "AF 006", Origin: "CDG", Destination: "JFK", Departure: "13:30", Gate: "K41", Aircraft: "A350-900"},
			{ID: "FL013", FlightNumber: "AY 1071", Origin: "HEL", Destination: "RIX", Departure: "13:50", Gate: "12", Aircraft: "ATR 72"},
			{ID: "FL014", FlightNumber: "BA 175", Origin: "LHR", Destination: "JFK", Departure: "14:20", Gate: "B42", Aircraft: "B777-200"},
			{ID: "FL015", FlightNumber: "BT 102", Origin: "TLL", Destination: "RIX", Departure: "15:30", Gate: "4", Aircraft: "Q400"},
			{ID: "FL016", FlightNumber: "KL 1361", Origin: "AMS", Destination: "RIX", Departure: "16:10", Gate: "D7", Aircraft: "E190"},
			{ID: "FL017", FlightNumber: "BT 212", Origin: "FRA", Destination: "RIX", Departure: "18:00", Gate: "A20", Aircraft: "A220-300"},
			{ID: "FL018", FlightNumber: "LH 401", Origin: "FRA", Destination: "JFK", Departure: "19:30", Gate: "Z21", Aircraft: "A340-300"},
			{ID: "FL019", FlightNumber: "BT 303", Origin: "RIX", Destination: "LHR", Departure: "20:15", Gate: "B1", Aircraft: "A220-300", EstimatedDeparture: "20:40"},
		},
	}

	// Built-in data is well formed; normalize only fills city names.
	catalog.normalize()
	return catalog
}
