package ratesprovider

import (
	"fmt"
	"time"

	"github.com/gondwana/booking-rates-service/internal/app/dto"
)

const (
	// providerDateFormat is the outbound wire date layout (yyyy-mm-dd).
	providerDateFormat = "2006-01-02"

	// adultAgeThreshold is the booking policy cutoff, not user configurable.
	adultAgeThreshold = 18

	AgeGroupChild = "Child"
	AgeGroupAdult = "Adult"
)

// MalformedDateError reports a booking date that could not be parsed. The
// request validator rejects these upstream, so hitting it means the query
// bypassed validation.
type MalformedDateError struct {
	Value string
}

func (e MalformedDateError) Error() string {
	return fmt.Sprintf("malformed booking date %q, expected dd/mm/yyyy", e.Value)
}

// Guest is one occupant on the provider wire, classified by age group only.
type Guest struct {
	AgeGroup string `json:"Age Group"`
}

// Payload is the provider wire shape for a single unit type query.
type Payload struct {
	UnitTypeID int64   `json:"Unit Type ID"`
	Arrival    string  `json:"Arrival"`
	Departure  string  `json:"Departure"`
	Guests     []Guest `json:"Guests"`
}

// Transform converts a validated booking query into the provider payload
// for one unit type. Pure function, no I/O.
func Transform(query dto.BookingQuery, unitTypeID int64) (Payload, error) {
	arrival, err := ConvertDate(query.Arrival)
	if err != nil {
		return Payload{}, err
	}

	departure, err := ConvertDate(query.Departure)
	if err != nil {
		return Payload{}, err
	}

	guests := make([]Guest, len(query.Ages))
	for i, age := range query.Ages {
		guests[i] = Guest{AgeGroup: ageGroup(age)}
	}

	return Payload{
		UnitTypeID: unitTypeID,
		Arrival:    arrival,
		Departure:  departure,
		Guests:     guests,
	}, nil
}

// ConvertDate rewrites a dd/mm/yyyy booking date into the provider's
// yyyy-mm-dd form.
func ConvertDate(date string) (string, error) {
	parsed, err := time.Parse(dto.QueryDateFormat, date)
	if err != nil {
		return "", MalformedDateError{Value: date}
	}

	return parsed.Format(providerDateFormat), nil
}

// FormatDateRange renders the "yyyy-mm-dd to yyyy-mm-dd" range from the
// original query dates. Dates that fail to parse are passed through as-is
// so a result can still be synthesized for a malformed query.
func FormatDateRange(arrival, departure string) string {
	from, err := ConvertDate(arrival)
	if err != nil {
		from = arrival
	}

	to, err := ConvertDate(departure)
	if err != nil {
		to = departure
	}

	return fmt.Sprintf("%s to %s", from, to)
}

func ageGroup(age int) string {
	if age < adultAgeThreshold {
		return AgeGroupChild
	}

	return AgeGroupAdult
}
