package dto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gondwana/booking-rates-service/internal/pkg/exception"
)

// QueryDateFormat is the inbound booking date layout (dd/mm/yyyy).
const QueryDateFormat = "02/01/2006"

const maxAge = 120

// BookingQuery is the inbound booking request. Field names follow the
// provider ecosystem convention of space separated JSON keys.
type BookingQuery struct {
	UnitName   string `json:"Unit Name" validate:"required"`
	Arrival    string `json:"Arrival" validate:"required"`
	Departure  string `json:"Departure" validate:"required"`
	Occupants  int    `json:"Occupants" validate:"required,min=1"`
	Ages       []int  `json:"Ages" validate:"required"`
	UnitTypeID *int64 `json:"Unit Type ID,omitempty"`
}

func (q *BookingQuery) Bind(r *http.Request) error {
	if err := q.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

// Validate collects every violation, mirroring the upstream request
// validator contract: all problems are reported at once, in field order.
func (q *BookingQuery) Validate() error {
	details := ValidateAll(q)

	arrival, arrivalOK := parseQueryDate(q.Arrival)
	if q.Arrival != "" && !arrivalOK {
		details = append(details, "Arrival date must be in dd/mm/yyyy format")
	}

	departure, departureOK := parseQueryDate(q.Departure)
	if q.Departure != "" && !departureOK {
		details = append(details, "Departure date must be in dd/mm/yyyy format")
	}

	if arrivalOK && departureOK && !departure.After(arrival) {
		details = append(details, "Departure date must be after arrival date")
	}

	if q.Occupants >= 1 && q.Ages != nil && len(q.Ages) != q.Occupants {
		details = append(details, "Number of ages must match number of occupants")
	}

	for _, age := range q.Ages {
		if age < 0 || age > maxAge {
			details = append(details, fmt.Sprintf("All ages must be integers between 0 and %d", maxAge))
			break
		}
	}

	if len(details) == 0 {
		return nil
	}

	return exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Message:    "Validation Error",
		Detail:     "Invalid request data",
		Details:    details,
	}
}

// parseQueryDate parses a dd/mm/yyyy date and rejects values that do not
// round-trip exactly, e.g. "1/2/2026" or "31/02/2026".
func parseQueryDate(value string) (time.Time, bool) {
	parsed, err := time.Parse(QueryDateFormat, value)
	if err != nil || parsed.Format(QueryDateFormat) != value {
		return time.Time{}, false
	}

	return parsed, true
}

// RateQuote is the normalized per-unit result returned to the caller.
// LocationID passes through whatever JSON value the provider sent.
type RateQuote struct {
	UnitTypeID        int64       `json:"unitTypeId"`
	UnitName          string      `json:"unitName"`
	AccommodationType string      `json:"accommodationType"`
	FullName          string      `json:"fullName"`
	Rate              *float64    `json:"rate"`
	DateRange         string      `json:"dateRange"`
	Availability      bool        `json:"availability"`
	Occupants         int         `json:"occupants"`
	Error             *string     `json:"error"`
	LocationID        interface{} `json:"locationId"`
	RateCode          *string     `json:"rateCode"`
}

// RatesResponse is the success envelope for the rates endpoint.
type RatesResponse struct {
	Success bool        `json:"success"`
	Data    []RateQuote `json:"data"`
}
