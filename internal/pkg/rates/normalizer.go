// Package rates normalizes the loosely structured provider response into a
// stable per-unit quote. The provider body is never bound to structs; every
// field is probed with gjson so a missing or oddly typed value degrades to
// a documented fallback instead of a decode failure.
package rates

import (
	"regexp"
	"strings"

	"github.com/gondwana/booking-rates-service/internal/app/dto"
	"github.com/gondwana/booking-rates-service/internal/pkg/ratesprovider"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Provider sentinels meaning "absent"; no further meaning is inferred.
	sentinelDescription = "Not Found"
	sentinelCode        = "Not_Found"

	// DefaultAccommodationType labels quotes whose response carried no
	// usable special rate description.
	DefaultAccommodationType = "Accommodation"

	msgNoRateInformation = "No rate information available"
)

// specialRatePattern is the primary grammar rule for a special rate
// description: `* <RATE_TYPE> - <PROPERTY>` with optional trailing space.
var specialRatePattern = regexp.MustCompile(`^\* (.+?) - (.+?)\s*$`)

type propertyName struct {
	unitName          string
	accommodationType string
	fullName          string
}

// Normalize extracts rate, availability, display name, rate code and
// location id from a raw provider body.
//
// Total Charge is in minor currency units; > 0 means available, == 0 means
// unavailable with the first guest error message attached, and absent or
// non-numeric means no rate information at all. The provider does not
// distinguish a genuinely free booking from a rejection, so neither do we.
func Normalize(body []byte, query dto.BookingQuery, unitTypeID int64) dto.RateQuote {
	doc := gjson.ParseBytes(body)

	name := extractPropertyName(doc, query.UnitName)

	quote := dto.RateQuote{
		UnitTypeID:        unitTypeID,
		UnitName:          name.unitName,
		AccommodationType: name.accommodationType,
		FullName:          name.fullName,
		DateRange:         ratesprovider.FormatDateRange(query.Arrival, query.Departure),
		Occupants:         query.Occupants,
	}

	if code, ok := extractRateCode(doc); ok {
		quote.RateCode = &code
	}

	if location := doc.Get("Location ID"); location.Exists() {
		quote.LocationID = location.Value()
	}

	totalCharge := doc.Get("Total Charge")

	switch {
	case totalCharge.Type == gjson.Number && totalCharge.Num > 0:
		// Minor to major units without float drift.
		rate, _ := decimal.NewFromFloat(totalCharge.Num).Shift(-2).Float64()
		quote.Rate = &rate
		quote.Availability = true
	case totalCharge.Type == gjson.Number:
		zero := 0.0
		quote.Rate = &zero

		if msg, ok := firstGuestError(doc); ok {
			quote.Error = &msg
		}
	default:
		msg := msgNoRateInformation
		quote.Error = &msg
	}

	return quote
}

// FailureQuote synthesizes the result for a unit whose provider call never
// produced a usable response. Display fields fall back to the query.
func FailureQuote(query dto.BookingQuery, unitTypeID int64, cause string) dto.RateQuote {
	return dto.RateQuote{
		UnitTypeID:        unitTypeID,
		UnitName:          query.UnitName,
		AccommodationType: DefaultAccommodationType,
		FullName:          query.UnitName + " - " + DefaultAccommodationType,
		DateRange:         ratesprovider.FormatDateRange(query.Arrival, query.Departure),
		Occupants:         query.Occupants,
		Error:             &cause,
	}
}

// extractPropertyName walks the legs in order and derives display names
// from the first usable special rate description; when no leg qualifies it
// falls back to the query's unit name.
func extractPropertyName(doc gjson.Result, queryUnitName string) propertyName {
	for _, leg := range doc.Get("Legs").Array() {
		description := leg.Get("Special Rate Description").String()
		if description == "" || description == sentinelDescription {
			continue
		}

		if name, ok := parseSpecialRateDescription(description); ok {
			return name
		}
	}

	return propertyName{
		unitName:          queryUnitName,
		accommodationType: DefaultAccommodationType,
		fullName:          queryUnitName + " - " + DefaultAccommodationType,
	}
}

// parseSpecialRateDescription applies the two grammar rules for a special
// rate description. Primary: `* <RATE_TYPE> - <PROPERTY>` with the rate
// type title-cased. Secondary: any `" - "` separated text, left side as the
// accommodation type with asterisks stripped.
func parseSpecialRateDescription(description string) (propertyName, bool) {
	if match := specialRatePattern.FindStringSubmatch(description); match != nil {
		accommodationType := titleCase(match[1])
		unit := match[2]

		return propertyName{
			unitName:          unit,
			accommodationType: accommodationType,
			fullName:          unit + " - " + accommodationType,
		}, true
	}

	left, right, found := strings.Cut(description, " - ")
	if !found {
		return propertyName{}, false
	}

	accommodationType := strings.TrimSpace(strings.ReplaceAll(left, "*", ""))
	unit := strings.TrimSpace(right)

	return propertyName{
		unitName:          unit,
		accommodationType: accommodationType,
		fullName:          unit + " - " + accommodationType,
	}, true
}

// extractRateCode returns the first usable special rate code across legs.
func extractRateCode(doc gjson.Result) (string, bool) {
	for _, leg := range doc.Get("Legs").Array() {
		code := leg.Get("Special Rate Code").String()
		if code != "" && code != sentinelCode {
			return code, true
		}
	}

	return "", false
}

// firstGuestError scans legs in order, then guests in order, and returns
// the first non-empty error message.
func firstGuestError(doc gjson.Result) (string, bool) {
	for _, leg := range doc.Get("Legs").Array() {
		for _, guest := range leg.Get("Guests").Array() {
			if msg := guest.Get("Error Message").String(); msg != "" {
				return msg, true
			}
		}
	}

	return "", false
}

func titleCase(value string) string {
	return cases.Title(language.English).String(strings.ToLower(value))
}
