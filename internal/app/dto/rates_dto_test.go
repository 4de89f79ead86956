//go:build unit

package dto

import (
	"errors"
	"testing"

	"github.com/gondwana/booking-rates-service/internal/pkg/exception"
	"github.com/google/go-cmp/cmp"
)

func TestBookingQuery_Validate(t *testing.T) {
	// Initialize validator for tests
	_ = InitValidator()

	validateRequest := func(query BookingQuery, wantDetails []string) func(t *testing.T) {
		return func(t *testing.T) {
			err := query.Validate()

			if wantDetails == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}

			var appErr exception.ApplicationError
			if !errors.As(err, &appErr) {
				t.Fatalf("Validate() error = %v, want ApplicationError", err)
			}

			if appErr.StatusCode != 400 {
				t.Fatalf("Validate() status = %d, want 400", appErr.StatusCode)
			}

			if diff := cmp.Diff(wantDetails, appErr.Details); diff != "" {
				t.Fatalf("Validate() details mismatch (-want +got):\n%s", diff)
			}
		}
	}

	ptrInt64 := func(i int64) *int64 { return &i }

	validQuery := BookingQuery{
		UnitName:  "Kalahari Farmhouse",
		Arrival:   "01/02/2026",
		Departure: "05/02/2026",
		Occupants: 2,
		Ages:      []int{30, 12},
	}

	t.Run("valid_query", validateRequest(validQuery, nil))

	t.Run("valid_with_pinned_unit_type", validateRequest(BookingQuery{
		UnitName:   "Kalahari Farmhouse",
		Arrival:    "01/02/2026",
		Departure:  "05/02/2026",
		Occupants:  1,
		Ages:       []int{40},
		UnitTypeID: ptrInt64(-2147483637),
	}, nil))

	t.Run("missing_unit_name", validateRequest(BookingQuery{
		Arrival:   "01/02/2026",
		Departure: "05/02/2026",
		Occupants: 1,
		Ages:      []int{40},
	}, []string{"Unit Name is a required field"}))

	t.Run("bad_arrival_format", validateRequest(BookingQuery{
		UnitName:  "Kalahari Farmhouse",
		Arrival:   "2026-02-01",
		Departure: "05/02/2026",
		Occupants: 1,
		Ages:      []int{40},
	}, []string{"Arrival date must be in dd/mm/yyyy format"}))

	t.Run("non_round_trip_date_rejected", validateRequest(BookingQuery{
		UnitName:  "Kalahari Farmhouse",
		Arrival:   "1/2/2026",
		Departure: "05/02/2026",
		Occupants: 1,
		Ages:      []int{40},
	}, []string{"Arrival date must be in dd/mm/yyyy format"}))

	t.Run("departure_not_after_arrival", validateRequest(BookingQuery{
		UnitName:  "Kalahari Farmhouse",
		Arrival:   "05/02/2026",
		Departure: "05/02/2026",
		Occupants: 1,
		Ages:      []int{40},
	}, []string{"Departure date must be after arrival date"}))

	t.Run("ages_count_mismatch", validateRequest(BookingQuery{
		UnitName:  "Kalahari Farmhouse",
		Arrival:   "01/02/2026",
		Departure: "05/02/2026",
		Occupants: 3,
		Ages:      []int{30, 12},
	}, []string{"Number of ages must match number of occupants"}))

	t.Run("age_out_of_range", validateRequest(BookingQuery{
		UnitName:  "Kalahari Farmhouse",
		Arrival:   "01/02/2026",
		Departure: "05/02/2026",
		Occupants: 2,
		Ages:      []int{30, 200},
	}, []string{"All ages must be integers between 0 and 120"}))

	t.Run("multiple_problems_collected", validateRequest(BookingQuery{
		Arrival:   "bad",
		Departure: "05/02/2026",
		Occupants: 1,
		Ages:      []int{-1},
	}, []string{
		"Unit Name is a required field",
		"Arrival date must be in dd/mm/yyyy format",
		"All ages must be integers between 0 and 120",
	}))
}
