package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and display format of calendar days.
const DateLayout = "2006-01-02"

// CabinClass is the requested travel class.
type CabinClass string

const (
	Economy  CabinClass = "Economy"
	Business CabinClass = "Business"
	First    CabinClass = "First"
)

// ParseCabinClass accepts any casing of Economy, Business or First.
func ParseCabinClass(s string) (CabinClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "economy", "":
		return Economy, nil
	case "business":
		return Business, nil
	case "first":
		return First, nil
	}
	return "", NewValidationError("cabin_class", fmt.Sprintf("unknown cabin class %q", s))
}

// Param returns the lower-cased upstream value.
func (c CabinClass) Param() string {
	return strings.ToLower(string(c))
}

// TripType distinguishes one-way from round-trip searches.
type TripType string

const (
	RoundTrip TripType = "round_trip"
	OneWay    TripType = "one_way"
)

// ParseTripType accepts "round_trip"/"roundtrip"/"return" and "one_way"/"oneway".
func ParseTripType(s string) (TripType, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "round_trip", "roundtrip", "return", "":
		return RoundTrip, nil
	case "one_way", "oneway":
		return OneWay, nil
	}
	return "", NewValidationError("trip_type", fmt.Sprintf("unknown trip type %q", s))
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// TravelDates enforces the minimum-date rules of the date pickers:
// departure is never before today and return is never before departure.
// The zero value has no dates selected.
type TravelDates struct {
	departure *time.Time
	ret       *time.Time
}

// Departure returns the selected departure day, if any.
func (d TravelDates) Departure() (time.Time, bool) {
	if d.departure == nil {
		return time.Time{}, false
	}
	return *d.departure, true
}

// Return returns the selected return day, if any.
func (d TravelDates) Return() (time.Time, bool) {
	if d.ret == nil {
		return time.Time{}, false
	}
	return *d.ret, true
}

// SetDeparture selects the departure day.
// A previously selected return day that would now precede departure is cleared.
func (d *TravelDates) SetDeparture(day, today time.Time) error {
	day = Day(day)
	if day.Before(Day(today)) {
		return NewValidationError("departure_date", "must not be before today")
	}
	d.departure = &day
	if d.ret != nil && d.ret.Before(day) {
		d.ret = nil
	}
	return nil
}

// SetReturn selects the return day. The minimum is the departure day, or today
// when no departure is selected yet.
func (d *TravelDates) SetReturn(day, today time.Time) error {
	day = Day(day)
	minDay := Day(today)
	if d.departure != nil {
		minDay = *d.departure
	}
	if day.Before(minDay) {
		return NewValidationError("return_date", "must not be before departure")
	}
	d.ret = &day
	return nil
}

// ClearReturn drops the return day (e.g. when switching to one-way).
func (d *TravelDates) ClearReturn() {
	d.ret = nil
}

// Clear drops both days.
func (d *TravelDates) Clear() {
	d.departure = nil
	d.ret = nil
}

// SearchCriteria is the validated input of an itinerary search.
type SearchCriteria struct {
	Origin      Place           `json:"origin"`
	Destination Place           `json:"destination"`
	Departure   time.Time       `json:"departure"`
	Return      *time.Time      `json:"return,omitempty"`
	Passengers  PassengerCounts `json:"passengers"`
	Cabin       CabinClass      `json:"cabin_class"`
}

// RoundTrip reports whether a return day is present.
func (c SearchCriteria) RoundTrip() bool {
	return c.Return != nil
}

// Validate checks the criteria against today's date.
// Origin and destination equality is deliberately not checked.
func (c SearchCriteria) Validate(today time.Time) error {
	if c.Origin.ID == "" || c.Destination.ID == "" || c.Departure.IsZero() {
		return ErrMissingFields
	}
	if Day(c.Departure).Before(Day(today)) {
		return NewValidationError("departure_date", "must not be before today")
	}
	if c.Return != nil && Day(*c.Return).Before(Day(c.Departure)) {
		return NewValidationError("return_date", "must not be before departure")
	}
	if err := c.Passengers.Validate(); err != nil {
		return err
	}
	if _, err := ParseCabinClass(string(c.Cabin)); err != nil {
		return err
	}
	return nil
}
