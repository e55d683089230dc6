package domain

import (
	"fmt"
	"strings"
)

// MaxPassengers is the booking policy ceiling for adults + children + infants.
const MaxPassengers = 9

// PassengerKind selects one of the passenger counters.
type PassengerKind string

const (
	Adults   PassengerKind = "adults"
	Children PassengerKind = "children"
	Infants  PassengerKind = "infants"
)

// PassengerCounts holds the travelling party.
// Changes go through With/Increment/Decrement, which never yield an invalid value.
type PassengerCounts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// DefaultPassengers is one adult.
func DefaultPassengers() PassengerCounts {
	return PassengerCounts{Adults: 1}
}

// Total returns the number of travellers.
func (p PassengerCounts) Total() int {
	return p.Adults + p.Children + p.Infants
}

// Validate checks the counter invariants.
func (p PassengerCounts) Validate() error {
	switch {
	case p.Adults < 1:
		return NewValidationError(string(Adults), "at least one adult is required")
	case p.Children < 0:
		return NewValidationError(string(Children), "must not be negative")
	case p.Infants < 0:
		return NewValidationError(string(Infants), "must not be negative")
	case p.Infants > p.Adults:
		return NewValidationError(string(Infants), "at most one infant per adult")
	case p.Total() > MaxPassengers:
		return NewValidationError("passengers", fmt.Sprintf("at most %d passengers per booking", MaxPassengers))
	}
	return nil
}

// With returns a copy with the given counter set to n.
// The receiver is returned unchanged alongside the error when the result would be invalid.
func (p PassengerCounts) With(kind PassengerKind, n int) (PassengerCounts, error) {
	next := p
	switch kind {
	case Adults:
		next.Adults = n
	case Children:
		next.Children = n
	case Infants:
		next.Infants = n
	default:
		return p, NewValidationError(string(kind), "unknown passenger type")
	}
	if err := next.Validate(); err != nil {
		return p, err
	}
	return next, nil
}

// Get returns the counter for kind.
func (p PassengerCounts) Get(kind PassengerKind) int {
	switch kind {
	case Adults:
		return p.Adults
	case Children:
		return p.Children
	case Infants:
		return p.Infants
	}
	return 0
}

// Increment adds one traveller of the given kind.
func (p PassengerCounts) Increment(kind PassengerKind) (PassengerCounts, error) {
	return p.With(kind, p.Get(kind)+1)
}

// Decrement removes one traveller of the given kind.
func (p PassengerCounts) Decrement(kind PassengerKind) (PassengerCounts, error) {
	return p.With(kind, p.Get(kind)-1)
}

// Summary renders the party, e.g. "2 Passengers (1 Adult, 1 Infant)".
func (p PassengerCounts) Summary() string {
	details := make([]string, 0, 3)
	if p.Adults > 0 {
		details = append(details, plural(p.Adults, "Adult", "Adults"))
	}
	if p.Children > 0 {
		details = append(details, plural(p.Children, "Child", "Children"))
	}
	if p.Infants > 0 {
		details = append(details, plural(p.Infants, "Infant", "Infants"))
	}
	return fmt.Sprintf("%s (%s)", plural(p.Total(), "Passenger", "Passengers"), strings.Join(details, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
