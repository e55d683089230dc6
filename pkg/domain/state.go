package domain

import "time"

// SearchStatus is the lifecycle position of a submission.
type SearchStatus string

const (
	StatusIdle    SearchStatus = "idle"    // Nothing submitted yet
	StatusLoading SearchStatus = "loading" // Waiting for the itinerary lookup
	StatusSuccess SearchStatus = "success" // Itineraries holds the (possibly empty) result
	StatusError   SearchStatus = "error"   // Err holds the failure
)

// SearchState is the transient state of the latest submission.
// Each new submission supersedes it; results are never merged.
type SearchState struct {
	Status SearchStatus

	// Itineraries is set on success. An empty slice means "no itineraries matched".
	Itineraries []Itinerary

	// Err is set on error (ValidationError or RemoteError).
	Err error

	// Ticket is the monotonic submission number that produced this state.
	Ticket uint64

	// RequestID correlates logs of one submission.
	RequestID string

	// Criteria is the validated input, nil for idle and validation failures.
	Criteria *SearchCriteria

	UpdatedAt time.Time
}

// IdleState returns the initial state.
func IdleState() SearchState {
	return SearchState{Status: StatusIdle}
}

// Message returns the error text, or "" when the state is not an error.
func (s SearchState) Message() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Clone copies the state so callers can't mutate the owner's slices.
func (s SearchState) Clone() SearchState {
	s.Itineraries = CloneItineraries(s.Itineraries)
	if s.Criteria != nil {
		c := *s.Criteria
		c.Origin = c.Origin.Clone()
		c.Destination = c.Destination.Clone()
		if c.Return != nil {
			ret := *c.Return
			c.Return = &ret
		}
		s.Criteria = &c
	}
	return s
}
