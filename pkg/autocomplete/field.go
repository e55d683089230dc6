package autocomplete

import (
	"sync"

	"github.com/aretw0/skyscout/pkg/debounce"
	"github.com/aretw0/skyscout/pkg/domain"
)

// Field identifies one of the two place inputs.
type Field string

// The two inputs of the search form.
const (
	Origin      Field = "origin"
	Destination Field = "destination"
)

// Status is the position of a field in its input lifecycle.
type Status string

const (
	StatusEmpty      Status = "empty"      // No suggestions, nothing committed
	StatusPending    Status = "pending"    // Waiting for the debounce window or a lookup
	StatusSuggesting Status = "suggesting" // Suggestions available
	StatusSelected   Status = "selected"   // A place is committed
)

// FieldSnapshot is an immutable copy of a field's state.
// Version grows with every change of the field; a listener never receives
// a snapshot older than one it has already received.
type FieldSnapshot struct {
	Field       Field
	Text        string
	Status      Status
	Suggestions []domain.Place
	Committed   *domain.Place
	Ticket      uint64
	Version     uint64
}

// fieldState owns one input. Every access goes through mu.
type fieldState struct {
	name Field

	mu          sync.Mutex
	text        string
	status      Status
	suggestions []domain.Place
	committed   *domain.Place
	latest      uint64 // Ticket of the newest lookup or invalidation
	edit        uint64 // Bumped by every user edit, selection, swap or clear
	version     uint64 // Bumped by every published change

	debouncer *debounce.Debouncer[keystroke]

	// Listener delivery, in version order.
	outMu      sync.Mutex
	queued     uint64
	outbox     []FieldSnapshot
	delivering bool
}

// keystroke is the debounced value: the text and the edit that produced it.
type keystroke struct {
	text string
	edit uint64
}

func newFieldState(name Field) *fieldState {
	return &fieldState{name: name, status: StatusEmpty}
}

// snapshotLocked copies the state. Caller must hold mu.
func (f *fieldState) snapshotLocked() FieldSnapshot {
	s := FieldSnapshot{
		Field:       f.name,
		Text:        f.text,
		Status:      f.status,
		Suggestions: domain.ClonePlaces(f.suggestions),
		Ticket:      f.latest,
		Version:     f.version,
	}
	if f.committed != nil {
		p := f.committed.Clone()
		s.Committed = &p
	}
	return s
}

// publishLocked records a change and returns the snapshot to hand to the listener.
// Caller must hold mu.
func (f *fieldState) publishLocked() FieldSnapshot {
	f.version++
	return f.snapshotLocked()
}

// invalidateLocked makes every in-flight lookup stale. Caller must hold mu.
func (f *fieldState) invalidateLocked() {
	f.latest++
	f.edit++
}

// settleLocked derives the resting status from the committed place and suggestions.
func (f *fieldState) settleLocked() {
	switch {
	case f.committed != nil:
		f.status = StatusSelected
	case len(f.suggestions) > 0:
		f.status = StatusSuggesting
	default:
		f.status = StatusEmpty
	}
}
