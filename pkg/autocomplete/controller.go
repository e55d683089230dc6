package autocomplete

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/aretw0/skyscout/internal/logging"
	"github.com/aretw0/skyscout/pkg/debounce"
	"github.com/aretw0/skyscout/pkg/domain"
	"github.com/aretw0/skyscout/pkg/ports"
)

const (
	// DefaultDebounce is the quiet period between the last keystroke and the lookup.
	DefaultDebounce       = 300 * time.Millisecond
	// DefaultMinQueryLength is the shortest trimmed query, in characters, that is looked up.
	DefaultMinQueryLength = 2
)

var (
	// ErrUnknownField is returned for a Field other than Origin or Destination.
	ErrUnknownField = errors.New("unknown autocomplete field")
	// ErrClosed is returned by input operations after Close.
	ErrClosed = errors.New("autocomplete controller closed")
)

// Controller drives the origin and destination inputs.
type Controller struct {
	lookup   ports.PlaceSearcher
	delay    time.Duration
	minLen   int
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	listener func(FieldSnapshot)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	origin      *fieldState
	destination *fieldState
}

// Option configures the Controller.
type Option func(*Controller)

// WithDebounce sets the quiet period before a query is looked up.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		c.delay = d
	}
}

// WithMinQueryLength sets the shortest query (in characters) that triggers a lookup.
func WithMinQueryLength(n int) Option {
	return func(c *Controller) {
		c.minLen = n
	}
}

// WithLogger sets the logger used for degraded lookups.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHooks registers lifecycle callbacks (OnLookupStart, OnLookupDone, OnLookupDiscarded).
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithListener is called with a fresh snapshot after every change of a field.
// It runs outside the field lock, possibly from a lookup goroutine. Calls for
// one field never overlap and arrive in change order.
func WithListener(fn func(FieldSnapshot)) Option {
	return func(c *Controller) {
		c.listener = fn
	}
}

// New creates a controller backed by lookup.
func New(lookup ports.PlaceSearcher, opts ...Option) (*Controller, error) {
	if lookup == nil {
		return nil, errors.New("autocomplete requires a place searcher")
	}
	c := &Controller{
		lookup:      lookup,
		delay:       DefaultDebounce,
		minLen:      DefaultMinQueryLength,
		logger:      logging.NewNop(),
		origin:      newFieldState(Origin),
		destination: newFieldState(Destination),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.minLen < 1 {
		c.minLen = 1
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	for _, f := range []*fieldState{c.origin, c.destination} {
		f := f
		d, err := debounce.New(c.delay, func(k keystroke) {
			c.onSettled(f, k)
		})
		if err != nil {
			c.cancel()
			return nil, fmt.Errorf("invalid debounce for %s: %w", f.name, err)
		}
		f.debouncer = d
	}
	return c, nil
}

func (c *Controller) field(name Field) (*fieldState, error) {
	switch name {
	case Origin:
		return c.origin, nil
	case Destination:
		return c.destination, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func (c *Controller) closed() bool {
	return c.ctx.Err() != nil
}

// Type records a keystroke: the text is updated immediately, any committed
// place is dropped, and a lookup is scheduled after the debounce window.
func (c *Controller) Type(name Field, text string) error {
	f, err := c.field(name)
	if err != nil {
		return err
	}
	if c.closed() {
		return ErrClosed
	}

	f.mu.Lock()
	f.text = text
	f.committed = nil
	f.status = StatusPending
	f.edit++
	k := keystroke{text: text, edit: f.edit}
	snap := f.publishLocked()
	f.mu.Unlock()

	c.notify(f, snap)
	f.debouncer.Push(k)
	return nil
}

// onSettled runs once the debounce window elapsed for a keystroke.
func (c *Controller) onSettled(f *fieldState, k keystroke) {
	f.mu.Lock()
	// Another edit, a selection, a swap or a clear happened since the push.
	if k.edit != f.edit || c.closed() {
		f.mu.Unlock()
		return
	}
	f.latest++
	ticket := f.latest

	query := strings.TrimSpace(k.text)
	if utf8.RuneCountInString(query) < c.minLen {
		f.suggestions = nil
		f.settleLocked()
		snap := f.publishLocked()
		f.mu.Unlock()
		c.notify(f, snap)
		return
	}
	c.wg.Add(1)
	f.mu.Unlock()

	go func() {
		defer c.wg.Done()
		c.runLookup(f, query, ticket, k.edit)
	}()
}

func (c *Controller) runLookup(f *fieldState, query string, ticket, edit uint64) {
	event := &domain.LookupEvent{Field: string(f.name), Query: query, Ticket: ticket}
	if c.hooks.OnLookupStart != nil {
		c.hooks.OnLookupStart(c.ctx, event)
	}

	start := time.Now()
	places, err := c.lookup.SearchPlaces(c.ctx, query)
	event.Duration = time.Since(start)
	event.Results = len(places)
	event.Err = err

	f.mu.Lock()
	if ticket != f.latest {
		f.mu.Unlock()
		c.logger.Debug("Discarding stale lookup", "field", f.name, "query", query, "ticket", ticket)
		if c.hooks.OnLookupDiscarded != nil {
			c.hooks.OnLookupDiscarded(c.ctx, event)
		}
		return
	}

	if err != nil {
		f.suggestions = nil
	} else {
		f.suggestions = domain.ClonePlaces(places)
	}
	f.settleLocked()
	if f.edit != edit {
		// The user kept typing; a newer keystroke is still in its debounce window.
		f.status = StatusPending
	}
	snap := f.publishLocked()
	f.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Warn("Place lookup failed", "field", f.name, "query", query, "ticket", ticket, "err", err)
	}
	if c.hooks.OnLookupDone != nil {
		c.hooks.OnLookupDone(c.ctx, event)
	}
	c.notify(f, snap)
}

// Select commits the suggestion at index and clears the list.
// The field text becomes the place label, e.g. "London (LON)".
func (c *Controller) Select(name Field, index int) (domain.Place, error) {
	f, err := c.field(name)
	if err != nil {
		return domain.Place{}, err
	}

	f.mu.Lock()
	if index < 0 || index >= len(f.suggestions) {
		n := len(f.suggestions)
		f.mu.Unlock()
		return domain.Place{}, fmt.Errorf("%w: index %d of %d suggestions", domain.ErrInvalidSelection, index, n)
	}
	place := f.suggestions[index].Clone()
	f.commitLocked(place)
	snap := f.publishLocked()
	f.mu.Unlock()

	f.debouncer.Cancel()
	c.notify(f, snap)
	return place.Clone(), nil
}

// Commit sets the field to place directly, as if it had been selected.
func (c *Controller) Commit(name Field, place domain.Place) error {
	f, err := c.field(name)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.commitLocked(place.Clone())
	snap := f.publishLocked()
	f.mu.Unlock()

	f.debouncer.Cancel()
	c.notify(f, snap)
	return nil
}

func (f *fieldState) commitLocked(place domain.Place) {
	f.committed = &place
	f.text = place.Label()
	f.suggestions = nil
	f.status = StatusSelected
	f.invalidateLocked()
}

// Clear resets the field to empty.
func (c *Controller) Clear(name Field) error {
	f, err := c.field(name)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.text = ""
	f.committed = nil
	f.suggestions = nil
	f.status = StatusEmpty
	f.invalidateLocked()
	snap := f.publishLocked()
	f.mu.Unlock()

	f.debouncer.Cancel()
	c.notify(f, snap)
	return nil
}

// Swap exchanges origin and destination text and committed places.
// Suggestions, pending debounces and in-flight lookups of both fields are dropped.
// Swap followed by Swap restores the original text and committed places.
func (c *Controller) Swap() {
	// Fixed lock order: origin before destination.
	c.origin.mu.Lock()
	c.destination.mu.Lock()

	o, d := c.origin, c.destination
	o.text, d.text = d.text, o.text
	o.committed, d.committed = d.committed, o.committed
	for _, f := range []*fieldState{o, d} {
		f.suggestions = nil
		f.invalidateLocked()
		f.settleLocked()
	}
	snapO, snapD := o.publishLocked(), d.publishLocked()

	c.destination.mu.Unlock()
	c.origin.mu.Unlock()

	o.debouncer.Cancel()
	d.debouncer.Cancel()
	c.notify(o, snapO)
	c.notify(d, snapD)
}

// Snapshot returns a copy of the field state. Unknown fields yield a zero snapshot.
func (c *Controller) Snapshot(name Field) FieldSnapshot {
	f, err := c.field(name)
	if err != nil {
		return FieldSnapshot{Field: name}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// MinQueryLength is the shortest trimmed query, in characters, that triggers a lookup.
func (c *Controller) MinQueryLength() int {
	return c.minLen
}

// Committed returns a copy of the committed place, or nil.
func (c *Controller) Committed(name Field) *domain.Place {
	return c.Snapshot(name).Committed
}

// Selections returns the committed origin and destination (nil when absent).
func (c *Controller) Selections() (origin, destination *domain.Place) {
	return c.Committed(Origin), c.Committed(Destination)
}

// Close cancels pending debounces and in-flight lookups and waits for them to return.
// Further Type calls fail with ErrClosed.
func (c *Controller) Close() {
	c.cancel()
	c.origin.debouncer.Close()
	c.destination.debouncer.Close()

	// Lookups are registered under the field lock after a closed() check,
	// so once both locks have been taken no new lookup can start.
	for _, f := range []*fieldState{c.origin, c.destination} {
		f.mu.Lock()
		f.mu.Unlock()
	}
	c.wg.Wait()
}

// notify hands snap to the listener. Snapshots reach the listener one at a
// time and in version order; one that is older than an already queued
// snapshot is dropped. A caller that finds a delivery in progress only queues
// its snapshot, so a slow listener never blocks input operations.
func (c *Controller) notify(f *fieldState, snap FieldSnapshot) {
	if c.listener == nil {
		return
	}

	f.outMu.Lock()
	if snap.Version <= f.queued {
		f.outMu.Unlock()
		return
	}
	f.queued = snap.Version
	f.outbox = append(f.outbox, snap)
	if f.delivering {
		f.outMu.Unlock()
		return
	}
	f.delivering = true
	for len(f.outbox) > 0 {
		next := f.outbox[0]
		f.outbox = f.outbox[1:]
		f.outMu.Unlock()
		c.listener(next)
		f.outMu.Lock()
	}
	f.delivering = false
	f.outMu.Unlock()
}
