package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/skyscout/internal/logging"
	"github.com/aretw0/skyscout/pkg/domain"
	"github.com/aretw0/skyscout/pkg/ports"
	"github.com/google/uuid"
)

// SelectionSource provides the committed origin and destination.
// *autocomplete.Controller satisfies it.
type SelectionSource interface {
	Selections() (origin, destination *domain.Place)
}

// SelectionFunc adapts a function to SelectionSource.
type SelectionFunc func() (origin, destination *domain.Place)

// Selections calls f.
func (f SelectionFunc) Selections() (origin, destination *domain.Place) {
	return f()
}

// Form is the non-place part of the search form.
type Form struct {
	TripType   domain.TripType
	Dates      domain.TravelDates
	Passengers domain.PassengerCounts
	Cabin      domain.CabinClass
}

// NewForm returns the form defaults: round trip, one adult, economy.
func NewForm() Form {
	return Form{
		TripType:   domain.RoundTrip,
		Passengers: domain.DefaultPassengers(),
		Cabin:      domain.Economy,
	}
}

// Orchestrator owns the SearchState.
type Orchestrator struct {
	lookup     ports.ItinerarySearcher
	selections SelectionSource
	notifier   ports.Notifier
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	clock      func() time.Time
	latestOnly bool
	listener   func(domain.SearchState)

	mu     sync.Mutex
	state  domain.SearchState
	ticket uint64
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithNotifier sets the receiver of transient error messages.
func WithNotifier(n ports.Notifier) Option {
	return func(o *Orchestrator) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHooks registers OnSubmit and OnSubmitDone callbacks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(o *Orchestrator) {
		o.hooks = o.hooks.Merge(hooks)
	}
}

// WithClock overrides time.Now, which decides "today" for date validation.
func WithClock(clock func() time.Time) Option {
	return func(o *Orchestrator) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLatestOnly discards outcomes of submissions superseded by a newer one.
func WithLatestOnly() Option {
	return func(o *Orchestrator) {
		o.latestOnly = true
	}
}

// WithListener is called after every change of the stored state.
func WithListener(fn func(domain.SearchState)) Option {
	return func(o *Orchestrator) {
		o.listener = fn
	}
}

// New creates an Orchestrator. Both lookup and selections are required.
func New(lookup ports.ItinerarySearcher, selections SelectionSource, opts ...Option) (*Orchestrator, error) {
	if lookup == nil {
		return nil, errors.New("search requires an itinerary searcher")
	}
	if selections == nil {
		return nil, errors.New("search requires a selection source")
	}
	o := &Orchestrator{
		lookup:     lookup,
		selections: selections,
		notifier:   ports.NopNotifier{},
		logger:     logging.NewNop(),
		clock:      time.Now,
		state:      domain.IdleState(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Criteria builds validated SearchCriteria from the form and the committed places.
// It never touches the network.
func (o *Orchestrator) Criteria(form Form) (domain.SearchCriteria, error) {
	var origin, destination *domain.Place
	if o.selections != nil {
		origin, destination = o.selections.Selections()
	}
	return BuildCriteria(form, origin, destination, o.clock())
}

// BuildCriteria validates a form against the committed places and today.
func BuildCriteria(form Form, origin, destination *domain.Place, today time.Time) (domain.SearchCriteria, error) {
	departure, ok := form.Dates.Departure()
	if origin == nil || destination == nil || !ok {
		return domain.SearchCriteria{}, domain.ErrMissingFields
	}

	tripType := form.TripType
	if tripType == "" {
		tripType = domain.RoundTrip
	}
	criteria := domain.SearchCriteria{
		Origin:      origin.Clone(),
		Destination: destination.Clone(),
		Departure:   departure,
		Passengers:  form.Passengers,
		Cabin:       form.Cabin,
	}
	if criteria.Cabin == "" {
		criteria.Cabin = domain.Economy
	}
	if tripType == domain.RoundTrip {
		ret, ok := form.Dates.Return()
		if !ok {
			return domain.SearchCriteria{}, domain.ErrMissingFields
		}
		criteria.Return = &ret
	}

	if err := criteria.Validate(today); err != nil {
		return domain.SearchCriteria{}, err
	}
	return criteria, nil
}

// Submit validates the form and, when valid, runs the itinerary search.
//
// The returned state is the outcome of this submission. A validation failure is
// returned with status error but does not replace the stored state.
func (o *Orchestrator) Submit(ctx context.Context, form Form) (domain.SearchState, error) {
	criteria, err := o.Criteria(form)
	if err != nil {
		o.logger.Debug("Search rejected", "err", err)
		o.notifier.Notify(ctx, ports.SeverityError, err.Error())
		return domain.SearchState{Status: domain.StatusError, Err: err, UpdatedAt: o.clock()}, err
	}

	o.mu.Lock()
	o.ticket++
	ticket := o.ticket
	loading := domain.SearchState{
		Status:    domain.StatusLoading,
		Ticket:    ticket,
		RequestID: uuid.NewString(),
		Criteria:  &criteria,
		UpdatedAt: o.clock(),
	}
	o.state = loading
	o.mu.Unlock()

	o.emit(loading)
	logger := o.logger.With("request_id", loading.RequestID, "ticket", ticket)
	logger.Info("Searching itineraries",
		"origin", criteria.Origin.DisplayCode,
		"destination", criteria.Destination.DisplayCode,
		"round_trip", criteria.RoundTrip(),
	)

	event := &domain.SubmitEvent{RequestID: loading.RequestID, Ticket: ticket, Status: domain.StatusLoading}
	if o.hooks.OnSubmit != nil {
		o.hooks.OnSubmit(ctx, event)
	}

	start := time.Now()
	items, err := o.lookup.SearchItineraries(ctx, criteria)
	event.Duration = time.Since(start)

	result := loading
	result.UpdatedAt = o.clock()
	if err != nil {
		result.Status = domain.StatusError
		result.Err = err
	} else {
		if items == nil {
			items = []domain.Itinerary{}
		}
		result.Status = domain.StatusSuccess
		result.Itineraries = items
	}
	event.Status, event.Results, event.Err = result.Status, len(items), err

	o.mu.Lock()
	applied := !o.latestOnly || ticket == o.ticket
	if applied {
		o.state = result
	}
	o.mu.Unlock()

	if o.hooks.OnSubmitDone != nil {
		o.hooks.OnSubmitDone(ctx, event)
	}
	if !applied {
		logger.Debug("Discarding superseded search result", "status", result.Status)
		return result.Clone(), err
	}

	if err != nil {
		logger.Warn("Itinerary search failed", "err", err)
		o.notifier.Notify(ctx, ports.SeverityError, userMessage(err))
	} else {
		logger.Info("Itinerary search done", "results", len(items))
	}
	o.emit(result)
	return result.Clone(), err
}

// State returns a copy of the stored state.
func (o *Orchestrator) State() domain.SearchState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Clone()
}

// Reset returns the stored state to idle. With WithLatestOnly, searches still
// in flight can no longer overwrite it.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	o.ticket++
	o.state = domain.IdleState()
	o.state.UpdatedAt = o.clock()
	state := o.state
	o.mu.Unlock()
	o.emit(state)
}

func (o *Orchestrator) emit(state domain.SearchState) {
	if o.listener != nil {
		o.listener(state.Clone())
	}
}

func userMessage(err error) string {
	var remote *domain.RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return err.Error()
}
