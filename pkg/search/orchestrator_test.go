package search_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/skyscout/pkg/domain"
	"github.com/aretw0/skyscout/pkg/ports"
	"github.com/aretw0/skyscout/pkg/search"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	now       = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	departDay = time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)
	lon       = domain.Place{ID: "27544008", Name: "London", DisplayCode: "LON", City: "London"}
	cdg       = domain.Place{ID: "95565041", Name: "Paris Charles de Gaulle", DisplayCode: "CDG", City: "Paris"}
)

func clock() time.Time { return now }

func newOrchestrator(t *testing.T, lookup ports.ItinerarySearcher, sel search.SelectionSource, opts ...search.Option) *search.Orchestrator {
	t.Helper()
	o, err := search.New(lookup, sel, opts...)
	require.NoError(t, err)
	return o
}

func TestNew_Validation(t *testing.T) {
	_, err := search.New(nil, search.SelectionFunc(func() (*domain.Place, *domain.Place) { return nil, nil }))
	assert.Error(t, err)

	_, err = search.New(ports.ItinerarySearcherFunc(func(context.Context, domain.SearchCriteria) ([]domain.Itinerary, error) {
		return nil, nil
	}), nil)
	assert.Error(t, err)
}

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) SearchItineraries(ctx context.Context, c domain.SearchCriteria) ([]domain.Itinerary, error) {
	args := m.Called(ctx, c)
	items, _ := args.Get(0).([]domain.Itinerary)
	return items, args.Error(1)
}

type notice struct {
	severity ports.Severity
	message  string
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (r *recordingNotifier) Notify(_ context.Context, s ports.Severity, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice{s, msg})
}

func (r *recordingNotifier) All() []notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notice(nil), r.notices...)
}

func selections(origin, destination *domain.Place) search.SelectionSource {
	return search.SelectionFunc(func() (*domain.Place, *domain.Place) { return origin, destination })
}

func oneWayForm(t *testing.T) search.Form {
	t.Helper()
	form := search.NewForm()
	form.TripType = domain.OneWay
	require.NoError(t, form.Dates.SetDeparture(departDay, now))
	return form
}

func TestSubmit_ValidationNeverCallsUpstream(t *testing.T) {
	roundTripNoReturn := search.NewForm()
	require.NoError(t, roundTripNoReturn.Dates.SetDeparture(departDay, now))

	tests := []struct {
		name        string
		origin      *domain.Place
		destination *domain.Place
		form        func(t *testing.T) search.Form
		want        error
	}{
		{"missing origin", nil, &cdg, oneWayForm, domain.ErrMissingFields},
		{"missing destination", &lon, nil, oneWayForm, domain.ErrMissingFields},
		{"missing departure", &lon, &cdg, func(*testing.T) search.Form {
			f := search.NewForm()
			f.TripType = domain.OneWay
			return f
		}, domain.ErrMissingFields},
		{"round trip without return", &lon, &cdg, func(*testing.T) search.Form { return roundTripNoReturn }, domain.ErrMissingFields},
		{"no adults", &lon, &cdg, func(t *testing.T) search.Form {
			f := oneWayForm(t)
			f.Passengers = domain.PassengerCounts{Adults: 0, Children: 1}
			return f
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &mockSearcher{}
			notifier := &recordingNotifier{}
			o := newOrchestrator(t, lookup, selections(tt.origin, tt.destination),
				search.WithClock(clock), search.WithNotifier(notifier))

			state, err := o.Submit(context.Background(), tt.form(t))
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				assert.Equal(t, "missing required fields", state.Message())
			}
			assert.Equal(t, domain.StatusError, state.Status)
			assert.Equal(t, domain.StatusIdle, o.State().Status, "stored state is untouched")
			require.Len(t, notifier.All(), 1)
			assert.Equal(t, notice{ports.SeverityError, err.Error()}, notifier.All()[0])
			lookup.AssertNotCalled(t, "SearchItineraries", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_DepartureInThePastIsRejected(t *testing.T) {
	form := oneWayForm(t)
	lookup := &mockSearcher{}
	later := func() time.Time { return departDay.AddDate(0, 0, 1) }
	o := newOrchestrator(t, lookup, selections(&lon, &cdg), search.WithClock(later))

	_, err := o.Submit(context.Background(), form)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "departure_date", verr.Field)
	lookup.AssertNotCalled(t, "SearchItineraries", mock.Anything, mock.Anything)
}

func TestSubmit_SuccessWithEmptyResult(t *testing.T) {
	lookup := &mockSearcher{}
	lookup.On("SearchItineraries", mock.Anything, mock.MatchedBy(func(c domain.SearchCriteria) bool {
		return c.Origin.DisplayCode == "LON" && c.Return == nil && c.Cabin == domain.Economy
	})).Return(nil, nil).Once()

	var states []domain.SearchState
	notifier := &recordingNotifier{}
	o := newOrchestrator(t, lookup, selections(&lon, &cdg),
		search.WithClock(clock),
		search.WithNotifier(notifier),
		search.WithListener(func(s domain.SearchState) { states = append(states, s) }),
	)

	state, err := o.Submit(context.Background(), oneWayForm(t))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, state.Status)
	assert.NotNil(t, state.Itineraries)
	assert.Empty(t, state.Itineraries)
	assert.Equal(t, state, o.State())
	assert.Empty(t, notifier.All())

	_, err = uuid.Parse(state.RequestID)
	assert.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, domain.StatusLoading, states[0].Status)
	assert.Equal(t, domain.StatusSuccess, states[1].Status)
	lookup.AssertExpectations(t)
}

func TestSubmit_RoundTripSendsReturnDate(t *testing.T) {
	form := search.NewForm()
	require.NoError(t, form.Dates.SetDeparture(departDay, now))
	require.NoError(t, form.Dates.SetReturn(departDay.AddDate(0, 0, 3), now))

	items := []domain.Itinerary{{ID: "a", Price: domain.Price{Raw: 100}}}
	lookup := &mockSearcher{}
	lookup.On("SearchItineraries", mock.Anything, mock.MatchedBy(func(c domain.SearchCriteria) bool {
		return c.Return != nil && c.Return.Equal(departDay.AddDate(0, 0, 3))
	})).Return(items, nil)

	o := newOrchestrator(t, lookup, selections(&lon, &cdg), search.WithClock(clock))
	state, err := o.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, items, state.Itineraries)
	require.NotNil(t, state.Criteria)
	assert.True(t, state.Criteria.RoundTrip())
}

func TestSubmit_OneWayIgnoresSelectedReturn(t *testing.T) {
	form := oneWayForm(t)
	require.NoError(t, form.Dates.SetReturn(departDay.AddDate(0, 0, 2), now))

	lookup := &mockSearcher{}
	lookup.On("SearchItineraries", mock.Anything, mock.MatchedBy(func(c domain.SearchCriteria) bool {
		return c.Return == nil
	})).Return([]domain.Itinerary{}, nil)

	o := newOrchestrator(t, lookup, selections(&lon, &cdg), search.WithClock(clock))
	_, err := o.Submit(context.Background(), form)
	require.NoError(t, err)
	lookup.AssertExpectations(t)
}

func TestSubmit_RemoteErrorIsStoredAndNotified(t *testing.T) {
	remote := &domain.RemoteError{Message: "date is in the past, too many adults", StatusCode: 400}
	lookup := &mockSearcher{}
	lookup.On("SearchItineraries", mock.Anything, mock.Anything).Return(nil, remote)

	notifier := &recordingNotifier{}
	o := newOrchestrator(t, lookup, selections(&lon, &cdg), search.WithClock(clock), search.WithNotifier(notifier))

	state, err := o.Submit(context.Background(), oneWayForm(t))
	require.ErrorIs(t, err, remote)
	assert.Equal(t, domain.StatusError, state.Status)
	assert.Equal(t, "date is in the past, too many adults", state.Message())
	assert.Equal(t, domain.StatusError, o.State().Status)
	assert.Equal(t, []notice{{ports.SeverityError, "date is in the past, too many adults"}}, notifier.All())
}

// gatedSearcher blocks the first call until release is closed.
type gatedSearcher struct {
	release chan struct{}
	started chan struct{}
	calls   int
	mu      sync.Mutex
}

func (g *gatedSearcher) SearchItineraries(ctx context.Context, c domain.SearchCriteria) ([]domain.Itinerary, error) {
	g.mu.Lock()
	g.calls++
	n := g.calls
	g.mu.Unlock()

	if n == 1 {
		close(g.started)
		<-g.release
		return []domain.Itinerary{{ID: "slow"}}, nil
	}
	return []domain.Itinerary{{ID: "fast"}}, nil
}

func raceSubmissions(t *testing.T, opts ...search.Option) (*search.Orchestrator, domain.SearchState) {
	t.Helper()
	lookup := &gatedSearcher{release: make(chan struct{}), started: make(chan struct{})}
	opts = append([]search.Option{search.WithClock(clock)}, opts...)
	o := newOrchestrator(t, lookup, selections(&lon, &cdg), opts...)

	form := oneWayForm(t)
	slowDone := make(chan domain.SearchState, 1)
	go func() {
		state, _ := o.Submit(context.Background(), form)
		slowDone <- state
	}()
	<-lookup.started

	fast, err := o.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "fast", fast.Itineraries[0].ID)

	close(lookup.release)
	return o, <-slowDone
}

func TestSubmit_LastResolvedWinsByDefault(t *testing.T) {
	o, slow := raceSubmissions(t)

	assert.Equal(t, "slow", slow.Itineraries[0].ID)
	stored := o.State()
	assert.Equal(t, uint64(1), stored.Ticket, "the older submission resolved last and overwrote")
	assert.Equal(t, "slow", stored.Itineraries[0].ID)
}

func TestSubmit_LatestOnlyDiscardsSuperseded(t *testing.T) {
	o, slow := raceSubmissions(t, search.WithLatestOnly())

	assert.Equal(t, "slow", slow.Itineraries[0].ID, "the caller still gets its own outcome")
	stored := o.State()
	assert.Equal(t, uint64(2), stored.Ticket)
	assert.Equal(t, "fast", stored.Itineraries[0].ID)
}

func TestReset(t *testing.T) {
	lookup := &mockSearcher{}
	lookup.On("SearchItineraries", mock.Anything, mock.Anything).Return([]domain.Itinerary{{ID: "x"}}, nil)
	o := newOrchestrator(t, lookup, selections(&lon, &cdg), search.WithClock(clock))

	_, err := o.Submit(context.Background(), oneWayForm(t))
	require.NoError(t, err)
	o.Reset()
	assert.Equal(t, domain.StatusIdle, o.State().Status)
	assert.Empty(t, o.State().Itineraries)
}

func TestSubmit_HooksObserveLifecycle(t *testing.T) {
	lookup := &mockSearcher{}
	lookup.On("SearchItineraries", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	var got []domain.SearchStatus
	o := newOrchestrator(t, lookup, selections(&lon, &cdg), search.WithClock(clock), search.WithHooks(domain.LifecycleHooks{
		OnSubmit:     func(_ context.Context, e *domain.SubmitEvent) { got = append(got, e.Status) },
		OnSubmitDone: func(_ context.Context, e *domain.SubmitEvent) { got = append(got, e.Status) },
	}))

	state, err := o.Submit(context.Background(), oneWayForm(t))
	require.Error(t, err)
	assert.Equal(t, "boom", state.Message())
	assert.Equal(t, []domain.SearchStatus{domain.StatusLoading, domain.StatusError}, got)
}
