package skyscout_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/skyscout"
	"github.com/aretw0/skyscout/pkg/autocomplete"
	"github.com/aretw0/skyscout/pkg/domain"
	"github.com/aretw0/skyscout/pkg/ports"
	"github.com/aretw0/skyscout/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	places      []domain.Place
	itineraries []domain.Itinerary
	criteria    chan domain.SearchCriteria
}

func (f *fakeClient) SearchPlaces(_ context.Context, _ string) ([]domain.Place, error) {
	return f.places, nil
}

func (f *fakeClient) SearchItineraries(_ context.Context, c domain.SearchCriteria) ([]domain.Itinerary, error) {
	f.criteria <- c
	return f.itineraries, nil
}

var _ ports.LookupClient = (*fakeClient)(nil)

func TestNew_RequiresKeyWithoutClient(t *testing.T) {
	_, err := skyscout.New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key is required")
}

func TestNew_DefaultClientWithKey(t *testing.T) {
	app, err := skyscout.New(skyscout.WithAPIKey("k"))
	require.NoError(t, err)
	defer app.Close()

	assert.NotNil(t, app.Client())
	assert.Equal(t, domain.StatusIdle, app.Orchestrator().State().Status)
}

func TestFacade_Integration(t *testing.T) {
	client := &fakeClient{
		places: []domain.Place{
			{ID: "95565050", Name: "Paris Charles de Gaulle", DisplayCode: "CDG", City: "Paris"},
		},
		itineraries: []domain.Itinerary{{ID: "a", Price: domain.Price{Raw: 99, Formatted: "$99"}}},
		criteria:    make(chan domain.SearchCriteria, 1),
	}
	now := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

	var submits int
	hooks := domain.LifecycleHooks{
		OnSubmit: func(context.Context, *domain.SubmitEvent) { submits++ },
	}

	suggested := make(chan struct{}, 4)
	var states []domain.SearchStatus
	app, err := skyscout.New(
		skyscout.WithLookupClient(client),
		skyscout.WithDebounce(time.Millisecond),
		skyscout.WithClock(func() time.Time { return now }),
		skyscout.WithLifecycleHooks(hooks),
		skyscout.WithFieldListener(func(s autocomplete.FieldSnapshot) {
			if s.Status == autocomplete.StatusSuggesting {
				suggested <- struct{}{}
			}
		}),
		skyscout.WithStateListener(func(s domain.SearchState) { states = append(states, s.Status) }),
	)
	require.NoError(t, err)
	defer app.Close()

	ac := app.Autocomplete()
	for _, field := range []autocomplete.Field{autocomplete.Origin, autocomplete.Destination} {
		require.NoError(t, ac.Type(field, "Par"))
		select {
		case <-suggested:
		case <-time.After(time.Second):
			t.Fatalf("no suggestions for %s", field)
		}
		_, err := ac.Select(field, 0)
		require.NoError(t, err)
	}

	form := search.NewForm()
	form.TripType = domain.OneWay
	require.NoError(t, form.Dates.SetDeparture(now.AddDate(0, 0, 3), now))

	state, err := app.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, state.Status)
	assert.Len(t, state.Itineraries, 1)

	sent := <-client.criteria
	assert.Equal(t, "CDG", sent.Origin.DisplayCode)
	assert.Equal(t, 1, submits)
	assert.Equal(t, []domain.SearchStatus{domain.StatusLoading, domain.StatusSuccess}, states)
}
