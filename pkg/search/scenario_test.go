package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/skyscout/pkg/adapters/skyscrapper"
	"github.com/aretw0/skyscout/pkg/adapters/skyscrapper/skyscrappertest"
	"github.com/aretw0/skyscout/pkg/autocomplete"
	"github.com/aretw0/skyscout/pkg/domain"
	"github.com/aretw0/skyscout/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectFirst(t *testing.T, ac *autocomplete.Controller, field autocomplete.Field, query string) domain.Place {
	t.Helper()
	require.NoError(t, ac.Type(field, query))
	require.Eventually(t, func() bool {
		return ac.Snapshot(field).Status == autocomplete.StatusSuggesting
	}, 2*time.Second, 5*time.Millisecond)
	place, err := ac.Select(field, 0)
	require.NoError(t, err)
	return place
}

func TestScenario_SelectAndSearch(t *testing.T) {
	srv := skyscrappertest.NewServer()
	defer srv.Close()
	client := skyscrapper.New("test-key", skyscrapper.WithBaseURL(srv.BaseURL()))

	ac, err := autocomplete.New(client, autocomplete.WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer ac.Close()

	origin := selectFirst(t, ac, autocomplete.Origin, "Lon")
	assert.Equal(t, "LON", origin.DisplayCode)
	assert.Equal(t, "London", origin.City)
	assert.Equal(t, "London (LON)", ac.Snapshot(autocomplete.Origin).Text)
	require.NotNil(t, ac.Committed(autocomplete.Origin))

	selectFirst(t, ac, autocomplete.Destination, "Par")
	assert.Equal(t, "Paris (CDG)", ac.Snapshot(autocomplete.Destination).Text)

	orch, err := search.New(client, ac, search.WithClock(clock))
	require.NoError(t, err)
	form := search.NewForm()
	form.TripType = domain.OneWay
	require.NoError(t, form.Dates.SetDeparture(departDay, now))

	state, err := orch.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, state.Status)
	assert.Len(t, state.Itineraries, 3)

	require.Equal(t, 1, srv.Count("/searchFlights"))
	var q map[string][]string
	for _, r := range srv.Requests() {
		if r.Path == "/api/v1/flights/searchFlights" {
			q = r.Query
		}
	}
	assert.Equal(t, []string{"LON"}, q["originSkyId"])
	assert.Equal(t, []string{"CDG"}, q["destinationSkyId"])
	assert.Equal(t, []string{"2026-11-20"}, q["date"])
	assert.Equal(t, []string{"economy"}, q["cabinClass"])
	assert.Equal(t, []string{"best"}, q["sortBy"])
	assert.Equal(t, []string{"1"}, q["adults"])
	assert.NotContains(t, q, "returnDate")

	// Same flow with no matching itineraries.
	ac.Swap()
	state, err = orch.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, state.Status)
	assert.Empty(t, state.Itineraries)
}
