package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/skyscout/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// LookupContractFixture describes the data a LookupClient under test is expected to serve.
type LookupContractFixture struct {
	// Query must resolve to at least one place whose display code is ExpectCode.
	Query      string
	ExpectCode string

	// Criteria must be accepted by the upstream. Itineraries may be empty.
	Criteria domain.SearchCriteria
}

// RunLookupClientContract runs a suite of tests to verify that a LookupClient implementation
// adheres to the defined interface contract.
func RunLookupClientContract(t *testing.T, client LookupClient, fx LookupContractFixture) {
	ctx := context.Background()

	t.Run("Short query is rejected locally", func(t *testing.T) {
		_, err := client.SearchPlaces(ctx, "L")
		require.Error(t, err)
		var v *domain.ValidationError
		assert.True(t, errors.As(err, &v), "expected ValidationError, got %T", err)
	})

	t.Run("Places are normalized", func(t *testing.T) {
		places, err := client.SearchPlaces(ctx, fx.Query)
		require.NoError(t, err)
		require.NotEmpty(t, places)

		found := false
		for _, p := range places {
			assert.NotEmpty(t, p.ID, "every place needs an identifier")
			if p.DisplayCode == fx.ExpectCode {
				found = true
			}
		}
		assert.True(t, found, "expected a place with code %s", fx.ExpectCode)
	})

	t.Run("Itineraries are returned in order", func(t *testing.T) {
		itineraries, err := client.SearchItineraries(ctx, fx.Criteria)
		require.NoError(t, err)
		for _, it := range itineraries {
			assert.NotEmpty(t, it.ID)
			assert.NotEmpty(t, it.Legs)
		}
	})
}
