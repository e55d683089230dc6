package ports

import (
	"context"

	"github.com/aretw0/skyscout/pkg/domain"
)

// PlaceSearcher resolves a free-text query into origin/destination candidates.
type PlaceSearcher interface {
	// SearchPlaces returns candidates in upstream order.
	// Queries shorter than two characters fail with a *domain.ValidationError;
	// upstream and transport failures are reported as *domain.RemoteError.
	SearchPlaces(ctx context.Context, query string) ([]domain.Place, error)
}

// ItinerarySearcher resolves validated criteria into itineraries.
type ItinerarySearcher interface {
	// SearchItineraries returns itineraries in upstream order. An empty result is not an error.
	SearchItineraries(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Itinerary, error)
}

// LookupClient is the full remote lookup surface.
type LookupClient interface {
	PlaceSearcher
	ItinerarySearcher
}

// PlaceSearcherFunc adapts a function to PlaceSearcher.
type PlaceSearcherFunc func(ctx context.Context, query string) ([]domain.Place, error)

// SearchPlaces calls f.
func (f PlaceSearcherFunc) SearchPlaces(ctx context.Context, query string) ([]domain.Place, error) {
	return f(ctx, query)
}

// ItinerarySearcherFunc adapts a function to ItinerarySearcher.
type ItinerarySearcherFunc func(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Itinerary, error)

// SearchItineraries calls f.
func (f ItinerarySearcherFunc) SearchItineraries(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Itinerary, error) {
	return f(ctx, criteria)
}
