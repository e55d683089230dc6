package search

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/skyscout/pkg/domain"
)

// SortMode orders a result list.
type SortMode string

const (
	SortBest      SortMode = "best"
	SortCheapest  SortMode = "cheapest"
	SortFastest   SortMode = "fastest"
	SortDeparture SortMode = "departure"
)

// Weights of the best-value score. Each criterion is min-max normalized first.
const (
	bestPriceWeight    = 0.5
	bestDurationWeight = 0.3
	bestStopsWeight    = 0.2
)

// ParseSortMode accepts the SortMode names; empty means SortBest.
func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return SortBest, nil
	case SortBest, SortCheapest, SortFastest, SortDeparture:
		return m, nil
	}
	return "", fmt.Errorf("unknown sort mode %q", s)
}

// SortItineraries returns a sorted copy. Ties keep upstream order.
func SortItineraries(items []domain.Itinerary, mode SortMode) []domain.Itinerary {
	out := make([]domain.Itinerary, len(items))
	copy(out, items)

	var less func(i, j int) bool
	switch mode {
	case SortCheapest:
		less = func(i, j int) bool { return out[i].Price.Raw < out[j].Price.Raw }
	case SortFastest:
		less = func(i, j int) bool { return out[i].TotalDuration() < out[j].TotalDuration() }
	case SortDeparture:
		less = func(i, j int) bool { return departureOf(out[i]).Before(departureOf(out[j])) }
	default:
		scores := bestScores(out)
		idx := make([]int, len(out))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] < scores[idx[b]] })
		sorted := make([]domain.Itinerary, len(out))
		for i, k := range idx {
			sorted[i] = out[k]
		}
		return sorted
	}
	sort.SliceStable(out, less)
	return out
}

// bestScores computes the weighted score of every itinerary; lower is better.
func bestScores(items []domain.Itinerary) []float64 {
	scores := make([]float64, len(items))
	if len(items) == 0 {
		return scores
	}

	minPrice, maxPrice := items[0].Price.Raw, items[0].Price.Raw
	minDur, maxDur := items[0].TotalDuration(), items[0].TotalDuration()
	minStops, maxStops := items[0].TotalStops(), items[0].TotalStops()
	for _, it := range items[1:] {
		minPrice, maxPrice = min(minPrice, it.Price.Raw), max(maxPrice, it.Price.Raw)
		d, s := it.TotalDuration(), it.TotalStops()
		minDur, maxDur = min(minDur, d), max(maxDur, d)
		minStops, maxStops = min(minStops, s), max(maxStops, s)
	}

	for i, it := range items {
		scores[i] = normalize(it.Price.Raw, minPrice, maxPrice)*bestPriceWeight +
			normalize(float64(it.TotalDuration()), float64(minDur), float64(maxDur))*bestDurationWeight +
			normalize(float64(it.TotalStops()), float64(minStops), float64(maxStops))*bestStopsWeight
	}
	return scores
}

func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}

func departureOf(it domain.Itinerary) time.Time {
	if len(it.Legs) == 0 {
		return time.Time{}
	}
	return it.Legs[0].Departure
}

// Cheapest returns the lowest-priced itinerary. The first one wins ties.
func Cheapest(items []domain.Itinerary) (domain.Itinerary, bool) {
	if len(items) == 0 {
		return domain.Itinerary{}, false
	}
	best := items[0]
	for _, it := range items[1:] {
		if it.Price.Raw < best.Price.Raw {
			best = it
		}
	}
	return best, true
}

// Filter narrows a result list. Nil and empty fields do not filter.
type Filter struct {
	MaxStops           *int
	Carriers           []string // Marketing carrier names, case-insensitive; any match keeps the itinerary
	MaxDurationMinutes *int
	DepartAfter        *time.Duration // Time of day of the outbound departure, inclusive
	DepartBefore       *time.Duration // Time of day of the outbound departure, inclusive
}

// FilterItineraries returns the itineraries matching f, in their original order.
func FilterItineraries(items []domain.Itinerary, f Filter) []domain.Itinerary {
	carriers := normalizeSet(f.Carriers)
	out := make([]domain.Itinerary, 0, len(items))
	for _, it := range items {
		if f.MaxStops != nil && it.TotalStops() > *f.MaxStops {
			continue
		}
		if f.MaxDurationMinutes != nil && it.TotalDuration() > *f.MaxDurationMinutes {
			continue
		}
		if !matchDeparture(it, f.DepartAfter, f.DepartBefore) {
			continue
		}
		if len(carriers) > 0 && !matchCarrier(it, carriers) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchDeparture(it domain.Itinerary, after, before *time.Duration) bool {
	if after == nil && before == nil {
		return true
	}
	dep := departureOf(it)
	if dep.IsZero() {
		return false
	}
	clock := dep.Sub(domain.Day(dep))
	if after != nil && clock < *after {
		return false
	}
	if before != nil && clock > *before {
		return false
	}
	return true
}

func matchCarrier(it domain.Itinerary, set map[string]struct{}) bool {
	for _, name := range it.Carriers() {
		if _, ok := set[strings.ToLower(strings.TrimSpace(name))]; ok {
			return true
		}
	}
	return false
}

func normalizeSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		value := strings.ToLower(strings.TrimSpace(v))
		if value == "" {
			continue
		}
		set[value] = struct{}{}
	}
	return set
}
