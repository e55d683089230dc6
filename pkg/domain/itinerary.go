package domain

import (
	"fmt"
	"strings"
	"time"
)

// Price carries the raw amount and the upstream formatted display string.
type Price struct {
	Raw       float64 `json:"raw"`
	Formatted string  `json:"formatted"`
}

// Carrier is a marketing or operating airline.
type Carrier struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	LogoURL     string `json:"logo_url,omitempty"`
	AlternateID string `json:"alternate_id,omitempty"`
}

// LegPlace references an airport within a leg or segment.
type LegPlace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayCode string `json:"display_code"`
	City        string `json:"city,omitempty"`
}

// Segment is one physically operated flight within a leg.
type Segment struct {
	ID               string    `json:"id"`
	Origin           LegPlace  `json:"origin"`
	Destination      LegPlace  `json:"destination"`
	Departure        time.Time `json:"departure"`
	Arrival          time.Time `json:"arrival"`
	DurationMinutes  int       `json:"duration_minutes"`
	FlightNumber     string    `json:"flight_number"`
	MarketingCarrier Carrier   `json:"marketing_carrier"`
	OperatingCarrier Carrier   `json:"operating_carrier"`
}

// Leg is one directional flight (outbound or return).
type Leg struct {
	ID              string    `json:"id"`
	Origin          LegPlace  `json:"origin"`
	Destination     LegPlace  `json:"destination"`
	DurationMinutes int       `json:"duration_minutes"`
	StopCount       int       `json:"stop_count"`
	Departure       time.Time `json:"departure"`
	Arrival         time.Time `json:"arrival"`
	TimeDeltaInDays int       `json:"time_delta_in_days"`
	Carriers        []Carrier `json:"carriers"`
	Segments        []Segment `json:"segments,omitempty"`
}

// Itinerary is a full priced flight offer.
type Itinerary struct {
	ID    string   `json:"id"`
	Price Price    `json:"price"`
	Legs  []Leg    `json:"legs"`
	Tags  []string `json:"tags,omitempty"`
}

// Clone returns a deep copy of the itinerary.
func (it Itinerary) Clone() Itinerary {
	if it.Legs != nil {
		legs := make([]Leg, len(it.Legs))
		for i, l := range it.Legs {
			if l.Carriers != nil {
				l.Carriers = append(make([]Carrier, 0, len(l.Carriers)), l.Carriers...)
			}
			if l.Segments != nil {
				l.Segments = append(make([]Segment, 0, len(l.Segments)), l.Segments...)
			}
			legs[i] = l
		}
		it.Legs = legs
	}
	if it.Tags != nil {
		it.Tags = append(make([]string, 0, len(it.Tags)), it.Tags...)
	}
	return it
}

// CloneItineraries copies a slice of itineraries. A nil input yields nil.
func CloneItineraries(items []Itinerary) []Itinerary {
	if items == nil {
		return nil
	}
	out := make([]Itinerary, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// TotalDuration sums the duration of every leg, in minutes.
func (it Itinerary) TotalDuration() int {
	total := 0
	for _, l := range it.Legs {
		total += l.DurationMinutes
	}
	return total
}

// TotalStops sums the stop count of every leg.
func (it Itinerary) TotalStops() int {
	total := 0
	for _, l := range it.Legs {
		total += l.StopCount
	}
	return total
}

// HasTag reports whether the upstream tagged the itinerary (e.g. "cheapest").
func (it Itinerary) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Carriers returns the distinct marketing carrier names across legs, in order of appearance.
func (it Itinerary) Carriers() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0, len(it.Legs))
	for _, l := range it.Legs {
		for _, c := range l.Carriers {
			if _, ok := seen[c.Name]; ok {
				continue
			}
			seen[c.Name] = struct{}{}
			names = append(names, c.Name)
		}
	}
	return names
}

// FormatDuration renders minutes as "2h 30m", "45m" or "3h".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	hours, mins := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatStops renders a stop count as "Direct", "1 stop" or "2 stops".
func FormatStops(n int) string {
	switch {
	case n <= 0:
		return "Direct"
	case n == 1:
		return "1 stop"
	}
	return fmt.Sprintf("%d stops", n)
}
