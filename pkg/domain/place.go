package domain

import "fmt"

// ParentPlace disambiguates a Place that belongs to a multi-airport city.
type ParentPlace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayCode string `json:"display_code"`
	Type        string `json:"type"`
}

// Place is an origin/destination candidate returned by a lookup.
// Values are immutable once returned; callers copy rather than mutate.
type Place struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	DisplayCode string       `json:"display_code"`
	City        string       `json:"city"`
	Parent      *ParentPlace `json:"parent,omitempty"`
}

// EntityID returns the identifier used by itinerary searches:
// the parent's when present, the place's own otherwise.
func (p Place) EntityID() string {
	if p.Parent != nil && p.Parent.ID != "" {
		return p.Parent.ID
	}
	return p.ID
}

// Label formats the place as shown in a committed input, e.g. "London (LON)".
func (p Place) Label() string {
	name := p.City
	if name == "" {
		name = p.Name
	}
	if p.DisplayCode == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, p.DisplayCode)
}

// Clone returns a deep copy of the place.
func (p Place) Clone() Place {
	if p.Parent != nil {
		parent := *p.Parent
		p.Parent = &parent
	}
	return p
}

// ClonePlaces copies a slice of places. A nil input yields nil.
func ClonePlaces(places []Place) []Place {
	if places == nil {
		return nil
	}
	out := make([]Place, len(places))
	for i, p := range places {
		out[i] = p.Clone()
	}
	return out
}
