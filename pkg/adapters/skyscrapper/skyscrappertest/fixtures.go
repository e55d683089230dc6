package skyscrappertest

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed testdata/default.yaml
var defaultFixtures []byte

// Fixtures is the data set served by the fake upstream.
type Fixtures struct {
	Places []PlaceFixture `yaml:"places"`
	Routes []RouteFixture `yaml:"routes"`
}

// PlaceFixture is one searchAirport entry.
type PlaceFixture struct {
	SkyID          string `yaml:"sky_id"`
	EntityID       string `yaml:"entity_id"`
	Title          string `yaml:"title"`
	Subtitle       string `yaml:"subtitle"`
	City           string `yaml:"city"`
	EntityType     string `yaml:"entity_type"`
	ParentEntityID string `yaml:"parent_entity_id"` // navigation.entityId, defaults to EntityID
}

// RouteFixture lists the offers for an origin/destination pair of sky ids.
type RouteFixture struct {
	Origin      string          `yaml:"origin"`
	Destination string          `yaml:"destination"`
	Offers      []OfferFixture `yaml:"offers"`
}

// OfferFixture is one itinerary. A return leg is added when the request has a returnDate.
type OfferFixture struct {
	ID    string       `yaml:"id"`
	Price float64      `yaml:"price"`
	Tags  []string     `yaml:"tags"`
	Legs  []LegFixture `yaml:"legs"`
}

// LegFixture describes the outbound leg; times are local to the requested date.
type LegFixture struct {
	Depart       string `yaml:"depart"`   // HH:MM
	Duration     int    `yaml:"duration"` // minutes
	Stops        int    `yaml:"stops"`
	Carrier      string `yaml:"carrier"`
	CarrierID    int    `yaml:"carrier_id"`
	FlightNumber string `yaml:"flight_number"`
}

// ParseFixtures decodes a YAML fixture document.
func ParseFixtures(data []byte) (Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixtures{}, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	for i, p := range f.Places {
		if p.SkyID == "" || p.EntityID == "" {
			return Fixtures{}, fmt.Errorf("place %d: sky_id and entity_id are required", i)
		}
	}
	return f, nil
}

// DefaultFixtures returns the embedded London/Paris/New York data set.
func DefaultFixtures() Fixtures {
	f, err := ParseFixtures(defaultFixtures)
	if err != nil {
		panic(err)
	}
	return f
}
