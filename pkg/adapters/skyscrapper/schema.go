package skyscrapper

import (
	"context"
	_ "embed"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/mitchellh/mapstructure"
)

//go:embed openapi.yaml
var rawSpec []byte

// Component schema names in openapi.yaml.
const (
	schemaEnvelope    = "Envelope"
	schemaPlaces      = "PlaceSearchResponse"
	schemaItineraries = "ItinerarySearchResponse"
)

// loadSpec parses and validates the embedded document once per process.
var loadSpec = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load response schemas: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid response schemas: %w", err)
	}
	return doc, nil
})

// RawSpec returns the embedded OpenAPI document describing the consumed response shapes.
func RawSpec() []byte {
	return rawSpec
}

// validateShape checks a generic JSON value against a named component schema.
func validateShape(name string, value any) error {
	doc, err := loadSpec()
	if err != nil {
		return err
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref.Value == nil {
		return fmt.Errorf("unknown response schema %q", name)
	}
	if err := ref.Value.VisitJSON(value); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// timestampLayouts are tried in order; the upstream sends local times without a zone.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// timestampHook lets mapstructure fill time.Time fields from upstream strings.
func timestampHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	s, _ := data.(string)
	if s == "" {
		return time.Time{}, nil
	}
	return parseTimestamp(s)
}

// decodeWire maps a validated generic value onto a wire struct using its json tags.
func decodeWire(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     out,
		DecodeHook: timestampHook,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
