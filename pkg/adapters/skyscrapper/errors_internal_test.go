package skyscrapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadMessage(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"message":"plain"}`, "plain"},
		{`{"message":[{"a":"one"},{"b":"two"}]}`, "one, two"},
		{`{"message":[{"b":"kept","a":"dropped"}]}`, "kept"},
		{`{"message":[{}, {"a":"only"}]}`, "only"},
		{`{"message":[{"code":400}]}`, "400"},
		{`{"message":["bare string"]}`, "bare string"},
		{`{"message":{"a":"object"}}`, ""},
		{`{"message":null}`, ""},
		{`{}`, ""},
		{`not json`, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, payloadMessage([]byte(tt.body)), tt.body)
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := parseTimestamp("2026-11-20T07:15:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 11, 20, 7, 15, 0, 0, time.UTC), got)

	got, err = parseTimestamp("2026-11-20T07:15:00+01:00")
	require.NoError(t, err)
	assert.Equal(t, 6, got.UTC().Hour())

	_, err = parseTimestamp("20/11/2026")
	assert.Error(t, err)
}

func TestEmbeddedSchemasLoad(t *testing.T) {
	doc, err := loadSpec()
	require.NoError(t, err)
	for _, name := range []string{schemaEnvelope, schemaPlaces, schemaItineraries} {
		assert.Contains(t, doc.Components.Schemas, name)
	}
}
