package skyscrapper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/skyscout/pkg/domain"
)

const (
	msgNetwork         = "Network Error"
	msgInvalidResponse = "invalid response from upstream"
	msgPlacesFailed    = "failed to fetch airports"
	msgFlightsFailed   = "failed to fetch flights"
)

func statusMessage(code int) string {
	return fmt.Sprintf("Request failed with status code %d", code)
}

// payloadMessage extracts the user-facing message from an upstream payload.
//
// A string "message" is returned as is. A list of per-field objects yields the
// first value of each object, in document order, joined with ", ".
// It returns "" when the payload carries no usable message.
func payloadMessage(body []byte) string {
	var envelope struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	raw := bytes.TrimSpace(envelope.Message)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '[':
		parts, err := firstValues(raw)
		if err != nil {
			return ""
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// firstValues walks a JSON array of objects with the token API so that the
// key order of each object is preserved (maps would randomize it).
func firstValues(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil { // [
		return nil, err
	}

	var parts []string
	for dec.More() {
		var item json.RawMessage
		if err := dec.Decode(&item); err != nil {
			return nil, err
		}
		item = bytes.TrimSpace(item)
		if len(item) == 0 {
			continue
		}
		if item[0] == '"' {
			var s string
			if err := json.Unmarshal(item, &s); err == nil && s != "" {
				parts = append(parts, s)
			}
			continue
		}
		if item[0] != '{' {
			continue
		}
		if v, ok, err := firstObjectValue(item); err != nil {
			return nil, err
		} else if ok {
			parts = append(parts, v)
		}
	}
	return parts, nil
}

func firstObjectValue(obj []byte) (string, bool, error) {
	dec := json.NewDecoder(bytes.NewReader(obj))
	if _, err := dec.Token(); err != nil { // {
		return "", false, err
	}
	if !dec.More() {
		return "", false, nil
	}
	if _, err := dec.Token(); err != nil { // key
		return "", false, err
	}
	var value json.RawMessage
	if err := dec.Decode(&value); err != nil {
		return "", false, err
	}
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s, true, nil
	}
	return string(bytes.TrimSpace(value)), true, nil
}

// statusError builds the RemoteError for a non-2xx response.
func statusError(code int, body []byte) *domain.RemoteError {
	msg := payloadMessage(body)
	if msg == "" {
		msg = statusMessage(code)
	}
	return &domain.RemoteError{Message: msg, StatusCode: code}
}

// transportError wraps a failed round trip.
func transportError(err error) *domain.RemoteError {
	return &domain.RemoteError{Message: msgNetwork, Err: err}
}

// shapeError wraps a response that does not match the expected schema.
func shapeError(code int, err error) *domain.RemoteError {
	return &domain.RemoteError{Message: msgInvalidResponse, StatusCode: code, Err: err}
}

// isTransport reports whether err is a retryable round-trip failure.
func isTransport(err error) bool {
	var remote *domain.RemoteError
	if !errors.As(err, &remote) {
		return false
	}
	return remote.StatusCode == 0 && remote.Message == msgNetwork
}
