// Package tui renders skyscout output for terminals: suggestion lists and
// itinerary tables as glamour markdown, plus the startup banner.
package tui
