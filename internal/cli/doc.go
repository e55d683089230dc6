// Package cli hosts skyscout in a terminal: the line-driven interactive session,
// the one-shot places and search commands, and process wiring (signals,
// metrics endpoint, app construction from configuration).
package cli
