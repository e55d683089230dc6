package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// Theme selects the glamour style used for rendering.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
	Plain Theme = "notty" // No colors, for pipes and tests
)

var detected = sync.OnceValue(func() Theme {
	if !termenv.HasDarkBackground() {
		return Light
	}
	return Dark
})

// ResolveTheme maps a ui.theme setting to a Theme.
// "auto" queries the terminal background once per process.
func ResolveTheme(setting string, tty bool) (Theme, error) {
	if !tty {
		return Plain, nil
	}
	switch strings.ToLower(strings.TrimSpace(setting)) {
	case "", "auto":
		return detected(), nil
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return "", fmt.Errorf("unknown theme %q", setting)
}
