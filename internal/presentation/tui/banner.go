package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the skyscout banner, colored for the given theme.
func PrintBanner(w io.Writer, theme Theme) {
	if theme == Plain {
		fmt.Fprintln(w, "skyscout - flight search")
		return
	}

	p := termenv.ColorProfile()
	palette := []string{"#0ea5e9", "#38bdf8", "#7dd3fc", "#bae6fd"}
	if theme == Light {
		palette = []string{"#075985", "#0369a1", "#0284c7", "#0ea5e9"}
	}
	lines := []string{
		"      __                                 __ ",
		"  ___/ /__ __ _____ _______ ___  __ __/ /_",
		" (_-<  '_// // (_-</ __/ _ \\/ // / __/",
		"/___/_/\\_\\\\_, /___/\\__/\\___/\\_,_/\\__/ ",
		"         /___/                          ",
	}

	fmt.Fprintln(w)
	for i, line := range lines {
		color := palette[min(i, len(palette)-1)]
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(color)))
	}
	fmt.Fprintln(w)
}
