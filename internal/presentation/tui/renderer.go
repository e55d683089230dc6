package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/skyscout/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// Renderer turns places and search results into terminal output.
type Renderer struct {
	md *glamour.TermRenderer
}

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 100

// NewRenderer builds a glamour renderer for the theme.
func NewRenderer(theme Theme, width int) (*Renderer, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	opts := []glamour.TermRendererOption{
		glamour.WithStandardStyle(string(theme)),
		glamour.WithWordWrap(width),
	}
	if theme == Plain {
		opts = append(opts, glamour.WithColorProfile(termenv.Ascii))
	}
	md, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return &Renderer{md: md}, nil
}

// Places renders suggestions as a numbered table.
func (r *Renderer) Places(title string, places []domain.Place) (string, error) {
	return r.md.Render(PlacesMarkdown(title, places))
}

// Results renders a SearchState.
func (r *Renderer) Results(state domain.SearchState) (string, error) {
	return r.md.Render(ResultsMarkdown(state))
}

// PlacesMarkdown lists suggestions with their selection index.
func PlacesMarkdown(title string, places []domain.Place) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", title)
	if len(places) == 0 {
		b.WriteString("_No matching airports._\n")
		return b.String()
	}
	b.WriteString("| # | Place | Name | Within |\n|---|---|---|---|\n")
	for i, p := range places {
		within := ""
		if p.Parent != nil {
			within = p.Parent.Name
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i, cell(p.Label()), cell(p.Name), cell(within))
	}
	return b.String()
}

// ResultsMarkdown describes the state; success renders one row per itinerary.
func ResultsMarkdown(state domain.SearchState) string {
	var b strings.Builder
	switch state.Status {
	case domain.StatusIdle:
		b.WriteString("_No search yet._\n")
	case domain.StatusLoading:
		b.WriteString("_Searching..._\n")
	case domain.StatusError:
		fmt.Fprintf(&b, "**Search failed:** %s\n", state.Message())
	case domain.StatusSuccess:
		writeItineraries(&b, state)
	}
	return b.String()
}

func writeItineraries(b *strings.Builder, state domain.SearchState) {
	if c := state.Criteria; c != nil {
		fmt.Fprintf(b, "### %s to %s\n\n", cell(c.Origin.Label()), cell(c.Destination.Label()))
	}
	if len(state.Itineraries) == 0 {
		b.WriteString("_No flights found for these dates._\n")
		return
	}
	b.WriteString("| Price | Depart | Arrive | Duration | Stops | Airline |\n|---|---|---|---|---|---|\n")
	for _, it := range state.Itineraries {
		if len(it.Legs) == 0 {
			continue
		}
		out := it.Legs[0]
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s |\n",
			cell(it.Price.Formatted),
			out.Departure.Format("Jan 2 15:04"),
			out.Arrival.Format("15:04"),
			domain.FormatDuration(it.TotalDuration()),
			domain.FormatStops(it.TotalStops()),
			cell(strings.Join(it.Carriers(), ", ")),
		)
	}
	fmt.Fprintf(b, "\n%d result(s)\n", len(state.Itineraries))
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
