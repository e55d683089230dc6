package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/skyscout"
	"github.com/aretw0/skyscout/internal/presentation/tui"
	"github.com/aretw0/skyscout/pkg/autocomplete"
	"github.com/aretw0/skyscout/pkg/domain"
	"github.com/aretw0/skyscout/pkg/search"
)

// SearchOptions carries the flags of the one-shot search command.
type SearchOptions struct {
	From, To string

	// Dates are YYYY-MM-DD; an empty Return means one-way.
	Depart, Return string

	Passengers domain.PassengerCounts
	Cabin      string
	Sort       string
	MaxStops   int // Negative means any
	Airlines   []string
	Today      time.Time
}

// RunPlaces prints the suggestions for query.
func RunPlaces(ctx context.Context, app *skyscout.App, r *tui.Renderer, w io.Writer, query string) error {
	places, err := app.Client().SearchPlaces(ctx, query)
	if err != nil {
		return err
	}
	out, err := r.Places(query, places)
	if err != nil {
		return err
	}
	fmt.Fprint(w, out)
	return nil
}

// RunSearch resolves both places, submits the form and prints the sorted results.
func RunSearch(ctx context.Context, app *skyscout.App, r *tui.Renderer, w io.Writer, o SearchOptions) error {
	form, err := buildForm(o)
	if err != nil {
		return err
	}
	mode, err := search.ParseSortMode(o.Sort)
	if err != nil {
		return err
	}

	ac := app.Autocomplete()
	for _, f := range []struct {
		field autocomplete.Field
		query string
	}{{autocomplete.Origin, o.From}, {autocomplete.Destination, o.To}} {
		place, err := resolvePlace(ctx, app, f.query)
		if err != nil {
			return fmt.Errorf("%s: %w", f.field, err)
		}
		if err := ac.Commit(f.field, place); err != nil {
			return err
		}
	}

	state, err := app.Submit(ctx, form)
	if err != nil {
		return err
	}

	filter := search.Filter{Carriers: o.Airlines}
	if o.MaxStops >= 0 {
		stops := o.MaxStops
		filter.MaxStops = &stops
	}
	return renderState(w, r, state, mode, filter)
}

func buildForm(o SearchOptions) (search.Form, error) {
	form := search.NewForm()
	form.Passengers = o.Passengers
	if err := o.Passengers.Validate(); err != nil {
		return form, err
	}
	cabin, err := domain.ParseCabinClass(o.Cabin)
	if err != nil {
		return form, err
	}
	form.Cabin = cabin

	loc := o.Today.Location()
	if o.Depart != "" {
		day, err := time.ParseInLocation(domain.DateLayout, o.Depart, loc)
		if err != nil {
			return form, domain.NewValidationError("depart", "expected YYYY-MM-DD")
		}
		if err := form.Dates.SetDeparture(day, o.Today); err != nil {
			return form, err
		}
	}

	form.TripType = domain.OneWay
	if o.Return != "" {
		day, err := time.ParseInLocation(domain.DateLayout, o.Return, loc)
		if err != nil {
			return form, domain.NewValidationError("return", "expected YYYY-MM-DD")
		}
		if err := form.Dates.SetReturn(day, o.Today); err != nil {
			return form, err
		}
		form.TripType = domain.RoundTrip
	}
	return form, nil
}

// resolvePlace prefers an exact display-code match, then the first suggestion.
func resolvePlace(ctx context.Context, app *skyscout.App, query string) (domain.Place, error) {
	places, err := app.Client().SearchPlaces(ctx, query)
	if err != nil {
		return domain.Place{}, err
	}
	if len(places) == 0 {
		return domain.Place{}, fmt.Errorf("no airport matches %q", query)
	}
	for _, p := range places {
		if strings.EqualFold(p.DisplayCode, strings.TrimSpace(query)) {
			return p, nil
		}
	}
	return places[0], nil
}
