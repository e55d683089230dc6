/*
Package skyscout is a flight search controller: debounced origin/destination
lookups, committed selections and validated itinerary searches against the
Sky Scrapper API.

It is UI-agnostic. A host (the bundled CLI, a TUI, a test) feeds keystrokes into
the autocomplete controller, reads snapshots back, and submits the search form.

# Key Components

  - autocomplete.Controller: two independent fields, each with a debouncer and a
    ticket guard so that late responses never overwrite newer suggestions.
  - search.Orchestrator: validation without network access, the SearchState
    lifecycle (idle, loading, success, error) and transient notifications.
  - skyscrapper.Client: the HTTP adapter, with response schema validation,
    timeouts, retry on transport errors and an optional rate limit.

# Usage

	app, err := skyscout.New(skyscout.WithAPIKey(os.Getenv("SKYSCOUT_API_KEY")))
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	ac := app.Autocomplete()
	_ = ac.Type(autocomplete.Origin, "Lon")
	// ... wait for suggestions (WithFieldListener), then:
	_, _ = ac.Select(autocomplete.Origin, 0)

	form := search.NewForm()
	form.TripType = domain.OneWay
	_ = form.Dates.SetDeparture(day, time.Now())
	state, err := app.Submit(ctx, form)
*/
package skyscout
