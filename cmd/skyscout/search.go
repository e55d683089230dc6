package main

import (
	"os"
	"time"

	"github.com/aretw0/skyscout/internal/cli"
	"github.com/aretw0/skyscout/pkg/domain"
	"github.com/spf13/cobra"
)

var searchOpts cli.SearchOptions

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search itineraries between two places",
	Long:  `Resolves --from and --to to places (an exact airport code wins, otherwise the first suggestion) and runs one search. Without --return the trip is one-way.`,
	Example: `  skyscout search --from LON --to CDG --depart 2026-11-20
  skyscout search --from JFK --to LHR --depart 2026-11-20 --return 2026-11-27 --cabin business --sort cheapest`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		searchOpts.Today = time.Now()
		return cli.RunSearch(e.ctx, e.app, e.renderer, os.Stdout, searchOpts)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	f := searchCmd.Flags()
	f.StringVar(&searchOpts.From, "from", "", "Origin query or airport code")
	f.StringVar(&searchOpts.To, "to", "", "Destination query or airport code")
	f.StringVar(&searchOpts.Depart, "depart", "", "Departure date (YYYY-MM-DD)")
	f.StringVar(&searchOpts.Return, "return", "", "Return date (YYYY-MM-DD), omit for one-way")
	f.IntVar(&searchOpts.Passengers.Adults, "adults", domain.DefaultPassengers().Adults, "Adults")
	f.IntVar(&searchOpts.Passengers.Children, "children", 0, "Children")
	f.IntVar(&searchOpts.Passengers.Infants, "infants", 0, "Infants (at most one per adult)")
	f.StringVar(&searchOpts.Cabin, "cabin", "economy", "Cabin class: economy, business or first")
	f.StringVar(&searchOpts.Sort, "sort", "best", "Sort: best, cheapest, fastest or departure")
	f.IntVar(&searchOpts.MaxStops, "max-stops", -1, "Maximum stops, -1 for any")
	f.StringSliceVar(&searchOpts.Airlines, "airline", nil, "Only these airlines (repeatable)")

	_ = searchCmd.MarkFlagRequired("from")
	_ = searchCmd.MarkFlagRequired("to")
	_ = searchCmd.MarkFlagRequired("depart")
}
