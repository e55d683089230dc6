package main

import (
	"fmt"
	"os"

	"github.com/aretw0/skyscout/internal/config"
	"github.com/spf13/cobra"
)

var (
	v       = config.NewViper()
	cfg     *config.Config
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:           "skyscout",
	Short:         "Skyscout searches flights from the terminal",
	Long:          `Skyscout looks up airports with debounced autocomplete and searches itineraries through the Sky Scrapper API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		if debug {
			loaded.Log.Level = "debug"
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (YAML)")
	flags.BoolVar(&debug, "debug", false, "Log lifecycle events at debug level")
	flags.String("api-key", "", "Sky Scrapper RapidAPI key (env SKYSCOUT_API_KEY)")
	flags.String("base-url", "", "Override the upstream base URL")
	flags.Duration("timeout", 0, "Per-request timeout")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")
	flags.String("theme", "", "Color theme: auto, light or dark")
	flags.Duration("debounce", 0, "Autocomplete debounce window")
	flags.Int("min-query-length", 0, "Shortest query that triggers an airport lookup")
	flags.Bool("latest-only", false, "Discard results of superseded searches")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address")

	bind := map[string]string{
		"api.key":                       "api-key",
		"api.base_url":                  "base-url",
		"api.timeout":                   "timeout",
		"log.level":                     "log-level",
		"log.format":                    "log-format",
		"ui.theme":                      "theme",
		"autocomplete.debounce":         "debounce",
		"autocomplete.min_query_length": "min-query-length",
		"search.latest_only":            "latest-only",
		"metrics.addr":                  "metrics-addr",
	}
	for key, name := range bind {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}
