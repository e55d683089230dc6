package main

import (
	"fmt"

	"github.com/aretw0/skyscout/pkg/adapters/skyscrapper/skyscrappertest"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Interactive session against a built-in fake upstream (no API key needed)",
	Long: `Starts a local fake of the Sky Scrapper API with a few places (London, Paris, New York)
and routes (LON to CDG, LHR to JFK), then runs the interactive session against it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := skyscrappertest.NewServer()
		defer srv.Close()

		cfg.API.BaseURL = srv.BaseURL()
		cfg.API.Key = "demo"
		fmt.Printf(">>> Fake upstream on %s\n", srv.BaseURL())
		return runInteractive()
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
