package main

import (
	"os"
	"strings"

	"github.com/aretw0/skyscout/internal/cli"
	"github.com/spf13/cobra"
)

var placesCmd = &cobra.Command{
	Use:   "places <query>",
	Short: "Look up airports and cities",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		return cli.RunPlaces(e.ctx, e.app, e.renderer, os.Stdout, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(placesCmd)
}
