package main

import (
	"fmt"
	"os"

	"github.com/aretw0/skyscout/internal/cli"
	"github.com/aretw0/skyscout/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Fill the search form line by line",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}
		return runInteractive()
	},
}

func runInteractive() error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	tui.PrintBanner(os.Stdout, e.theme)
	err = cli.NewSession(e.app, e.renderer, os.Stdout).Run(e.ctx, os.Stdin)
	if e.ctx.Signal() != nil {
		fmt.Println()
		fmt.Println(">>> Interrupted.")
		return nil
	}
	if e.ctx.Err() != nil {
		return nil
	}
	return err
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
