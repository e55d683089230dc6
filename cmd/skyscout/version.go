package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of skyscout",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("skyscout version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
