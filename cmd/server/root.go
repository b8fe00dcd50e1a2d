package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cultivating-connections",
	Short: "Cultivating Connections - agricultural marketplace",
	Long: `Cultivating Connections links farmers and buyers directly.

Farmers list crops for sale; buyers search listings and submit purchase
requests; farmers accept or reject requests, which adjusts inventory.

Run 'cultivating-connections serve' to start the server, or
'cultivating-connections import' to load farmer accounts from a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
}
