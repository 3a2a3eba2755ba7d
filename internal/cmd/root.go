// Package cmd wires the outlet CLI: session lifecycle, attendee purchases,
// venue-manager inventory, and the admin dashboard.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "outlet",
	Short: "Primary Ticket Outlet command line client",
	Long: `outlet is the command line client for the Primary Ticket Outlet
marketplace. It signs you in through the mock SSO exchange, keeps your
session and profile on disk, and drives the attendee, venue-manager,
and admin workflows against the marketplace API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.outlet/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "marketplace API base URL (overrides config)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")
}
