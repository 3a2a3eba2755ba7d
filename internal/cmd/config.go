package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/primarytix/outlet/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage outlet configuration",
	Long: `Manage the outlet configuration file.

Subcommands:
  init  Write a default config file
  show  Print the effective configuration`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}

	if err := config.Save(config.Default(), path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	printer, err := printerFor(cmd)
	if err != nil {
		return err
	}
	if textOutput(cmd) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "base_url:  %s\n", cfg.BaseURL)
		fmt.Fprintf(out, "state_dir: %s\n", cfg.StateDir)
		fmt.Fprintf(out, "log:       %s/%s\n", cfg.Log.Level, cfg.Log.Format)
		return nil
	}
	return printer.Print(cfg)
}
