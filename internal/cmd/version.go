package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/primarytix/outlet/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.GetInfo()

	if !textOutput(cmd) {
		printer, err := printerFor(cmd)
		if err != nil {
			return err
		}
		return printer.Print(info)
	}

	fmt.Fprintln(cmd.OutOrStdout(), info.String())
	return nil
}
