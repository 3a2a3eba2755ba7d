package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the local session",
	Long: `Log out and discard the local session record.

The token, cached profile, and role set are removed from disk. The
server keeps no session state, so logging out is purely local.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	sess := app.store.Current()
	if !sess.Authenticated() {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
		return nil
	}

	if sess.User != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Logging out: %s\n", sess.User.Email)
	}
	app.store.Logout()
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}
