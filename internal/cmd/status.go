package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/primarytix/outlet/internal/roles"
	"github.com/primarytix/outlet/internal/router"
)

// statusReport is the machine-readable shape of 'outlet status'.
type statusReport struct {
	Authenticated bool     `json:"authenticated" yaml:"authenticated"`
	Email         string   `json:"email,omitempty" yaml:"email,omitempty"`
	DisplayName   string   `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Roles         []string `json:"roles" yaml:"roles"`
	DefaultView   string   `json:"defaultView,omitempty" yaml:"defaultView,omitempty"`
	ManagedVenues []string `json:"managedVenues,omitempty" yaml:"managedVenues,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"whoami"},
	Short:   "Show the current session",
	Long: `Show the current session: whether you are logged in, the identity on
record, the granted roles, and the view outlet lands on by default.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	sess := app.store.Current()
	if sess.Authenticated() {
		sess = app.syncProfile()
	}

	report := statusReport{
		Authenticated: sess.Authenticated(),
		Roles:         roles.Strings(sess.Roles),
	}
	if sess.Authenticated() {
		available := sess.AvailableRoles()
		report.Roles = roles.Strings(available)
		report.DefaultView = router.New(available).ActiveView().String()
	}
	if sess.User != nil {
		report.Email = sess.User.Email
		report.DisplayName = sess.User.DisplayName
		for _, v := range sess.User.ManagedVenues {
			report.ManagedVenues = append(report.ManagedVenues, fmt.Sprintf("%s (%s)", v.Name, v.ID))
		}
	}

	if !textOutput(cmd) {
		printer, err := printerFor(cmd)
		if err != nil {
			return err
		}
		return printer.Print(report)
	}

	out := cmd.OutOrStdout()
	if !report.Authenticated {
		fmt.Fprintln(out, "Not logged in.")
		return nil
	}

	who := report.Email
	if report.DisplayName != "" && report.DisplayName != report.Email {
		who = fmt.Sprintf("%s (%s)", report.DisplayName, report.Email)
	}
	fmt.Fprintf(out, "Logged in as %s\n", who)

	labels := make([]string, 0, len(sess.AvailableRoles()))
	for _, role := range sess.AvailableRoles() {
		labels = append(labels, role.Label())
	}
	fmt.Fprintf(out, "Roles: %s\n", strings.Join(labels, ", "))
	fmt.Fprintf(out, "Default view: %s\n", report.DefaultView)
	if len(report.ManagedVenues) > 0 {
		fmt.Fprintf(out, "Managed venues: %s\n", strings.Join(report.ManagedVenues, ", "))
	}
	return nil
}
