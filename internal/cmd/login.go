package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/primarytix/outlet/internal/api"
	"github.com/primarytix/outlet/internal/errors"
	"github.com/primarytix/outlet/internal/roles"
	"github.com/primarytix/outlet/internal/tui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the marketplace",
	Long: `Log in to the marketplace through the mock SSO exchange.

You claim an identity, the roles the session should carry, and for
venue managers the venues you manage. The server answers with a token
that outlet keeps in its session record until you log out.

Without --email, and when run in a terminal, login asks for the
identity interactively.

Examples:
  outlet login --email fan@example.com
  outlet login --email boss@example.com --name "Venue Boss" --manager --venue v1 --venue v2
  outlet login --email root@example.com --admin`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().String("email", "", "email address of the claimed identity")
	loginCmd.Flags().String("name", "", "display name (defaults to the email)")
	loginCmd.Flags().Bool("manager", false, "request the venue manager role")
	loginCmd.Flags().Bool("admin", false, "request the admin role")
	loginCmd.Flags().StringSlice("venue", nil, "venue id to manage (repeatable, implies --manager)")

	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	email, _ := cmd.Flags().GetString("email")
	name, _ := cmd.Flags().GetString("name")
	manager, _ := cmd.Flags().GetBool("manager")
	admin, _ := cmd.Flags().GetBool("admin")
	venueIDs, _ := cmd.Flags().GetStringSlice("venue")

	if email == "" {
		if !tui.ShouldPrompt() {
			return errors.NewValidationError("--email is required")
		}
		email, name, manager, admin, venueIDs, err = promptIdentity()
		if err != nil {
			return err
		}
	}
	if email == "" {
		return errors.NewValidationError("--email is required")
	}
	if name == "" {
		name = email
	}
	if len(venueIDs) > 0 {
		manager = true
	}

	requested := []string{string(roles.RoleAttendee)}
	if manager {
		requested = append(requested, string(roles.RoleManager))
	}
	if admin {
		requested = append(requested, string(roles.RoleAdmin))
	}

	resp, err := app.client.MockLogin(cmd.Context(), api.AuthRequest{
		Email:           email,
		DisplayName:     name,
		Roles:           requested,
		ManagedVenueIDs: venueIDs,
	})
	if err != nil {
		return err
	}

	app.store.Login(resp)
	sess := app.syncProfile()

	labels := make([]string, 0, len(sess.AvailableRoles()))
	for _, role := range sess.AvailableRoles() {
		labels = append(labels, role.Label())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", resp.DisplayName, resp.Email)
	fmt.Fprintf(cmd.OutOrStdout(), "Roles: %s\n", strings.Join(labels, ", "))
	if sess.User != nil && len(sess.User.ManagedVenues) > 0 {
		names := make([]string, 0, len(sess.User.ManagedVenues))
		for _, v := range sess.User.ManagedVenues {
			names = append(names, v.Name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Managed venues: %s\n", strings.Join(names, ", "))
	}
	return nil
}

// promptIdentity collects the login identity interactively.
func promptIdentity() (email, name string, manager, admin bool, venueIDs []string, err error) {
	email, err = tui.AskString("Email", "you@example.com", "", true)
	if err != nil {
		return "", "", false, false, nil, err
	}

	name, err = tui.AskString("Display name", "", email, false)
	if err != nil {
		return "", "", false, false, nil, err
	}

	extra, err := tui.AskMulti("Additional roles", []string{
		roles.RoleManager.Label(),
		roles.RoleAdmin.Label(),
	})
	if err != nil {
		return "", "", false, false, nil, err
	}
	for _, label := range extra {
		switch label {
		case roles.RoleManager.Label():
			manager = true
		case roles.RoleAdmin.Label():
			admin = true
		}
	}

	if manager {
		raw, perr := tui.AskString("Managed venue ids (comma separated)", "v1,v2", "", false)
		if perr != nil {
			return "", "", false, false, nil, perr
		}
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				venueIDs = append(venueIDs, id)
			}
		}
	}

	return email, name, manager, admin, venueIDs, nil
}
