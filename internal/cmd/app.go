package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/primarytix/outlet/internal/api"
	"github.com/primarytix/outlet/internal/config"
	"github.com/primarytix/outlet/internal/errors"
	"github.com/primarytix/outlet/internal/log"
	"github.com/primarytix/outlet/internal/roles"
	"github.com/primarytix/outlet/internal/session"
	"github.com/primarytix/outlet/internal/ux"
)

// app carries the wired dependencies every command needs: config, logger,
// API client, the session store, and the profile reconciler.
type app struct {
	cfg        *config.Config
	logger     *log.Logger
	client     *api.Client
	store      *session.Store
	reconciler *session.Reconciler
}

// newApp loads configuration, builds the client and session store, and
// restores any persisted session. Restoring announces the token, which
// kicks off the background profile refresh.
func newApp(cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.BaseURL = apiURL
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.Log.Format = format
	}

	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.Log.Level),
		Format: log.ParseFormat(cfg.Log.Format),
	})
	log.SetDefaultLogger(logger)

	client := api.NewClient(cfg.BaseURL)
	store := session.NewStore(cfg.StateDir, logger)
	reconciler := session.NewReconciler(store, client, logger)

	sess := store.Restore()
	client.SetToken(sess.Token)

	return &app{
		cfg:        cfg,
		logger:     logger,
		client:     client,
		store:      store,
		reconciler: reconciler,
	}, nil
}

// close stops the reconciler; any in-flight profile refresh is discarded.
func (a *app) close() {
	a.reconciler.Close()
}

// syncProfile blocks until the pending profile refresh settles and returns
// the current session. Refresh failures keep the session usable, so they
// are logged rather than returned.
func (a *app) syncProfile() session.Session {
	a.reconciler.Wait()
	if err := a.reconciler.Err(); err != nil {
		a.logger.WithError(err).Warn("profile refresh failed")
	}
	return a.store.Current()
}

// requireAuth returns the current session or an error when signed out.
func (a *app) requireAuth() (session.Session, error) {
	sess := a.store.Current()
	if !sess.Authenticated() {
		return session.Session{}, errors.New(errors.ErrCodeAuthNoSession, "You are not logged in. Run 'outlet login' first.")
	}
	return sess, nil
}

// requireRole returns the freshest session provided it carries the role.
func (a *app) requireRole(role roles.Role) (session.Session, error) {
	if _, err := a.requireAuth(); err != nil {
		return session.Session{}, err
	}
	sess := a.syncProfile()
	if !roles.Contains(sess.AvailableRoles(), role) {
		return session.Session{}, errors.New(errors.ErrCodeAuthRoleDenied,
			fmt.Sprintf("This command needs the %s role.", role.Label()))
	}
	return sess, nil
}

// printerFor builds the output printer selected by --output, writing to the
// command's stdout.
func printerFor(cmd *cobra.Command) (*ux.Printer, error) {
	format, _ := cmd.Flags().GetString("output")
	return ux.NewPrinter(format, cmd.OutOrStdout())
}

// textOutput reports whether --output selects the human format.
func textOutput(cmd *cobra.Command) bool {
	format, _ := cmd.Flags().GetString("output")
	return format == "" || format == "text"
}
