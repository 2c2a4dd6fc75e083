// Package cli is the command-line front end of the storefront: it renders the
// session, the filtered catalog, and drives the admin mutations.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/infrastructure/config"
	"github.com/99minutos/storefront/pkg/logger"
)

// options holds the global flags and the core built for the running command.
type options struct {
	apiURL     string
	jsonOutput bool

	app *App
}

// NewRootCmd returns the storefront command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "storefront",
		Short: "Browse and manage the storefront catalog",
		Long: `storefront is a command-line client for the storefront catalog service.

Anyone can browse products. Signing in with an admin account unlocks
creating, updating and deleting products.

Environment Variables:
  API_BASE_URL      Catalog service URL (default: http://localhost:5002)
  CREDENTIAL_STORE  Where the login is kept: file, redis or memory (default: file)
  LOG_LEVEL         trace, debug, info, warn, error or disabled (default: warn)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if opts.app == nil {
				return nil
			}
			return opts.app.Close()
		},
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Catalog service URL (overrides API_BASE_URL)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output JSON instead of human-readable text")

	root.AddCommand(
		newLoginCmd(opts),
		newSignupCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newProductsCmd(opts),
	)
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (o *options) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if o.apiURL != "" {
		cfg.APIBaseURL = o.apiURL
	}

	log := logger.Init(logger.Options{
		Level:     cfg.LogLevel,
		Pretty:    cfg.LogPretty,
		Output:    cmd.ErrOrStderr(),
		Component: "cli",
	})

	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	o.app = app
	return nil
}

func (o *options) print(w io.Writer, v any, human string) {
	if o.jsonOutput {
		data, _ := json.MarshalIndent(v, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintln(w, human)
}

// userError carries the message shown to the user while keeping the cause
// for errors.Is.
type userError struct {
	msg   string
	cause error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.cause }

func surface(err error, fallback string) error {
	if err == nil {
		return nil
	}
	return &userError{msg: domain.UserMessage(err, fallback), cause: err}
}
