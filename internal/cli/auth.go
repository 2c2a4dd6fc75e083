package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/service"
)

type sessionView struct {
	Role          string            `json:"role"`
	Authenticated bool              `json:"authenticated"`
	CanManage     bool              `json:"can_manage"`
	Navigation    []service.NavLink `json:"navigation,omitempty"`
}

func newLoginCmd(opts *options) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := opts.app.Auth.Login(cmd.Context(), email, password)
			if err != nil {
				return surface(err, service.MsgLoginFailed)
			}

			view := sessionView{
				Role:          res.Session.Role.String(),
				Authenticated: res.Session.Authenticated,
				CanManage:     service.CanMutateCatalog(res.Session.Role),
			}
			opts.print(cmd.OutOrStdout(), view, fmt.Sprintf("Logged in as %s.", res.Session.Role.Label()))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSignupCmd(opts *options) *cobra.Command {
	var req ports.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reply, err := opts.app.Auth.Signup(cmd.Context(), req)
			if err != nil {
				return surface(err, service.MsgSignupFailed)
			}

			if opts.jsonOutput {
				fmt.Fprintln(cmd.OutOrStdout(), string(reply))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), signupMessage(reply))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password (at least 6 characters)")
	cmd.Flags().StringVar(&req.Role, "role", domain.RoleUser.String(), "Account role: user or admin")
	cmd.Flags().StringVar(&req.AdminSecret, "admin-secret", "", "Secret required to register an admin")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// signupMessage picks the server's message out of the reply, whose shape is
// otherwise server-defined.
func signupMessage(reply json.RawMessage) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(reply, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return "Signup successful. You can now log in."
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			opts.print(cmd.OutOrStdout(), domain.GuestSession, "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session and the sections it can reach",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s := opts.app.Gate.Session(ctx)
			view := sessionView{
				Role:          s.Role.String(),
				Authenticated: s.Authenticated,
				CanManage:     opts.app.Gate.MayMutateCatalog(ctx),
				Navigation:    opts.app.Gate.Navigation(ctx),
			}
			opts.print(cmd.OutOrStdout(), view, formatSession(view, s.Role))
			return nil
		},
	}
}

func formatSession(v sessionView, role domain.Role) string {
	var b strings.Builder
	if v.Authenticated {
		fmt.Fprintf(&b, "Signed in: %s\n", role.Label())
	} else {
		b.WriteString("Not signed in (Guest)\n")
	}
	b.WriteString("Navigation:")
	for _, l := range v.Navigation {
		fmt.Fprintf(&b, "\n  %-12s %s", l.Title, l.Path)
	}
	return b.String()
}
