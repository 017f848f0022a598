package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/commands/options"
	"tableflip.dev/thrivesense/pkg/prompt"
	"tableflip.dev/thrivesense/pkg/runner/login"
	"tableflip.dev/thrivesense/pkg/runner/logout"
	"tableflip.dev/thrivesense/pkg/runner/signup"
	"tableflip.dev/thrivesense/pkg/runner/whoami"
)

func addSignup(topLevel *cobra.Command) {
	ao := &options.AccountOptions{}
	io := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in.",
		Example: `
thrive signup --username Ana --email ana@example.com
thrive signup -u Ana -e ana@example.com --photo ./me.png
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, svc, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			s := signup.Signup{
				App: svc,
				Request: app.SignupRequest{
					Username:       ao.Username,
					Email:          ao.Email,
					Password:       ao.Password,
					ProfilePicture: ao.Photo,
				},
				Out: cmd.OutOrStdout(),
			}
			if io.Prompting() {
				s.Prompter = prompter(cmd)
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddSignupArgs(cmd, ao)
	options.InteractiveArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addLogin(topLevel *cobra.Command) {
	ao := &options.AccountOptions{}
	io := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an existing account.",
		Example: `
thrive login --email ana@example.com
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, svc, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			l := login.Login{
				App:      svc,
				Email:    ao.Email,
				Password: ao.Password,
				Out:      cmd.OutOrStdout(),
			}
			if io.Prompting() {
				l.Prompter = prompter(cmd)
			}
			return l.Do(cmd.Context())
		},
	}

	options.AddLoginArgs(cmd, ao)
	options.InteractiveArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session. The journal stays on disk.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, svc, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			l := logout.Logout{App: svc, Out: cmd.OutOrStdout()}
			return l.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

func addWhoami(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in account.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, svc, err := loadApp(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			w := whoami.Whoami{App: svc, JSON: output.JSON, Out: cmd.OutOrStdout()}
			return output.HandleError(w.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func prompter(cmd *cobra.Command) *prompt.Prompter {
	return &prompt.Prompter{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
	}
}
