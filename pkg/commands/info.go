package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/thrivesense/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the session and where the journal is stored.",
		Example: `
thrive info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			st, svc, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			i := info.Info{
				Store: st,
				App:   svc,
				Out:   cmd.OutOrStdout(),
			}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
