package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/thrivesense/pkg/commands/options"
	"tableflip.dev/thrivesense/pkg/runner/add"
	"tableflip.dev/thrivesense/pkg/runner/list"
	"tableflip.dev/thrivesense/pkg/runner/show"
	"tableflip.dev/thrivesense/pkg/speech"
)

func addAdd(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Write a journal entry and get it analyzed.",
		Example: `
thrive add slept badly, big deadline tomorrow --sleep 5.5 --stress 8
thrive add --photo ./selfie.jpg
whisper-stream --lines | thrive add --dictate
thrive add --dictate-cmd "whisper-stream --lines"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			_, svc, err := loadApp(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			analyzer, err := loadAnalyzer(ctx)
			if err != nil {
				return output.HandleError(err)
			}

			text := strings.TrimSpace(strings.Join(append([]string{eo.Text}, args...), " "))
			a := add.Add{
				App:         svc,
				Analyzer:    analyzer,
				Text:        text,
				SleepHours:  eo.SleepHours,
				StressLevel: eo.StressLevel,
				Photo:       eo.Photo,
				JSON:        output.JSON,
				Out:         cmd.OutOrStdout(),
			}
			switch {
			case eo.Dictate:
				a.Recognizer = speech.NewStream(cmd.InOrStdin())
			case eo.DictateCmd != "":
				name, cmdArgs := eo.Dictation()
				a.Recognizer = &speech.Command{Name: name, Args: cmdArgs, Log: logger}
			}
			return output.HandleError(a.Do(ctx))
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addList(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	ido := &options.IDOptions{}
	output := &options.OutputOptions{}
	summary := false

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List journal entries, newest first.",
		Example: `
thrive list
thrive list --since 1w --summary
thrive list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			w, err := wo.Window()
			if err != nil {
				return output.HandleError(err)
			}
			_, svc, err := loadApp(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			l := list.List{
				App:     svc,
				Window:  w,
				ShowID:  ido.ShowID,
				Summary: summary,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddWindowArgs(cmd, wo)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVar(&summary, "summary", false, "Print averages and the most frequent emotions after the list.")

	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry with its full analysis.",
		Long:  "Show one entry. The id may be shortened to any unique prefix of four or more characters, see 'thrive list --show-id'.",
		Example: `
thrive show 3f2a9c
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, svc, err := loadApp(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			s := show.Show{App: svc, ID: args[0], JSON: output.JSON, Out: cmd.OutOrStdout()}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
