package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/thrivesense/pkg/commands/options"
	"tableflip.dev/thrivesense/pkg/export"
	runui "tableflip.dev/thrivesense/pkg/runner/ui"
	"tableflip.dev/thrivesense/pkg/speech"
	"tableflip.dev/thrivesense/pkg/ui"
)

type uiOptions struct {
	options.InteractiveOptions
	options.EntryOptions
}

func addUI(topLevel *cobra.Command) {
	o := &uiOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the journal dashboard.",
		Example: `
thrive ui
thrive ui --dictate-cmd "whisper-stream --lines"
`,
		Annotations: map[string]string{
			fullScreen: "true",
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runUI(cmd, o)
		},
	}

	options.InteractiveArgs(cmd, &o.InteractiveOptions)
	cmd.Flags().StringVar(&o.DictateCmd, "dictate-cmd", "",
		`Transcriber for the 'd' key, each line it prints is a segment.`)

	topLevel.AddCommand(cmd)
}

func runUI(cmd *cobra.Command, o *uiOptions) error {
	ctx := cmd.Context()
	_, svc, err := loadApp(ctx)
	if err != nil {
		return err
	}

	d := &ui.Dashboard{
		App:      svc,
		Exporter: &export.Exporter{Log: logger},
		Log:      logger,
	}
	if name, args := o.Dictation(); name != "" {
		d.Recognizer = func() speech.Recognizer {
			return &speech.Command{Name: name, Args: args, Log: logger}
		}
	}

	u := runui.UI{Dashboard: d, LoadAnalyzer: loadAnalyzer}
	if o.Prompting() {
		u.Prompter = prompter(cmd)
	}
	return u.Do(ctx)
}
