package commands

import (
	"context"
	"fmt"
	"path/filepath"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/thrivesense/pkg/analysis"
	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/logging"
	"tableflip.dev/thrivesense/pkg/store"
)

const (
	// fullScreen marks commands that own the terminal, they log to a file.
	fullScreen = "fullscreen"
	logName    = "thrive.log"
)

var (
	verbose bool
	logFile string
	logger  = zap.NewNop()
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thrive",
		Short: base.Wrap80("A wellness journal that reads your mood. Write, dictate or photograph how you feel and get feedback and a suggestion back."),
		Annotations: map[string]string{
			fullScreen: "true",
		},
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts := logging.Options{Verbose: verbose, File: logFile}
			if opts.File == "" && cmd.Annotations[fullScreen] != "" {
				cfg, err := store.LoadConfig()
				if err != nil {
					return err
				}
				opts.File = filepath.Join(cfg.BasePath(), logName)
			}
			l, err := logging.New(opts)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runUI(cmd, &uiOptions{})
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail.")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Write logs to this file. The dashboard logs to "+logName+" in the storage path by default.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addSignup(topLevel)
	addLogin(topLevel)
	addLogout(topLevel)
	addWhoami(topLevel)
	addAdd(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addChart(topLevel)
	addExport(topLevel)
	addUI(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// loadApp opens the store and reads the session.
func loadApp(ctx context.Context) (*store.Store, *app.Service, error) {
	st, err := store.Load(nil, store.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	svc := app.New(st, logger)
	if _, err := svc.Load(ctx); err != nil {
		return nil, nil, err
	}
	return st, svc, nil
}

// loadAnalyzer connects to the analysis service configured in the
// environment.
func loadAnalyzer(ctx context.Context) (analysis.Analyzer, error) {
	cfg, err := analysis.LoadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w, set GEMINI_API_KEY to analyze entries", err)
	}
	return analysis.NewGemini(ctx, cfg, logger)
}
