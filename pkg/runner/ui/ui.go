package ui

import (
	"context"
	"errors"

	"tableflip.dev/thrivesense/pkg/analysis"
	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/prompt"
	"tableflip.dev/thrivesense/pkg/runner/auth"
	"tableflip.dev/thrivesense/pkg/ui"
)

// UI opens the dashboard, showing the auth screens first when nobody is
// logged in.
type UI struct {
	Dashboard *ui.Dashboard
	Prompter  *prompt.Prompter

	// LoadAnalyzer is called once there is a session, when the dashboard
	// has no Analyzer yet. Signing up needs no analysis credentials.
	LoadAnalyzer func(ctx context.Context) (analysis.Analyzer, error)
}

func (d *UI) Do(ctx context.Context) error {
	if d.Dashboard.App.Session() == nil {
		if d.Prompter == nil {
			return app.ErrNotLoggedIn
		}
		a := auth.Auth{App: d.Dashboard.App, Prompter: d.Prompter}
		if err := a.Do(ctx); err != nil {
			if errors.Is(err, auth.ErrQuit) || errors.Is(err, prompt.ErrCancelled) {
				return nil
			}
			return err
		}
	}
	if d.Dashboard.Analyzer == nil && d.LoadAnalyzer != nil {
		analyzer, err := d.LoadAnalyzer(ctx)
		if err != nil {
			return err
		}
		d.Dashboard.Analyzer = analyzer
	}
	return d.Dashboard.Do(ctx)
}
