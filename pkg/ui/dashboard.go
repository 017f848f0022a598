// Package ui is the full-screen terminal dashboard: the entry list, the
// mood trend, the selected entry and a one line entry form.
package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcusolsson/tui-go"
	"go.uber.org/zap"

	"tableflip.dev/thrivesense/pkg/analysis"
	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/capture"
	"tableflip.dev/thrivesense/pkg/entry"
	"tableflip.dev/thrivesense/pkg/export"
	"tableflip.dev/thrivesense/pkg/speech"
	"tableflip.dev/thrivesense/pkg/store"
	"tableflip.dev/thrivesense/pkg/timeutil"
)

const help = `'n' write, Enter submit, '[' ']' sleep, '-' '=' stress, 'd' dictate, 'x' export, 'o' log out, ESC or 'q' to QUIT`

// Dashboard shows the logged in account's journal.
type Dashboard struct {
	App      *app.Service
	Analyzer analysis.Analyzer
	// Recognizer returns a fresh recognizer per dictation. Nil means speech
	// capture is unavailable.
	Recognizer func() speech.Recognizer
	Exporter   *export.Exporter
	Log        *zap.Logger
}

type impl struct {
	*Dashboard
	ctx  context.Context
	ui   tui.UI
	form *capture.Form

	username  string
	email     string
	entries   []*entry.Entry
	composing bool
	filling   bool

	table    *tui.Table
	list     *tui.Box
	chart    *tui.Label
	detail   *tui.Label
	input    *tui.Entry
	formLine *tui.Label
	status   *tui.StatusBar
}

func (d *Dashboard) Do(ctx context.Context) error {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	a := d.App.Session()
	if a == nil {
		return app.ErrNotLoggedIn
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	x := &impl{Dashboard: d, ctx: ctx, username: a.Username, email: a.Email}

	x.table = tui.NewTable(1, 0)
	x.table.SetFocused(true)
	x.list = tui.NewVBox(x.table, tui.NewSpacer())
	x.list.SetBorder(true)
	x.list.SetTitle("Journal")
	x.list.SetSizePolicy(tui.Preferred, tui.Expanding)

	x.chart = tui.NewLabel("")
	chartView := tui.NewVBox(x.chart)
	chartView.SetBorder(true)
	chartView.SetTitle("Mood Trend")

	x.detail = tui.NewLabel("")
	x.detail.SetWordWrap(true)
	detailView := tui.NewVBox(x.detail, tui.NewSpacer())
	detailView.SetBorder(true)
	detailView.SetSizePolicy(tui.Expanding, tui.Expanding)

	x.input = tui.NewEntry()
	x.input.SetSizePolicy(tui.Expanding, tui.Maximum)
	x.formLine = tui.NewLabel("")
	inputView := tui.NewVBox(tui.NewHBox(tui.NewLabel("How are you feeling? "), x.input), x.formLine)
	inputView.SetBorder(true)
	inputView.SetTitle("New entry")

	x.status = tui.NewStatusBar("")
	x.status.SetPermanentText(help)

	root := tui.NewVBox(
		tui.NewHBox(x.list, tui.NewVBox(chartView, detailView)),
		inputView,
		x.status,
	)

	ui, err := tui.New(root)
	if err != nil {
		return err
	}
	ui.SetTheme(theme())
	x.ui = ui

	x.form, err = d.App.NewForm(d.Analyzer, capture.WithOnChange(func(s capture.Snapshot) {
		ui.Update(func() {
			x.input.SetText(s.Text)
			x.formLine.SetText(formStatus(s))
		})
	}))
	if err != nil {
		return err
	}
	defer func() { _ = x.form.StopRecording() }()

	x.table.OnSelectionChanged(func(*tui.Table) {
		if !x.filling {
			x.renderSelection()
		}
	})
	x.input.OnChanged(func(e *tui.Entry) { x.form.SetText(e.Text()) })
	x.input.OnSubmit(func(*tui.Entry) { x.submit() })

	x.bind("n", x.compose)
	x.bind("[", func() { x.adjustSleep(-0.5) })
	x.bind("]", func() { x.adjustSleep(0.5) })
	x.bind("-", func() { x.adjustStress(-1) })
	x.bind("=", func() { x.adjustStress(1) })
	x.bind("d", x.toggleDictation)
	x.bind("x", x.export)
	x.bind("o", x.logout)
	x.bind("q", ui.Quit)
	ui.SetKeybinding("Esc", func() {
		if x.composing {
			x.browse()
			return
		}
		ui.Quit()
	})

	if err := x.reload(); err != nil {
		return err
	}
	x.renderForm()
	x.watch()

	return ui.Run()
}

// bind registers a key that only acts while browsing, so it can still be
// typed into the entry form.
func (x *impl) bind(key string, fn func()) {
	x.ui.SetKeybinding(key, func() {
		if !x.composing {
			fn()
		}
	})
}

func (x *impl) compose() {
	x.composing = true
	x.table.SetFocused(false)
	x.input.SetFocused(true)
}

func (x *impl) browse() {
	x.composing = false
	x.input.SetFocused(false)
	x.table.SetFocused(true)
}

func (x *impl) reload() error {
	entries, err := x.App.Entries(x.ctx, timeutil.Window{})
	if err != nil {
		return err
	}
	x.entries = entries
	x.renderRows()
	return nil
}

func (x *impl) renderRows() {
	selected := x.table.Selected()
	v := buildView(x.username, x.entries, selected, x.form.Snapshot())

	x.filling = true
	x.table.RemoveRows()
	for i, row := range v.Rows {
		l := tui.NewLabel(row)
		l.SetStyleName(v.Styles[i])
		x.table.AppendRow(l)
	}
	switch {
	case len(v.Rows) == 0:
		x.table.Select(-1)
	case selected < 0 || selected >= len(v.Rows):
		x.table.Select(0)
	default:
		x.table.Select(selected)
	}
	x.filling = false

	x.list.SetTitle(fmt.Sprintf("Journal (%d)", len(v.Rows)))
	x.renderSelection()
}

func (x *impl) renderSelection() {
	v := buildView(x.username, x.entries, x.table.Selected(), x.form.Snapshot())
	x.chart.SetText(v.Chart)
	x.detail.SetText(v.Detail)
	x.status.SetText(v.Tooltip)
}

func (x *impl) renderForm() {
	x.formLine.SetText(formStatus(x.form.Snapshot()))
}

func (x *impl) adjustSleep(delta float64) {
	if err := x.form.SetSleepHours(x.form.Snapshot().SleepHours + delta); err == nil {
		x.renderForm()
	}
}

func (x *impl) adjustStress(delta int) {
	if err := x.form.SetStressLevel(x.form.Snapshot().StressLevel + delta); err == nil {
		x.renderForm()
	}
}

func (x *impl) submit() {
	snap := x.form.Snapshot()
	if snap.State == capture.Submitting {
		return
	}
	snap.State = capture.Submitting
	x.formLine.SetText(formStatus(snap))

	go func() {
		e, err := x.form.Submit(x.ctx)
		x.ui.Update(func() {
			if err != nil {
				x.Log.Debug("submit failed", zap.Error(err))
				x.renderForm()
				return
			}
			x.input.SetText(x.form.Snapshot().Text)
			x.browse()
			if err := x.reload(); err != nil {
				x.status.SetText(err.Error())
			}
			x.table.Select(0)
			x.renderForm()
			x.status.SetText("Saved: " + e.Mood())
		})
	}()
}

func (x *impl) toggleDictation() {
	if x.form.Recording() {
		go func() { _ = x.form.StopRecording() }()
		return
	}
	var r speech.Recognizer
	if x.Recognizer != nil {
		r = x.Recognizer()
	}
	if err := x.form.StartRecording(x.ctx, r); err != nil {
		if errors.Is(err, speech.ErrUnavailable) {
			x.status.SetText("Speech recognition is not available, set --dictate-cmd")
			return
		}
		x.status.SetText(err.Error())
		return
	}
	x.renderForm()
}

func (x *impl) export() {
	if x.Exporter == nil {
		return
	}
	entries := x.entries
	x.status.SetText("Exporting...")
	go func() {
		err := x.Exporter.WriteFile(x.ctx, export.DefaultFilename, export.Journal{Username: x.username, Entries: entries})
		x.ui.Update(func() {
			if err != nil {
				x.status.SetText("Export failed: " + err.Error())
				return
			}
			x.status.SetText("Exported to " + export.DefaultFilename)
		})
	}()
}

func (x *impl) logout() {
	if err := x.App.Logout(x.ctx); err != nil {
		x.status.SetText(err.Error())
		return
	}
	x.ui.Quit()
}

// watch refreshes the dashboard when another process writes the journal
// or changes the session.
func (x *impl) watch() {
	events, err := x.App.Watch(x.ctx)
	if err != nil {
		x.Log.Warn("not watching for journal changes", zap.Error(err))
		return
	}
	go func() {
		for ev := range events {
			switch ev.Type {
			case store.EventSessionChanged:
				a, err := x.App.Load(x.ctx)
				if err == nil && (a == nil || a.Email != x.email) {
					x.ui.Update(x.ui.Quit)
					return
				}
			default:
				x.ui.Update(func() {
					if err := x.reload(); err != nil {
						x.Log.Warn("reload failed", zap.Error(err))
					}
				})
			}
		}
	}()
}

func theme() *tui.Theme {
	t := tui.NewTheme()
	t.SetStyle("label.good", tui.Style{Fg: tui.ColorGreen})
	t.SetStyle("label.fair", tui.Style{Fg: tui.ColorYellow})
	t.SetStyle("label.low", tui.Style{Fg: tui.ColorRed})
	t.SetStyle("table.cell.selected", tui.Style{Bg: tui.ColorWhite, Fg: tui.ColorBlack})
	return t
}
