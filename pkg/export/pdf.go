package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"tableflip.dev/thrivesense/pkg/chart"
	"tableflip.dev/thrivesense/pkg/entry"
)

// DefaultFilename is used when no output path is given.
const DefaultFilename = "Thrivesense_Journal.pdf"

const (
	appTitle  = "Thrivesense Wellness Journal"
	chartName = "mood-trend"

	// chartHeight keeps the trend's 500x200 aspect ratio at content width.
	chartHeight = ContentWidth * chart.Height / chart.Width
	// placeholderHeight is used in place of the chart for short journals.
	placeholderHeight = 20.0
)

const (
	amber    = "f59e0b"
	slate100 = "e2e8f0"
	slate300 = "cbd5e1"
	slate400 = "94a3b8"
	slate500 = "64748b"
	slate700 = "334155"
	slate800 = "1e293b"
	green300 = "6ee7b7"
)

// Exporter writes journals as PDF documents.
type Exporter struct {
	Log *zap.Logger
}

// Journal is what gets exported.
type Journal struct {
	Username string
	// Entries are newest first, as stored.
	Entries []*entry.Entry
}

// WriteFile exports j to path.
func (x *Exporter) WriteFile(ctx context.Context, path string, j Journal) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := x.Write(ctx, f, j); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

// Write renders j as a PDF to w.
func (x *Exporter) Write(ctx context.Context, w io.Writer, j Journal) error {
	log := x.Log
	if log == nil {
		log = zap.NewNop()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(Margin, ContentTop, Margin)
	pdf.SetAutoPageBreak(false, Margin)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "", 10)
		setText(pdf, amber)
		pdf.Text(Margin, 15, appTitle)
		setText(pdf, slate400)
		user := tr("User: " + j.Username)
		pdf.Text(PageWidth-Margin-pdf.GetStringWidth(user), 15, user)
		setDraw(pdf, slate700)
		pdf.Line(Margin, 20, PageWidth-Margin, 20)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetFont("Helvetica", "", 8)
		setText(pdf, slate500)
		// {nb} becomes the page count when the document is closed.
		footer := fmt.Sprintf("Page %d of {nb}", pdf.PageNo())
		pdf.Text(PageWidth/2-pdf.GetStringWidth(footer)/2, PageHeight-10, footer)
	})

	cards := make([]Lines, len(j.Entries))
	heights := make([]float64, len(j.Entries))
	for i, e := range j.Entries {
		cards[i] = wrap(pdf, tr, e)
		heights[i] = CardHeight(cards[i])
	}

	trend, err := chart.New(j.Entries)
	blockHeight := chartHeight
	if err != nil {
		trend, blockHeight = nil, placeholderHeight
	}
	plan := Layout(blockHeight, heights)

	pdf.AddPage()
	if plan.Chart != nil {
		if trend != nil {
			var buf bytes.Buffer
			if err := trend.RenderPNG(&buf); err != nil {
				return fmt.Errorf("failed to render mood chart: %w", err)
			}
			pdf.RegisterImageOptionsReader(chartName, fpdf.ImageOptions{ImageType: "PNG"}, &buf)
			pdf.ImageOptions(chartName, Margin, plan.Chart.Y, ContentWidth, chartHeight, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		} else {
			drawPlaceholder(pdf, plan.Chart.Y)
		}
	} else {
		log.Warn("mood chart does not fit on the first page, skipping it")
	}

	page := 1
	for i, e := range j.Entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := plan.Cards[i]
		for page < p.Page {
			pdf.AddPage()
			page++
		}
		drawCard(pdf, tr, e, cards[i], p.Y, heights[i])
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build PDF: %w", err)
	}
	log.Debug("exported journal", zap.Int("entries", len(j.Entries)), zap.Int("pages", plan.Pages))
	return pdf.Output(w)
}

func wrap(pdf *fpdf.Fpdf, tr func(string) string, e *entry.Entry) Lines {
	var l Lines
	if e.TranscribedText != "" {
		pdf.SetFont("Helvetica", "I", 9)
		l.Text = pdf.SplitText(tr(`"`+e.TranscribedText+`"`), ContentWidth-10)
	}
	pdf.SetFont("Helvetica", "", 9)
	l.Feedback = pdf.SplitText(tr(e.Analysis.Feedback), ContentWidth-25)
	l.Suggestion = pdf.SplitText(tr(e.Analysis.ActivitySuggestion), ContentWidth-25)
	return l
}

func drawPlaceholder(pdf *fpdf.Fpdf, y float64) {
	setDraw(pdf, slate700)
	setFill(pdf, slate800)
	pdf.RoundedRect(Margin, y, ContentWidth, placeholderHeight, 3, "1234", "FD")
	pdf.SetFont("Helvetica", "", 10)
	setText(pdf, slate400)
	msg := chart.Placeholder()
	pdf.Text(PageWidth/2-pdf.GetStringWidth(msg)/2, y+placeholderHeight/2+1.5, msg)
}

func drawCard(pdf *fpdf.Fpdf, tr func(string) string, e *entry.Entry, l Lines, y, h float64) {
	left := Margin + 5
	right := PageWidth - Margin - 5

	setDraw(pdf, slate700)
	setFill(pdf, slate800)
	pdf.RoundedRect(Margin, y, ContentWidth, h-5, 3, "1234", "FD")

	cy := y + 10
	pdf.SetFont("Helvetica", "B", 11)
	setText(pdf, slate100)
	pdf.Text(left, cy, e.Date.Local().Format(entry.LayoutLong))

	pdf.SetFont("Helvetica", "", 9)
	setText(pdf, slate400)
	pdf.Text(left, cy+5, tr("AI Mood: "+e.Mood()))
	sleep := "Sleep: " + entry.FormatHours(e.SleepHours) + " hrs"
	stress := "Stress: " + strconv.Itoa(e.StressLevel) + "/10"
	pdf.Text(right-pdf.GetStringWidth(sleep), cy, sleep)
	pdf.Text(right-pdf.GetStringWidth(stress), cy+5, stress)

	cy += 15
	pdf.Line(left, cy, right, cy)
	cy += 10

	if len(l.Text) > 0 {
		pdf.SetFont("Helvetica", "I", 9)
		setText(pdf, slate300)
		for i, line := range l.Text {
			pdf.Text(left, cy+float64(i)*5, line)
		}
		cy += float64(len(l.Text))*5 + 5
	}

	setFill(pdf, slate700)
	boxHeight := float64(len(l.Feedback))*4 + float64(len(l.Suggestion))*4 + 10
	pdf.RoundedRect(left, cy-2, ContentWidth-10, boxHeight, 2, "1234", "F")

	pdf.SetFont("Helvetica", "B", 9)
	setText(pdf, slate100)
	pdf.Text(Margin+7, cy+3, "Feedback:")
	pdf.SetFont("Helvetica", "", 9)
	for i, line := range l.Feedback {
		pdf.Text(Margin+27, cy+3+float64(i)*4, line)
	}
	cy += float64(len(l.Feedback))*4 + 5

	pdf.SetFont("Helvetica", "B", 9)
	setText(pdf, green300)
	pdf.Text(Margin+7, cy, "Suggestion:")
	pdf.SetFont("Helvetica", "", 9)
	for i, line := range l.Suggestion {
		pdf.Text(Margin+27, cy+float64(i)*4, line)
	}
}

func rgb(hex string) (int, int, int) {
	v, _ := strconv.ParseUint(hex, 16, 32)
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

func setText(pdf *fpdf.Fpdf, hex string) { pdf.SetTextColor(rgb(hex)) }
func setDraw(pdf *fpdf.Fpdf, hex string) { pdf.SetDrawColor(rgb(hex)) }
func setFill(pdf *fpdf.Fpdf, hex string) { pdf.SetFillColor(rgb(hex)) }
