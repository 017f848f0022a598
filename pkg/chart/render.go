package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	lineColor = "f59e0b"
	axisColor = "475569"
	gridColor = "334155"
	textColor = "94a3b8"
)

// RenderPNG draws the trend as a 500x200 PNG.
func (t *Trend) RenderPNG(w io.Writer) error {
	xs := make([]float64, len(t.Points))
	ys := t.Scores()
	for i := range t.Points {
		xs[i] = float64(i)
	}

	var xTicks []gochart.Tick
	for _, l := range t.Labels() {
		xTicks = append(xTicks, gochart.Tick{Value: float64(l.Index), Label: l.Text})
	}
	var yTicks []gochart.Tick
	var grid []gochart.GridLine
	for _, v := range Ticks {
		yTicks = append(yTicks, gochart.Tick{Value: v, Label: fmt.Sprintf("%g", v)})
		grid = append(grid, gochart.GridLine{Value: v})
	}

	axisStyle := gochart.Style{
		StrokeColor: drawing.ColorFromHex(axisColor),
		FontColor:   drawing.ColorFromHex(textColor),
		FontSize:    8,
	}
	graph := gochart.Chart{
		Width:  Width,
		Height: Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: MarginTop, Right: MarginRight, Bottom: MarginBottom, Left: MarginLeft},
		},
		XAxis: gochart.XAxis{
			Style: axisStyle,
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(len(xs) - 1)},
			Ticks: xTicks,
		},
		YAxis: gochart.YAxis{
			Style: axisStyle,
			Range: &gochart.ContinuousRange{Min: MinScore, Max: MaxScore},
			Ticks: yTicks,
			GridMajorStyle: gochart.Style{
				StrokeColor:     drawing.ColorFromHex(gridColor),
				StrokeWidth:     1,
				StrokeDashArray: []float64{2, 2},
			},
			GridLines: grid,
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Mood",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: drawing.ColorFromHex(lineColor),
					StrokeWidth: 2,
					DotColor:    drawing.ColorFromHex(lineColor),
					DotWidth:    3,
				},
			},
		},
	}
	return graph.Render(gochart.PNG, w)
}

// textRows is the plot height of the terminal rendering, one row per score.
const textRows = MaxScore - MinScore + 1

// RenderText draws the trend for a terminal, one column per entry. The
// point at index selected is highlighted; pass -1 for none.
func (t *Trend) RenderText(w io.Writer, selected int) error {
	n := len(t.Points)
	colWidth := 3
	var b strings.Builder

	b.WriteString("Mood Trend\n")
	for row := 0; row < textRows; row++ {
		level := float64(MaxScore - row)
		label := "  "
		for _, tick := range Ticks {
			if tick == level {
				label = fmt.Sprintf("%2g", tick)
			}
		}
		b.WriteString(label + " |")
		for i, p := range t.Points {
			cell := strings.Repeat(" ", colWidth)
			if math.Round(p.Score) == level {
				cell = " ● "
				if i == selected {
					cell = " ◉ "
				}
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}
	b.WriteString("   +" + strings.Repeat("-", n*colWidth) + "\n")

	var axis strings.Builder
	for _, l := range t.Labels() {
		// Labels never overlap; a crowded one is pushed right.
		if pad := l.Index*colWidth - axis.Len(); pad > 0 {
			axis.WriteString(strings.Repeat(" ", pad))
		} else if axis.Len() > 0 {
			axis.WriteString(" ")
		}
		axis.WriteString(l.Text)
	}
	b.WriteString("    " + axis.String() + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Placeholder is what is shown in place of a trend with too few entries.
func Placeholder() string {
	return "Need at least two entries to display mood trend."
}
