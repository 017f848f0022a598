// Package export renders a journal to a paginated A4 PDF: the mood chart
// on the first page followed by one card per entry.
package export

// Page geometry in millimetres.
const (
	PageWidth    = 210.0
	PageHeight   = 297.0
	Margin       = 15.0
	ContentTop   = 25.0
	ContentWidth = PageWidth - 2*Margin

	chartGap = 10.0
	cardGap  = 5.0
)

// Lines holds the wrapped text of one entry card.
type Lines struct {
	Text       []string
	Feedback   []string
	Suggestion []string
}

// CardHeight is the vertical space a card takes, including its bottom
// padding.
func CardHeight(l Lines) float64 {
	text := 0.0
	if len(l.Text) > 0 {
		text = float64(len(l.Text))*5 + 5
	}
	return 25 + text + 5 + float64(len(l.Feedback))*4 + float64(len(l.Suggestion))*4 + 10
}

// Placement positions one block on a page. Pages are numbered from 1.
type Placement struct {
	Page int
	Y    float64
}

// Plan is the result of Layout.
type Plan struct {
	// Chart is nil when the chart didn't fit on the first page.
	Chart *Placement
	Cards []Placement
	Pages int
}

// Layout places a chart of the given height and then cards of the given
// heights top to bottom, starting a new page before any card that would
// cross the bottom margin. A card taller than a page is placed at the top
// of its own page and overflows.
func Layout(chartHeight float64, cards []float64) Plan {
	bottom := PageHeight - Margin
	plan := Plan{Pages: 1, Cards: make([]Placement, len(cards))}
	y := ContentTop

	if chartHeight > 0 && y+chartHeight <= bottom {
		plan.Chart = &Placement{Page: 1, Y: y}
		y += chartHeight + chartGap
	}

	for i, h := range cards {
		if y+h > bottom && y > ContentTop {
			plan.Pages++
			y = ContentTop
		}
		plan.Cards[i] = Placement{Page: plan.Pages, Y: y}
		y += h + cardGap
	}
	return plan
}
