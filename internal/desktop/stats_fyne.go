//go:build fyne

package desktop

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/rpgshelf/shelf/internal/stats"
)

// statsPanel is the statistics tab. Each card shows its own error.
type statsPanel struct {
	w    *window
	year string

	yearSel *widget.Select
	perYear *fyne.Container
	primary *fyne.Container
	systems *fyne.Container
	cards   [3]*widget.Card
}

func newStatsPanel(w *window) *statsPanel {
	return &statsPanel{w: w}
}

func (s *statsPanel) content() fyne.CanvasObject {
	s.yearSel = widget.NewSelect(nil, func(y string) {
		if y != s.year {
			s.year = y
			s.refresh()
		}
	})
	s.perYear, s.primary, s.systems = container.NewVBox(), container.NewVBox(), container.NewVBox()
	s.cards = [3]*widget.Card{
		widget.NewCard("Sessions per year", "", s.perYear),
		widget.NewCard("Primary user", "", s.primary),
		widget.NewCard("Systems", "", s.systems),
	}
	top := container.NewHBox(widget.NewLabel("Year:"), s.yearSel)
	body := container.NewGridWithColumns(3, s.cards[0], s.cards[1], s.cards[2])
	return container.NewBorder(top, nil, nil, nil, container.NewVScroll(body))
}

func bar(label string, value, total int, note string) fyne.CanvasObject {
	p := widget.NewProgressBar()
	if total > 0 {
		p.SetValue(float64(value) / float64(total))
	}
	p.TextFormatter = func() string { return fmt.Sprintf("%d %s", value, note) }
	return container.NewBorder(nil, nil, widget.NewLabel(label), nil, p)
}

func errorLabel(err error) fyne.CanvasObject {
	l := widget.NewLabel("Error: " + err.Error())
	l.Importance = widget.DangerImportance
	l.Wrapping = fyne.TextWrapWord
	return l
}

// refresh recomputes the dashboard for the selected year.
func (s *statsPanel) refresh() {
	d := stats.Compute(s.w.ctx, s.w.opts.Stats, s.year, s.w.logger)
	s.year = d.Year
	s.yearSel.Options = d.Years
	s.yearSel.SetSelected(d.Year)

	s.perYear.RemoveAll()
	if d.PerYear.Err != nil {
		s.perYear.Add(errorLabel(d.PerYear.Err))
	} else {
		for _, y := range d.PerYear.Years {
			s.perYear.Add(bar(y.Year, y.Count, d.PerYear.Total, fmt.Sprintf("(%.1f%%)", y.Percent)))
		}
		s.cards[0].SetSubTitle(d.PerYear.Summary())
	}

	s.primary.RemoveAll()
	if d.Primary.Err != nil {
		s.primary.Add(errorLabel(d.Primary.Err))
	} else {
		s.cards[1].SetTitle("Primary user: " + d.Primary.Nickname)
		for _, y := range d.Primary.Years {
			total := y.AsGM + y.AsPlayer
			s.primary.Add(bar(y.Year+" GM", y.AsGM, total, fmt.Sprintf("(%.1f%%)", y.GMPercent)))
			s.primary.Add(bar(y.Year+" player", y.AsPlayer, total, fmt.Sprintf("(%.1f%%)", y.PlayerPercent)))
		}
		all := d.Primary.TotalGM + d.Primary.TotalPlayer
		s.primary.Add(bar("All time GM", d.Primary.TotalGM, all, fmt.Sprintf("(%.1f%%)", d.Primary.GMPercent)))
		s.primary.Add(bar("All time player", d.Primary.TotalPlayer, all, fmt.Sprintf("(%.1f%%)", d.Primary.PlayerPercent)))
		s.cards[1].SetSubTitle(d.Primary.Summary())
	}

	s.systems.RemoveAll()
	if d.Systems.Err != nil {
		s.systems.Add(errorLabel(d.Systems.Err))
	} else {
		s.cards[2].SetTitle("Systems in " + d.Systems.Year)
		for _, c := range d.Systems.Systems {
			s.systems.Add(bar(c.Name, c.Count, d.Systems.Total, ""))
		}
		s.cards[2].SetSubTitle(d.Systems.Summary())
	}
}
