// Package render draws catalog grids and statistics for the terminal.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/rpgshelf/shelf/internal/stats"
	"github.com/rpgshelf/shelf/internal/theme"
)

// MaxCellWidth bounds every table cell; longer text is cut with an ellipsis.
const MaxCellWidth = 40

// Row is a grid line that knows its cells and color.
type Row interface {
	Cells() []string
	Tone() theme.Tone
}

// Table renders rows under headers, coloring each row by its tone.
func Table[R Row](headers []string, rows []R, p theme.Palette) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = truncateAll(r.Cells())
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1).
		Foreground(lipgloss.Color(p.Foreground)).
		Background(lipgloss.Color(p.Group))
	base := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(p.Foreground))).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if row < 0 || row >= len(rows) {
				return base
			}
			pair, ok := theme.Colors(rows[row].Tone(), p.Dark)
			if !ok {
				return base
			}
			s := base.Background(lipgloss.Color(pair.BG))
			if pair.FG != "" {
				s = s.Foreground(lipgloss.Color(pair.FG))
			}
			return s
		})
	return t.String()
}

func truncateAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = ansi.Truncate(c, MaxCellWidth, "…")
	}
	return out
}

// Bar is one line of a horizontal bar chart.
type Bar struct {
	Label string
	Value int
	Note  string // Printed after the bar, e.g. a percentage.
}

// Bars draws a horizontal bar chart. The longest bar is width cells wide.
func Bars(bars []Bar, width int, color string) string {
	if len(bars) == 0 {
		return ""
	}
	labelWidth, top := 0, 0
	for _, b := range bars {
		labelWidth = max(labelWidth, ansi.StringWidth(b.Label))
		top = max(top, b.Value)
	}
	labelWidth = min(labelWidth, MaxCellWidth)
	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(color))

	var sb strings.Builder
	for _, b := range bars {
		label := ansi.Truncate(b.Label, labelWidth, "…")
		pad := strings.Repeat(" ", labelWidth-ansi.StringWidth(label))
		n := 0
		if top > 0 {
			n = int(math.Round(float64(b.Value) / float64(top) * float64(width)))
		}
		if n == 0 && b.Value > 0 {
			n = 1
		}
		fmt.Fprintf(&sb, "%s%s │%s %d", label, pad, fill.Render(strings.Repeat("█", n)), b.Value)
		if b.Note != "" {
			sb.WriteString(" " + b.Note)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// BarWidth is the width of the longest statistics bar.
const BarWidth = 30

// Dashboard renders the three statistics panels. A panel whose report
// failed shows its error in place of its chart.
func Dashboard(d stats.Dashboard, p theme.Palette) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Link))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(p.DeleteText))
	accent := p.AddText

	var sb strings.Builder
	panel := func(name string, err error, body func()) {
		sb.WriteString(title.Render(name) + "\n")
		if err != nil {
			sb.WriteString(errStyle.Render("Error: "+err.Error()) + "\n\n")
			return
		}
		body()
		sb.WriteString("\n")
	}

	panel("Sessions per year", d.PerYear.Err, func() {
		bars := make([]Bar, len(d.PerYear.Years))
		for i, y := range d.PerYear.Years {
			bars[i] = Bar{Label: y.Year, Value: y.Count, Note: fmt.Sprintf("(%.1f%%)", y.Percent)}
		}
		sb.WriteString(Bars(bars, BarWidth, accent))
		sb.WriteString(d.PerYear.Summary() + "\n")
	})

	panel("Primary user", d.Primary.Err, func() {
		sb.WriteString("Nick: " + d.Primary.Nickname + "\n")
		if len(d.Primary.Years) == 0 {
			fmt.Fprintf(&sb, "%s has no sessions yet\n", d.Primary.Nickname)
			return
		}
		for _, y := range d.Primary.Years {
			fmt.Fprintf(&sb, "%s: GM %d (%.1f%%)  Player %d (%.1f%%)\n",
				y.Year, y.AsGM, y.GMPercent, y.AsPlayer, y.PlayerPercent)
		}
		fmt.Fprintf(&sb, "All time: GM %d (%.1f%%)  Player %d (%.1f%%)\n",
			d.Primary.TotalGM, d.Primary.GMPercent, d.Primary.TotalPlayer, d.Primary.PlayerPercent)
	})

	panel("Systems in "+d.Year, d.Systems.Err, func() {
		bars := make([]Bar, len(d.Systems.Systems))
		for i, s := range d.Systems.Systems {
			bars[i] = Bar{Label: s.Name, Value: s.Count}
		}
		sb.WriteString(Bars(bars, BarWidth, accent))
		sb.WriteString(d.Systems.Summary() + "\n")
	})
	return strings.TrimRight(sb.String(), "\n") + "\n"
}
