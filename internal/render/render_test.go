package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/rpgshelf/shelf/internal/catalog"
	"github.com/rpgshelf/shelf/internal/stats"
	"github.com/rpgshelf/shelf/internal/theme"
	"github.com/rpgshelf/shelf/pkg/types"
)

func TestTable(t *testing.T) {
	rows := []catalog.PublisherRow{
		{ID: 1, Name: "Chaosium", Website: "https://chaosium.com", Country: "US"},
		{ID: 2, Name: strings.Repeat("x", 60)},
	}
	out := ansi.Strip(Table(catalog.PublisherColumns, rows, theme.Light()))

	for _, want := range []string{"ID", "Name", "Website", "Country", "Chaosium", "https://chaosium.com"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, strings.Repeat("x", 60), "long cells are truncated")
	assert.Contains(t, out, strings.Repeat("x", MaxCellWidth-1)+"…")
}

func TestTable_Empty(t *testing.T) {
	out := ansi.Strip(Table(catalog.SessionColumns, []catalog.SessionRow{}, theme.DarkPalette()))
	assert.Contains(t, out, "Players")
}

func TestBars(t *testing.T) {
	out := ansi.Strip(Bars([]Bar{
		{Label: "2024", Value: 10, Note: "(66.7%)"},
		{Label: "2023", Value: 5},
		{Label: "2022", Value: 0},
	}, 20, "#00aa00"))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, 20, strings.Count(lines[0], "█"))
	assert.Equal(t, 10, strings.Count(lines[1], "█"))
	assert.Equal(t, 0, strings.Count(lines[2], "█"))
	assert.True(t, strings.HasSuffix(lines[0], "10 (66.7%)"))

	assert.Empty(t, Bars(nil, 20, "#000000"))
}

func TestBars_SmallValuesStayVisible(t *testing.T) {
	out := ansi.Strip(Bars([]Bar{{Label: "a", Value: 1000}, {Label: "b", Value: 1}}, 10, "#000000"))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, 1, strings.Count(lines[1], "█"))
}

func TestDashboard(t *testing.T) {
	d := stats.Dashboard{
		Year:    "2024",
		PerYear: stats.PerYearReport{Years: []stats.YearCount{{Year: "2024", Count: 3, Percent: 100}}, Total: 3},
		Primary: stats.PrimaryReport{Err: types.ErrNoPrimaryUser},
		Systems: stats.SystemsReport{Year: "2024", Systems: []stats.SystemCount{{Name: "Alien", Count: 3}}, Total: 3},
	}
	out := ansi.Strip(Dashboard(d, theme.Light()))

	assert.Contains(t, out, "Sessions per year")
	assert.Contains(t, out, "3 sessions in 1 years")
	assert.Contains(t, out, "Error: "+types.ErrNoPrimaryUser.Error())
	assert.Contains(t, out, "Systems in 2024")
	assert.Contains(t, out, "3 sessions in 1 systems")

	d.Primary = stats.PrimaryReport{
		Nickname:      "me",
		Years:         []stats.RoleYear{{Year: "2024", AsGM: 1, AsPlayer: 3, GMPercent: 25, PlayerPercent: 75}},
		TotalGM:       1,
		TotalPlayer:   3,
		GMPercent:     25,
		PlayerPercent: 75,
	}
	out = ansi.Strip(Dashboard(d, theme.Light()))
	assert.Contains(t, out, "2024: GM 1 (25.0%)  Player 3 (75.0%)")
	assert.Contains(t, out, "All time: GM 1 (25.0%)  Player 3 (75.0%)")
}
