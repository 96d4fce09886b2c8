// Package stats aggregates sessions into the reports shown on the
// statistics tab: sessions per year, the primary user's game master and
// player counts, and the systems played in a chosen year.
package stats

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rpgshelf/shelf/internal/catalog"
	"github.com/rpgshelf/shelf/pkg/types"
)

// Source is the part of a Catalog the reports read from.
type Source interface {
	Sessions() types.SessionStore
	Players() types.PlayerStore
	Systems() types.SystemStore
}

// ParseYear extracts the year from a session date. DD.MM.YYYY yields the
// third part and YYYY-MM-DD the first; anything else yields "".
func ParseYear(date string) string {
	var parts []string
	switch {
	case strings.Contains(date, "."):
		parts = strings.Split(date, ".")
		if len(parts) == 3 {
			return strings.TrimSpace(parts[2])
		}
	case strings.Contains(date, "-"):
		parts = strings.Split(date, "-")
		if len(parts) == 3 {
			return strings.TrimSpace(parts[0])
		}
	}
	return ""
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// descending sorts years newest first.
func descending(years []string) {
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
}

// YearCount is one bar of the sessions per year chart.
type YearCount struct {
	Year    string
	Count   int
	Percent float64
}

// Label renders the bar caption, e.g. "2024: 12 sessions (40.0%)".
func (y YearCount) Label() string {
	return fmt.Sprintf("%s: %d sessions (%.1f%%)", y.Year, y.Count, y.Percent)
}

// PerYearReport counts sessions per year, newest first.
type PerYearReport struct {
	Years []YearCount
	Total int
	Err   error
}

// Summary renders the report footer.
func (r PerYearReport) Summary() string {
	return fmt.Sprintf("%d sessions in %d years", r.Total, len(r.Years))
}

// SessionsPerYear counts sessions by ParseYear. Sessions without a
// parseable year are left out of the counts and the total.
func SessionsPerYear(sessions []*types.Session) PerYearReport {
	counts := make(map[string]int)
	total := 0
	for _, s := range sessions {
		if y := ParseYear(s.Date); y != "" {
			counts[y]++
			total++
		}
	}
	years := make([]string, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	descending(years)

	r := PerYearReport{Total: total}
	for _, y := range years {
		r.Years = append(r.Years, YearCount{Year: y, Count: counts[y], Percent: percent(counts[y], total)})
	}
	return r
}

// AvailableYears lists the years that have sessions, newest first.
func AvailableYears(sessions []*types.Session) []string {
	seen := make(map[string]bool)
	var years []string
	for _, s := range sessions {
		if y := ParseYear(s.Date); y != "" && !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	descending(years)
	return years
}

// RoleYear splits one year of the primary user's sessions by role.
type RoleYear struct {
	Year          string
	AsGM          int
	AsPlayer      int
	GMPercent     float64
	PlayerPercent float64
}

// PrimaryReport is the primary user's game master and player history.
// The totals and their percentages cover all years.
type PrimaryReport struct {
	Nickname      string
	Years         []RoleYear
	TotalGM       int
	TotalPlayer   int
	GMPercent     float64
	PlayerPercent float64
	Err           error
}

// Summary renders the all-time footer.
func (r PrimaryReport) Summary() string {
	return fmt.Sprintf("%d sessions as GM (%.1f%%), %d sessions as player (%.1f%%)",
		r.TotalGM, r.GMPercent, r.TotalPlayer, r.PlayerPercent)
}

// Year returns the split for year, or false when the user has no sessions
// that year.
func (r PrimaryReport) Year(year string) (RoleYear, bool) {
	for _, y := range r.Years {
		if y.Year == year {
			return y, true
		}
	}
	return RoleYear{}, false
}

// PrimaryUserReport counts the sessions primary ran as game master and
// played in, per year. Percentages are of that year's total for the user.
// A nil primary reports ErrNoPrimaryUser.
func PrimaryUserReport(sessions []*types.Session, primary *types.Player) PrimaryReport {
	if primary == nil {
		return PrimaryReport{Err: types.ErrNoPrimaryUser}
	}
	gm := make(map[string]int)
	played := make(map[string]int)
	for _, s := range sessions {
		y := ParseYear(s.Date)
		if y == "" {
			continue
		}
		if s.GMID != nil && *s.GMID == primary.ID {
			gm[y]++
		}
		for _, id := range s.PlayerIDs {
			if id == primary.ID {
				played[y]++
				break
			}
		}
	}

	var years []string
	seen := make(map[string]bool)
	for _, m := range []map[string]int{gm, played} {
		for y := range m {
			if !seen[y] {
				seen[y] = true
				years = append(years, y)
			}
		}
	}
	descending(years)

	r := PrimaryReport{Nickname: primary.Nickname}
	for _, y := range years {
		total := gm[y] + played[y]
		r.Years = append(r.Years, RoleYear{
			Year:          y,
			AsGM:          gm[y],
			AsPlayer:      played[y],
			GMPercent:     percent(gm[y], total),
			PlayerPercent: percent(played[y], total),
		})
		r.TotalGM += gm[y]
		r.TotalPlayer += played[y]
	}
	r.GMPercent = percent(r.TotalGM, r.TotalGM+r.TotalPlayer)
	r.PlayerPercent = percent(r.TotalPlayer, r.TotalGM+r.TotalPlayer)
	return r
}

// SystemCount is one bar of the systems per year chart.
type SystemCount struct {
	Name  string
	Count int
}

// SystemsReport counts the sessions of one year by system.
type SystemsReport struct {
	Year    string
	Systems []SystemCount
	Total   int
	Err     error
}

// Summary renders the report footer.
func (r SystemsReport) Summary() string {
	if r.Total == 0 {
		return fmt.Sprintf("No sessions in %s", r.Year)
	}
	return fmt.Sprintf("%d sessions in %d systems", r.Total, len(r.Systems))
}

// SystemsForYear counts the sessions of year by system name, most played
// first. A system that no longer resolves is counted under a placeholder.
func SystemsForYear(ctx context.Context, sessions []*types.Session, systems types.NameResolver, year string) SystemsReport {
	if year == "" {
		return SystemsReport{Err: types.ErrNoYear}
	}
	counts := make(map[string]int)
	total := 0
	for _, s := range sessions {
		if ParseYear(s.Date) != year || s.SystemID == nil {
			continue
		}
		counts[catalog.ResolveName(ctx, systems, s.SystemID, catalog.SystemPlaceholder)]++
		total++
	}

	r := SystemsReport{Year: year, Total: total}
	for name, n := range counts {
		r.Systems = append(r.Systems, SystemCount{Name: name, Count: n})
	}
	sort.Slice(r.Systems, func(i, j int) bool {
		if r.Systems[i].Count != r.Systems[j].Count {
			return r.Systems[i].Count > r.Systems[j].Count
		}
		return r.Systems[i].Name < r.Systems[j].Name
	})
	return r
}

// Dashboard holds every report of the statistics tab. Each report carries
// its own error, so one failing panel never hides the others.
type Dashboard struct {
	Years   []string
	Year    string
	PerYear PerYearReport
	Primary PrimaryReport
	Systems SystemsReport
}

// Compute builds the dashboard. When year is blank the newest year with
// sessions is used.
func Compute(ctx context.Context, src Source, year string, logger *zap.Logger) Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	var d Dashboard

	sessions, err := src.Sessions().List(ctx)
	if err != nil {
		err = fmt.Errorf("listing sessions: %w", err)
		logger.Warn("statistics unavailable", zap.Error(err))
		d.PerYear.Err = err
		d.Primary.Err = err
		d.Systems.Err = err
		return d
	}

	d.Years = AvailableYears(sessions)
	d.Year = year
	if d.Year == "" && len(d.Years) > 0 {
		d.Year = d.Years[0]
	}
	d.PerYear = SessionsPerYear(sessions)

	primary, err := src.Players().Primary(ctx)
	switch {
	case errors.Is(err, types.ErrNotFound):
		d.Primary = PrimaryUserReport(sessions, nil)
	case err != nil:
		logger.Warn("primary user report failed", zap.Error(err))
		d.Primary.Err = fmt.Errorf("loading primary user: %w", err)
	default:
		d.Primary = PrimaryUserReport(sessions, primary)
	}

	d.Systems = SystemsForYear(ctx, sessions, src.Systems(), d.Year)
	return d
}
