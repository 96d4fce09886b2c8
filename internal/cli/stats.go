package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rpgshelf/shelf/internal/render"
	"github.com/rpgshelf/shelf/internal/stats"
)

// panelJSON is one statistics panel in --json output.
type panelJSON struct {
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func newPanelJSON(summary string, data any, err error) panelJSON {
	if err != nil {
		return panelJSON{Error: err.Error()}
	}
	return panelJSON{Summary: summary, Data: data}
}

func newStatsCmd(a *app) *cobra.Command {
	var year string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session statistics",
		Long: "Show sessions per year, the primary user's game master and player\n" +
			"counts, and the systems played in one year (the newest by default).",
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.Atoi(year); year != "" && (err != nil || len(year) != 4) {
				return usageErrorf("--year must be a four digit year, got %q", year)
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			d := stats.Compute(cmd.Context(), a.backend, year, a.logger)
			if !a.flags.jsonMode {
				fmt.Fprint(cmd.OutOrStdout(), render.Dashboard(d, a.shell.Palette()))
				return nil
			}
			return printJSON(cmd, map[string]any{
				"years":    d.Years,
				"year":     d.Year,
				"per_year": newPanelJSON(d.PerYear.Summary(), d.PerYear.Years, d.PerYear.Err),
				"primary":  newPanelJSON(d.Primary.Summary(), d.Primary.Years, d.Primary.Err),
				"systems":  newPanelJSON(d.Systems.Summary(), d.Systems.Systems, d.Systems.Err),
			})
		},
	}
	cmd.Flags().StringVar(&year, "year", "", "year for the systems panel")
	return cmd
}
