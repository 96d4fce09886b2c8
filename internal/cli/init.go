package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rpgshelf/shelf/internal/config"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize shelf storage",
		Long: "Create the configuration and data directories, migrate store files\n" +
			"left by older installs and stamp the schema version.",
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range a.report.Lines() {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintf(out, "Config: %s\n", filepath.Join(a.configDir, config.FileName))
			fmt.Fprintf(out, "Data directory: %s\n", a.dataDir)
			if !a.report.OK() {
				return fmt.Errorf("%d of the stores failed to bootstrap", len(a.report.Errors))
			}
			return nil
		},
	}
}
