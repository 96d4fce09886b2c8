package cli

import (
	"github.com/spf13/cobra"

	"github.com/rpgshelf/shelf/internal/desktop"
)

func newGUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop window",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, a)
		},
	}
}

func runGUI(cmd *cobra.Command, a *app) error {
	if !desktop.Available {
		return desktop.ErrNotBuilt
	}
	if err := a.open(cmd.Context()); err != nil {
		return err
	}
	return desktop.Run(cmd.Context(), desktop.Options{
		Service:  a.svc,
		Stats:    a.backend,
		Shell:    a.shell,
		Settings: a.settings,
		DataDir:  a.dataDir,
		Report:   a.report,
		Logger:   a.logger,
	})
}
