package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgshelf/shelf/internal/release"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the shelf version",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "shelf v%s\nmodule: %s\n", release.Version, release.ModulePath)
			return nil
		},
	}
}

func newAboutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Show application information",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadSettings(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), release.About(release.AboutInfo{
				ScreenHeight: a.settings.ScreenHeight,
				Scale:        a.shell.Scale,
				DataDir:      a.dataDir,
			}))
			return nil
		},
	}
}

func newChangelogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "changelog",
		Short: "Show the release history",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := release.Changelog()
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd, entries)
			}
			out := cmd.OutOrStdout()
			for i, e := range entries {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s (%s)\n", e.Version, e.Date)
				for _, c := range e.Changes {
					fmt.Fprintf(out, "  - %s\n", strings.TrimSpace(c))
				}
			}
			return nil
		},
	}
}
