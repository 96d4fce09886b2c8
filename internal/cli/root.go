// Package cli implements the shelf command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpgshelf/shelf/internal/catalog"
	"github.com/rpgshelf/shelf/internal/desktop"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	dark      bool
}

// NewRootCmd creates the top-level "shelf" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "shelf",
		Short: "A catalog of tabletop RPG systems, sessions and players",
		Long: "Shelf keeps track of the RPG systems you own, the sessions you play,\n" +
			"the people you play with and the publishers behind the books.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.started = true
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !desktop.Available {
				return cmd.Help()
			}
			return runGUI(cmd, a)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: per-user config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory holding the store files")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVar(&a.flags.dark, "dark", false, "use the dark palette")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newAboutCmd(a))
	root.AddCommand(newChangelogCmd(a))
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newPublisherCmd(a))
	root.AddCommand(newPlayerCmd(a))
	root.AddCommand(newSystemCmd(a))
	root.AddCommand(newSessionCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newGUICmd(a))

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return exitCode(a, root.Execute())
}

// exitCode maps a command error to the process exit code. Errors raised
// before a command starts (unknown commands, bad flags, wrong argument
// counts) and rejected input are user errors; everything else is a
// system error.
func exitCode(a *app, err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case !a.started, catalog.IsUserError(err), errors.Is(err, errUsage):
		return exitUserError
	default:
		return exitSysError
	}
}

// errUsage marks malformed command input that cobra cannot catch on its own.
var errUsage = errors.New("invalid usage")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}
