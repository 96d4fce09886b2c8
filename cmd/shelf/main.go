// Command shelf catalogs tabletop RPG systems, play sessions, players and
// publishers. Without a subcommand it opens the desktop window when built
// with -tags fyne.
package main

import (
	"os"

	"github.com/rpgshelf/shelf/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
