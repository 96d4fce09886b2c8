// Package desktop runs the shelf window. The Fyne implementation is only
// compiled with the fyne build tag; without it Run returns ErrNotBuilt.
package desktop

import (
	"errors"

	"go.uber.org/zap"

	"github.com/rpgshelf/shelf/internal/catalog"
	"github.com/rpgshelf/shelf/internal/config"
	"github.com/rpgshelf/shelf/internal/sqlite"
	"github.com/rpgshelf/shelf/internal/stats"
	"github.com/rpgshelf/shelf/internal/theme"
	"github.com/rpgshelf/shelf/internal/uistate"
)

// ErrNotBuilt is returned by Run in binaries built without the fyne tag.
var ErrNotBuilt = errors.New("desktop window not built; rebuild with -tags fyne")

// Options carries what the window needs from the shell.
type Options struct {
	Service  *catalog.Service
	Stats    stats.Source
	Shell    *uistate.Shell
	Settings *config.Settings
	DataDir  string
	Report   *sqlite.BootstrapReport
	Logger   *zap.Logger
}

// Ribbon actions.
const (
	ActionAdd          = "Add"
	ActionEdit         = "Edit"
	ActionDelete       = "Delete"
	ActionFilter       = "Filter"
	ActionResetFilters = "Reset filters"
	ActionRefresh      = "Refresh"
	ActionSupplements  = "Supplements"
	ActionExpandAll    = "Expand all"
)

// Ribbon describes the action bar of a data tab. The filter button shows
// the number of active filters.
func Ribbon(e catalog.Entity, tab *uistate.Tab) *theme.Container {
	filter := catalog.Filters(nil)
	if tab != nil {
		filter = tab.Filters
	}
	r := &theme.Container{
		Name:   e.Title(),
		Ribbon: true,
		Children: []theme.Component{
			&theme.Button{Text: ActionAdd, Role: theme.ButtonAdd},
			&theme.Button{Text: ActionEdit},
			&theme.Button{Text: ActionDelete, Role: theme.ButtonDelete},
			&theme.Button{Text: filter.ButtonLabel()},
			&theme.Button{Text: ActionResetFilters},
			&theme.Button{Text: ActionRefresh},
		},
	}
	if e == catalog.EntitySystems {
		r.Children = append(r.Children,
			&theme.Button{Text: ActionSupplements},
			&theme.Button{Text: ActionExpandAll},
		)
	}
	return r
}

// Buttons returns the ribbon buttons in order.
func Buttons(ribbon *theme.Container) []*theme.Button {
	var out []*theme.Button
	theme.Walk(ribbon, func(c theme.Component) {
		if b, ok := c.(*theme.Button); ok {
			out = append(out, b)
		}
	})
	return out
}

// Title is the window title.
func Title(o Options) string {
	if o.DataDir == "" {
		return "RPG Shelf"
	}
	return "RPG Shelf - " + o.DataDir
}
