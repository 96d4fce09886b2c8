//go:build fyne

package desktop

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fynetheme "fyne.io/fyne/v2/theme"
	"go.uber.org/zap"

	"github.com/rpgshelf/shelf/internal/catalog"
	"github.com/rpgshelf/shelf/internal/display"
	"github.com/rpgshelf/shelf/internal/release"
	"github.com/rpgshelf/shelf/internal/theme"
)

// Available reports whether this binary carries the desktop window.
const Available = true

const appID = "io.github.rpgshelf.shelf"

// window is the running desktop shell.
type window struct {
	ctx    context.Context
	opts   Options
	logger *zap.Logger

	app   fyne.App
	win   fyne.Window
	grids map[catalog.Entity]*grid
	stats *statsPanel
}

// Run opens the window and blocks until it is closed.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := display.ExportFyneScale(opts.Shell.Scale); err != nil {
		logger.Warn("could not export scale factor", zap.Error(err))
	}

	w := &window{
		ctx:    ctx,
		opts:   opts,
		logger: logger,
		grids:  make(map[catalog.Entity]*grid, len(catalog.Entities)),
	}
	w.app = app.NewWithID(appID)
	w.app.Settings().SetTheme(paletteTheme{p: opts.Shell.Palette()})
	w.win = w.app.NewWindow(Title(opts))
	w.win.Resize(fyne.NewSize(1280, 800))

	var items []*container.TabItem
	for _, e := range catalog.Entities {
		g := newGrid(w, e)
		w.grids[e] = g
		items = append(items, container.NewTabItem(e.Title(), g.content()))
	}
	w.stats = newStatsPanel(w)
	items = append(items, container.NewTabItem("Statistics", w.stats.content()))

	tabs := container.NewAppTabs(items...)
	tabs.SetTabLocation(container.TabLocationTop)
	w.win.SetContent(tabs)
	w.win.SetMainMenu(w.menu())
	w.refreshAll()

	if opts.Report != nil && !opts.Report.OK() {
		dialog.ShowInformation("Storage", strings.Join(opts.Report.Lines(), "\n"), w.win)
	}

	logger.Info("window opened", zap.String("theme", opts.Shell.Palette().Name))
	w.win.ShowAndRun()
	return nil
}

func (w *window) menu() *fyne.MainMenu {
	view := fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle theme", w.toggleTheme),
		fyne.NewMenuItem("Refresh", w.refreshAll),
	)
	help := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", w.showAbout),
		fyne.NewMenuItem("Changelog", w.showChangelog),
	)
	return fyne.NewMainMenu(view, help)
}

// refreshAll refills every grid and the statistics tab.
func (w *window) refreshAll() {
	for _, e := range catalog.Entities {
		w.grids[e].refresh()
	}
	w.stats.refresh()
}

func (w *window) toggleTheme() {
	p := w.opts.Shell.ToggleTheme()
	w.app.Settings().SetTheme(paletteTheme{p: p})
	w.refreshAll()
}

func (w *window) showError(err error) {
	if !catalog.IsUserError(err) {
		w.logger.Error("operation failed", zap.Error(err))
	}
	dialog.ShowError(err, w.win)
}

func (w *window) showAbout() {
	screen := 0
	if w.opts.Settings != nil {
		screen = w.opts.Settings.ScreenHeight
	}
	dialog.ShowInformation("About", release.About(release.AboutInfo{
		ScreenHeight: screen,
		Scale:        w.opts.Shell.Scale,
		DataDir:      w.opts.DataDir,
	}), w.win)
}

func (w *window) showChangelog() {
	entries, err := release.Changelog()
	if err != nil {
		w.showError(err)
		return
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s (%s)\n", e.Version, e.Date)
		for _, c := range e.Changes {
			fmt.Fprintf(&b, "  - %s\n", c)
		}
		b.WriteString("\n")
	}
	dialog.ShowInformation("Changelog", strings.TrimSpace(b.String()), w.win)
}

// paletteTheme maps a shelf palette onto the Fyne theme colors and leaves
// fonts, icons and sizes to the default theme.
type paletteTheme struct {
	p theme.Palette
}

func (t paletteTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case fynetheme.ColorNameBackground, fynetheme.ColorNameMenuBackground, fynetheme.ColorNameOverlayBackground:
		return HexColor(t.p.Background)
	case fynetheme.ColorNameForeground:
		return HexColor(t.p.Foreground)
	case fynetheme.ColorNameButton:
		return HexColor(t.p.Button)
	case fynetheme.ColorNameInputBackground:
		return HexColor(t.p.Entry)
	case fynetheme.ColorNameHyperlink:
		return HexColor(t.p.Link)
	}
	variant := fynetheme.VariantLight
	if t.p.Dark {
		variant = fynetheme.VariantDark
	}
	return fynetheme.DefaultTheme().Color(name, variant)
}

func (paletteTheme) Font(s fyne.TextStyle) fyne.Resource {
	return fynetheme.DefaultTheme().Font(s)
}

func (paletteTheme) Icon(n fyne.ThemeIconName) fyne.Resource {
	return fynetheme.DefaultTheme().Icon(n)
}

func (paletteTheme) Size(n fyne.ThemeSizeName) float32 {
	return fynetheme.DefaultTheme().Size(n)
}
