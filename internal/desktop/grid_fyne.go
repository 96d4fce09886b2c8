//go:build fyne

package desktop

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/rpgshelf/shelf/internal/catalog"
	"github.com/rpgshelf/shelf/internal/render"
	"github.com/rpgshelf/shelf/internal/theme"
	"github.com/rpgshelf/shelf/internal/uistate"
)

const noSort = "(store order)"

// grid is one data tab: its ribbon and its table.
type grid struct {
	w      *window
	entity catalog.Entity
	tab    *uistate.Tab

	headers    []string
	cells      [][]string
	tones      []theme.Tone
	ids        []int64
	toggleable []bool
	selected   int64

	table     *widget.Table
	filterBtn *widget.Button
}

func newGrid(w *window, e catalog.Entity) *grid {
	return &grid{w: w, entity: e, tab: w.opts.Shell.Tab(e)}
}

func (g *grid) content() fyne.CanvasObject {
	g.table = widget.NewTable(
		func() (int, int) { return len(g.cells), len(g.headers) },
		func() fyne.CanvasObject {
			return container.NewStack(canvas.NewRectangle(color.Transparent), canvas.NewText("", color.Black))
		},
		g.updateCell,
	)
	g.table.ShowHeaderRow = true
	g.table.CreateHeader = func() fyne.CanvasObject { return widget.NewLabel("") }
	g.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		if id.Col >= 0 && id.Col < len(g.headers) {
			o.(*widget.Label).SetText(g.headers[id.Col])
		}
	}
	g.table.OnSelected = g.onSelected

	return container.NewBorder(g.ribbon(), nil, nil, nil, g.table)
}

func (g *grid) updateCell(id widget.TableCellID, o fyne.CanvasObject) {
	stack := o.(*fyne.Container)
	bg := stack.Objects[0].(*canvas.Rectangle)
	text := stack.Objects[1].(*canvas.Text)
	if id.Row >= len(g.cells) || id.Col >= len(g.cells[id.Row]) {
		return
	}

	p := g.w.opts.Shell.Palette()
	bg.FillColor = color.Transparent
	text.Color = HexColor(p.Foreground)
	if pair, ok := theme.Colors(g.tones[id.Row], p.Dark); ok {
		bg.FillColor = HexColor(pair.BG)
		if pair.FG != "" {
			text.Color = HexColor(pair.FG)
		}
	}
	text.Text = g.cells[id.Row][id.Col]
	bg.Refresh()
	text.Refresh()
}

// onSelected remembers the row for Edit and Delete. On the systems tab a
// click on the marker cell of a core rulebook with supplements toggles it.
func (g *grid) onSelected(id widget.TableCellID) {
	if id.Row < 0 || id.Row >= len(g.ids) {
		return
	}
	g.selected = g.ids[id.Row]
	if g.entity == catalog.EntitySystems && id.Col == 0 && g.toggleable[id.Row] {
		g.tab.ToggleExpanded(g.selected)
		g.table.UnselectAll()
		g.refresh()
	}
}

func (g *grid) ribbon() fyne.CanvasObject {
	r := Ribbon(g.entity, g.tab)
	theme.Apply(r, g.w.opts.Shell.Palette())

	var objects []fyne.CanvasObject
	for _, b := range Buttons(r) {
		btn := widget.NewButton(b.Text, g.action(b.Text))
		switch b.Role {
		case theme.ButtonAdd:
			btn.Importance = widget.HighImportance
		case theme.ButtonDelete:
			btn.Importance = widget.DangerImportance
		}
		if strings.HasPrefix(b.Text, ActionFilter) {
			g.filterBtn = btn
		}
		objects = append(objects, btn)
	}

	sortSel := widget.NewSelect(append([]string{noSort}, catalog.SortKeys(g.entity)...), func(key string) {
		if key == noSort {
			key = ""
		}
		g.tab.Sort.Key = key
		g.refresh()
	})
	sortSel.SetSelected(noSort)
	desc := widget.NewCheck("Descending", func(v bool) {
		g.tab.Sort.Desc = v
		g.refresh()
	})
	objects = append(objects, widget.NewLabel("Sort:"), sortSel, desc)
	return container.NewHBox(objects...)
}

func (g *grid) action(name string) func() {
	switch {
	case name == ActionAdd:
		return func() { g.w.openForm(g.entity, 0) }
	case name == ActionEdit:
		return func() {
			if g.needSelection() {
				g.w.openForm(g.entity, g.selected)
			}
		}
	case name == ActionDelete:
		return func() {
			if g.needSelection() {
				g.w.confirmDelete(g.entity, g.selected)
			}
		}
	case strings.HasPrefix(name, ActionFilter):
		return g.showFilters
	case name == ActionResetFilters:
		return func() {
			g.tab.ResetFilters()
			g.refresh()
		}
	case name == ActionSupplements:
		return func() {
			if g.needSelection() {
				g.w.showSupplements(g.selected)
			}
		}
	case name == ActionExpandAll:
		return func() {
			all, err := g.w.opts.Service.ExpandAll(g.w.ctx)
			if err != nil {
				g.w.showError(err)
				return
			}
			g.tab.Expanded = all
			g.refresh()
		}
	}
	return g.refresh
}

func (g *grid) needSelection() bool {
	if g.selected == 0 {
		dialog.ShowInformation(g.entity.Title(), "Select a row first.", g.w.win)
		return false
	}
	return true
}

func (g *grid) showFilters() {
	specs, err := g.w.opts.Service.FilterSpecs(g.w.ctx, g.entity)
	if err != nil {
		g.w.showError(err)
		return
	}
	selects := make([]*widget.Select, len(specs))
	items := make([]*widget.FormItem, len(specs))
	for i, s := range specs {
		sel := widget.NewSelect(s.Options, nil)
		current := g.tab.Filters.Value(s.Key)
		if current == "" {
			current = catalog.FilterAny
		}
		sel.SetSelected(current)
		selects[i] = sel
		items[i] = widget.NewFormItem(s.Label, sel)
	}
	dialog.ShowForm("Filter "+g.entity.Title(), "Apply", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		for i, s := range specs {
			g.tab.SetFilter(s.Key, selects[i].Selected)
		}
		g.refresh()
	}, g.w.win)
}

// refresh refills the table from the tab's view.
func (g *grid) refresh() {
	var err error
	ctx, svc, v := g.w.ctx, g.w.opts.Service, g.tab.View()
	switch g.entity {
	case catalog.EntityPublishers:
		var rows []catalog.PublisherRow
		if rows, err = svc.PublisherRows(ctx, v); err == nil {
			fill(g, catalog.PublisherColumns, rows, func(r catalog.PublisherRow) (int64, bool) { return r.ID, false })
		}
	case catalog.EntityPlayers:
		var rows []catalog.PlayerRow
		if rows, err = svc.PlayerRows(ctx, v); err == nil {
			fill(g, catalog.PlayerColumns, rows, func(r catalog.PlayerRow) (int64, bool) { return r.ID, false })
		}
	case catalog.EntitySystems:
		var rows []catalog.SystemRow
		if rows, err = svc.SystemRows(ctx, v); err == nil {
			fill(g, catalog.SystemColumns, rows, func(r catalog.SystemRow) (int64, bool) { return r.ID, r.Toggleable() })
		}
	case catalog.EntitySessions:
		var rows []catalog.SessionRow
		if rows, err = svc.SessionRows(ctx, v); err == nil {
			fill(g, catalog.SessionColumns, rows, func(r catalog.SessionRow) (int64, bool) { return r.ID, false })
		}
	}
	if err != nil {
		g.w.showError(err)
		return
	}
	if g.filterBtn != nil {
		g.filterBtn.SetText(g.tab.Filters.ButtonLabel())
	}
	if g.table != nil {
		g.table.Refresh()
	}
}

func fill[R render.Row](g *grid, headers []string, rows []R, key func(R) (int64, bool)) {
	g.headers = headers
	g.cells = make([][]string, len(rows))
	g.tones = make([]theme.Tone, len(rows))
	g.ids = make([]int64, len(rows))
	g.toggleable = make([]bool, len(rows))
	found := false
	for i, r := range rows {
		g.cells[i] = r.Cells()
		g.tones[i] = r.Tone()
		g.ids[i], g.toggleable[i] = key(r)
		found = found || g.ids[i] == g.selected
	}
	if !found {
		g.selected = 0
	}
}
