// Package uistate holds the transient view state of one running shell:
// the theme flag, the scale factor, and each tab's filters, expanded rows
// and sort order. Nothing here is persisted.
package uistate

import (
	"github.com/rpgshelf/shelf/internal/catalog"
	"github.com/rpgshelf/shelf/internal/theme"
)

// Tab is the view context of one data tab.
type Tab struct {
	Filters  catalog.Filters
	Expanded map[int64]bool
	Sort     catalog.SortSpec
}

// NewTab returns an unfiltered, collapsed tab in store order.
func NewTab() *Tab {
	return &Tab{Filters: catalog.Filters{}, Expanded: make(map[int64]bool)}
}

// View returns the context a fill operation reads.
func (t *Tab) View() catalog.View {
	return catalog.View{Filters: t.Filters, Expanded: t.Expanded, Sort: t.Sort}
}

// ToggleExpanded flips the expanded state of row id and reports the new
// state.
func (t *Tab) ToggleExpanded(id int64) bool {
	if t.Expanded[id] {
		delete(t.Expanded, id)
		return false
	}
	t.Expanded[id] = true
	return true
}

// SetFilter sets one filter; FilterAny or "" removes it.
func (t *Tab) SetFilter(key, value string) {
	if value == "" || value == catalog.FilterAny {
		delete(t.Filters, key)
		return
	}
	t.Filters[key] = value
}

// ResetFilters clears every filter.
func (t *Tab) ResetFilters() { t.Filters.Reset() }

// SortBy orders by key. Picking the current key again flips the direction.
func (t *Tab) SortBy(key string) {
	if t.Sort.Key == key {
		t.Sort.Desc = !t.Sort.Desc
		return
	}
	t.Sort = catalog.SortSpec{Key: key}
}

// Shell is the state of one window or CLI invocation.
type Shell struct {
	Dark  bool
	Scale float64
	Tabs  map[catalog.Entity]*Tab
}

// NewShell returns a shell with a fresh tab per entity.
func NewShell(dark bool, scale float64) *Shell {
	s := &Shell{Dark: dark, Scale: scale, Tabs: make(map[catalog.Entity]*Tab, len(catalog.Entities))}
	for _, e := range catalog.Entities {
		s.Tabs[e] = NewTab()
	}
	return s
}

// Tab returns the tab for e, creating it if needed.
func (s *Shell) Tab(e catalog.Entity) *Tab {
	t, ok := s.Tabs[e]
	if !ok {
		t = NewTab()
		s.Tabs[e] = t
	}
	return t
}

// ToggleTheme flips between light and dark and returns the new palette.
func (s *Shell) ToggleTheme() theme.Palette {
	s.Dark = !s.Dark
	return s.Palette()
}

// Palette returns the active palette.
func (s *Shell) Palette() theme.Palette { return theme.For(s.Dark) }
