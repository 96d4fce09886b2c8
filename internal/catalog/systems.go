package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rpgshelf/shelf/internal/theme"
	"github.com/rpgshelf/shelf/pkg/types"
)

// SystemColumns are the systems grid headers. The first column holds the
// expand marker.
var SystemColumns = []string{
	"", "ID", "Name", "Kind", "Parent", "Supplement types", "Publisher",
	"Physical", "PDF", "VTT", "Language", "Status", "Price",
}

// Markers shown in the first systems column.
const (
	MarkerCollapsed  = "[+]"
	MarkerExpanded   = "[-]"
	MarkerSupplement = "   →"
	MarkerOrphan     = "   !"
)

// RowLevel places a systems row in the hierarchy.
type RowLevel int

const (
	LevelMain RowLevel = iota
	LevelSupplement
	LevelOrphan
)

// SystemRow is one line of the systems grid.
type SystemRow struct {
	ID              int64
	Marker          string
	Name            string // Display name, with the supplement count or indent.
	BaseName        string
	Kind            string
	Parent          string
	SupplementTypes string
	Publisher       string
	Physical        string
	PDF             string
	VTT             string
	Language        string
	Status          string
	Price           string

	Level       RowLevel
	Supplements int
	Expanded    bool
	Ownership   types.Ownership
	Collection  types.CollectionStatus
}

// Cells returns the row in SystemColumns order.
func (r SystemRow) Cells() []string {
	return []string{
		r.Marker, strconv.FormatInt(r.ID, 10), r.Name, r.Kind, r.Parent, r.SupplementTypes,
		r.Publisher, r.Physical, r.PDF, r.VTT, r.Language, r.Status, r.Price,
	}
}

// Tone picks the row color. Collection status wins over hierarchy level.
func (r SystemRow) Tone() theme.Tone {
	switch r.Collection {
	case types.ForSale:
		return theme.ToneForSale
	case types.NotOwned:
		return theme.ToneNotOwned
	case types.WantToBuy:
		return theme.ToneWantToBuy
	}
	switch r.Level {
	case LevelSupplement:
		return theme.ToneSupplement
	case LevelOrphan:
		return theme.ToneOrphan
	}
	if r.Supplements > 0 {
		return theme.ToneCoreWithSupplements
	}
	return theme.ToneCore
}

// Toggleable reports whether clicking the marker changes anything.
func (r SystemRow) Toggleable() bool {
	return r.Level == LevelMain && r.Supplements > 0
}

var systemSortKeys = map[string]sortKey[SystemRow]{
	"id":        byNum(func(r SystemRow) float64 { return float64(r.ID) }),
	"name":      byText(func(r SystemRow) string { return r.BaseName }),
	"publisher": byText(func(r SystemRow) string { return r.Publisher }),
	"language":  byText(func(r SystemRow) string { return r.Language }),
	"status":    byText(func(r SystemRow) string { return r.Status }),
	"ownership": byNum(func(r SystemRow) float64 { return float64(r.Ownership) }),
	"price":     byNum(func(r SystemRow) float64 { return leadingNumber(r.Price) }),
}

func matchSystem(r SystemRow, f Filters) bool {
	if v := f.Value(FilterOwnership); v != "" && r.Ownership.Label() != v {
		return false
	}
	return exactMatch(r.Kind, f.Value(FilterKind)) &&
		exactMatch(r.Publisher, f.Value(FilterPublisher)) &&
		exactMatch(r.Language, f.Value(FilterLanguage)) &&
		strings.Contains(r.Status, f.Value(FilterStatus)) &&
		strings.Contains(r.Price, f.Value(FilterCurrency))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func systemRow(ctx context.Context, s *types.GameSystem, publishers *nameCache) SystemRow {
	tags := make([]string, len(s.SupplementTypes))
	for i, t := range s.SupplementTypes {
		tags[i] = string(t)
	}
	return SystemRow{
		ID:              s.ID,
		Name:            s.Name,
		BaseName:        s.Name,
		Kind:            string(s.Kind),
		SupplementTypes: strings.Join(tags, ", "),
		Publisher:       publishers.name(ctx, s.PublisherID),
		Physical:        yesNo(s.Physical),
		PDF:             yesNo(s.PDF),
		VTT:             strings.Join(s.VTT, ", "),
		Language:        s.Language,
		Status:          s.StatusDisplay(),
		Price:           s.PriceDisplay(),
		Ownership:       s.Ownership(),
		Collection:      s.CollectionStatus,
	}
}

// BuildHierarchy arranges systems into grid rows. Every row, supplements
// included, must pass the filters in v. Core rulebooks are sorted per v,
// each followed by its matching supplements ordered by name when expanded.
// The supplement count and the marker reflect the matching supplements
// only. Supplements whose parent is missing or not a core rulebook come
// last as orphans. A deleted publisher renders blank.
func BuildHierarchy(ctx context.Context, systems []*types.GameSystem, publishers types.NameResolver, v View) ([]SystemRow, error) {
	isMain := make(map[int64]bool)
	names := make(map[int64]string, len(systems))
	for _, s := range systems {
		names[s.ID] = s.Name
		if !s.IsSupplement() {
			isMain[s.ID] = true
		}
	}

	var mains, orphans []*types.GameSystem
	children := make(map[int64][]*types.GameSystem)
	for _, s := range systems {
		switch {
		case !s.IsSupplement():
			mains = append(mains, s)
		case s.ParentID != nil && isMain[*s.ParentID]:
			children[*s.ParentID] = append(children[*s.ParentID], s)
		default:
			orphans = append(orphans, s)
		}
	}

	sort.SliceStable(orphans, func(i, j int) bool { return orphans[i].ID < orphans[j].ID })
	pubs := newNameCache(publishers, nil)

	childRows := make(map[int64][]SystemRow, len(children))
	for parent, kids := range children {
		var rows []SystemRow
		for _, s := range sortedByName(kids) {
			r := systemRow(ctx, s, pubs)
			r.Level = LevelSupplement
			r.Marker = MarkerSupplement
			r.Name = "  " + s.Name
			r.Parent = names[parent]
			rows = append(rows, r)
		}
		childRows[parent] = applyFilters(rows, v.Filters, matchSystem)
	}

	mainRows := make([]SystemRow, 0, len(mains))
	for _, s := range mains {
		r := systemRow(ctx, s, pubs)
		r.Level = LevelMain
		r.Supplements = len(childRows[s.ID])
		if r.Supplements > 0 {
			r.Name = fmt.Sprintf("%s (%d supl.)", s.Name, r.Supplements)
			r.Expanded = v.Expanded[s.ID]
			r.Marker = MarkerCollapsed
			if r.Expanded {
				r.Marker = MarkerExpanded
			}
		}
		mainRows = append(mainRows, r)
	}
	mainRows = applyFilters(mainRows, v.Filters, matchSystem)
	if err := sortRows(mainRows, v.Sort, systemSortKeys); err != nil {
		return nil, err
	}

	rows := make([]SystemRow, 0, len(systems))
	for _, m := range mainRows {
		rows = append(rows, m)
		if m.Expanded {
			rows = append(rows, childRows[m.ID]...)
		}
	}

	var orphanRows []SystemRow
	for _, s := range orphans {
		r := systemRow(ctx, s, pubs)
		r.Level = LevelOrphan
		r.Marker = MarkerOrphan
		if s.ParentID != nil {
			r.Parent = names[*s.ParentID]
		}
		orphanRows = append(orphanRows, r)
	}
	rows = append(rows, applyFilters(orphanRows, v.Filters, matchSystem)...)
	return rows, nil
}

func sortedByName(systems []*types.GameSystem) []*types.GameSystem {
	out := append([]*types.GameSystem(nil), systems...)
	c := newCollator()
	sort.SliceStable(out, func(i, j int) bool { return c.CompareString(out[i].Name, out[j].Name) < 0 })
	return out
}

// SystemRows fills the systems grid.
func (s *Service) SystemRows(ctx context.Context, v View) ([]SystemRow, error) {
	systems, err := s.catalog.Systems().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing systems: %w", err)
	}
	return BuildHierarchy(ctx, systems, s.catalog.Publishers(), v)
}

// ExpandAll returns an expand map that opens every core rulebook.
func (s *Service) ExpandAll(ctx context.Context) (map[int64]bool, error) {
	cores, err := s.catalog.Systems().CoreRulebooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing core rulebooks: %w", err)
	}
	out := make(map[int64]bool, len(cores))
	for _, c := range cores {
		out[c.ID] = true
	}
	return out, nil
}

// SupplementsOf lists the supplements of system id, ordered by name.
func (s *Service) SupplementsOf(ctx context.Context, id int64) ([]SystemRow, error) {
	parent, err := s.catalog.Systems().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	supplements, err := s.catalog.Systems().Supplements(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing supplements of %d: %w", id, err)
	}
	pubs := newNameCache(s.catalog.Publishers(), nil)
	rows := make([]SystemRow, 0, len(supplements))
	for _, sup := range sortedByName(supplements) {
		r := systemRow(ctx, sup, pubs)
		r.Level = LevelSupplement
		r.Marker = MarkerSupplement
		r.Parent = parent.Name
		rows = append(rows, r)
	}
	return rows, nil
}

// SupplementCount returns how many supplements deleting system id would
// remove along with it.
func (s *Service) SupplementCount(ctx context.Context, id int64) (int, error) {
	supplements, err := s.catalog.Systems().Supplements(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("counting supplements of %d: %w", id, err)
	}
	return len(supplements), nil
}

// DeleteSystem removes system id and every supplement that names it as
// parent. Returns the number of supplements removed.
func (s *Service) DeleteSystem(ctx context.Context, id int64) (int, error) {
	n, err := s.catalog.Systems().DeleteWithSupplements(ctx, id)
	if err != nil {
		return 0, err
	}
	s.logger.Info("system deleted", zap.Int64("id", id), zap.Int("supplements", n))
	return n, nil
}

// LoadSystemForm loads system id into an edit form.
func (s *Service) LoadSystemForm(ctx context.Context, id int64) (SystemForm, error) {
	sys, err := s.catalog.Systems().Get(ctx, id)
	if err != nil {
		return SystemForm{}, err
	}
	return SystemFormFrom(sys), nil
}

// SaveSystem creates a system when id is 0 and overwrites system id
// otherwise.
func (s *Service) SaveSystem(ctx context.Context, id int64, f SystemForm) (int64, error) {
	sys, err := f.System()
	if err != nil {
		return 0, err
	}
	store := s.catalog.Systems()
	if id == 0 {
		if id, err = store.Create(ctx, sys); err != nil {
			return 0, err
		}
		s.logger.Info("system added", zap.Int64("id", id), zap.String("kind", string(sys.Kind)))
		return id, nil
	}
	sys.ID = id
	if err := store.Update(ctx, sys); err != nil {
		return 0, err
	}
	s.logger.Info("system updated", zap.Int64("id", id))
	return id, nil
}
