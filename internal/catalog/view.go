package catalog

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rpgshelf/shelf/pkg/types"
)

// Entity names one of the four data tabs.
type Entity string

const (
	EntitySystems    Entity = "systems"
	EntitySessions   Entity = "sessions"
	EntityPlayers    Entity = "players"
	EntityPublishers Entity = "publishers"
)

// Entities lists the data tabs in window order.
var Entities = []Entity{EntitySystems, EntitySessions, EntityPlayers, EntityPublishers}

// Title returns the tab caption.
func (e Entity) Title() string {
	return cases.Title(language.English).String(string(e))
}

// Filter values shared by every tab.
const (
	FilterAny    = "Any"
	FilterFilled = "Filled"
	FilterEmpty  = "Empty"
)

// TriState lists the values of a filled/empty filter.
var TriState = []string{FilterAny, FilterFilled, FilterEmpty}

// Filters maps a filter key to its selected value. A missing key, "" and
// "Any" all mean no constraint.
type Filters map[string]string

// Value returns the selected value for key, or "" when unconstrained.
func (f Filters) Value(key string) string {
	v := f[key]
	if v == FilterAny {
		return ""
	}
	return v
}

// Active counts the constrained keys.
func (f Filters) Active() int {
	n := 0
	for k := range f {
		if f.Value(k) != "" {
			n++
		}
	}
	return n
}

// Reset clears every key.
func (f Filters) Reset() {
	for k := range f {
		delete(f, k)
	}
}

// Clone returns an independent copy.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Validate reports the first key that entity does not filter on.
func (f Filters) Validate(e Entity) error {
	known := filterKeys[e]
	for k := range f {
		if !known[k] {
			return types.Invalid(k, types.ErrUnknownFilter)
		}
	}
	return nil
}

// ButtonLabel returns "Filter" or "Filter (n)" when n keys are active.
func (f Filters) ButtonLabel() string {
	if n := f.Active(); n > 0 {
		return "Filter (" + strconv.Itoa(n) + ")"
	}
	return "Filter"
}

// SortSpec selects the column rows are ordered by. An empty Key keeps
// store order.
type SortSpec struct {
	Key  string
	Desc bool
}

// View is the per-tab context a fill operation works from.
type View struct {
	Filters  Filters
	Expanded map[int64]bool
	Sort     SortSpec
}

// filterLabel turns a filter key into its caption, e.g. full_name -> Full Name.
func filterLabel(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}
