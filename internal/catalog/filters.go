package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/rpgshelf/shelf/pkg/types"
)

// Filter keys per tab.
const (
	FilterCountry   = "country"
	FilterWebsite   = "website"
	FilterGender    = "gender"
	FilterFullName  = "full_name"
	FilterSocial    = "social"
	FilterStatus    = "status"
	FilterKind      = "kind"
	FilterPublisher = "publisher"
	FilterOwnership = "ownership"
	FilterLanguage  = "language"
	FilterCurrency  = "currency"
	FilterYear      = "year"
	FilterSystem    = "system"
	FilterGM        = "gm"
)

var filterOrder = map[Entity][]string{
	EntityPublishers: {FilterCountry, FilterWebsite},
	EntityPlayers:    {FilterGender, FilterFullName, FilterSocial, FilterStatus},
	EntitySystems:    {FilterKind, FilterPublisher, FilterOwnership, FilterLanguage, FilterStatus, FilterCurrency},
	EntitySessions:   {FilterYear, FilterSystem, FilterKind, FilterGM},
}

var filterKeys = func() map[Entity]map[string]bool {
	out := make(map[Entity]map[string]bool, len(filterOrder))
	for e, keys := range filterOrder {
		out[e] = make(map[string]bool, len(keys))
		for _, k := range keys {
			out[e][k] = true
		}
	}
	return out
}()

// SystemStatusOptions are the values the systems status filter matches as
// substrings of the combined status.
var SystemStatusOptions = []string{"Played", "Not played", "Owned", "For sale", "Sold", "Not owned", "Want to buy"}

// FilterSpec describes one picker of a tab's filter dialog.
type FilterSpec struct {
	Key     string
	Label   string
	Options []string // Always starts with FilterAny.
}

// FilterKeys returns the filter keys of e in dialog order.
func FilterKeys(e Entity) []string {
	return append([]string(nil), filterOrder[e]...)
}

// FilterSpecs builds the filter dialog for e, gathering picklist values
// from the stores where they depend on data.
func (s *Service) FilterSpecs(ctx context.Context, e Entity) ([]FilterSpec, error) {
	var specs []FilterSpec
	for _, key := range filterOrder[e] {
		opts, err := s.filterOptions(ctx, e, key)
		if err != nil {
			return nil, err
		}
		specs = append(specs, FilterSpec{
			Key:     key,
			Label:   filterLabel(key),
			Options: append([]string{FilterAny}, opts...),
		})
	}
	return specs, nil
}

func (s *Service) filterOptions(ctx context.Context, e Entity, key string) ([]string, error) {
	switch {
	case key == FilterWebsite || key == FilterFullName || key == FilterSocial:
		return []string{FilterFilled, FilterEmpty}, nil
	case e == EntityPublishers && key == FilterCountry:
		pubs, err := s.catalog.Publishers().List(ctx)
		if err != nil {
			return nil, err
		}
		var countries []string
		for _, p := range pubs {
			countries = append(countries, p.Country)
		}
		return distinct(countries), nil
	case e == EntityPlayers && key == FilterGender:
		out := make([]string, len(types.Genders))
		for i, g := range types.Genders {
			out[i] = string(g)
		}
		return out, nil
	case e == EntityPlayers && key == FilterStatus:
		return []string{types.StatusPrimary, types.StatusNotable, types.StatusRegular}, nil
	case e == EntitySystems && key == FilterKind:
		out := make([]string, len(types.SystemKinds))
		for i, k := range types.SystemKinds {
			out[i] = string(k)
		}
		return out, nil
	case e == EntitySystems && key == FilterPublisher:
		return s.optionLabels(s.PublisherOptions(ctx))
	case e == EntitySystems && key == FilterOwnership:
		out := make([]string, len(types.Ownerships))
		for i, o := range types.Ownerships {
			out[i] = o.Label()
		}
		return out, nil
	case e == EntitySystems && key == FilterLanguage:
		return append([]string(nil), types.Languages...), nil
	case e == EntitySystems && key == FilterStatus:
		return append([]string(nil), SystemStatusOptions...), nil
	case e == EntitySystems && key == FilterCurrency:
		return append([]string(nil), types.Currencies...), nil
	case e == EntitySessions && key == FilterYear:
		sessions, err := s.catalog.Sessions().List(ctx)
		if err != nil {
			return nil, err
		}
		var years []string
		for _, sess := range sessions {
			if len(sess.Date) >= 4 {
				years = append(years, sess.Date[:4])
			}
		}
		years = distinct(years)
		sort.Sort(sort.Reverse(sort.StringSlice(years)))
		return years, nil
	case e == EntitySessions && key == FilterSystem:
		return s.optionLabels(s.CoreRulebookOptions(ctx))
	case e == EntitySessions && key == FilterKind:
		return []string{types.SessionKindCampaign, types.SessionKindOneShot}, nil
	case e == EntitySessions && key == FilterGM:
		return s.optionLabels(s.PlayerOptions(ctx))
	}
	return nil, types.Invalid(key, types.ErrUnknownFilter)
}

func (s *Service) optionLabels(opts []Option, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
	}
	return distinct(labels), nil
}

// distinct drops blanks and duplicates and sorts the rest.
func distinct(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sortNames(out)
	return out
}

// triMatch applies a Filled/Empty filter to value.
func triMatch(value, want string) bool {
	switch want {
	case FilterFilled:
		return strings.TrimSpace(value) != ""
	case FilterEmpty:
		return strings.TrimSpace(value) == ""
	}
	return true
}

// exactMatch applies a picklist filter.
func exactMatch(value, want string) bool {
	return want == "" || value == want
}

// applyFilters keeps the rows match accepts. It never mutates rows, so
// applying the same filters twice changes nothing.
func applyFilters[R any](rows []R, f Filters, match func(R, Filters) bool) []R {
	if f.Active() == 0 {
		return rows
	}
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		if match(r, f) {
			out = append(out, r)
		}
	}
	return out
}
