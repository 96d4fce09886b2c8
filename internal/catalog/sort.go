package catalog

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rpgshelf/shelf/pkg/types"
)

// sortKey extracts the comparable value of one column. Exactly one of
// text and num is set.
type sortKey[R any] struct {
	text func(R) string
	num  func(R) float64
}

func byText[R any](f func(R) string) sortKey[R]  { return sortKey[R]{text: f} }
func byNum[R any](f func(R) float64) sortKey[R] { return sortKey[R]{num: f} }

func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}

// sortRows orders rows in place by the column the sort names. Text columns
// compare case-insensitively. Ties keep their incoming order.
func sortRows[R any](rows []R, spec SortSpec, keys map[string]sortKey[R]) error {
	if spec.Key == "" {
		return nil
	}
	key, ok := keys[spec.Key]
	if !ok {
		return types.Invalid("sort", types.ErrUnknownSortKey)
	}

	var cmp func(a, b R) int
	if key.num != nil {
		cmp = func(a, b R) int {
			x, y := key.num(a), key.num(b)
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	} else {
		c := newCollator()
		cmp = func(a, b R) int { return c.CompareString(key.text(a), key.text(b)) }
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if spec.Desc {
			return cmp(rows[i], rows[j]) > 0
		}
		return cmp(rows[i], rows[j]) < 0
	})
	return nil
}

// sortNames orders s case-insensitively.
func sortNames(s []string) {
	c := newCollator()
	sort.SliceStable(s, func(i, j int) bool { return c.CompareString(s[i], s[j]) < 0 })
}

// SortKeys returns the sort keys a tab accepts.
func SortKeys(e Entity) []string {
	switch e {
	case EntityPublishers:
		return keysOf(publisherSortKeys)
	case EntityPlayers:
		return keysOf(playerSortKeys)
	case EntitySystems:
		return keysOf(systemSortKeys)
	case EntitySessions:
		return keysOf(sessionSortKeys)
	}
	return nil
}

func keysOf[R any](m map[string]sortKey[R]) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// leadingNumber parses the first field of s, e.g. 12.5 from "12.50 PLN".
// Anything unparsable counts as 0.
func leadingNumber(s string) float64 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", "."), 64)
	if err != nil {
		return 0
	}
	return f
}
