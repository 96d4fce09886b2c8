package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgshelf/shelf/internal/catalog"
	"github.com/rpgshelf/shelf/internal/render"
	"github.com/rpgshelf/shelf/pkg/types"
)

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageErrorf("%s takes no arguments", cmd.CommandPath())
	}
	return nil
}

func oneID(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return usageErrorf("%s takes exactly one id", cmd.CommandPath())
	}
	return nil
}

// parseID parses a positional id argument.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, types.Invalid("id", types.ErrInvalidID)
	}
	return id, nil
}

// parseIDs parses a list of ids given through a string slice flag.
func parseIDs(field string, raw []string) ([]int64, error) {
	ids := make([]int64, 0, len(raw))
	for _, r := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(r), 10, 64)
		if err != nil || id <= 0 {
			return nil, types.Invalid(field, types.ErrInvalidID)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func optionalID(field, raw string) (*int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	ids, err := parseIDs(field, []string{raw})
	if err != nil {
		return nil, err
	}
	return &ids[0], nil
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// printRows writes rows as JSON or as a colored table.
func printRows[R render.Row](cmd *cobra.Command, a *app, headers []string, rows []R) error {
	if a.flags.jsonMode {
		if rows == nil {
			rows = []R{}
		}
		return printJSON(cmd, rows)
	}
	fmt.Fprintln(cmd.OutOrStdout(), render.Table(headers, rows, a.shell.Palette()))
	return nil
}

// printSaved reports the id a mutation wrote.
func printSaved(cmd *cobra.Command, a *app, verb string, e catalog.Entity, id int64) error {
	if a.flags.jsonMode {
		return printJSON(cmd, map[string]any{"id": id, "status": verb})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d\n", strings.TrimSuffix(e.Title(), "s"), verb, id)
	return nil
}

// flagName turns a filter key into its flag name, e.g. full_name -> full-name.
func flagName(key string) string { return strings.ReplaceAll(key, "_", "-") }

// listFlags binds the filter, sort and order flags of a list command.
type listFlags struct {
	entity  catalog.Entity
	filters map[string]*string
	sort    string
	desc    bool
}

func addListFlags(cmd *cobra.Command, e catalog.Entity) *listFlags {
	l := &listFlags{entity: e, filters: make(map[string]*string)}
	for _, key := range catalog.FilterKeys(e) {
		l.filters[key] = cmd.Flags().String(flagName(key), "", "filter by "+strings.ReplaceAll(key, "_", " "))
	}
	cmd.Flags().StringVar(&l.sort, "sort", "", "sort column: "+strings.Join(catalog.SortKeys(e), ", "))
	cmd.Flags().BoolVar(&l.desc, "desc", false, "sort in descending order")
	return l
}

// view applies the flags to the entity's tab and returns its view.
func (l *listFlags) view(a *app) (catalog.View, error) {
	tab := a.shell.Tab(l.entity)
	for key, value := range l.filters {
		tab.SetFilter(key, *value)
	}
	if err := tab.Filters.Validate(l.entity); err != nil {
		return catalog.View{}, err
	}
	tab.Sort = catalog.SortSpec{Key: l.sort, Desc: l.desc}
	return tab.View(), nil
}

// changed reports whether any of the named flags was given.
func changed(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}
