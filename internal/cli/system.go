package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgshelf/shelf/internal/catalog"
)

func newSystemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "system",
		Aliases: []string{"systems"},
		Short:   "Manage game systems and their supplements",
	}
	cmd.AddCommand(
		newSystemListCmd(a),
		newSystemAddCmd(a),
		newSystemEditCmd(a),
		newSystemDeleteCmd(a),
		newSystemSupplementsCmd(a),
		newSystemAddSupplementCmd(a),
	)
	return cmd
}

func newSystemListCmd(a *app) *cobra.Command {
	var (
		expand    []string
		expandAll bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List systems grouped under their core rulebooks",
		Args:  noArgs,
	}
	lf := addListFlags(cmd, catalog.EntitySystems)
	cmd.Flags().StringSliceVar(&expand, "expand", nil, "core rulebook ids whose supplements are shown")
	cmd.Flags().BoolVar(&expandAll, "expand-all", false, "show the supplements of every core rulebook")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs("expand", expand)
		if err != nil {
			return err
		}
		if err := a.open(cmd.Context()); err != nil {
			return err
		}
		tab := a.shell.Tab(catalog.EntitySystems)
		if expandAll {
			all, err := a.svc.ExpandAll(cmd.Context())
			if err != nil {
				return err
			}
			tab.Expanded = all
		}
		for _, id := range ids {
			if !tab.Expanded[id] {
				tab.ToggleExpanded(id)
			}
		}

		v, err := lf.view(a)
		if err != nil {
			return err
		}
		rows, err := a.svc.SystemRows(cmd.Context(), v)
		if err != nil {
			return err
		}
		return printRows(cmd, a, catalog.SystemColumns, rows)
	}
	return cmd
}

func bindSystemForm(cmd *cobra.Command, f *catalog.SystemForm) {
	fl := cmd.Flags()
	fl.StringVar(&f.Name, "name", "", "system name (required)")
	fl.StringVar(&f.Kind, "kind", "", "Core Rulebook or Supplement (default Core Rulebook)")
	fl.StringVar(&f.ParentID, "parent", "", "core rulebook id of a supplement")
	fl.StringSliceVar(&f.SupplementTypes, "type", nil, "supplement types, up to five")
	fl.StringVar(&f.PublisherID, "publisher", "", "publisher id")
	fl.BoolVar(&f.Physical, "physical", false, "owned as a physical book")
	fl.BoolVar(&f.PDF, "pdf", false, "owned as a PDF")
	fl.StringSliceVar(&f.VTT, "vtt", nil, "virtual tabletop platforms")
	fl.StringVar(&f.Language, "language", "", "language code, e.g. PL or ENG")
	fl.StringVar(&f.PlayStatus, "play-status", "", "Played or Not played")
	fl.StringVar(&f.CollectionStatus, "collection-status", "", "Owned, ForSale, Sold, NotOwned or WantToBuy")
	fl.StringVar(&f.PurchasePrice, "purchase-price", "", "purchase price")
	fl.StringVar(&f.PurchaseCurrency, "purchase-currency", "", "purchase currency (default PLN)")
	fl.StringVar(&f.SalePrice, "sale-price", "", "sale price")
	fl.StringVar(&f.SaleCurrency, "sale-currency", "", "sale currency (default PLN)")
}

// systemFields copies one flag's value from the parsed flags onto a loaded
// form.
var systemFields = []struct {
	flag  string
	apply func(dst *catalog.SystemForm, src catalog.SystemForm)
}{
	{"name", func(d *catalog.SystemForm, s catalog.SystemForm) { d.Name = s.Name }},
	{"kind", func(d *catalog.SystemForm, s catalog.SystemForm) { d.Kind = s.Kind }},
	{"parent", func(d *catalog.SystemForm, s catalog.SystemForm) { d.ParentID = s.ParentID }},
	{"type", func(d *catalog.SystemForm, s catalog.SystemForm) { d.SupplementTypes = s.SupplementTypes }},
	{"publisher", func(d *catalog.SystemForm, s catalog.SystemForm) { d.PublisherID = s.PublisherID }},
	{"physical", func(d *catalog.SystemForm, s catalog.SystemForm) { d.Physical = s.Physical }},
	{"pdf", func(d *catalog.SystemForm, s catalog.SystemForm) { d.PDF = s.PDF }},
	{"vtt", func(d *catalog.SystemForm, s catalog.SystemForm) { d.VTT = s.VTT }},
	{"language", func(d *catalog.SystemForm, s catalog.SystemForm) { d.Language = s.Language }},
	{"play-status", func(d *catalog.SystemForm, s catalog.SystemForm) { d.PlayStatus = s.PlayStatus }},
	{"collection-status", func(d *catalog.SystemForm, s catalog.SystemForm) { d.CollectionStatus = s.CollectionStatus }},
	{"purchase-price", func(d *catalog.SystemForm, s catalog.SystemForm) { d.PurchasePrice = s.PurchasePrice }},
	{"purchase-currency", func(d *catalog.SystemForm, s catalog.SystemForm) { d.PurchaseCurrency = s.PurchaseCurrency }},
	{"sale-price", func(d *catalog.SystemForm, s catalog.SystemForm) { d.SalePrice = s.SalePrice }},
	{"sale-currency", func(d *catalog.SystemForm, s catalog.SystemForm) { d.SaleCurrency = s.SaleCurrency }},
}

func mergeSystemForm(cmd *cobra.Command, dst *catalog.SystemForm, src catalog.SystemForm) {
	for _, f := range systemFields {
		if cmd.Flags().Changed(f.flag) {
			f.apply(dst, src)
		}
	}
}

func newSystemAddCmd(a *app) *cobra.Command {
	var form catalog.SystemForm
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a game system",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			id, err := a.svc.SaveSystem(cmd.Context(), 0, form)
			if err != nil {
				return err
			}
			return printSaved(cmd, a, "added", catalog.EntitySystems, id)
		},
	}
	bindSystemForm(cmd, &form)
	return cmd
}

func newSystemAddSupplementCmd(a *app) *cobra.Command {
	var in catalog.SystemForm
	cmd := &cobra.Command{
		Use:   "add-supplement <core-id>",
		Short: "Add a supplement to a core rulebook",
		Args:  oneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			parentID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			if _, err := a.svc.LoadSystemForm(cmd.Context(), parentID); err != nil {
				return err
			}
			form := catalog.SupplementFormFor(parentID)
			mergeSystemForm(cmd, &form, in)
			id, err := a.svc.SaveSystem(cmd.Context(), 0, form)
			if err != nil {
				return err
			}
			return printSaved(cmd, a, "added", catalog.EntitySystems, id)
		},
	}
	bindSystemForm(cmd, &in)
	_ = cmd.Flags().MarkHidden("kind")
	_ = cmd.Flags().MarkHidden("parent")
	return cmd
}

func newSystemEditCmd(a *app) *cobra.Command {
	var in catalog.SystemForm
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a game system",
		Args:  oneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			form, err := a.svc.LoadSystemForm(cmd.Context(), id)
			if err != nil {
				return err
			}
			mergeSystemForm(cmd, &form, in)
			if _, err := a.svc.SaveSystem(cmd.Context(), id, form); err != nil {
				return err
			}
			return printSaved(cmd, a, "updated", catalog.EntitySystems, id)
		},
	}
	bindSystemForm(cmd, &in)
	return cmd
}

func newSystemDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game system",
		Long:  "Delete a game system. Deleting a core rulebook also deletes its supplements and needs --yes.",
		Args:  oneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			if _, err := a.svc.LoadSystemForm(cmd.Context(), id); err != nil {
				return err
			}
			n, err := a.svc.SupplementCount(cmd.Context(), id)
			if err != nil {
				return err
			}
			if n > 0 && !yes {
				return usageErrorf("system %d has %d supplements that would be deleted with it; pass --yes to confirm", id, n)
			}
			removed, err := a.svc.DeleteSystem(cmd.Context(), id)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd, map[string]any{"id": id, "status": "deleted", "supplements": removed})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "System deleted %d (%d supplements removed)\n", id, removed)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "also delete the system's supplements")
	return cmd
}

func newSystemSupplementsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "supplements <core-id>",
		Short: "List the supplements of a core rulebook",
		Args:  oneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			rows, err := a.svc.SupplementsOf(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printRows(cmd, a, catalog.SystemColumns, rows)
		},
	}
}
