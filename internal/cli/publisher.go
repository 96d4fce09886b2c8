package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgshelf/shelf/internal/catalog"
)

func newPublisherCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "publisher",
		Aliases: []string{"publishers"},
		Short:   "Manage publishers",
	}
	cmd.AddCommand(
		newPublisherListCmd(a),
		newPublisherShowCmd(a),
		newPublisherAddCmd(a),
		newPublisherEditCmd(a),
		newPublisherDeleteCmd(a),
	)
	return cmd
}

func newPublisherListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List publishers",
		Args:  noArgs,
	}
	lf := addListFlags(cmd, catalog.EntityPublishers)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.open(cmd.Context()); err != nil {
			return err
		}
		v, err := lf.view(a)
		if err != nil {
			return err
		}
		rows, err := a.svc.PublisherRows(cmd.Context(), v)
		if err != nil {
			return err
		}
		return printRows(cmd, a, catalog.PublisherColumns, rows)
	}
	return cmd
}

func newPublisherShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one publisher",
		Args:  oneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			p, err := a.backend.Publishers().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd, p)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:      %d\n", p.ID)
			fmt.Fprintf(out, "Name:    %s\n", p.Name)
			fmt.Fprintf(out, "Website: %s\n", p.Website)
			fmt.Fprintf(out, "Country: %s\n", p.Country)
			return nil
		},
	}
}

func bindPublisherForm(cmd *cobra.Command, f *catalog.PublisherForm) {
	cmd.Flags().StringVar(&f.Name, "name", "", "publisher name (required)")
	cmd.Flags().StringVar(&f.Website, "website", "", "website URL")
	cmd.Flags().StringVar(&f.Country, "country", "", "country")
}

func newPublisherAddCmd(a *app) *cobra.Command {
	var form catalog.PublisherForm
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a publisher",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			id, err := a.svc.SavePublisher(cmd.Context(), 0, form)
			if err != nil {
				return err
			}
			return printSaved(cmd, a, "added", catalog.EntityPublishers, id)
		},
	}
	bindPublisherForm(cmd, &form)
	return cmd
}

func newPublisherEditCmd(a *app) *cobra.Command {
	var in catalog.PublisherForm
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a publisher",
		Args:  oneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			form, err := a.svc.LoadPublisherForm(cmd.Context(), id)
			if err != nil {
				return err
			}
			if changed(cmd, "name") {
				form.Name = in.Name
			}
			if changed(cmd, "website") {
				form.Website = in.Website
			}
			if changed(cmd, "country") {
				form.Country = in.Country
			}
			if _, err := a.svc.SavePublisher(cmd.Context(), id, form); err != nil {
				return err
			}
			return printSaved(cmd, a, "updated", catalog.EntityPublishers, id)
		},
	}
	bindPublisherForm(cmd, &in)
	return cmd
}

func newPublisherDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a publisher",
		Long:  "Delete a publisher. Systems that reference it keep the reference and show a blank publisher.",
		Args:  oneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			if err := a.svc.DeletePublisher(cmd.Context(), id); err != nil {
				return err
			}
			return printSaved(cmd, a, "deleted", catalog.EntityPublishers, id)
		},
	}
}
