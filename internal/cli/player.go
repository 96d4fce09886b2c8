package cli

import (
	"github.com/spf13/cobra"

	"github.com/rpgshelf/shelf/internal/catalog"
)

func newPlayerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "player",
		Aliases: []string{"players"},
		Short:   "Manage players",
	}
	cmd.AddCommand(
		newPlayerListCmd(a),
		newPlayerAddCmd(a),
		newPlayerEditCmd(a),
		newPlayerDeleteCmd(a),
	)
	return cmd
}

func newPlayerListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players",
		Args:  noArgs,
	}
	lf := addListFlags(cmd, catalog.EntityPlayers)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.open(cmd.Context()); err != nil {
			return err
		}
		v, err := lf.view(a)
		if err != nil {
			return err
		}
		rows, err := a.svc.PlayerRows(cmd.Context(), v)
		if err != nil {
			return err
		}
		return printRows(cmd, a, catalog.PlayerColumns, rows)
	}
	return cmd
}

func bindPlayerForm(cmd *cobra.Command, f *catalog.PlayerForm) {
	cmd.Flags().StringVar(&f.Nickname, "nickname", "", "nickname (required)")
	cmd.Flags().StringVar(&f.FullName, "full-name", "", "full name")
	cmd.Flags().StringVar(&f.Gender, "gender", "", "Woman, Man, Non-binary or Other (default Woman)")
	cmd.Flags().StringVar(&f.Social, "social", "", "social media handle or URL")
	cmd.Flags().BoolVar(&f.Primary, "primary", false, "mark as the primary user")
	cmd.Flags().BoolVar(&f.Notable, "notable", false, "mark as a notable player")
}

// applyStatus copies the status flags through the form setters so primary
// and notable stay exclusive.
func applyStatus(cmd *cobra.Command, in catalog.PlayerForm, f *catalog.PlayerForm) error {
	if in.Primary && in.Notable {
		return usageErrorf("--primary and --notable cannot be combined")
	}
	if changed(cmd, "primary") {
		f.SetPrimary(in.Primary)
	}
	if changed(cmd, "notable") {
		f.SetNotable(in.Notable)
	}
	return nil
}

func newPlayerAddCmd(a *app) *cobra.Command {
	var in catalog.PlayerForm
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a player",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := catalog.PlayerForm{Nickname: in.Nickname, FullName: in.FullName, Gender: in.Gender, Social: in.Social}
			if err := applyStatus(cmd, in, &form); err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			id, err := a.svc.SavePlayer(cmd.Context(), 0, form)
			if err != nil {
				return err
			}
			return printSaved(cmd, a, "added", catalog.EntityPlayers, id)
		},
	}
	bindPlayerForm(cmd, &in)
	return cmd
}

func newPlayerEditCmd(a *app) *cobra.Command {
	var in catalog.PlayerForm
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a player",
		Args:  oneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			form, err := a.svc.LoadPlayerForm(cmd.Context(), id)
			if err != nil {
				return err
			}
			if changed(cmd, "nickname") {
				form.Nickname = in.Nickname
			}
			if changed(cmd, "full-name") {
				form.FullName = in.FullName
			}
			if changed(cmd, "gender") {
				form.Gender = in.Gender
			}
			if changed(cmd, "social") {
				form.Social = in.Social
			}
			if err := applyStatus(cmd, in, &form); err != nil {
				return err
			}
			if _, err := a.svc.SavePlayer(cmd.Context(), id, form); err != nil {
				return err
			}
			return printSaved(cmd, a, "updated", catalog.EntityPlayers, id)
		},
	}
	bindPlayerForm(cmd, &in)
	return cmd
}

func newPlayerDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a player",
		Long:  "Delete a player. Sessions that reference the player show a placeholder instead.",
		Args:  oneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			if err := a.svc.DeletePlayer(cmd.Context(), id); err != nil {
				return err
			}
			return printSaved(cmd, a, "deleted", catalog.EntityPlayers, id)
		},
	}
}
