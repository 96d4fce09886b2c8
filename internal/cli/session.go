package cli

import (
	"github.com/spf13/cobra"

	"github.com/rpgshelf/shelf/internal/catalog"
)

func newSessionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions"},
		Short:   "Manage play sessions",
	}
	cmd.AddCommand(
		newSessionListCmd(a),
		newSessionAddCmd(a),
		newSessionEditCmd(a),
		newSessionDeleteCmd(a),
	)
	return cmd
}

func newSessionListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Args:  noArgs,
	}
	lf := addListFlags(cmd, catalog.EntitySessions)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.open(cmd.Context()); err != nil {
			return err
		}
		v, err := lf.view(a)
		if err != nil {
			return err
		}
		rows, err := a.svc.SessionRows(cmd.Context(), v)
		if err != nil {
			return err
		}
		return printRows(cmd, a, catalog.SessionColumns, rows)
	}
	return cmd
}

// sessionFlags is the raw session dialog as given on the command line.
type sessionFlags struct {
	date           string
	system         string
	playerCount    string
	gm             string
	players        []string
	campaign       bool
	oneShot        bool
	campaignTitle  string
	adventureTitle string
}

func bindSessionFlags(cmd *cobra.Command, f *sessionFlags) {
	fl := cmd.Flags()
	fl.StringVar(&f.date, "date", "", "session date, YYYY-MM-DD")
	fl.StringVar(&f.system, "system", "", "game system id")
	fl.StringVar(&f.playerCount, "player-count", catalog.DefaultPlayerCount, "declared number of players")
	fl.StringVar(&f.gm, "gm", "", "game master player id")
	fl.StringSliceVar(&f.players, "player", nil, "player ids")
	fl.BoolVar(&f.campaign, "campaign", false, "part of a campaign")
	fl.BoolVar(&f.oneShot, "one-shot", false, "a one-shot")
	fl.StringVar(&f.campaignTitle, "campaign-title", "", "campaign title")
	fl.StringVar(&f.adventureTitle, "adventure-title", "", "adventure title")
}

// merge applies the flags that were given onto in. With all set, every
// flag is applied, as for a new session.
func (f *sessionFlags) merge(cmd *cobra.Command, in *catalog.SessionInput, all bool) error {
	set := func(name string) bool { return all || cmd.Flags().Changed(name) }

	if set("date") {
		in.Date = f.date
	}
	if set("system") {
		id, err := optionalID("system", f.system)
		if err != nil {
			return err
		}
		in.SystemID = id
	}
	if set("player-count") {
		in.PlayerCount = f.playerCount
	}
	if set("gm") {
		id, err := optionalID("gm", f.gm)
		if err != nil {
			return err
		}
		in.GMID = id
	}
	if set("player") {
		ids, err := parseIDs("players", f.players)
		if err != nil {
			return err
		}
		in.PlayerIDs = ids
	}
	if set("campaign") {
		in.Campaign = f.campaign
	}
	if set("one-shot") {
		in.OneShot = f.oneShot
	}
	if set("campaign-title") {
		in.CampaignTitle = f.campaignTitle
	}
	if set("adventure-title") {
		in.AdventureTitle = f.adventureTitle
	}
	return nil
}

func newSessionAddCmd(a *app) *cobra.Command {
	var f sessionFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a session",
		Long:  "Add a session. The number of --player ids must match --player-count exactly.",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in catalog.SessionInput
			if err := f.merge(cmd, &in, true); err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			id, err := a.svc.SaveSession(cmd.Context(), 0, in, catalog.FlowAdd)
			if err != nil {
				return err
			}
			return printSaved(cmd, a, "added", catalog.EntitySessions, id)
		},
	}
	bindSessionFlags(cmd, &f)
	return cmd
}

func newSessionEditCmd(a *app) *cobra.Command {
	var f sessionFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a session",
		Long:  "Edit a session. Between one and --player-count players may be selected.",
		Args:  oneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			in, err := a.svc.LoadSessionInput(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := f.merge(cmd, &in, false); err != nil {
				return err
			}
			if _, err := a.svc.SaveSession(cmd.Context(), id, in, catalog.FlowEdit); err != nil {
				return err
			}
			return printSaved(cmd, a, "updated", catalog.EntitySessions, id)
		},
	}
	bindSessionFlags(cmd, &f)
	return cmd
}

func newSessionDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
		Args:  oneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			if err := a.svc.DeleteSession(cmd.Context(), id); err != nil {
				return err
			}
			return printSaved(cmd, a, "deleted", catalog.EntitySessions, id)
		},
	}
}
