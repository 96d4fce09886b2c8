package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rpgshelf/shelf/internal/theme"
	"github.com/rpgshelf/shelf/pkg/types"
)

// SessionColumns are the sessions grid headers.
var SessionColumns = []string{"ID", "Date", "System", "Kind", "GM", "Players"}

// SessionRow is one line of the sessions grid.
type SessionRow struct {
	ID      int64
	Date    string
	System  string
	Kind    string
	GM      string
	Players string
}

// Cells returns the row in SessionColumns order.
func (r SessionRow) Cells() []string {
	return []string{strconv.FormatInt(r.ID, 10), r.Date, r.System, r.Kind, r.GM, r.Players}
}

// Tone colors the row by the month of its date.
func (r SessionRow) Tone() theme.Tone {
	d, err := time.Parse(types.DateLayout, r.Date)
	if err != nil {
		return theme.ToneNone
	}
	return theme.MonthTone(int(d.Month()))
}

var sessionSortKeys = map[string]sortKey[SessionRow]{
	"id":      byNum(func(r SessionRow) float64 { return float64(r.ID) }),
	"date":    byText(func(r SessionRow) string { return r.Date }),
	"system":  byText(func(r SessionRow) string { return r.System }),
	"kind":    byText(func(r SessionRow) string { return r.Kind }),
	"gm":      byText(func(r SessionRow) string { return r.GM }),
	"players": byText(func(r SessionRow) string { return r.Players }),
}

func matchSession(r SessionRow, f Filters) bool {
	return strings.HasPrefix(r.Date, f.Value(FilterYear)) &&
		exactMatch(r.System, f.Value(FilterSystem)) &&
		strings.HasPrefix(r.Kind, f.Value(FilterKind)) &&
		exactMatch(r.GM, f.Value(FilterGM))
}

// SessionRows fills the sessions grid. System, game master and player
// names come from their own stores; an id that no longer resolves shows a
// placeholder instead of failing the fill.
func (s *Service) SessionRows(ctx context.Context, v View) ([]SessionRow, error) {
	sessions, err := s.catalog.Sessions().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	systems := newNameCache(s.catalog.Systems(), SystemPlaceholder)
	players := newNameCache(s.catalog.Players(), PlayerPlaceholder)

	rows := make([]SessionRow, 0, len(sessions))
	for _, sess := range sessions {
		names := make([]string, 0, len(sess.PlayerIDs))
		for _, id := range sess.PlayerIDs {
			names = append(names, players.name(ctx, &id))
		}
		rows = append(rows, SessionRow{
			ID:      sess.ID,
			Date:    sess.Date,
			System:  systems.name(ctx, sess.SystemID),
			Kind:    sess.KindDisplay(),
			GM:      players.name(ctx, sess.GMID),
			Players: strings.Join(names, ", "),
		})
	}
	rows = applyFilters(rows, v.Filters, matchSession)
	if err := sortRows(rows, v.Sort, sessionSortKeys); err != nil {
		return nil, err
	}
	return rows, nil
}

// Flow tells ValidateSession which player count rule applies.
type Flow int

const (
	// FlowAdd requires exactly the declared number of players.
	FlowAdd Flow = iota
	// FlowEdit allows between one and the declared number of players and
	// stores the number actually selected.
	FlowEdit
)

// SessionInput is the session dialog after pickers have resolved ids.
// PlayerCount stays raw text as typed.
type SessionInput struct {
	Date           string
	SystemID       *int64
	PlayerCount    string
	GMID           *int64
	PlayerIDs      []int64
	Campaign       bool
	OneShot        bool
	CampaignTitle  string
	AdventureTitle string
}

// DefaultPlayerCount prefills the add dialog.
const DefaultPlayerCount = "1"

// uniquePlayers returns the distinct player ids in ascending order.
func (in SessionInput) uniquePlayers() []int64 {
	seen := make(map[int64]bool, len(in.PlayerIDs))
	out := make([]int64, 0, len(in.PlayerIDs))
	for _, id := range in.PlayerIDs {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ValidateSession checks in against the session rules in a fixed order
// and returns the first failure as a *types.ValidationError.
func ValidateSession(in SessionInput, flow Flow) error {
	if _, err := time.Parse(types.DateLayout, strings.TrimSpace(in.Date)); err != nil {
		return types.Invalid("date", types.ErrInvalidDate)
	}
	if in.SystemID == nil {
		return types.Invalid("system", types.ErrSystemRequired)
	}

	declared, err := strconv.Atoi(strings.TrimSpace(in.PlayerCount))
	if err != nil {
		return types.Invalid("players", types.ErrPlayerCountMismatch)
	}
	selected := len(in.uniquePlayers())
	switch flow {
	case FlowAdd:
		if selected != declared {
			return types.Invalid("players", fmt.Errorf("%w: select exactly %d", types.ErrPlayerCountMismatch, declared))
		}
	case FlowEdit:
		if selected > declared {
			return types.Invalid("players", fmt.Errorf("%w: select at most %d", types.ErrPlayerCountMismatch, declared))
		}
		if selected < 1 {
			return types.Invalid("players", fmt.Errorf("%w: select at least 1", types.ErrPlayerCountMismatch))
		}
	}

	if in.GMID == nil {
		return types.Invalid("gm", types.ErrGMRequired)
	}
	for _, id := range in.PlayerIDs {
		if id == *in.GMID {
			return types.Invalid("gm", types.ErrGMIsPlayer)
		}
	}

	switch {
	case in.Campaign && in.OneShot:
		return types.Invalid("kind", types.ErrKindConflict)
	case !in.Campaign && !in.OneShot:
		return types.Invalid("kind", types.ErrKindRequired)
	}
	return nil
}

// Session validates in and returns the session it describes. The stored
// player count is the number of distinct players selected.
func (in SessionInput) Session(flow Flow) (*types.Session, error) {
	if err := ValidateSession(in, flow); err != nil {
		return nil, err
	}
	players := in.uniquePlayers()
	s := &types.Session{
		Date:        strings.TrimSpace(in.Date),
		SystemID:    in.SystemID,
		PlayerCount: len(players),
		GMID:        in.GMID,
		Campaign:    in.Campaign,
		OneShot:     in.OneShot,
		PlayerIDs:   players,
	}
	if s.Campaign {
		s.CampaignTitle = strings.TrimSpace(in.CampaignTitle)
	}
	s.AdventureTitle = strings.TrimSpace(in.AdventureTitle)
	return s, nil
}

// SessionInputFrom prefills the edit dialog.
func SessionInputFrom(s *types.Session) SessionInput {
	return SessionInput{
		Date:           s.Date,
		SystemID:       s.SystemID,
		PlayerCount:    strconv.Itoa(s.PlayerCount),
		GMID:           s.GMID,
		PlayerIDs:      append([]int64(nil), s.PlayerIDs...),
		Campaign:       s.Campaign,
		OneShot:        s.OneShot,
		CampaignTitle:  s.CampaignTitle,
		AdventureTitle: s.AdventureTitle,
	}
}

// SessionFormReady reports whether the session dialog can open: it needs
// at least one core rulebook and one player on file.
func (s *Service) SessionFormReady(ctx context.Context) error {
	systems, err := s.catalog.Systems().CoreRulebooks(ctx)
	if err != nil {
		return fmt.Errorf("listing core rulebooks: %w", err)
	}
	if len(systems) == 0 {
		return types.Invalid("", types.ErrNoSystems)
	}
	players, err := s.catalog.Players().List(ctx)
	if err != nil {
		return fmt.Errorf("listing players: %w", err)
	}
	if len(players) == 0 {
		return types.Invalid("", types.ErrNoPlayers)
	}
	return nil
}

// LoadSessionInput loads session id into an edit form.
func (s *Service) LoadSessionInput(ctx context.Context, id int64) (SessionInput, error) {
	sess, err := s.catalog.Sessions().Get(ctx, id)
	if err != nil {
		return SessionInput{}, err
	}
	return SessionInputFrom(sess), nil
}

// SaveSession validates in under flow and writes the session with its
// player links. FlowAdd creates a new session; FlowEdit overwrites id.
func (s *Service) SaveSession(ctx context.Context, id int64, in SessionInput, flow Flow) (int64, error) {
	if err := s.SessionFormReady(ctx); err != nil {
		return 0, err
	}
	sess, err := in.Session(flow)
	if err != nil {
		return 0, err
	}
	store := s.catalog.Sessions()
	if flow == FlowAdd {
		if id, err = store.Create(ctx, sess); err != nil {
			return 0, err
		}
		s.logger.Info("session added", zap.Int64("id", id), zap.String("date", sess.Date))
		return id, nil
	}
	if id <= 0 {
		return 0, types.ErrInvalidID
	}
	sess.ID = id
	if err := store.Update(ctx, sess); err != nil {
		return 0, err
	}
	s.logger.Info("session updated", zap.Int64("id", id), zap.Int("players", sess.PlayerCount))
	return id, nil
}

// DeleteSession removes a session and its player links.
func (s *Service) DeleteSession(ctx context.Context, id int64) error {
	if err := s.catalog.Sessions().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("session deleted", zap.Int64("id", id))
	return nil
}

// IsUserError reports whether err should be shown to the user as a form or
// input problem rather than a system failure.
func IsUserError(err error) bool {
	return types.IsValidation(err) ||
		errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, types.ErrInvalidID) ||
		errors.Is(err, types.ErrDuplicateID)
}
