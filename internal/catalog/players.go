package catalog

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/rpgshelf/shelf/internal/theme"
	"github.com/rpgshelf/shelf/pkg/types"
)

// PlayerColumns are the players grid headers.
var PlayerColumns = []string{"ID", "Nick", "Full name", "Gender", "Social", "Status"}

// PlayerRow is one line of the players grid.
type PlayerRow struct {
	ID       int64
	Nickname string
	FullName string
	Gender   types.Gender
	Social   string
	Status   string // Marker: ⭐, 👑 or blank.
	Label    string // Primary, Notable or Regular.
	Rank     int
}

// Cells returns the row in PlayerColumns order.
func (r PlayerRow) Cells() []string {
	return []string{strconv.FormatInt(r.ID, 10), r.Nickname, r.FullName, string(r.Gender), r.Social, r.Status}
}

// Tone colors primary and notable players by status and everyone else by
// gender.
func (r PlayerRow) Tone() theme.Tone {
	switch r.Label {
	case types.StatusPrimary:
		return theme.TonePrimary
	case types.StatusNotable:
		return theme.ToneNotable
	}
	switch r.Gender {
	case types.GenderWoman:
		return theme.ToneWoman
	case types.GenderMan:
		return theme.ToneMan
	case types.GenderNonBinary:
		return theme.ToneNonBinary
	case types.GenderOther:
		return theme.ToneOther
	}
	return theme.ToneNone
}

var playerSortKeys = map[string]sortKey[PlayerRow]{
	"id":        byNum(func(r PlayerRow) float64 { return float64(r.ID) }),
	"nickname":  byText(func(r PlayerRow) string { return r.Nickname }),
	"full_name": byText(func(r PlayerRow) string { return r.FullName }),
	"gender":    byText(func(r PlayerRow) string { return string(r.Gender) }),
	"social":    byText(func(r PlayerRow) string { return r.Social }),
	"status":    byNum(func(r PlayerRow) float64 { return float64(r.Rank) }),
}

func matchPlayer(r PlayerRow, f Filters) bool {
	return exactMatch(string(r.Gender), f.Value(FilterGender)) &&
		triMatch(r.FullName, f.Value(FilterFullName)) &&
		triMatch(r.Social, f.Value(FilterSocial)) &&
		exactMatch(r.Label, f.Value(FilterStatus))
}

func playerRow(p *types.Player) PlayerRow {
	return PlayerRow{
		ID:       p.ID,
		Nickname: p.Nickname,
		FullName: p.FullName,
		Gender:   p.Gender,
		Social:   p.Social,
		Status:   p.StatusMarker(),
		Label:    p.StatusLabel(),
		Rank:     p.StatusRank(),
	}
}

// PlayerRows fills the players grid.
func (s *Service) PlayerRows(ctx context.Context, v View) ([]PlayerRow, error) {
	players, err := s.catalog.Players().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	rows := make([]PlayerRow, 0, len(players))
	for _, p := range players {
		rows = append(rows, playerRow(p))
	}
	rows = applyFilters(rows, v.Filters, matchPlayer)
	if err := sortRows(rows, v.Sort, playerSortKeys); err != nil {
		return nil, err
	}
	return rows, nil
}

// LoadPlayerForm loads player id into an edit form.
func (s *Service) LoadPlayerForm(ctx context.Context, id int64) (PlayerForm, error) {
	p, err := s.catalog.Players().Get(ctx, id)
	if err != nil {
		return PlayerForm{}, err
	}
	return PlayerFormFrom(p), nil
}

// SavePlayer creates a player when id is 0 and overwrites player id
// otherwise. Marking a player primary unmarks every other player.
func (s *Service) SavePlayer(ctx context.Context, id int64, f PlayerForm) (int64, error) {
	p, err := f.Player()
	if err != nil {
		return 0, err
	}
	store := s.catalog.Players()
	if id == 0 {
		if id, err = store.Create(ctx, p); err != nil {
			return 0, err
		}
		s.logger.Info("player added", zap.Int64("id", id), zap.Bool("primary", p.Primary))
		return id, nil
	}
	p.ID = id
	if err := store.Update(ctx, p); err != nil {
		return 0, err
	}
	s.logger.Info("player updated", zap.Int64("id", id), zap.Bool("primary", p.Primary))
	return id, nil
}

// DeletePlayer removes a player. Sessions that reference the player keep
// the id and display a placeholder.
func (s *Service) DeletePlayer(ctx context.Context, id int64) error {
	if err := s.catalog.Players().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("player deleted", zap.Int64("id", id))
	return nil
}
