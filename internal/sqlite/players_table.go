package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpgshelf/shelf/pkg/types"
)

var _ types.PlayerStore = (*playersTable)(nil)

const playerColumns = "id, nickname, full_name, gender, social, is_primary, notable"

type playersTable struct {
	backend *Backend
}

func (pt *playersTable) db() (*sql.DB, error) {
	return pt.backend.conn(types.PlayersStore)
}

// Get retrieves a player by id.
func (pt *playersTable) Get(ctx context.Context, id int64) (*types.Player, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	db, err := pt.db()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, "SELECT "+playerColumns+" FROM players WHERE id = ?", id)
	p, err := hydratePlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting player %d: %w", id, err)
	}
	return p, nil
}

// NameByID returns the player's nickname.
func (pt *playersTable) NameByID(ctx context.Context, id int64) (string, error) {
	db, err := pt.db()
	if err != nil {
		return "", err
	}
	return nameByID(ctx, db, "players", "nickname", id)
}

// List returns all players ordered by id.
func (pt *playersTable) List(ctx context.Context) ([]*types.Player, error) {
	db, err := pt.db()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "SELECT "+playerColumns+" FROM players ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("fetching players: %w", err)
	}
	defer rows.Close()

	results := []*types.Player{}
	for rows.Next() {
		p, err := hydratePlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating player: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating players: %w", err)
	}
	return results, nil
}

// Primary returns the player flagged as the primary user.
func (pt *playersTable) Primary(ctx context.Context) (*types.Player, error) {
	db, err := pt.db()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx,
		"SELECT "+playerColumns+" FROM players WHERE is_primary = 1 ORDER BY id ASC LIMIT 1",
	)
	p, err := hydratePlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting primary player: %w", err)
	}
	return p, nil
}

// Create inserts a player. When p.Primary is set every other player loses
// the flag in the same transaction.
func (pt *playersTable) Create(ctx context.Context, p *types.Player) (int64, error) {
	if err := validatePlayer(p); err != nil {
		return 0, err
	}
	db, err := pt.db()
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := allocateID(ctx, tx, "players", p.ID)
	if err != nil {
		return 0, err
	}
	if p.Primary {
		if err := clearPrimary(ctx, tx, id); err != nil {
			return 0, err
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO players ("+playerColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, p.Nickname, nullString(p.FullName), string(p.Gender), nullString(p.Social),
		boolInt(p.Primary), boolInt(p.Notable),
	); err != nil {
		return 0, fmt.Errorf("inserting player: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing player: %w", err)
	}

	p.ID = id
	return id, nil
}

// Update overwrites every column of an existing player, clearing the
// primary flag elsewhere when it is set here.
func (pt *playersTable) Update(ctx context.Context, p *types.Player) error {
	if err := validatePlayer(p); err != nil {
		return err
	}
	if p.ID <= 0 {
		return types.ErrInvalidID
	}
	db, err := pt.db()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE players SET nickname = ?, full_name = ?, gender = ?, social = ?,
		 is_primary = ?, notable = ? WHERE id = ?`,
		p.Nickname, nullString(p.FullName), string(p.Gender), nullString(p.Social),
		boolInt(p.Primary), boolInt(p.Notable), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating player %d: %w", p.ID, err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	if p.Primary {
		if err := clearPrimary(ctx, tx, p.ID); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing player: %w", err)
	}
	return nil
}

// Delete removes a player. Sessions that reference it keep the dangling id.
func (pt *playersTable) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	db, err := pt.db()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, "DELETE FROM players WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting player %d: %w", id, err)
	}
	return requireAffected(res)
}

// NextID returns the id the next Create would allocate.
func (pt *playersTable) NextID(ctx context.Context) (int64, error) {
	db, err := pt.db()
	if err != nil {
		return 0, err
	}
	return nextID(ctx, db, "players")
}

func validatePlayer(p *types.Player) error {
	if p == nil {
		return types.ErrInvalidData
	}
	if p.Nickname == "" {
		return types.Invalid("nickname", types.ErrNameRequired)
	}
	if p.Gender == "" {
		p.Gender = types.GenderWoman
	}
	return nil
}

// clearPrimary removes the primary flag from every player except keep.
func clearPrimary(ctx context.Context, tx *sql.Tx, keep int64) error {
	if _, err := tx.ExecContext(ctx, "UPDATE players SET is_primary = 0 WHERE id != ?", keep); err != nil {
		return fmt.Errorf("clearing primary flag: %w", err)
	}
	return nil
}

// hydratePlayer converts a row into a *types.Player.
func hydratePlayer(row scanner) (*types.Player, error) {
	var (
		p        types.Player
		fullName sql.NullString
		gender   sql.NullString
		social   sql.NullString
		primary  int
		notable  int
	)
	if err := row.Scan(&p.ID, &p.Nickname, &fullName, &gender, &social, &primary, &notable); err != nil {
		return nil, err
	}
	p.FullName = fullName.String
	p.Gender = types.Gender(gender.String)
	p.Social = social.String
	p.Primary = primary != 0
	p.Notable = notable != 0
	return &p, nil
}
