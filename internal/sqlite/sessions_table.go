package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/rpgshelf/shelf/pkg/types"
)

var _ types.SessionStore = (*sessionsTable)(nil)

const sessionColumns = `id, date, system_id, player_count, gm_id, campaign, one_shot,
 campaign_title, adventure_title`

type sessionsTable struct {
	backend *Backend
}

func (st *sessionsTable) db() (*sql.DB, error) {
	return st.backend.conn(types.SessionsStore)
}

// Get retrieves a session and its player ids.
func (st *sessionsTable) Get(ctx context.Context, id int64) (*types.Session, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	db, err := st.db()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id)
	s, err := hydrateSession(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting session %d: %w", id, err)
	}

	s.PlayerIDs, err = sessionPlayerIDs(ctx, db, id)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List returns every session ordered by date, then id.
func (st *sessionsTable) List(ctx context.Context) ([]*types.Session, error) {
	db, err := st.db()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "SELECT "+sessionColumns+" FROM sessions ORDER BY date ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("fetching sessions: %w", err)
	}
	defer rows.Close()

	results := []*types.Session{}
	byID := make(map[int64]*types.Session)
	for rows.Next() {
		s, err := hydrateSession(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating session: %w", err)
		}
		s.PlayerIDs = []int64{}
		results = append(results, s)
		byID[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	rows.Close()

	links, err := db.QueryContext(ctx,
		"SELECT session_id, player_id FROM session_players ORDER BY session_id, player_id",
	)
	if err != nil {
		return nil, fmt.Errorf("fetching session players: %w", err)
	}
	defer links.Close()

	for links.Next() {
		var sessionID, playerID int64
		if err := links.Scan(&sessionID, &playerID); err != nil {
			return nil, fmt.Errorf("scanning session player: %w", err)
		}
		if s, ok := byID[sessionID]; ok {
			s.PlayerIDs = append(s.PlayerIDs, playerID)
		}
	}
	if err := links.Err(); err != nil {
		return nil, fmt.Errorf("iterating session players: %w", err)
	}
	return results, nil
}

// PlayerIDs returns the players linked to a session, ordered by id.
func (st *sessionsTable) PlayerIDs(ctx context.Context, sessionID int64) ([]int64, error) {
	db, err := st.db()
	if err != nil {
		return nil, err
	}
	return sessionPlayerIDs(ctx, db, sessionID)
}

// Create inserts a session and its join rows in one transaction.
func (st *sessionsTable) Create(ctx context.Context, s *types.Session) (int64, error) {
	if s == nil {
		return 0, types.ErrInvalidData
	}
	db, err := st.db()
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := allocateID(ctx, tx, "sessions", s.ID)
	if err != nil {
		return 0, err
	}
	args := append([]any{id}, sessionValues(s)...)
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO sessions ("+sessionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		args...,
	); err != nil {
		return 0, fmt.Errorf("inserting session: %w", err)
	}
	if err := replaceSessionPlayers(ctx, tx, id, s.PlayerIDs); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing session: %w", err)
	}

	s.ID = id
	return id, nil
}

// Update overwrites the session row, then deletes and reinserts its join
// rows, in one transaction.
func (st *sessionsTable) Update(ctx context.Context, s *types.Session) error {
	if s == nil {
		return types.ErrInvalidData
	}
	if s.ID <= 0 {
		return types.ErrInvalidID
	}
	db, err := st.db()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	args := append(sessionValues(s), s.ID)
	res, err := tx.ExecContext(ctx,
		`UPDATE sessions SET date = ?, system_id = ?, player_count = ?, gm_id = ?, campaign = ?,
		 one_shot = ?, campaign_title = ?, adventure_title = ? WHERE id = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("updating session %d: %w", s.ID, err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	if err := replaceSessionPlayers(ctx, tx, s.ID, s.PlayerIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	return nil
}

// Delete removes a session and its join rows.
func (st *sessionsTable) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	db, err := st.db()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session %d: %w", id, err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM session_players WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("deleting session players of %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session deletion: %w", err)
	}
	return nil
}

// NextID returns the id the next Create would allocate.
func (st *sessionsTable) NextID(ctx context.Context) (int64, error) {
	db, err := st.db()
	if err != nil {
		return 0, err
	}
	return nextID(ctx, db, "sessions")
}

// replaceSessionPlayers deletes every join row of a session and inserts one
// per player id. Duplicate ids collapse to one row.
func replaceSessionPlayers(ctx context.Context, tx *sql.Tx, sessionID int64, playerIDs []int64) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM session_players WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("clearing session players: %w", err)
	}
	for _, pid := range playerIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO session_players (session_id, player_id) VALUES (?, ?)",
			sessionID, pid,
		); err != nil {
			return fmt.Errorf("linking player %d: %w", pid, err)
		}
	}
	return nil
}

func sessionPlayerIDs(ctx context.Context, q queryer, sessionID int64) ([]int64, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT player_id FROM session_players WHERE session_id = ?", sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching players of session %d: %w", sessionID, err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning session player: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session players: %w", err)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// sessionValues returns the column values after id, in sessionColumns order.
func sessionValues(s *types.Session) []any {
	return []any{
		s.Date,
		nullInt(s.SystemID),
		s.PlayerCount,
		nullInt(s.GMID),
		boolInt(s.Campaign),
		boolInt(s.OneShot),
		nullString(s.CampaignTitle),
		nullString(s.AdventureTitle),
	}
}

// hydrateSession converts a row into a *types.Session without player ids.
func hydrateSession(row scanner) (*types.Session, error) {
	var (
		s              types.Session
		systemID       sql.NullInt64
		playerCount    sql.NullInt64
		gmID           sql.NullInt64
		campaign       sql.NullInt64
		oneShot        sql.NullInt64
		campaignTitle  sql.NullString
		adventureTitle sql.NullString
	)
	if err := row.Scan(
		&s.ID, &s.Date, &systemID, &playerCount, &gmID, &campaign, &oneShot,
		&campaignTitle, &adventureTitle,
	); err != nil {
		return nil, err
	}
	s.SystemID = intPtr(systemID)
	s.PlayerCount = int(playerCount.Int64)
	s.GMID = intPtr(gmID)
	s.Campaign = campaign.Int64 != 0
	s.OneShot = oneShot.Int64 != 0
	s.CampaignTitle = campaignTitle.String
	s.AdventureTitle = adventureTitle.String
	return &s, nil
}
