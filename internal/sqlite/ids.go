package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpgshelf/shelf/pkg/types"
)

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// usedIDs returns every id in table.
func usedIDs(ctx context.Context, q queryer, table string) ([]int64, error) {
	rows, err := q.QueryContext(ctx, "SELECT id FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("listing %s ids: %w", table, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning %s id: %w", table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s ids: %w", table, err)
	}
	return ids, nil
}

// nextID returns the lowest positive id not used in table.
func nextID(ctx context.Context, q queryer, table string) (int64, error) {
	ids, err := usedIDs(ctx, q, table)
	if err != nil {
		return 0, err
	}
	return types.FirstFreeID(ids), nil
}

// allocateID returns requested when it is free, or the lowest free id when
// requested is zero. A taken id yields ErrDuplicateID.
func allocateID(ctx context.Context, q queryer, table string, requested int64) (int64, error) {
	if requested < 0 {
		return 0, types.ErrInvalidID
	}
	if requested == 0 {
		return nextID(ctx, q, table)
	}
	exists, err := rowExists(ctx, q, table, requested)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, types.ErrDuplicateID
	}
	return requested, nil
}

// rowExists reports whether table has a row with the given id.
func rowExists(ctx context.Context, q queryer, table string, id int64) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s existence: %w", table, err)
	}
	return true, nil
}

// nameByID reads the name column of one row.
func nameByID(ctx context.Context, q queryer, table, col string, id int64) (string, error) {
	var name string
	err := q.QueryRowContext(ctx, "SELECT "+col+" FROM "+table+" WHERE id = ?", id).Scan(&name)
	if err == sql.ErrNoRows {
		return "", types.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting %s name %d: %w", table, id, err)
	}
	return name, nil
}
