package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// CurrentSchemaVersion is the version stamped into every store file.
// Files below it are backed up and stamped on bootstrap.
const CurrentSchemaVersion = 1

// backupTimeLayout names backup files, e.g. players.db.backup_20240131_174502.
const backupTimeLayout = "20060102_150405"

const versionTableSQL = `CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER NOT NULL,
    store_id TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

// VersionInfo is the single row of a store's schema_version table.
type VersionInfo struct {
	Version   int
	StoreID   string // UUID v7 assigned when the file was first stamped.
	UpdatedAt time.Time
}

// readVersion returns the stamped version of a store, or a zero VersionInfo
// when the file has never been stamped.
func readVersion(ctx context.Context, db *sql.DB) (VersionInfo, error) {
	var (
		info    VersionInfo
		updated string
	)
	err := db.QueryRowContext(ctx,
		"SELECT version, store_id, updated_at FROM schema_version ORDER BY version DESC LIMIT 1",
	).Scan(&info.Version, &info.StoreID, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return VersionInfo{}, nil
	}
	if err != nil {
		return VersionInfo{}, fmt.Errorf("reading schema version: %w", err)
	}
	if t, perr := time.Parse(time.RFC3339, updated); perr == nil {
		info.UpdatedAt = t
	}
	return info, nil
}

// stampVersion replaces the version row. The store id is kept when the
// file already has one and generated otherwise.
func stampVersion(ctx context.Context, db *sql.DB, version int, now time.Time) (VersionInfo, error) {
	current, err := readVersion(ctx, db)
	if err != nil {
		return VersionInfo{}, err
	}

	storeID := current.StoreID
	if storeID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return VersionInfo{}, fmt.Errorf("generating UUID v7: %w", err)
		}
		storeID = id.String()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return VersionInfo{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return VersionInfo{}, fmt.Errorf("clearing schema version: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_version (version, store_id, updated_at) VALUES (?, ?, ?)",
		version, storeID, now.UTC().Format(time.RFC3339),
	); err != nil {
		return VersionInfo{}, fmt.Errorf("stamping schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return VersionInfo{}, fmt.Errorf("committing schema version: %w", err)
	}

	return VersionInfo{Version: version, StoreID: storeID, UpdatedAt: now.UTC().Truncate(time.Second)}, nil
}

// backupStore writes a consistent snapshot of db to
// dir/<file>.backup_<timestamp> and returns its path.
func backupStore(ctx context.Context, db *sql.DB, dir, file string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}
	path := filepath.Join(dir, file+".backup_"+now.Format(backupTimeLayout))
	if err := snapshot(ctx, db, path); err != nil {
		return "", err
	}
	return path, nil
}

// snapshot copies the whole database into a new file at path.
func snapshot(ctx context.Context, db *sql.DB, path string) error {
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	return nil
}
