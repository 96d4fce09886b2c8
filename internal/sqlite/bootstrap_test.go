package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rpgshelf/shelf/pkg/types"
)

var fixedNow = time.Date(2024, 1, 31, 17, 45, 2, 0, time.UTC)

func clock() time.Time { return fixedNow }

// writeLegacyPublishers creates a publishers file in dir with one row, in
// the layout older installs used.
func writeLegacyPublishers(t *testing.T, dir string) {
	t.Helper()
	db, err := openRaw(filepath.Join(dir, types.StoreFileName(types.PublishersStore)))
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`CREATE TABLE publishers (id INTEGER PRIMARY KEY, name TEXT NOT NULL, website TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO publishers (id, name, website) VALUES (4, 'Black Monk', 'https://blackmonk.pl')`)
	require.NoError(t, err)
}

func TestBootstrap_FreshInstall(t *testing.T) {
	ctx := context.Background()
	dataDir := filepath.Join(t.TempDir(), "data")

	report, err := Bootstrap(ctx, BootstrapOptions{DataDir: dataDir, LegacyDir: t.TempDir(), Logger: zap.NewNop(), Now: clock})
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Empty(t, report.Migrated)
	assert.Empty(t, report.Backups, "empty stores need no backup")
	assert.ElementsMatch(t, types.StandardStoreNames, report.Stamped)

	for _, name := range types.StandardStoreNames {
		db, err := openRaw(filepath.Join(dataDir, types.StoreFileName(name)))
		require.NoError(t, err)
		info, err := readVersion(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, CurrentSchemaVersion, info.Version)
		_, err = uuid.Parse(info.StoreID)
		assert.NoError(t, err, "store id should be a UUID")
		assert.True(t, fixedNow.Equal(info.UpdatedAt))
		db.Close()
	}
}

func TestBootstrap_Idempotent(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	opts := BootstrapOptions{DataDir: dataDir, Now: clock}

	_, err := Bootstrap(ctx, opts)
	require.NoError(t, err)

	report, err := Bootstrap(ctx, opts)
	require.NoError(t, err)
	assert.Empty(t, report.Stamped)
	assert.Empty(t, report.Backups)
	assert.Equal(t, []string{"Stores are up to date"}, report.Lines())
}

func TestBootstrap_StoreIDIsStable(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	db, err := openStore(filepath.Join(dir, "players.db"), types.PlayersStore)
	require.NoError(t, err)
	defer db.Close()

	first, err := stampVersion(ctx, db, 1, fixedNow)
	require.NoError(t, err)
	second, err := stampVersion(ctx, db, 1, fixedNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.StoreID, second.StoreID)

	info, err := readVersion(ctx, db)
	require.NoError(t, err)
	assert.True(t, fixedNow.Add(time.Hour).Equal(info.UpdatedAt))
}

func TestBootstrap_MigratesLegacyFiles(t *testing.T) {
	ctx := context.Background()
	legacyDir := t.TempDir()
	dataDir := t.TempDir()
	writeLegacyPublishers(t, legacyDir)

	report, err := Bootstrap(ctx, BootstrapOptions{DataDir: dataDir, LegacyDir: legacyDir, Now: clock})
	require.NoError(t, err)
	require.True(t, report.OK(), "errors: %v", report.Errors)

	assert.Equal(t, []string{types.PublishersStore}, report.Migrated)
	wantLegacyBackup := filepath.Join(legacyDir, "publishers.db.backup_20240131_174502")
	assert.Equal(t, []string{wantLegacyBackup}, report.LegacyBackups)
	_, err = os.Stat(wantLegacyBackup)
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(legacyDir, "publishers.db"))
	assert.NoError(t, err, "legacy original stays in place")

	// The migrated store had data and no version, so it is backed up before stamping.
	wantBackup := filepath.Join(dataDir, BackupDirName, "publishers.db.backup_20240131_174502")
	assert.Equal(t, []string{wantBackup}, report.Backups)

	b := NewBackend(nil)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	defer b.Detach()
	p, err := b.Publishers().Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Black Monk", p.Name)
	assert.Equal(t, "https://blackmonk.pl", p.Website)
	assert.Empty(t, p.Country, "missing column is added empty")
}

func TestBootstrap_DoesNotOverwriteExistingStore(t *testing.T) {
	ctx := context.Background()
	legacyDir := t.TempDir()
	dataDir := t.TempDir()
	writeLegacyPublishers(t, legacyDir)

	_, err := Bootstrap(ctx, BootstrapOptions{DataDir: dataDir, Now: clock})
	require.NoError(t, err)

	report, err := Bootstrap(ctx, BootstrapOptions{DataDir: dataDir, LegacyDir: legacyDir, Now: clock})
	require.NoError(t, err)
	assert.Empty(t, report.Migrated)

	b := NewBackend(nil)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	defer b.Detach()
	all, err := b.Publishers().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBootstrap_LegacyDirSameAsDataDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeLegacyPublishers(t, dir)

	report, err := Bootstrap(ctx, BootstrapOptions{DataDir: dir, LegacyDir: dir, Now: clock})
	require.NoError(t, err)
	assert.Empty(t, report.Migrated)
	assert.Contains(t, report.Stamped, types.PublishersStore)
}

func TestBootstrap_StoreErrorDoesNotStopOthers(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dataDir, "systems.db"), 0o755))

	report, err := Bootstrap(ctx, BootstrapOptions{DataDir: dataDir, Now: clock})
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.Contains(t, report.Errors, types.SystemsStore)
	assert.Contains(t, report.Stamped, types.SessionsStore)

	var sawError bool
	for _, line := range report.Lines() {
		if strings.HasPrefix(line, "Store systems:") {
			sawError = true
		}
	}
	assert.True(t, sawError)
}
