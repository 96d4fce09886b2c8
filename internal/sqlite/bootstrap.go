package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/rpgshelf/shelf/pkg/types"
)

// BackupDirName is the directory under the data dir that holds pre-upgrade
// snapshots.
const BackupDirName = "backups"

// BootstrapOptions configures Bootstrap.
type BootstrapOptions struct {
	DataDir   string
	LegacyDir string // Searched for store files from older installs; empty skips migration.
	Logger    *zap.Logger
	Now       func() time.Time
}

// BootstrapReport describes what Bootstrap did, store by store.
type BootstrapReport struct {
	Migrated      []string // Stores copied forward from the legacy dir.
	LegacyBackups []string // Backup copies written next to legacy originals.
	Backups       []string // Snapshots taken before stamping.
	Stamped       []string // Stores whose version was stamped.
	Errors        map[string]error
}

// Lines renders the report as human-readable progress lines.
func (r *BootstrapReport) Lines() []string {
	var lines []string
	for _, s := range r.Migrated {
		lines = append(lines, fmt.Sprintf("Migrated %s store from legacy location", s))
	}
	for _, p := range r.LegacyBackups {
		lines = append(lines, fmt.Sprintf("Legacy backup written to %s", p))
	}
	for _, p := range r.Backups {
		lines = append(lines, fmt.Sprintf("Backup written to %s", p))
	}
	for _, s := range r.Stamped {
		lines = append(lines, fmt.Sprintf("Stamped %s store at schema version %d", s, CurrentSchemaVersion))
	}
	for _, name := range types.StandardStoreNames {
		if err, ok := r.Errors[name]; ok {
			lines = append(lines, fmt.Sprintf("Store %s: %v", name, err))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "Stores are up to date")
	}
	return lines
}

// OK reports whether every store bootstrapped without error.
func (r *BootstrapReport) OK() bool { return len(r.Errors) == 0 }

// Bootstrap prepares the data directory: it migrates store files from the
// legacy directory, creates missing tables, and stamps the schema version,
// taking a backup of any file it is about to stamp. A failing store is
// recorded in the report and does not stop the others. The returned error
// is non-nil only when the data directory itself cannot be created.
func Bootstrap(ctx context.Context, opts BootstrapOptions) (*BootstrapReport, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	if err := os.MkdirAll(opts.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	report := &BootstrapReport{Errors: make(map[string]error)}
	for _, name := range types.StandardStoreNames {
		if err := bootstrapStore(ctx, opts, name, now(), report); err != nil {
			logger.Error("store bootstrap failed", zap.String("store", name), zap.Error(err))
			report.Errors[name] = err
		}
	}

	for _, line := range report.Lines() {
		logger.Info(line)
	}
	return report, nil
}

func bootstrapStore(ctx context.Context, opts BootstrapOptions, name string, now time.Time, report *BootstrapReport) error {
	file := types.StoreFileName(name)

	if opts.LegacyDir != "" {
		migrated, backup, err := migrateLegacy(ctx, opts.LegacyDir, opts.DataDir, file, now)
		if err != nil {
			return fmt.Errorf("migrating legacy file: %w", err)
		}
		if migrated {
			report.Migrated = append(report.Migrated, name)
			report.LegacyBackups = append(report.LegacyBackups, backup)
		}
	}

	db, err := openStore(filepath.Join(opts.DataDir, file), name)
	if err != nil {
		return err
	}
	defer db.Close()

	info, err := readVersion(ctx, db)
	if err != nil {
		return err
	}
	if info.Version >= CurrentSchemaVersion {
		return nil
	}

	if info.Version > 0 || hasRows(ctx, db, name) {
		backup, err := backupStore(ctx, db, filepath.Join(opts.DataDir, BackupDirName), file, now)
		if err != nil {
			return err
		}
		report.Backups = append(report.Backups, backup)
	}

	if _, err := stampVersion(ctx, db, CurrentSchemaVersion, now); err != nil {
		return err
	}
	report.Stamped = append(report.Stamped, name)
	return nil
}

// migrateLegacy copies legacyDir/file into dataDir when the data dir has no
// such file yet, and writes a timestamped backup next to the legacy
// original. It returns false when there is nothing to migrate.
func migrateLegacy(ctx context.Context, legacyDir, dataDir, file string, now time.Time) (bool, string, error) {
	src := filepath.Join(legacyDir, file)
	dst := filepath.Join(dataDir, file)

	if same, err := samePath(src, dst); err != nil || same {
		return false, "", err
	}
	if _, err := os.Stat(dst); err == nil {
		return false, "", nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, "", fmt.Errorf("checking %s: %w", dst, err)
	}
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return false, "", nil
	} else if err != nil {
		return false, "", fmt.Errorf("checking %s: %w", src, err)
	}

	legacy, err := sql.Open("sqlite", dsn(src, true))
	if err != nil {
		return false, "", fmt.Errorf("opening %s: %w", src, err)
	}
	defer legacy.Close()

	if err := snapshot(ctx, legacy, dst); err != nil {
		return false, "", err
	}
	backup, err := backupStore(ctx, legacy, legacyDir, file, now)
	if err != nil {
		return true, "", err
	}
	return true, backup, nil
}

// samePath reports whether a and b resolve to the same absolute path.
func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}

// hasRows reports whether the store's primary table holds any data.
func hasRows(ctx context.Context, db *sql.DB, store string) bool {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+primaryTable[store]).Scan(&n); err != nil {
		return false
	}
	return n > 0
}

// primaryTable maps each store to its entity table.
var primaryTable = map[string]string{
	types.PublishersStore: "publishers",
	types.PlayersStore:    "players",
	types.SystemsStore:    "systems",
	types.SessionsStore:   "sessions",
}
