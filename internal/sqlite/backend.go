// Package sqlite implements the SQLite storage backend for the shelf
// catalog. Each entity family lives in its own database file; the files
// reference each other only by plain integer ids.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/rpgshelf/shelf/pkg/types"
)

var _ types.Catalog = (*Backend)(nil)

// Backend implements the Catalog interface over four SQLite files.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	logger   *zap.Logger
	stores   map[string]*storeFile

	publishers *publishersTable
	players    *playersTable
	systems    *systemsTable
	sessions   *sessionsTable
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Backend{
		logger: logger,
		stores: make(map[string]*storeFile),
	}
	b.publishers = &publishersTable{backend: b}
	b.players = &playersTable{backend: b}
	b.systems = &systemsTable{backend: b}
	b.sessions = &sessionsTable{backend: b}
	return b
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist and opens every store file, creating
// missing tables and columns. A store that cannot be opened is recorded as
// unavailable rather than failing the attach; its operations then return
// ErrStoreUnavailable.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	stores := make(map[string]*storeFile, len(types.StandardStoreNames))
	for _, name := range types.StandardStoreNames {
		path := filepath.Join(dataDir, types.StoreFileName(name))
		db, err := openStore(path, name)
		if err != nil {
			b.logger.Warn("store unavailable",
				zap.String("store", name),
				zap.String("path", path),
				zap.Error(err),
			)
		}
		stores[name] = &storeFile{name: name, path: path, db: db, err: err}
	}

	b.config = config
	b.stores = stores
	b.attached = true
	return nil
}

// Detach releases all resources held by the backend.
// Closes every store file. After Detach, all operations return
// ErrCatalogDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	var firstErr error
	for _, s := range b.stores {
		if s.db == nil {
			continue
		}
		if err := s.db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing %s store: %w", s.name, err)
		}
		s.db = nil
	}

	b.attached = false
	b.stores = make(map[string]*storeFile)
	return firstErr
}

// Unavailable returns the open error of every store that failed to attach,
// keyed by store name.
func (b *Backend) Unavailable() map[string]error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]error)
	for name, s := range b.stores {
		if s.err != nil {
			out[name] = s.err
		}
	}
	return out
}

// DataDir returns the directory the backend is attached to.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config.DataDir
}

// Publishers returns the publishers store.
func (b *Backend) Publishers() types.PublisherStore { return b.publishers }

// Players returns the players store.
func (b *Backend) Players() types.PlayerStore { return b.players }

// Systems returns the game systems store.
func (b *Backend) Systems() types.SystemStore { return b.systems }

// Sessions returns the sessions store.
func (b *Backend) Sessions() types.SessionStore { return b.sessions }

// conn returns the database handle of a store, or ErrCatalogDetached /
// ErrStoreUnavailable.
func (b *Backend) conn(store string) (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCatalogDetached
	}
	s, ok := b.stores[store]
	if !ok || s.db == nil {
		return nil, fmt.Errorf("%s: %w", store, types.ErrStoreUnavailable)
	}
	return s.db, nil
}
