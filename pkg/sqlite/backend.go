// Package sqlite provides the public API for the SQLite catalog backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/rpgshelf/shelf/internal/sqlite"
	"github.com/rpgshelf/shelf/pkg/types"
)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
// A nil logger discards log output.
//
// Example:
//
//	catalog := sqlite.NewBackend(nil)
//	err := catalog.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: dataDir,
//	})
//	defer catalog.Detach()
func NewBackend(logger *zap.Logger) types.Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return sqlite.NewBackend(logger)
}
