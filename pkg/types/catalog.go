package types

import (
	"context"
	"errors"
)

// Catalog defines the interface for access to the four entity stores.
// Callers attach to a backend, use the stores, and detach when done.
type Catalog interface {
	// Attach connects the Catalog to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, store operations return ErrCatalogDetached.
	Detach() error

	Publishers() PublisherStore
	Players() PlayerStore
	Systems() SystemStore
	Sessions() SessionStore
}

// NameResolver looks up the display name of an entity by id. It returns
// ErrNotFound when no row has that id; callers that only need a label use
// a placeholder on any error.
type NameResolver interface {
	NameByID(ctx context.Context, id int64) (string, error)
}

// PublisherStore persists publishers.
type PublisherStore interface {
	NameResolver

	// Get returns the publisher with the given id or ErrNotFound.
	Get(ctx context.Context, id int64) (*Publisher, error)

	// List returns every publisher ordered by id.
	List(ctx context.Context) ([]*Publisher, error)

	// Create inserts p. When p.ID is zero the lowest free id is allocated.
	// Returns the id used.
	Create(ctx context.Context, p *Publisher) (int64, error)

	// Update overwrites the full row. Returns ErrNotFound if absent.
	Update(ctx context.Context, p *Publisher) error

	// Delete removes the publisher. Systems referencing it are untouched.
	Delete(ctx context.Context, id int64) error

	// NextID returns the id the next Create would allocate.
	NextID(ctx context.Context) (int64, error)
}

// PlayerStore persists players. Saving a player with Primary set clears
// the flag on every other row.
type PlayerStore interface {
	NameResolver

	Get(ctx context.Context, id int64) (*Player, error)

	// List returns every player ordered by id.
	List(ctx context.Context) ([]*Player, error)
	Create(ctx context.Context, p *Player) (int64, error)
	Update(ctx context.Context, p *Player) error
	Delete(ctx context.Context, id int64) error
	NextID(ctx context.Context) (int64, error)

	// Primary returns the player flagged as the primary user, or ErrNotFound.
	Primary(ctx context.Context) (*Player, error)
}

// SystemStore persists game systems and supplements.
type SystemStore interface {
	NameResolver

	Get(ctx context.Context, id int64) (*GameSystem, error)

	// List returns every system ordered by id.
	List(ctx context.Context) ([]*GameSystem, error)
	Create(ctx context.Context, s *GameSystem) (int64, error)
	Update(ctx context.Context, s *GameSystem) error
	Delete(ctx context.Context, id int64) error
	NextID(ctx context.Context) (int64, error)

	// CoreRulebooks returns every Core Rulebook ordered by name.
	CoreRulebooks(ctx context.Context) ([]*GameSystem, error)

	// Supplements returns the supplements whose parent is parentID,
	// ordered by name.
	Supplements(ctx context.Context, parentID int64) ([]*GameSystem, error)

	// DeleteWithSupplements removes a system and every row whose parent
	// is that system. Returns the number of supplements removed.
	DeleteWithSupplements(ctx context.Context, id int64) (int, error)
}

// SessionStore persists sessions and the session to player join rows.
type SessionStore interface {
	Get(ctx context.Context, id int64) (*Session, error)

	// List returns every session ordered by date, then id, with PlayerIDs
	// populated.
	List(ctx context.Context) ([]*Session, error)

	// Create inserts the session row and one join row per player id.
	Create(ctx context.Context, s *Session) (int64, error)

	// Update overwrites the session row and replaces its join rows.
	Update(ctx context.Context, s *Session) error

	// Delete removes the session and its join rows.
	Delete(ctx context.Context, id int64) error
	NextID(ctx context.Context) (int64, error)

	// PlayerIDs returns the player ids linked to a session.
	PlayerIDs(ctx context.Context, sessionID int64) ([]int64, error)
}

// Catalog lifecycle errors.
var (
	ErrCatalogDetached  = errors.New("catalog is detached")
	ErrAlreadyAttached  = errors.New("catalog is already attached")
	ErrStoreUnavailable = errors.New("store is unavailable")
)

// Store operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
	ErrDuplicateID = errors.New("entity ID already in use")
)
