// Package catalog is the domain layer shared by the desktop and the CLI.
// It joins the four stores into display rows, applies per-tab filters and
// sorting, and validates and saves forms.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/rpgshelf/shelf/pkg/types"
)

// Service runs fill and mutation operations against a Catalog.
type Service struct {
	catalog types.Catalog
	logger  *zap.Logger
}

// NewService returns a Service over c.
func NewService(c types.Catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: c, logger: logger}
}

// SystemPlaceholder labels a system id that cannot be resolved.
func SystemPlaceholder(id int64) string { return fmt.Sprintf("System ID %d", id) }

// PlayerPlaceholder labels a player id that cannot be resolved.
func PlayerPlaceholder(id int64) string { return fmt.Sprintf("Player ID %d", id) }

// ResolveName looks id up in r. A nil id yields "". Any lookup error,
// including a missing row or an unavailable store, yields placeholder(id).
func ResolveName(ctx context.Context, r types.NameResolver, id *int64, placeholder func(int64) string) string {
	if id == nil {
		return ""
	}
	if r != nil {
		if name, err := r.NameByID(ctx, *id); err == nil {
			return name
		}
	}
	if placeholder == nil {
		return ""
	}
	return placeholder(*id)
}

// nameCache memoizes ResolveName for one fill.
type nameCache struct {
	resolver    types.NameResolver
	placeholder func(int64) string
	names       map[int64]string
}

func newNameCache(r types.NameResolver, placeholder func(int64) string) *nameCache {
	return &nameCache{resolver: r, placeholder: placeholder, names: make(map[int64]string)}
}

func (c *nameCache) name(ctx context.Context, id *int64) string {
	if id == nil {
		return ""
	}
	if n, ok := c.names[*id]; ok {
		return n
	}
	n := ResolveName(ctx, c.resolver, id, c.placeholder)
	c.names[*id] = n
	return n
}

// Option is one entry of a picker.
type Option struct {
	ID    int64
	Label string
}

func (o Option) String() string { return fmt.Sprintf("%d: %s", o.ID, o.Label) }

// sortOptions orders options by label, case-insensitively.
func sortOptions(opts []Option) {
	c := newCollator()
	sort.SliceStable(opts, func(i, j int) bool {
		return c.CompareString(opts[i].Label, opts[j].Label) < 0
	})
}

// CoreRulebookOptions lists the systems a supplement can belong to. The
// session form and the session system filter offer the same list.
func (s *Service) CoreRulebookOptions(ctx context.Context) ([]Option, error) {
	systems, err := s.catalog.Systems().CoreRulebooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing core rulebooks: %w", err)
	}
	opts := make([]Option, 0, len(systems))
	for _, sys := range systems {
		opts = append(opts, Option{ID: sys.ID, Label: sys.Name})
	}
	sortOptions(opts)
	return opts, nil
}

// PublisherOptions lists publishers by name.
func (s *Service) PublisherOptions(ctx context.Context) ([]Option, error) {
	pubs, err := s.catalog.Publishers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing publishers: %w", err)
	}
	opts := make([]Option, 0, len(pubs))
	for _, p := range pubs {
		opts = append(opts, Option{ID: p.ID, Label: p.Name})
	}
	sortOptions(opts)
	return opts, nil
}

// PlayerOptions lists players by nickname.
func (s *Service) PlayerOptions(ctx context.Context) ([]Option, error) {
	players, err := s.catalog.Players().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	opts := make([]Option, 0, len(players))
	for _, p := range players {
		opts = append(opts, Option{ID: p.ID, Label: p.Nickname})
	}
	sortOptions(opts)
	return opts, nil
}
