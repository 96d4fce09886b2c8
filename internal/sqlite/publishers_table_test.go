package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgshelf/shelf/pkg/types"
)

// openRaw opens a store file without applying any schema.
func openRaw(path string) (*sql.DB, error) {
	return sql.Open("sqlite", dsn(path, false))
}

func TestPublishersTable(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "add then list returns the publisher with a fresh id",
			check: func(t *testing.T, b *Backend) {
				id, err := b.Publishers().Create(ctx, &types.Publisher{Name: "Wydawnictwo X", Country: "PL"})
				require.NoError(t, err)
				assert.Equal(t, int64(1), id)

				all, err := b.Publishers().List(ctx)
				require.NoError(t, err)
				var matches []*types.Publisher
				for _, p := range all {
					if p.Name == "Wydawnictwo X" {
						matches = append(matches, p)
					}
				}
				require.Len(t, matches, 1)
				assert.Equal(t, "PL", matches[0].Country)
				assert.Equal(t, id, matches[0].ID)
				assert.Empty(t, matches[0].Website)
			},
		},
		{
			name: "create rejects an empty name",
			check: func(t *testing.T, b *Backend) {
				_, err := b.Publishers().Create(ctx, &types.Publisher{Country: "PL"})
				assert.ErrorIs(t, err, types.ErrNameRequired)
				assert.True(t, types.IsValidation(err))
			},
		},
		{
			name: "deleted ids are reused lowest first",
			check: func(t *testing.T, b *Backend) {
				for _, name := range []string{"A", "B", "C", "D"} {
					_, err := b.Publishers().Create(ctx, &types.Publisher{Name: name})
					require.NoError(t, err)
				}
				require.NoError(t, b.Publishers().Delete(ctx, 3))

				next, err := b.Publishers().NextID(ctx)
				require.NoError(t, err)
				assert.Equal(t, int64(3), next)

				id, err := b.Publishers().Create(ctx, &types.Publisher{Name: "E"})
				require.NoError(t, err)
				assert.Equal(t, int64(3), id)
			},
		},
		{
			name: "create with a taken id fails",
			check: func(t *testing.T, b *Backend) {
				_, err := b.Publishers().Create(ctx, &types.Publisher{ID: 5, Name: "A"})
				require.NoError(t, err)
				_, err = b.Publishers().Create(ctx, &types.Publisher{ID: 5, Name: "B"})
				assert.ErrorIs(t, err, types.ErrDuplicateID)
			},
		},
		{
			name: "update overwrites every column",
			check: func(t *testing.T, b *Backend) {
				id, err := b.Publishers().Create(ctx, &types.Publisher{Name: "Old", Website: "http://old", Country: "DE"})
				require.NoError(t, err)

				require.NoError(t, b.Publishers().Update(ctx, &types.Publisher{ID: id, Name: "New"}))

				got, err := b.Publishers().Get(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, &types.Publisher{ID: id, Name: "New"}, got)
			},
		},
		{
			name: "update and delete of a missing row return ErrNotFound",
			check: func(t *testing.T, b *Backend) {
				assert.ErrorIs(t, b.Publishers().Update(ctx, &types.Publisher{ID: 42, Name: "X"}), types.ErrNotFound)
				assert.ErrorIs(t, b.Publishers().Delete(ctx, 42), types.ErrNotFound)
				_, err := b.Publishers().Get(ctx, 42)
				assert.ErrorIs(t, err, types.ErrNotFound)
			},
		},
		{
			name: "name lookup",
			check: func(t *testing.T, b *Backend) {
				id, err := b.Publishers().Create(ctx, &types.Publisher{Name: "Chaosium"})
				require.NoError(t, err)

				name, err := b.Publishers().NameByID(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, "Chaosium", name)

				_, err = b.Publishers().NameByID(ctx, id+1)
				assert.ErrorIs(t, err, types.ErrNotFound)
			},
		},
		{
			name: "invalid ids are rejected",
			check: func(t *testing.T, b *Backend) {
				_, err := b.Publishers().Get(ctx, 0)
				assert.ErrorIs(t, err, types.ErrInvalidID)
				assert.ErrorIs(t, b.Publishers().Delete(ctx, -1), types.ErrInvalidID)
				_, err = b.Publishers().Create(ctx, nil)
				assert.ErrorIs(t, err, types.ErrInvalidData)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, setupBackend(t))
		})
	}
}
