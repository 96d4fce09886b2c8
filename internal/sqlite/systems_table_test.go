package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgshelf/shelf/pkg/types"
)

func TestSystemsTable(t *testing.T) {
	ctx := context.Background()

	core := func(name string) *types.GameSystem {
		return &types.GameSystem{Name: name, Kind: types.KindCoreRulebook}
	}
	supplement := func(name string, parent int64) *types.GameSystem {
		return &types.GameSystem{
			Name:            name,
			Kind:            types.KindSupplement,
			ParentID:        ptr(parent),
			SupplementTypes: []types.SupplementType{types.SupplementScenario},
		}
	}

	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "create round-trips every field",
			check: func(t *testing.T, b *Backend) {
				want := &types.GameSystem{
					Name:             "Zew Cthulhu",
					Kind:             types.KindSupplement,
					ParentID:         ptr(int64(7)),
					SupplementTypes:  []types.SupplementType{types.SupplementScenario, types.SupplementBestiary},
					PublisherID:      ptr(int64(2)),
					Physical:         true,
					PDF:              true,
					VTT:              []string{"Foundry VTT", "Roll20"},
					Language:         "PL",
					PlayStatus:       types.Played,
					CollectionStatus: types.Sold,
					SalePrice:        ptr(45.0),
					SaleCurrency:     "USD",
				}
				id, err := b.Systems().Create(ctx, want)
				require.NoError(t, err)

				got, err := b.Systems().Get(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, want, got)
				assert.Equal(t, "45.00 USD", got.PriceDisplay())
			},
		},
		{
			name: "create fills default kind and statuses",
			check: func(t *testing.T, b *Backend) {
				id, err := b.Systems().Create(ctx, &types.GameSystem{Name: "Mörk Borg"})
				require.NoError(t, err)

				got, err := b.Systems().Get(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, types.KindCoreRulebook, got.Kind)
				assert.Equal(t, types.NotPlayed, got.PlayStatus)
				assert.Equal(t, types.Owned, got.CollectionStatus)
				assert.Nil(t, got.ParentID)
				assert.Nil(t, got.PurchasePrice)
			},
		},
		{
			name: "core rulebooks are ordered by name",
			check: func(t *testing.T, b *Backend) {
				for _, s := range []*types.GameSystem{core("Warhammer"), core("alien"), core("Cyberpunk")} {
					_, err := b.Systems().Create(ctx, s)
					require.NoError(t, err)
				}
				_, err := b.Systems().Create(ctx, supplement("Aardvark Guide", 1))
				require.NoError(t, err)

				got, err := b.Systems().CoreRulebooks(ctx)
				require.NoError(t, err)
				var names []string
				for _, s := range got {
					names = append(names, s.Name)
				}
				assert.Equal(t, []string{"alien", "Cyberpunk", "Warhammer"}, names)
			},
		},
		{
			name: "supplements of a parent are ordered by name",
			check: func(t *testing.T, b *Backend) {
				parent, err := b.Systems().Create(ctx, core("D&D 5e"))
				require.NoError(t, err)
				other, err := b.Systems().Create(ctx, core("Pathfinder"))
				require.NoError(t, err)
				for _, s := range []*types.GameSystem{
					supplement("Xanathar", parent),
					supplement("Curse of Strahd", parent),
					supplement("Gamemastery Guide", other),
				} {
					_, err := b.Systems().Create(ctx, s)
					require.NoError(t, err)
				}

				got, err := b.Systems().Supplements(ctx, parent)
				require.NoError(t, err)
				require.Len(t, got, 2)
				assert.Equal(t, "Curse of Strahd", got[0].Name)
				assert.Equal(t, "Xanathar", got[1].Name)
			},
		},
		{
			name: "delete with supplements cascades to children only",
			check: func(t *testing.T, b *Backend) {
				parent, err := b.Systems().Create(ctx, core("D&D 5e"))
				require.NoError(t, err)
				other, err := b.Systems().Create(ctx, core("Pathfinder"))
				require.NoError(t, err)
				_, err = b.Systems().Create(ctx, supplement("A", parent))
				require.NoError(t, err)
				_, err = b.Systems().Create(ctx, supplement("B", parent))
				require.NoError(t, err)
				keep, err := b.Systems().Create(ctx, supplement("C", other))
				require.NoError(t, err)

				n, err := b.Systems().DeleteWithSupplements(ctx, parent)
				require.NoError(t, err)
				assert.Equal(t, 2, n)

				all, err := b.Systems().List(ctx)
				require.NoError(t, err)
				var ids []int64
				for _, s := range all {
					ids = append(ids, s.ID)
				}
				assert.ElementsMatch(t, []int64{other, keep}, ids)
			},
		},
		{
			name: "plain delete leaves orphans behind",
			check: func(t *testing.T, b *Backend) {
				parent, err := b.Systems().Create(ctx, core("D&D 5e"))
				require.NoError(t, err)
				child, err := b.Systems().Create(ctx, supplement("A", parent))
				require.NoError(t, err)

				require.NoError(t, b.Systems().Delete(ctx, parent))
				got, err := b.Systems().Get(ctx, child)
				require.NoError(t, err)
				require.NotNil(t, got.ParentID)
				assert.Equal(t, parent, *got.ParentID)
			},
		},
		{
			name: "update rejects a system that is its own parent",
			check: func(t *testing.T, b *Backend) {
				id, err := b.Systems().Create(ctx, core("Solo"))
				require.NoError(t, err)
				s := supplement("Solo", id)
				s.ID = id
				err = b.Systems().Update(ctx, s)
				assert.ErrorIs(t, err, types.ErrInvalidID)
			},
		},
		{
			name: "delete of a missing system returns ErrNotFound",
			check: func(t *testing.T, b *Backend) {
				_, err := b.Systems().DeleteWithSupplements(ctx, 9)
				assert.ErrorIs(t, err, types.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, setupBackend(t))
		})
	}
}
