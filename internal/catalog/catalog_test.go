package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rpgshelf/shelf/internal/sqlite"
	"github.com/rpgshelf/shelf/internal/theme"
	"github.com/rpgshelf/shelf/pkg/types"
)

func setupService(t *testing.T) (*Service, *sqlite.Backend) {
	t.Helper()
	b := sqlite.NewBackend(zap.NewNop())
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return NewService(b, zap.NewNop()), b
}

func ptr[T any](v T) *T { return &v }

type fakeNames map[int64]string

func (f fakeNames) NameByID(_ context.Context, id int64) (string, error) {
	if n, ok := f[id]; ok {
		return n, nil
	}
	return "", types.ErrNotFound
}

type unavailableNames struct{}

func (unavailableNames) NameByID(context.Context, int64) (string, error) {
	return "", types.ErrStoreUnavailable
}

func TestResolveName(t *testing.T) {
	ctx := context.Background()
	names := fakeNames{1: "Call of Cthulhu"}

	tests := []struct {
		name        string
		resolver    types.NameResolver
		id          *int64
		placeholder func(int64) string
		want        string
	}{
		{"found", names, ptr(int64(1)), SystemPlaceholder, "Call of Cthulhu"},
		{"nil id", names, nil, SystemPlaceholder, ""},
		{"missing row", names, ptr(int64(7)), SystemPlaceholder, "System ID 7"},
		{"unavailable store", unavailableNames{}, ptr(int64(3)), PlayerPlaceholder, "Player ID 3"},
		{"nil resolver", nil, ptr(int64(4)), PlayerPlaceholder, "Player ID 4"},
		{"no placeholder", names, ptr(int64(9)), nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveName(ctx, tt.resolver, tt.id, tt.placeholder))
		})
	}
}

func TestOptions_SortedByName(t *testing.T) {
	ctx := context.Background()
	svc, b := setupService(t)

	for _, name := range []string{"Warhammer", "alien", "Cyberpunk"} {
		_, err := b.Systems().Create(ctx, &types.GameSystem{Name: name})
		require.NoError(t, err)
	}
	_, err := b.Systems().Create(ctx, &types.GameSystem{Name: "Blood Meridian", Kind: types.KindSupplement, ParentID: ptr(int64(1))})
	require.NoError(t, err)
	for _, name := range []string{"Free League", "chaosium"} {
		_, err := b.Publishers().Create(ctx, &types.Publisher{Name: name})
		require.NoError(t, err)
	}

	cores, err := svc.CoreRulebookOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Option{{2, "alien"}, {3, "Cyberpunk"}, {1, "Warhammer"}}, cores)

	for _, o := range cores {
		assert.NotEqual(t, "Blood Meridian", o.Label, "supplements are not offered")
	}

	pubs, err := svc.PublisherOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Option{{2, "chaosium"}, {1, "Free League"}}, pubs)
	assert.Equal(t, "2: chaosium", pubs[0].String())
}

func TestPublisherRows(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	for _, f := range []PublisherForm{
		{Name: "Chaosium", Website: "https://chaosium.com", Country: "US"},
		{Name: "Black Monk", Country: "PL"},
		{Name: "Free League", Website: "https://freeleaguepublishing.com", Country: "SE"},
	} {
		_, err := svc.SavePublisher(ctx, 0, f)
		require.NoError(t, err)
	}

	rows, err := svc.PublisherRows(ctx, View{Filters: Filters{FilterWebsite: FilterFilled}, Sort: SortSpec{Key: "name", Desc: true}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Free League", rows[0].Name)
	assert.Equal(t, []string{"1", "Chaosium", "https://chaosium.com", "US"}, rows[1].Cells())

	rows, err = svc.PublisherRows(ctx, View{Filters: Filters{FilterCountry: "PL"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Black Monk", rows[0].Name)

	_, err = svc.SavePublisher(ctx, 2, PublisherForm{Name: "Black Monk Games", Country: "PL"})
	require.NoError(t, err)
	f, err := svc.LoadPublisherForm(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Black Monk Games", f.Name)

	require.NoError(t, svc.DeletePublisher(ctx, 2))
	assert.ErrorIs(t, svc.DeletePublisher(ctx, 2), types.ErrNotFound)
}

func TestPlayerRows(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	forms := []PlayerForm{
		{Nickname: "Zed", Gender: string(types.GenderMan)},
		{Nickname: "Ann", FullName: "Ann Smith", Gender: string(types.GenderWoman), Notable: true},
		{Nickname: "me", Social: "@me", Primary: true},
	}
	for _, f := range forms {
		_, err := svc.SavePlayer(ctx, 0, f)
		require.NoError(t, err)
	}

	rows, err := svc.PlayerRows(ctx, View{Sort: SortSpec{Key: "status"}})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "me", rows[0].Nickname)
	assert.Equal(t, types.PrimaryMarker, rows[0].Status)
	assert.Equal(t, "Ann", rows[1].Nickname)
	assert.Equal(t, types.NotableMarker, rows[1].Status)
	assert.Equal(t, "", rows[2].Status)

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"gender", Filters{FilterGender: "Man"}, []string{"Zed"}},
		{"full name filled", Filters{FilterFullName: FilterFilled}, []string{"Ann"}},
		{"social empty", Filters{FilterSocial: FilterEmpty}, []string{"Zed", "Ann"}},
		{"status regular", Filters{FilterStatus: types.StatusRegular}, []string{"Zed"}},
		{"any is no constraint", Filters{FilterGender: FilterAny}, []string{"Zed", "Ann", "me"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := svc.PlayerRows(ctx, View{Filters: tt.filters})
			require.NoError(t, err)
			var got []string
			for _, r := range rows {
				got = append(got, r.Nickname)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSavePlayer_PrimaryMovesBetweenPlayers(t *testing.T) {
	ctx := context.Background()
	svc, b := setupService(t)

	first, err := svc.SavePlayer(ctx, 0, PlayerForm{Nickname: "a", Primary: true})
	require.NoError(t, err)
	second, err := svc.SavePlayer(ctx, 0, PlayerForm{Nickname: "b"})
	require.NoError(t, err)

	f, err := svc.LoadPlayerForm(ctx, second)
	require.NoError(t, err)
	f.SetPrimary(true)
	_, err = svc.SavePlayer(ctx, second, f)
	require.NoError(t, err)

	p, err := b.Players().Primary(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, p.ID)

	old, err := b.Players().Get(ctx, first)
	require.NoError(t, err)
	assert.False(t, old.Primary)

	require.NoError(t, svc.DeletePlayer(ctx, first))
}

func TestPlayerRow_Tone(t *testing.T) {
	assert.Equal(t, theme.TonePrimary, PlayerRow{Label: types.StatusPrimary, Gender: types.GenderMan}.Tone())
	assert.Equal(t, theme.ToneNotable, PlayerRow{Label: types.StatusNotable, Gender: types.GenderWoman}.Tone())
	assert.Equal(t, theme.ToneNonBinary, PlayerRow{Label: types.StatusRegular, Gender: types.GenderNonBinary}.Tone())
}

func TestSortRows_UnknownKey(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.PublisherRows(context.Background(), View{Sort: SortSpec{Key: "founded"}})
	assert.ErrorIs(t, err, types.ErrUnknownSortKey)
	assert.True(t, IsUserError(err))
}

func TestSortKeys(t *testing.T) {
	assert.Equal(t, []string{"country", "id", "name", "website"}, SortKeys(EntityPublishers))
	assert.Contains(t, SortKeys(EntitySystems), "ownership")
	assert.Nil(t, SortKeys(Entity("dice")))
}

func TestLeadingNumber(t *testing.T) {
	assert.Equal(t, 12.5, leadingNumber("12.50 PLN"))
	assert.Equal(t, 0.0, leadingNumber(""))
	assert.Equal(t, 0.0, leadingNumber("free"))
	assert.Equal(t, 3.5, leadingNumber("3,5 EUR"))
}
