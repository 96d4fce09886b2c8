package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rpgshelf/shelf/internal/sqlite"
	"github.com/rpgshelf/shelf/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestParseYear(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-03-05", "2024"},
		{"05.03.2023", "2023"},
		{"2024-03", ""},
		{"5.3", ""},
		{"", ""},
		{"yesterday", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseYear(tt.date), tt.date)
	}
}

func sessionsFixture() []*types.Session {
	return []*types.Session{
		{ID: 1, Date: "2023-01-10", SystemID: ptr(int64(1)), GMID: ptr(int64(1)), PlayerIDs: []int64{2, 3}},
		{ID: 2, Date: "2024-02-11", SystemID: ptr(int64(1)), GMID: ptr(int64(2)), PlayerIDs: []int64{1, 3}},
		{ID: 3, Date: "2024-03-12", SystemID: ptr(int64(2)), GMID: ptr(int64(1)), PlayerIDs: []int64{3}},
		{ID: 4, Date: "15.06.2024", SystemID: ptr(int64(9)), GMID: ptr(int64(3)), PlayerIDs: []int64{1}},
		{ID: 5, Date: "undated", SystemID: ptr(int64(1)), GMID: ptr(int64(1))},
	}
}

func TestSessionsPerYear(t *testing.T) {
	r := SessionsPerYear(sessionsFixture())
	require.NoError(t, r.Err)
	assert.Equal(t, 4, r.Total)
	require.Len(t, r.Years, 2)
	assert.Equal(t, "2024", r.Years[0].Year)
	assert.Equal(t, 3, r.Years[0].Count)
	assert.InDelta(t, 75.0, r.Years[0].Percent, 1e-9)
	assert.Equal(t, "2023: 1 sessions (25.0%)", r.Years[1].Label())
	assert.Equal(t, "4 sessions in 2 years", r.Summary())

	empty := SessionsPerYear(nil)
	assert.Equal(t, "0 sessions in 0 years", empty.Summary())
}

func TestAvailableYears(t *testing.T) {
	assert.Equal(t, []string{"2024", "2023"}, AvailableYears(sessionsFixture()))
	assert.Empty(t, AvailableYears(nil))
}

func TestPrimaryUserReport(t *testing.T) {
	me := &types.Player{ID: 1, Nickname: "me", Primary: true}
	r := PrimaryUserReport(sessionsFixture(), me)
	require.NoError(t, r.Err)
	assert.Equal(t, "me", r.Nickname)
	require.Len(t, r.Years, 2)

	y, ok := r.Year("2024")
	require.True(t, ok)
	assert.Equal(t, 1, y.AsGM)
	assert.Equal(t, 2, y.AsPlayer)
	assert.InDelta(t, 33.333, y.GMPercent, 0.001)
	assert.InDelta(t, 66.667, y.PlayerPercent, 0.001)

	y, ok = r.Year("2023")
	require.True(t, ok)
	assert.Equal(t, RoleYear{Year: "2023", AsGM: 1, GMPercent: 100}, y)

	_, ok = r.Year("2020")
	assert.False(t, ok)
	assert.Equal(t, 2, r.TotalGM)
	assert.Equal(t, 2, r.TotalPlayer)
	assert.InDelta(t, 50.0, r.GMPercent, 0.001)
	assert.InDelta(t, 50.0, r.PlayerPercent, 0.001)
	assert.Equal(t, "2 sessions as GM (50.0%), 2 sessions as player (50.0%)", r.Summary())

	lone := PrimaryUserReport(nil, me)
	require.NoError(t, lone.Err)
	assert.Zero(t, lone.GMPercent)
	assert.Zero(t, lone.PlayerPercent)

	none := PrimaryUserReport(sessionsFixture(), nil)
	assert.ErrorIs(t, none.Err, types.ErrNoPrimaryUser)
}

func TestSystemsForYear(t *testing.T) {
	ctx := context.Background()
	names := fakeNames{1: "Alien", 2: "Mothership"}

	r := SystemsForYear(ctx, sessionsFixture(), names, "2024")
	require.NoError(t, r.Err)
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, []SystemCount{{"Alien", 1}, {"Mothership", 1}, {"System ID 9", 1}}, r.Systems)
	assert.Equal(t, "3 sessions in 3 systems", r.Summary())

	r = SystemsForYear(ctx, sessionsFixture(), names, "2023")
	assert.Equal(t, []SystemCount{{"Alien", 1}}, r.Systems)

	r = SystemsForYear(ctx, sessionsFixture(), names, "1999")
	assert.Equal(t, "No sessions in 1999", r.Summary())

	r = SystemsForYear(ctx, sessionsFixture(), names, "")
	assert.ErrorIs(t, r.Err, types.ErrNoYear)
}

type fakeNames map[int64]string

func (f fakeNames) NameByID(_ context.Context, id int64) (string, error) {
	if n, ok := f[id]; ok {
		return n, nil
	}
	return "", types.ErrNotFound
}

func setupBackend(t *testing.T) *sqlite.Backend {
	t.Helper()
	b := sqlite.NewBackend(zap.NewNop())
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return b
}

type brokenPlayers struct{ types.PlayerStore }

func (brokenPlayers) Primary(context.Context) (*types.Player, error) {
	return nil, types.ErrStoreUnavailable
}

type brokenPlayerSource struct{ *sqlite.Backend }

func (s brokenPlayerSource) Players() types.PlayerStore {
	return brokenPlayers{s.Backend.Players()}
}

func TestCompute(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)

	_, err := b.Systems().Create(ctx, &types.GameSystem{Name: "Alien"})
	require.NoError(t, err)
	_, err = b.Players().Create(ctx, &types.Player{Nickname: "me", Primary: true})
	require.NoError(t, err)
	_, err = b.Players().Create(ctx, &types.Player{Nickname: "Bob"})
	require.NoError(t, err)
	for _, s := range []*types.Session{
		{Date: "2023-05-01", SystemID: ptr(int64(1)), GMID: ptr(int64(1)), PlayerIDs: []int64{2}, Campaign: true},
		{Date: "2024-05-01", SystemID: ptr(int64(1)), GMID: ptr(int64(2)), PlayerIDs: []int64{1}, OneShot: true},
	} {
		_, err := b.Sessions().Create(ctx, s)
		require.NoError(t, err)
	}

	d := Compute(ctx, b, "", zap.NewNop())
	assert.Equal(t, []string{"2024", "2023"}, d.Years)
	assert.Equal(t, "2024", d.Year, "defaults to the newest year")
	assert.Equal(t, 2, d.PerYear.Total)
	require.NoError(t, d.Primary.Err)
	assert.Equal(t, 1, d.Primary.TotalGM)
	assert.Equal(t, 1, d.Primary.TotalPlayer)
	assert.Equal(t, []SystemCount{{"Alien", 1}}, d.Systems.Systems)

	d = Compute(ctx, b, "2023", nil)
	assert.Equal(t, "2023", d.Systems.Year)

	t.Run("a failing panel leaves the others", func(t *testing.T) {
		d := Compute(ctx, brokenPlayerSource{b}, "", nil)
		assert.ErrorIs(t, d.Primary.Err, types.ErrStoreUnavailable)
		assert.NoError(t, d.PerYear.Err)
		assert.NoError(t, d.Systems.Err)
		assert.Equal(t, 2, d.PerYear.Total)
	})

	t.Run("no primary user", func(t *testing.T) {
		p, err := b.Players().Get(ctx, 1)
		require.NoError(t, err)
		p.Primary = false
		require.NoError(t, b.Players().Update(ctx, p))

		d := Compute(ctx, b, "", nil)
		assert.ErrorIs(t, d.Primary.Err, types.ErrNoPrimaryUser)
		assert.NoError(t, d.PerYear.Err)
	})
}
