package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgshelf/shelf/internal/theme"
	"github.com/rpgshelf/shelf/pkg/types"
)

func validInput() SessionInput {
	return SessionInput{
		Date:        "2024-03-05",
		SystemID:    ptr(int64(1)),
		PlayerCount: "2",
		GMID:        ptr(int64(3)),
		PlayerIDs:   []int64{1, 2},
		Campaign:    true,
	}
}

func TestValidateSession(t *testing.T) {
	tests := []struct {
		name    string
		flow    Flow
		mutate  func(in *SessionInput)
		field   string
		wantErr error
	}{
		{name: "valid add", flow: FlowAdd, mutate: func(*SessionInput) {}},
		{name: "malformed date", flow: FlowAdd, mutate: func(in *SessionInput) { in.Date = "05.03.2024" },
			field: "date", wantErr: types.ErrInvalidDate},
		{name: "impossible date", flow: FlowAdd, mutate: func(in *SessionInput) { in.Date = "2023-02-29" },
			field: "date", wantErr: types.ErrInvalidDate},
		{name: "date checked before system", flow: FlowAdd, mutate: func(in *SessionInput) { in.Date = ""; in.SystemID = nil },
			field: "date", wantErr: types.ErrInvalidDate},
		{name: "no system", flow: FlowAdd, mutate: func(in *SessionInput) { in.SystemID = nil },
			field: "system", wantErr: types.ErrSystemRequired},
		{name: "add needs exact count", flow: FlowAdd, mutate: func(in *SessionInput) { in.PlayerCount = "3" },
			field: "players", wantErr: types.ErrPlayerCountMismatch},
		{name: "count not a number", flow: FlowAdd, mutate: func(in *SessionInput) { in.PlayerCount = "two" },
			field: "players", wantErr: types.ErrPlayerCountMismatch},
		{name: "edit allows fewer", flow: FlowEdit, mutate: func(in *SessionInput) { in.PlayerCount = "4" }},
		{name: "edit rejects more", flow: FlowEdit, mutate: func(in *SessionInput) { in.PlayerCount = "1" },
			field: "players", wantErr: types.ErrPlayerCountMismatch},
		{name: "edit needs one player", flow: FlowEdit, mutate: func(in *SessionInput) { in.PlayerIDs = nil },
			field: "players", wantErr: types.ErrPlayerCountMismatch},
		{name: "count checked before gm", flow: FlowAdd, mutate: func(in *SessionInput) { in.PlayerCount = "5"; in.GMID = nil },
			field: "players", wantErr: types.ErrPlayerCountMismatch},
		{name: "no gm", flow: FlowAdd, mutate: func(in *SessionInput) { in.GMID = nil },
			field: "gm", wantErr: types.ErrGMRequired},
		{name: "gm plays", flow: FlowAdd, mutate: func(in *SessionInput) { in.GMID = ptr(int64(2)) },
			field: "gm", wantErr: types.ErrGMIsPlayer},
		{name: "no kind", flow: FlowAdd, mutate: func(in *SessionInput) { in.Campaign = false },
			field: "kind", wantErr: types.ErrKindRequired},
		{name: "both kinds", flow: FlowAdd, mutate: func(in *SessionInput) { in.OneShot = true },
			field: "kind", wantErr: types.ErrKindConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := ValidateSession(in, tt.flow)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			var ve *types.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestSessionInput_Session(t *testing.T) {
	in := validInput()
	in.PlayerCount = "5"
	in.PlayerIDs = []int64{2, 1, 2}
	in.CampaignTitle = " Masks "
	in.AdventureTitle = "Peru"

	s, err := in.Session(FlowEdit)
	require.NoError(t, err)
	assert.Equal(t, 2, s.PlayerCount, "edit stores the selected count")
	assert.Equal(t, []int64{1, 2}, s.PlayerIDs)
	assert.Equal(t, "Campaign: Masks / Peru", s.KindDisplay())

	in = validInput()
	in.Campaign, in.OneShot = false, true
	in.CampaignTitle = "ignored"
	s, err = in.Session(FlowAdd)
	require.NoError(t, err)
	assert.Empty(t, s.CampaignTitle)

	back := SessionInputFrom(s)
	assert.Equal(t, "2", back.PlayerCount)
	assert.True(t, back.OneShot)
}

func TestSaveSession_RequiresSystemsAndPlayers(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.SaveSession(ctx, 0, validInput(), FlowAdd)
	assert.ErrorIs(t, err, types.ErrNoSystems)

	_, err = svc.SaveSystem(ctx, 0, SystemForm{Name: "Alien"})
	require.NoError(t, err)
	_, err = svc.SaveSession(ctx, 0, validInput(), FlowAdd)
	assert.ErrorIs(t, err, types.ErrNoPlayers)
	assert.True(t, IsUserError(err))
}

func TestSessionFormReady_CountsCoreRulebooksOnly(t *testing.T) {
	ctx := context.Background()
	svc, b := setupService(t)

	_, err := svc.SavePlayer(ctx, 0, PlayerForm{Nickname: "Ann"})
	require.NoError(t, err)
	_, err = b.Systems().Create(ctx, &types.GameSystem{Name: "Stray Module", Kind: types.KindSupplement, ParentID: ptr(int64(9))})
	require.NoError(t, err)
	assert.ErrorIs(t, svc.SessionFormReady(ctx), types.ErrNoSystems)

	_, err = svc.SaveSystem(ctx, 0, SystemForm{Name: "Alien"})
	require.NoError(t, err)
	assert.NoError(t, svc.SessionFormReady(ctx))

	specs, err := svc.FilterSpecs(ctx, EntitySessions)
	require.NoError(t, err)
	assert.Equal(t, []string{FilterAny, "Alien"}, specs[1].Options)
}

func TestSessionRows(t *testing.T) {
	ctx := context.Background()
	svc, b := setupService(t)

	_, err := svc.SaveSystem(ctx, 0, SystemForm{Name: "Alien"})
	require.NoError(t, err)
	_, err = svc.SaveSystem(ctx, 0, SystemForm{Name: "Mothership"})
	require.NoError(t, err)
	for _, nick := range []string{"Ann", "Bob", "Greg"} {
		_, err := svc.SavePlayer(ctx, 0, PlayerForm{Nickname: nick})
		require.NoError(t, err)
	}

	in := validInput()
	in.CampaignTitle = "Destroyer of Worlds"
	first, err := svc.SaveSession(ctx, 0, in, FlowAdd)
	require.NoError(t, err)

	second := SessionInput{
		Date: "2025-11-20", SystemID: ptr(int64(2)), PlayerCount: "1",
		GMID: ptr(int64(1)), PlayerIDs: []int64{3}, OneShot: true, AdventureTitle: "Dead Planet",
	}
	_, err = svc.SaveSession(ctx, 0, second, FlowAdd)
	require.NoError(t, err)

	rows, err := svc.SessionRows(ctx, View{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "2024-03-05", "Alien", "Campaign: Destroyer of Worlds", "Greg", "Ann, Bob"}, rows[0].Cells())
	assert.Equal(t, theme.ToneMarch, rows[0].Tone())
	assert.Equal(t, theme.ToneNovember, rows[1].Tone())

	tests := []struct {
		name    string
		filters Filters
		want    []int64
	}{
		{"year", Filters{FilterYear: "2025"}, []int64{2}},
		{"system", Filters{FilterSystem: "Alien"}, []int64{1}},
		{"kind prefix", Filters{FilterKind: types.SessionKindOneShot}, []int64{2}},
		{"gm", Filters{FilterGM: "Greg"}, []int64{1}},
		{"no match", Filters{FilterYear: "2020"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := svc.SessionRows(ctx, View{Filters: tt.filters})
			require.NoError(t, err)
			var ids []int64
			for _, r := range rows {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	rows, err = svc.SessionRows(ctx, View{Sort: SortSpec{Key: "system", Desc: true}})
	require.NoError(t, err)
	assert.Equal(t, "Mothership", rows[0].System)

	// Deleting peers leaves placeholders behind.
	require.NoError(t, b.Players().Delete(ctx, 2))
	_, err = b.Systems().DeleteWithSupplements(ctx, 1)
	require.NoError(t, err)
	rows, err = svc.SessionRows(ctx, View{})
	require.NoError(t, err)
	assert.Equal(t, "System ID 1", rows[0].System)
	assert.Equal(t, "Ann, Player ID 2", rows[0].Players)

	edit, err := svc.LoadSessionInput(ctx, first)
	require.NoError(t, err)
	edit.PlayerIDs = []int64{1}
	edit.SystemID = ptr(int64(2))
	_, err = svc.SaveSession(ctx, first, edit, FlowEdit)
	require.NoError(t, err)
	got, err := b.Sessions().Get(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 1, got.PlayerCount)
	assert.Equal(t, []int64{1}, got.PlayerIDs)

	require.NoError(t, svc.DeleteSession(ctx, first))
	rows, err = svc.SessionRows(ctx, View{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
