package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/entity"
	"github.com/stretchr/testify/require"
)

// clone round-trips a record through JSON, mirroring how the redis
// repositories isolate stored state from caller mutations.
func clone[T any](t *testing.T, value *T) *T {
	t.Helper()

	raw, err := json.Marshal(value)
	require.NoError(t, err)

	out := new(T)
	require.NoError(t, json.Unmarshal(raw, out))

	return out
}

type fakePlayerRepo struct {
	t       *testing.T
	players map[string]*entity.Player
	total   int64
}

func newFakePlayerRepo(t *testing.T) *fakePlayerRepo {
	return &fakePlayerRepo{t: t, players: make(map[string]*entity.Player)}
}

func (that *fakePlayerRepo) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.players[player.ID] = clone(that.t, player)
	return nil
}

func (that *fakePlayerRepo) GetByID(_ context.Context, id string) (*entity.Player, error) {
	player, ok := that.players[id]
	if !ok {
		return nil, apperror.ErrPlayerNotFound
	}
	return clone(that.t, player), nil
}

func (that *fakePlayerRepo) IncrementTotal(_ context.Context) error {
	that.total++
	return nil
}

func (that *fakePlayerRepo) CountTotal(_ context.Context) (int64, error) {
	return that.total, nil
}

type fakeGameRepo struct {
	t      *testing.T
	games  map[string]*entity.Game
	active map[string]bool
}

func newFakeGameRepo(t *testing.T) *fakeGameRepo {
	return &fakeGameRepo{t: t, games: make(map[string]*entity.Game), active: make(map[string]bool)}
}

func (that *fakeGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.games[game.ID] = clone(that.t, game)
	return nil
}

func (that *fakeGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	game, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}
	return clone(that.t, game), nil
}

func (that *fakeGameRepo) MarkActive(_ context.Context, id string) error {
	that.active[id] = true
	return nil
}

func (that *fakeGameRepo) MarkInactive(_ context.Context, id string) error {
	delete(that.active, id)
	return nil
}

func (that *fakeGameRepo) CountActive(_ context.Context) (int64, error) {
	return int64(len(that.active)), nil
}

type fakeStatsRepo struct {
	created   int64
	completed int64
}

func (that *fakeStatsRepo) IncrementGamesCreated(_ context.Context) error {
	that.created++
	return nil
}

func (that *fakeStatsRepo) IncrementGamesCompleted(_ context.Context) error {
	that.completed++
	return nil
}

func (that *fakeStatsRepo) Totals(_ context.Context) (int64, int64, error) {
	return that.created, that.completed, nil
}

type fakeArchiveRepo struct {
	saved []*entity.Game
}

func (that *fakeArchiveRepo) Save(_ context.Context, game *entity.Game) error {
	that.saved = append(that.saved, game)
	return nil
}

type fakeInviteRepo struct {
	t       *testing.T
	invites map[string]*entity.Invite
	pending map[string]map[string]bool
}

func newFakeInviteRepo(t *testing.T) *fakeInviteRepo {
	return &fakeInviteRepo{t: t, invites: make(map[string]*entity.Invite), pending: make(map[string]map[string]bool)}
}

func (that *fakeInviteRepo) CreateOrUpdate(_ context.Context, invite *entity.Invite) error {
	that.invites[invite.ID] = clone(that.t, invite)
	return nil
}

func (that *fakeInviteRepo) GetByID(_ context.Context, id string) (*entity.Invite, error) {
	invite, ok := that.invites[id]
	if !ok {
		return nil, apperror.ErrInviteNotFound
	}
	return clone(that.t, invite), nil
}

func (that *fakeInviteRepo) AddPending(_ context.Context, invite *entity.Invite) error {
	if that.pending[invite.ToID] == nil {
		that.pending[invite.ToID] = make(map[string]bool)
	}
	that.pending[invite.ToID][invite.ID] = true
	return nil
}

func (that *fakeInviteRepo) RemovePending(_ context.Context, invite *entity.Invite) error {
	delete(that.pending[invite.ToID], invite.ID)
	return nil
}

func (that *fakeInviteRepo) GetPendingFor(_ context.Context, playerID string) ([]*entity.Invite, error) {
	invites := make([]*entity.Invite, 0)
	for id := range that.pending[playerID] {
		invite, ok := that.invites[id]
		if ok && invite.IsPending() {
			invites = append(invites, clone(that.t, invite))
		}
	}
	return invites, nil
}
