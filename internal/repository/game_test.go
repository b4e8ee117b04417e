package repository

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-pro-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRepository(t *testing.T) {
	ctx, st := suite.New(t)

	repo := NewGameRepository(st.Storage)

	t.Run("Unknown game returns not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Stored game survives the round trip", func(t *testing.T) {
		// Given: a game with one recorded move
		game := entity.NewGame("game_1", entity.NewPlayer("alice", "Alice"), entity.NewPlayer("bob", "Bob"))
		game.RecordMove("alice", entity.PlayerX, 4)
		game.Board[4] = entity.PlayerX
		game.Turn = entity.PlayerO

		// When: storing and fetching it back
		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		stored, err := repo.GetByID(ctx, "game_1")

		// Then: the record is intact
		require.NoError(t, err)
		assert.Equal(t, game.ID, stored.ID)
		assert.Equal(t, game.Board, stored.Board)
		assert.Equal(t, entity.PlayerO, stored.Turn)
		require.Len(t, stored.Moves, 1)
		assert.Equal(t, "alice", stored.Moves[0].PlayerID)
		assert.Equal(t, "alice", stored.PlayerX.ID)
		assert.Equal(t, "bob", stored.PlayerO.ID)
	})

	t.Run("Update overwrites the stored record", func(t *testing.T) {
		// Given: a stored game
		game := entity.NewGame("game_2", entity.NewPlayer("alice", ""), entity.NewPlayer("bob", ""))
		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		// When: finishing it and storing again
		game.Status = entity.StatusFinished
		game.Winner = entity.PlayerX
		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		stored, err := repo.GetByID(ctx, "game_2")

		// Then: the update is visible
		require.NoError(t, err)
		assert.Equal(t, entity.StatusFinished, stored.Status)
		assert.Equal(t, entity.PlayerX, stored.Winner)
	})

	t.Run("Active index follows mark and unmark", func(t *testing.T) {
		// Given: two active games
		require.NoError(t, repo.MarkActive(ctx, "game_1"))
		require.NoError(t, repo.MarkActive(ctx, "game_2"))

		count, err := repo.CountActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		// When: one finishes
		require.NoError(t, repo.MarkInactive(ctx, "game_1"))

		// Then: the count drops
		count, err = repo.CountActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		// And: removing it again is harmless
		require.NoError(t, repo.MarkInactive(ctx, "game_1"))

		count, err = repo.CountActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
