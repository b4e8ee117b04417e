package tictactoe

import (
	"fmt"
	"testing"

	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Run("Returns the winner and the exact line for every winning combo", func(t *testing.T) {
		for _, combo := range WinCombos {
			t.Run(fmt.Sprintf("line %v", combo), func(t *testing.T) {
				// Given: a board where only that line is filled with X
				board := [9]string{}
				for _, cell := range combo {
					board[cell] = entity.PlayerX
				}

				// When: evaluating the board
				winner, line := Evaluate(board)

				// Then: X wins on exactly that line
				assert.Equal(t, entity.PlayerX, winner)
				require.NotNil(t, line)
				assert.Equal(t, combo, *line)
			})
		}
	})

	t.Run("Returns PlayerTie on a full board with no winner", func(t *testing.T) {
		// Given: a full board without three in a row
		board := [9]string{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerO, entity.PlayerX, entity.PlayerO,
			entity.PlayerO, entity.PlayerX, entity.PlayerO,
		}

		// When: evaluating the board
		winner, line := Evaluate(board)

		// Then: the result is a tie without a winning line
		assert.Equal(t, entity.PlayerTie, winner)
		assert.Nil(t, line)
	})

	t.Run("Returns no result while the game continues", func(t *testing.T) {
		// Given: a board with open cells and no winner
		board := [9]string{
			entity.PlayerX, entity.PlayerO, entity.EmptyCell,
			entity.EmptyCell, entity.PlayerX, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.PlayerO,
		}

		// When: evaluating the board
		winner, line := Evaluate(board)

		// Then: the game is still open
		assert.Equal(t, entity.EmptyCell, winner)
		assert.Nil(t, line)
	})
}

func TestMakeTurn(t *testing.T) {
	newGame := func() *entity.Game {
		return entity.NewGame("123", entity.NewPlayer("a", ""), entity.NewPlayer("b", ""))
	}

	t.Run("Successful turn flips the marker", func(t *testing.T) {
		// Given: a fresh game with X to move
		game := newGame()

		// When: X plays cell 0
		err := MakeTurn(game, entity.PlayerX, 0)

		// Then: the cell is marked and it is O's turn
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, game.Board[0])
		assert.Equal(t, entity.PlayerO, game.Turn)
		assert.Equal(t, entity.StatusActive, game.Status)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a game where cell 0 is taken by X
		game := newGame()
		require.NoError(t, MakeTurn(game, entity.PlayerX, 0))

		// When: O plays the same cell
		err := MakeTurn(game, entity.PlayerO, 0)

		// Then: the move is rejected and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, entity.PlayerX, game.Board[0])
		assert.Equal(t, entity.PlayerO, game.Turn)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a fresh game with X to move
		game := newGame()

		// When: O tries to move first
		err := MakeTurn(game, entity.PlayerO, 1)

		// Then: the move is rejected and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, [9]string{}, game.Board)
	})

	t.Run("Error on invalid cell index", func(t *testing.T) {
		game := newGame()

		assert.ErrorIs(t, MakeTurn(game, entity.PlayerX, 20), ErrInvalidCell)
		assert.ErrorIs(t, MakeTurn(game, entity.PlayerX, -1), ErrInvalidCell)
	})

	t.Run("Error on finished game", func(t *testing.T) {
		// Given: a finished game
		game := newGame()
		game.Status = entity.StatusFinished

		// When: any move is attempted
		err := MakeTurn(game, entity.PlayerX, 0)

		// Then: the move is rejected
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, [9]string{}, game.Board)
	})

	t.Run("Top row win ends the game with the winning line", func(t *testing.T) {
		// Given: a fresh game
		game := newGame()

		// When: X plays 0, O plays 4, X plays 1, O plays 8, X plays 2
		for _, turn := range []struct {
			mark string
			cell int
		}{
			{entity.PlayerX, 0},
			{entity.PlayerO, 4},
			{entity.PlayerX, 1},
			{entity.PlayerO, 8},
			{entity.PlayerX, 2},
		} {
			require.NoError(t, MakeTurn(game, turn.mark, turn.cell))
		}

		// Then: X wins on the top row
		assert.Equal(t, entity.StatusFinished, game.Status)
		assert.Equal(t, entity.PlayerX, game.Winner)
		require.NotNil(t, game.WinningLine)
		assert.Equal(t, [3]int{0, 1, 2}, *game.WinningLine)
		assert.Empty(t, game.Turn)
	})

	t.Run("Known draw sequence ends in a tie without a line", func(t *testing.T) {
		// Given: a fresh game
		game := newGame()

		// When: playing X:0 O:2 X:1 O:3 X:5 O:4 X:6 O:7 X:8
		for _, turn := range []struct {
			mark string
			cell int
		}{
			{entity.PlayerX, 0},
			{entity.PlayerO, 2},
			{entity.PlayerX, 1},
			{entity.PlayerO, 3},
			{entity.PlayerX, 5},
			{entity.PlayerO, 4},
			{entity.PlayerX, 6},
			{entity.PlayerO, 7},
			{entity.PlayerX, 8},
		} {
			require.NoError(t, MakeTurn(game, turn.mark, turn.cell))
		}

		// Then: the game is a tie with no winning line
		assert.Equal(t, entity.StatusFinished, game.Status)
		assert.Equal(t, entity.PlayerTie, game.Winner)
		assert.Nil(t, game.WinningLine)
	})

	t.Run("Mark parity holds through a legal sequence", func(t *testing.T) {
		// Given: a fresh game
		game := newGame()

		countMarks := func() (x, o int) {
			for _, cell := range game.Board {
				switch cell {
				case entity.PlayerX:
					x++
				case entity.PlayerO:
					o++
				}
			}
			return x, o
		}

		// When/Then: after every legal move X-count minus O-count is 0 or 1
		for i, turn := range []struct {
			mark string
			cell int
		}{
			{entity.PlayerX, 4},
			{entity.PlayerO, 0},
			{entity.PlayerX, 8},
			{entity.PlayerO, 2},
			{entity.PlayerX, 6},
			{entity.PlayerO, 7},
		} {
			require.NoError(t, MakeTurn(game, turn.mark, turn.cell))

			x, o := countMarks()
			diff := x - o
			assert.Contains(t, []int{0, 1}, diff, "move %d", i)
		}
	})
}
