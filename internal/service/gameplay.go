package service

import (
	"context"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/event"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/tictactoe"
)

// GamePlayService is the authoritative state machine for a running match:
// it validates moves, advances turn state, detects terminal outcomes and
// produces the notifications to fan out.
type GamePlayService interface {
	MakeTurn(ctx context.Context, gameID, playerID string, cell int) (*entity.Game, []event.Event, error)
}

type archiveRepo interface {
	Save(ctx context.Context, game *entity.Game) error
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	archiveRepo   archiveRepo

	locks *pkg.KeyMutex
}

func NewGamePlayService(logger *slog.Logger, playerService PlayerService, gameService GameService, archiveRepo archiveRepo) GamePlayService {
	return &gamePlayService{
		logger:        logger,
		playerService: playerService,
		gameService:   gameService,
		archiveRepo:   archiveRepo,
		locks:         pkg.NewKeyMutex(),
	}
}

// MakeTurn applies one move. The read-modify-write cycle is serialized
// per game, so concurrent moves against the same match cannot interleave.
func (that *gamePlayService) MakeTurn(ctx context.Context, gameID, playerID string, cell int) (*entity.Game, []event.Event, error) {
	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}

	mark, ok := game.MarkOf(playerID)
	if !ok {
		return nil, nil, apperror.ErrNotYourTurn
	}

	if err = tictactoe.MakeTurn(game, mark, cell); err != nil {
		return nil, nil, err
	}

	game.RecordMove(playerID, mark, cell)

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, nil, err
	}

	events := []event.Event{}
	for _, id := range game.ParticipantIDs() {
		events = append(events, event.ToPlayer(id, event.ActionMoveMade, MoveMadePayload{
			Game:     game,
			Cell:     cell,
			PlayerID: playerID,
		}))
	}

	if game.IsFinished() {
		that.finishGame(ctx, game)

		for _, id := range game.ParticipantIDs() {
			events = append(events, event.ToPlayer(id, event.ActionGameFinished, GameFinishedPayload{
				Game:        game,
				Winner:      game.Winner,
				WinningLine: game.WinningLine,
			}))
		}
	}

	return game, events, nil
}

// finishGame runs the side effects of a terminal move: player statistics,
// lifetime counters and the durable archive row. The canonical game record
// is already written at this point; failures here are logged, not
// surfaced, so the move itself is never reported as failed.
func (that *gamePlayService) finishGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "finishGame", "gameID", game.ID)

	xResult, oResult := resultsFor(game.Winner)
	if err := that.playerService.ApplyResult(ctx, game.PlayerX.ID, xResult); err != nil {
		log.Error("failed to apply result", "player", game.PlayerX.ID, "error", err)
	}
	if err := that.playerService.ApplyResult(ctx, game.PlayerO.ID, oResult); err != nil {
		log.Error("failed to apply result", "player", game.PlayerO.ID, "error", err)
	}

	if err := that.gameService.DeactivateGame(ctx, game.ID); err != nil {
		log.Error("failed to deactivate game", "error", err)
	}

	if err := that.archiveRepo.Save(ctx, game); err != nil {
		log.Error("failed to archive game", "error", err)
	}

	log.Info("game finished", "winner", game.Winner)
}

func resultsFor(winner string) (xResult, oResult string) {
	switch winner {
	case entity.PlayerX:
		return entity.ResultWin, entity.ResultLoss
	case entity.PlayerO:
		return entity.ResultLoss, entity.ResultWin
	default:
		return entity.ResultDraw, entity.ResultDraw
	}
}

type MoveMadePayload struct {
	Game     *entity.Game `json:"game"`
	Cell     int          `json:"cell"`
	PlayerID string       `json:"player_id"`
}

type GameFinishedPayload struct {
	Game        *entity.Game `json:"game"`
	Winner      string       `json:"winner"`
	WinningLine *[3]int      `json:"winning_line,omitempty"`
}
