package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/event"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/pkg"
)

var ErrUnknownDecision = errors.New("unknown invite decision")

// InviteService runs the invite lifecycle. Accepting an invite is the
// only way a new game comes into existence: the sender plays X, the
// recipient plays O.
type InviteService interface {
	CreateInvite(ctx context.Context, fromID, toID string) (*entity.Invite, []event.Event, error)
	ResolveInvite(ctx context.Context, inviteID, decision string) (*entity.Game, []event.Event, error)
	PendingInvites(ctx context.Context, playerID string) ([]*entity.Invite, error)
}

type inviteRepo interface {
	CreateOrUpdate(ctx context.Context, invite *entity.Invite) error
	GetByID(ctx context.Context, id string) (*entity.Invite, error)
	AddPending(ctx context.Context, invite *entity.Invite) error
	RemovePending(ctx context.Context, invite *entity.Invite) error
	GetPendingFor(ctx context.Context, playerID string) ([]*entity.Invite, error)
}

type inviteService struct {
	playerService PlayerService
	gameService   GameService
	inviteRepo    inviteRepo

	locks *pkg.KeyMutex
}

func NewInviteService(playerService PlayerService, gameService GameService, inviteRepo inviteRepo) InviteService {
	return &inviteService{
		playerService: playerService,
		gameService:   gameService,
		inviteRepo:    inviteRepo,
		locks:         pkg.NewKeyMutex(),
	}
}

func (that *inviteService) CreateInvite(ctx context.Context, fromID, toID string) (*entity.Invite, []event.Event, error) {
	if fromID == toID {
		return nil, nil, apperror.ErrSelfInvite
	}

	fromPlayer, err := that.playerService.GetByID(ctx, fromID)
	if err != nil {
		return nil, nil, err
	}

	if _, err = that.playerService.GetByID(ctx, toID); err != nil {
		return nil, nil, err
	}

	invite := entity.NewInvite(pkg.GenerateInviteID(), fromID, toID)

	if err = that.inviteRepo.CreateOrUpdate(ctx, invite); err != nil {
		return nil, nil, fmt.Errorf("failed to create invite: %w", err)
	}

	if err = that.inviteRepo.AddPending(ctx, invite); err != nil {
		return nil, nil, fmt.Errorf("failed to index invite: %w", err)
	}

	events := []event.Event{
		event.ToPlayer(toID, event.ActionGameInvite, GameInvitePayload{
			InviteID:   invite.ID,
			FromPlayer: fromPlayer,
		}),
	}

	return invite, events, nil
}

func (that *inviteService) ResolveInvite(ctx context.Context, inviteID, decision string) (*entity.Game, []event.Event, error) {
	if decision != entity.InviteAccepted && decision != entity.InviteDeclined {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownDecision, decision)
	}

	unlock := that.locks.Lock(inviteID)
	defer unlock()

	invite, err := that.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		return nil, nil, err
	}

	if !invite.IsPending() {
		return nil, nil, apperror.ErrInviteResolved
	}

	invite.Resolve(decision)

	if err = that.inviteRepo.CreateOrUpdate(ctx, invite); err != nil {
		return nil, nil, fmt.Errorf("failed to resolve invite: %w", err)
	}

	if err = that.inviteRepo.RemovePending(ctx, invite); err != nil {
		return nil, nil, fmt.Errorf("failed to unindex invite: %w", err)
	}

	if decision == entity.InviteDeclined {
		return nil, nil, nil
	}

	return that.startGame(ctx, invite)
}

// startGame instantiates the match for an accepted invite and notifies
// both participants, each on their own address.
func (that *inviteService) startGame(ctx context.Context, invite *entity.Invite) (*entity.Game, []event.Event, error) {
	fromPlayer, err := that.playerService.GetByID(ctx, invite.FromID)
	if err != nil {
		return nil, nil, err
	}

	toPlayer, err := that.playerService.GetByID(ctx, invite.ToID)
	if err != nil {
		return nil, nil, err
	}

	game, err := that.gameService.CreateGame(ctx, fromPlayer, toPlayer)
	if err != nil {
		return nil, nil, err
	}

	events := []event.Event{
		event.ToPlayer(invite.FromID, event.ActionInviteAccepted, GameStartedPayload{
			GameID:   game.ID,
			Opponent: toPlayer,
		}),
		event.ToPlayer(invite.ToID, event.ActionGameStarted, GameStartedPayload{
			GameID:   game.ID,
			Opponent: fromPlayer,
		}),
	}

	return game, events, nil
}

func (that *inviteService) PendingInvites(ctx context.Context, playerID string) ([]*entity.Invite, error) {
	invites, err := that.inviteRepo.GetPendingFor(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending invites: %w", err)
	}

	return invites, nil
}

type GameInvitePayload struct {
	InviteID   string         `json:"invite_id"`
	FromPlayer *entity.Player `json:"from_player"`
}

type GameStartedPayload struct {
	GameID   string         `json:"game_id"`
	Opponent *entity.Player `json:"opponent"`
}
