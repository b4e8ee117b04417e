package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/entity"
)

type InviteRepository interface {
	CreateOrUpdate(ctx context.Context, invite *entity.Invite) error
	GetByID(ctx context.Context, id string) (*entity.Invite, error)
	AddPending(ctx context.Context, invite *entity.Invite) error
	RemovePending(ctx context.Context, invite *entity.Invite) error
	GetPendingFor(ctx context.Context, playerID string) ([]*entity.Invite, error)
}

type dbInvite struct {
	client *redis.Client
}

func NewInviteRepository(client *redis.Client) InviteRepository {
	return &dbInvite{
		client: client,
	}
}

func pendingKey(playerID string) string {
	return "invites:pending:" + playerID
}

func (that *dbInvite) CreateOrUpdate(ctx context.Context, invite *entity.Invite) error {
	inviteJSON, err := json.Marshal(invite)
	if err != nil {
		return fmt.Errorf("failed to marshal invite: %w", err)
	}

	inviteKey := "invite:" + invite.ID
	if err = that.client.Set(ctx, inviteKey, inviteJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set invite: %w", err)
	}

	return nil
}

func (that *dbInvite) GetByID(ctx context.Context, id string) (*entity.Invite, error) {
	inviteKey := "invite:" + id

	response, err := that.client.Get(ctx, inviteKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrInviteNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get invite by id: %w", err)
	}

	var existingInvite entity.Invite
	if err = json.Unmarshal([]byte(response), &existingInvite); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invite: %w", err)
	}

	return &existingInvite, nil
}

func (that *dbInvite) AddPending(ctx context.Context, invite *entity.Invite) error {
	if err := that.client.SAdd(ctx, pendingKey(invite.ToID), invite.ID).Err(); err != nil {
		return fmt.Errorf("failed to index pending invite: %w", err)
	}

	return nil
}

func (that *dbInvite) RemovePending(ctx context.Context, invite *entity.Invite) error {
	if err := that.client.SRem(ctx, pendingKey(invite.ToID), invite.ID).Err(); err != nil {
		return fmt.Errorf("failed to remove pending invite: %w", err)
	}

	return nil
}

func (that *dbInvite) GetPendingFor(ctx context.Context, playerID string) ([]*entity.Invite, error) {
	ids, err := that.client.SMembers(ctx, pendingKey(playerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending invites: %w", err)
	}

	invites := make([]*entity.Invite, 0, len(ids))
	for _, id := range ids {
		invite, err := that.GetByID(ctx, id)
		if errors.Is(err, apperror.ErrInviteNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if invite.IsPending() {
			invites = append(invites, invite)
		}
	}

	return invites, nil
}
