package apperror

import "errors"

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrInviteNotFound = errors.New("invite not found")

	ErrGameFinished = errors.New("game is already finished")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrNotYourTurn  = errors.New("it's not your turn")

	ErrInviteResolved = errors.New("invite is already resolved")
	ErrSelfInvite     = errors.New("cannot invite yourself")
)
