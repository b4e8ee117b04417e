package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/service"
)

type response map[string]any

type sendInviteRequest struct {
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
}

type respondInviteRequest struct {
	InviteID string `json:"invite_id"`
	Response string `json:"response"`
}

// pendingInvite is an invite enriched with the sender's record, so the
// client can render who is asking without a second fetch.
type pendingInvite struct {
	*entity.Invite
	FromPlayer *entity.Player `json:"from_player,omitempty"`
}

func (that *Server) handleSendInvite(w http.ResponseWriter, r *http.Request) {
	var req sendInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeFailure(w, errors.New("invalid request body"))
		return
	}

	if req.FromUserID == "" || req.ToUserID == "" {
		that.writeFailure(w, errors.New("missing user IDs"))
		return
	}

	invite, events, err := that.inviteService.CreateInvite(r.Context(), req.FromUserID, req.ToUserID)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.dispatcher.Dispatch(events)

	that.writeJSON(w, response{"success": true, "invite": invite})
}

func (that *Server) handleRespondInvite(w http.ResponseWriter, r *http.Request) {
	var req respondInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeFailure(w, errors.New("invalid request body"))
		return
	}

	if req.InviteID == "" || req.Response == "" {
		that.writeFailure(w, errors.New("missing required parameters"))
		return
	}

	game, events, err := that.inviteService.ResolveInvite(r.Context(), req.InviteID, req.Response)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.dispatcher.Dispatch(events)

	resp := response{"success": true}
	if game != nil {
		resp["game_id"] = game.ID
	}

	that.writeJSON(w, resp)
}

func (that *Server) handlePendingInvites(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	invites, err := that.inviteService.PendingInvites(r.Context(), userID)
	if err != nil {
		that.writeError(w, err)
		return
	}

	enriched := make([]pendingInvite, 0, len(invites))
	for _, invite := range invites {
		fromPlayer, err := that.playerService.GetByID(r.Context(), invite.FromID)
		if err != nil && !errors.Is(err, apperror.ErrPlayerNotFound) {
			that.writeError(w, err)
			return
		}

		enriched = append(enriched, pendingInvite{Invite: invite, FromPlayer: fromPlayer})
	}

	that.writeJSON(w, response{"success": true, "invites": enriched})
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.GetGameByID(r.Context(), r.PathValue("gameID"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, response{"success": true, "game": game})
}

func (that *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	player, err := that.playerService.GetByID(r.Context(), r.PathValue("userID"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, response{"success": true, "user": player})
}

func (that *Server) handleOnlineUsers(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, response{"success": true, "users": that.presence.Online()})
}

func (that *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := that.statsService.Statistics(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, response{"success": true, "statistics": stats})
}

func (that *Server) writeJSON(w http.ResponseWriter, resp response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// writeFailure answers a rejected request. The reason goes to the
// originating caller only.
func (that *Server) writeFailure(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	if encodeErr := json.NewEncoder(w).Encode(response{"success": false, "error": err.Error()}); encodeErr != nil {
		that.logger.Error("failed to encode response", "error", encodeErr)
	}
}

// writeError maps domain rejections to a failure envelope and store
// failures to a 500. A failed write is never reported as success.
func (that *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound),
		errors.Is(err, apperror.ErrPlayerNotFound),
		errors.Is(err, apperror.ErrInviteNotFound),
		errors.Is(err, apperror.ErrInviteResolved),
		errors.Is(err, apperror.ErrSelfInvite),
		errors.Is(err, service.ErrUnknownDecision):
		that.writeFailure(w, err)
	default:
		that.logger.Error("internal error", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		if encodeErr := json.NewEncoder(w).Encode(response{"success": false, "error": "internal server error"}); encodeErr != nil {
			that.logger.Error("failed to encode response", "error", encodeErr)
		}
	}
}
