// internal/app/features/cards/toggle.go
package cards

import (
	"net/http"

	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
	"github.com/dalemusser/boardhub/internal/app/system/normalize"
	"github.com/dalemusser/boardhub/internal/app/system/realtime"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type assignRequest struct {
	CardID string `json:"cardId"`
	UserID string `json:"userId"`
}

// Assign handles PUT /cards/assign. Toggles the user on the card's assignee
// set; the user must be a member of the owning board. Emits card:update.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	var req assignRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	cardID, err := primitive.ObjectIDFromHex(req.CardID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid card id"))
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid user id"))
		return
	}

	res, err := h.Resolver.ResolveCard(r.Context(), cardID, actor.ID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to resolve card", err))
		return
	}
	if !res.Authorized() {
		httpjson.Error(w, h.Log, res.Err())
		return
	}
	if !res.Board.HasMember(userID) {
		httpjson.Error(w, h.Log, apperr.Validation("assignee is not a board member"))
		return
	}

	if res.Card.HasAssignee(userID) {
		err = h.Cards.RemoveAssignee(r.Context(), cardID, userID)
	} else {
		err = h.Cards.AddAssignee(r.Context(), cardID, userID)
	}
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to toggle assignee", err))
		return
	}

	updated, err := h.Cards.GetByID(r.Context(), cardID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to load card", err))
		return
	}
	h.Hub.Publish(res.Board.ID, realtime.EventCardUpdate, updated)
	httpjson.Respond(w, http.StatusOK, updated)
}

type labelRequest struct {
	CardID string `json:"cardId"`
	Label  string `json:"label"`
}

// Label handles PUT /cards/label. Toggles the label on the card. Emits
// card:update.
func (h *Handler) Label(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	var req labelRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	cardID, err := primitive.ObjectIDFromHex(req.CardID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid card id"))
		return
	}
	label := normalize.Label(req.Label)
	if label == "" {
		httpjson.Error(w, h.Log, apperr.Validation("label is required"))
		return
	}

	res, err := h.Resolver.ResolveCard(r.Context(), cardID, actor.ID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to resolve card", err))
		return
	}
	if !res.Authorized() {
		httpjson.Error(w, h.Log, res.Err())
		return
	}

	if res.Card.HasLabel(label) {
		err = h.Cards.RemoveLabel(r.Context(), cardID, label)
	} else {
		err = h.Cards.AddLabel(r.Context(), cardID, label)
	}
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to toggle label", err))
		return
	}

	updated, err := h.Cards.GetByID(r.Context(), cardID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to load card", err))
		return
	}
	h.Hub.Publish(res.Board.ID, realtime.EventCardUpdate, updated)
	httpjson.Respond(w, http.StatusOK, updated)
}
