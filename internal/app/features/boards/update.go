// internal/app/features/boards/update.go
package boards

import (
	"net/http"

	"github.com/dalemusser/boardhub/internal/app/policy/boardpolicy"
	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
	"github.com/dalemusser/boardhub/internal/app/system/normalize"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type updateRequest struct {
	Title      string `json:"title"`
	Visibility string `json:"visibility"`
	Background string `json:"background"`
}

// Update handles PUT /boards/{boardID}. Owner only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	boardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "boardID"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid board id"))
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	req.Title = normalize.Name(req.Title)
	if req.Title == "" && req.Visibility == "" && req.Background == "" {
		httpjson.Error(w, h.Log, apperr.Validation("nothing to update"))
		return
	}
	if req.Visibility != "" && !models.IsValidBoardVisibility(req.Visibility) {
		httpjson.Error(w, h.Log, apperr.Validation("invalid visibility"))
		return
	}

	res, err := h.Resolver.ResolveBoard(r.Context(), boardID, actor.ID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to resolve board", err))
		return
	}
	res = boardpolicy.RequireOwner(res, actor.ID)
	if !res.Authorized() {
		httpjson.Error(w, h.Log, res.Err())
		return
	}

	err = h.Boards.Update(r.Context(), boardID, models.Board{
		Title:      req.Title,
		Visibility: req.Visibility,
		Background: req.Background,
	})
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to update board", err))
		return
	}

	updated, err := h.Boards.GetByID(r.Context(), boardID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to load board", err))
		return
	}

	h.recordActivity(r.Context(), models.ActivityLogEntry{
		Type:     models.ActivityBoardUpdate,
		ActorID:  actor.ID,
		BoardID:  boardID,
		Metadata: models.ActivityMetadata{Title: updated.Title},
	})

	httpjson.Respond(w, http.StatusOK, updated)
}

// Delete handles DELETE /boards/{boardID}. Owner only; lists, cards, and
// comments underneath go with it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	boardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "boardID"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid board id"))
		return
	}

	res, err := h.Resolver.ResolveBoard(r.Context(), boardID, actor.ID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to resolve board", err))
		return
	}
	res = boardpolicy.RequireOwner(res, actor.ID)
	if !res.Authorized() {
		httpjson.Error(w, h.Log, res.Err())
		return
	}

	ctx := r.Context()

	lists, err := h.Lists.ListByBoard(ctx, boardID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to load lists", err))
		return
	}
	listIDs := make([]primitive.ObjectID, 0, len(lists))
	for _, l := range lists {
		listIDs = append(listIDs, l.ID)
	}

	cardIDs, err := h.Cards.IDsByLists(ctx, listIDs)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to load cards", err))
		return
	}

	// Children first so a failure partway leaves no orphans pointing at a
	// deleted board.
	if _, err := h.Comments.DeleteByCards(ctx, cardIDs); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to delete comments", err))
		return
	}
	if _, err := h.Cards.DeleteByLists(ctx, listIDs); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to delete cards", err))
		return
	}
	if _, err := h.Lists.DeleteByBoard(ctx, boardID); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to delete lists", err))
		return
	}
	if _, err := h.Boards.Delete(ctx, boardID); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to delete board", err))
		return
	}

	h.Log.Info("board deleted",
		zap.String("board_id", boardID.Hex()),
		zap.Int("lists", len(listIDs)),
		zap.Int("cards", len(cardIDs)))
	httpjson.Respond(w, http.StatusOK, map[string]string{"message": "board deleted"})
}
