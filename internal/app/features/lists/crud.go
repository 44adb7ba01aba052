// internal/app/features/lists/crud.go
package lists

import (
	"net/http"

	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
	"github.com/dalemusser/boardhub/internal/app/system/normalize"
	"github.com/dalemusser/boardhub/internal/app/system/position"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createRequest struct {
	Title    string   `json:"title"`
	BoardID  string   `json:"boardId"`
	Position *float64 `json:"position"`
}

// Create handles POST /lists. When no position is given the list is appended
// after the board's current last list.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	req.Title = normalize.Name(req.Title)
	if req.Title == "" {
		httpjson.Error(w, h.Log, apperr.Validation("title is required"))
		return
	}
	boardID, err := primitive.ObjectIDFromHex(req.BoardID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid board id"))
		return
	}

	res, err := h.Resolver.ResolveBoard(r.Context(), boardID, actor.ID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to resolve board", err))
		return
	}
	if !res.Authorized() {
		httpjson.Error(w, h.Log, res.Err())
		return
	}

	pos := 0.0
	if req.Position != nil {
		pos = *req.Position
	} else {
		max, ok, err := h.Lists.MaxPosition(r.Context(), boardID)
		if err != nil {
			httpjson.Error(w, h.Log, apperr.Internal("failed to compute position", err))
			return
		}
		pos = h.PositionStep
		if ok {
			pos = position.Append(max, h.PositionStep)
		}
	}

	l, err := h.Lists.Create(r.Context(), models.List{
		Title:    req.Title,
		BoardID:  boardID,
		Position: pos,
	})
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to create list", err))
		return
	}
	httpjson.Respond(w, http.StatusCreated, l)
}

// ListByBoard handles GET /lists/{boardID}.
func (h *Handler) ListByBoard(w http.ResponseWriter, r *http.Request) {
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
	if !res.Authorized() {
		httpjson.Error(w, h.Log, res.Err())
		return
	}

	out, err := h.Lists.ListByBoard(r.Context(), boardID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to list lists", err))
		return
	}
	if out == nil {
		out = []models.List{}
	}
	httpjson.Respond(w, http.StatusOK, out)
}

type renameRequest struct {
	Title string `json:"title"`
}

// Rename handles PUT /lists/{listID}.
func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	listID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "listID"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid list id"))
		return
	}

	var req renameRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	req.Title = normalize.Name(req.Title)
	if req.Title == "" {
		httpjson.Error(w, h.Log, apperr.Validation("title is required"))
		return
	}

	res, err := h.Resolver.ResolveList(r.Context(), listID, actor.ID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to resolve list", err))
		return
	}
	if !res.Authorized() {
		httpjson.Error(w, h.Log, res.Err())
		return
	}

	if err := h.Lists.Rename(r.Context(), listID, req.Title); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to rename list", err))
		return
	}

	updated, err := h.Lists.GetByID(r.Context(), listID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to load list", err))
		return
	}
	httpjson.Respond(w, http.StatusOK, updated)
}

// Delete handles DELETE /lists/{listID}. Cards in the list and their
// comments are deleted with it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	listID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "listID"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid list id"))
		return
	}

	res, err := h.Resolver.ResolveList(r.Context(), listID, actor.ID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to resolve list", err))
		return
	}
	if !res.Authorized() {
		httpjson.Error(w, h.Log, res.Err())
		return
	}

	ctx := r.Context()

	cardIDs, err := h.Cards.IDsByLists(ctx, []primitive.ObjectID{listID})
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to load cards", err))
		return
	}
	if _, err := h.Comments.DeleteByCards(ctx, cardIDs); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to delete comments", err))
		return
	}
	if _, err := h.Cards.DeleteByList(ctx, listID); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to delete cards", err))
		return
	}
	if _, err := h.Lists.Delete(ctx, listID); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to delete list", err))
		return
	}

	h.Log.Info("list deleted",
		zap.String("list_id", listID.Hex()),
		zap.Int("cards", len(cardIDs)))
	httpjson.Respond(w, http.StatusOK, map[string]string{"message": "list deleted"})
}
