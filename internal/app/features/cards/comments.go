// internal/app/features/cards/comments.go
package cards

import (
	"net/http"
	"strings"

	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/boardhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
	"github.com/dalemusser/boardhub/internal/app/system/realtime"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// commentView is a comment with its author's public profile attached.
type commentView struct {
	models.Comment
	Author *models.Profile `json:"author,omitempty"`
}

type addCommentRequest struct {
	Text string `json:"text"`
}

// AddComment handles POST /cards/{cardID}/comments. Text is sanitized to
// plain text before it is stored. Emits comment:new with the author profile.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	cardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "cardID"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid card id"))
		return
	}

	var req addCommentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	text := strings.TrimSpace(htmlsanitize.SanitizeStrict(req.Text))
	if text == "" {
		httpjson.Error(w, h.Log, apperr.Validation("comment text is required"))
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

	cm, err := h.Comments.Create(r.Context(), models.Comment{
		Text:     text,
		AuthorID: actor.ID,
		CardID:   cardID,
	})
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to create comment", err))
		return
	}

	view := commentView{Comment: cm}
	profiles, err := h.Users.Profiles(r.Context(), []primitive.ObjectID{actor.ID})
	if err != nil {
		h.Log.Error("failed to load comment author", zap.Error(err))
	} else if p, ok := profiles[actor.ID]; ok {
		view.Author = &p
	}

	h.Hub.Publish(res.Board.ID, realtime.EventCommentNew, view)
	httpjson.Respond(w, http.StatusCreated, view)
}

// ListComments handles GET /cards/{cardID}/comments. Oldest first, with
// author profiles resolved.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	cardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "cardID"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid card id"))
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

	comments, err := h.Comments.ListByCard(r.Context(), cardID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to list comments", err))
		return
	}

	authorIDs := make([]primitive.ObjectID, 0, len(comments))
	seen := make(map[primitive.ObjectID]struct{}, len(comments))
	for _, cm := range comments {
		if _, ok := seen[cm.AuthorID]; !ok {
			seen[cm.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, cm.AuthorID)
		}
	}
	profiles, err := h.Users.Profiles(r.Context(), authorIDs)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to load authors", err))
		return
	}

	out := make([]commentView, 0, len(comments))
	for _, cm := range comments {
		v := commentView{Comment: cm}
		if p, ok := profiles[cm.AuthorID]; ok {
			v.Author = &p
		}
		out = append(out, v)
	}
	httpjson.Respond(w, http.StatusOK, out)
}

// DeleteComment handles DELETE /cards/{cardID}/comments/{commentID}. Author
// only; board membership alone is not enough. Emits comment:delete.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	commentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "commentID"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid comment id"))
		return
	}

	res, err := h.Resolver.ResolveComment(r.Context(), commentID, actor.ID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to resolve comment", err))
		return
	}
	if !res.Authorized() {
		httpjson.Error(w, h.Log, res.Err())
		return
	}
	if res.Comment.AuthorID != actor.ID {
		httpjson.Error(w, h.Log, apperr.Forbidden("only the comment author can delete it"))
		return
	}

	if _, err := h.Comments.Delete(r.Context(), commentID); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to delete comment", err))
		return
	}

	h.Hub.Publish(res.Board.ID, realtime.EventCommentDelete, map[string]string{
		"commentId": commentID.Hex(),
	})
	httpjson.Respond(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
