// internal/app/features/cards/crud.go
package cards

import (
	"net/http"
	"time"

	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/boardhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
	"github.com/dalemusser/boardhub/internal/app/system/normalize"
	"github.com/dalemusser/boardhub/internal/app/system/position"
	"github.com/dalemusser/boardhub/internal/app/system/realtime"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ListID      string   `json:"listId"`
	Position    *float64 `json:"position"`
	DueDate     *string  `json:"dueDate"`
}

// Create handles POST /cards. The creator is auto-assigned; with no
// position given the card is appended after the list's current last card.
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
	listID, err := primitive.ObjectIDFromHex(req.ListID)
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

	var due *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		t, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			httpjson.Error(w, h.Log, apperr.Validation("invalid due date"))
			return
		}
		due = &t
	}

	pos := 0.0
	if req.Position != nil {
		pos = *req.Position
	} else {
		max, ok, err := h.Cards.MaxPosition(r.Context(), listID)
		if err != nil {
			httpjson.Error(w, h.Log, apperr.Internal("failed to compute position", err))
			return
		}
		pos = h.PositionStep
		if ok {
			pos = position.Append(max, h.PositionStep)
		}
	}

	c, err := h.Cards.Create(r.Context(), models.Card{
		Title:       req.Title,
		Description: htmlsanitize.SanitizeStrict(req.Description),
		ListID:      listID,
		Position:    pos,
		DueDate:     due,
		Assignees:   []primitive.ObjectID{actor.ID},
	})
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to create card", err))
		return
	}
	httpjson.Respond(w, http.StatusCreated, c)
}

// cardView is a card listing row with its assignee profiles resolved.
type cardView struct {
	models.Card
	AssigneeProfiles []models.Profile `json:"assigneeProfiles"`
}

// ListByList handles GET /cards?listId=.
func (h *Handler) ListByList(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	listID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("listId"))
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

	found, err := h.Cards.ListByList(r.Context(), listID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to list cards", err))
		return
	}

	assigneeIDs := make([]primitive.ObjectID, 0, len(found))
	seen := make(map[primitive.ObjectID]struct{})
	for _, c := range found {
		for _, id := range c.Assignees {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				assigneeIDs = append(assigneeIDs, id)
			}
		}
	}
	profiles, err := h.Users.Profiles(r.Context(), assigneeIDs)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to load assignees", err))
		return
	}

	out := make([]cardView, 0, len(found))
	for _, c := range found {
		v := cardView{Card: c, AssigneeProfiles: make([]models.Profile, 0, len(c.Assignees))}
		for _, id := range c.Assignees {
			if p, ok := profiles[id]; ok {
				v.AssigneeProfiles = append(v.AssigneeProfiles, p)
			}
		}
		out = append(out, v)
	}
	httpjson.Respond(w, http.StatusOK, out)
}

// Get handles GET /cards/{cardID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
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
	httpjson.Respond(w, http.StatusOK, res.Card)
}

type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
}

// Update handles PUT /cards/{cardID}. Only the provided fields change; an
// explicit empty dueDate clears it. Emits card:update.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	cardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "cardID"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid card id"))
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	set := bson.M{}
	if req.Title != nil {
		title := normalize.Name(*req.Title)
		if title == "" {
			httpjson.Error(w, h.Log, apperr.Validation("title cannot be empty"))
			return
		}
		set["title"] = title
	}
	if req.Description != nil {
		set["description"] = htmlsanitize.SanitizeStrict(*req.Description)
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			set["due_date"] = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				httpjson.Error(w, h.Log, apperr.Validation("invalid due date"))
				return
			}
			set["due_date"] = t
		}
	}
	if len(set) == 0 {
		httpjson.Error(w, h.Log, apperr.Validation("nothing to update"))
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

	if err := h.Cards.UpdateFields(r.Context(), cardID, set); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to update card", err))
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

// Delete handles DELETE /cards/{cardID}. Comments are removed first so a
// partial failure cannot leave comments pointing at a deleted card. Emits
// card:delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if _, err := h.Comments.DeleteByCard(r.Context(), cardID); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to delete comments", err))
		return
	}
	if _, err := h.Cards.Delete(r.Context(), cardID); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to delete card", err))
		return
	}

	h.Hub.Publish(res.Board.ID, realtime.EventCardDelete, map[string]string{
		"cardId": cardID.Hex(),
	})
	h.Log.Info("card deleted", zap.String("card_id", cardID.Hex()))
	httpjson.Respond(w, http.StatusOK, map[string]string{"message": "card deleted"})
}
