// internal/app/features/boards/search.go
package boards

import (
	"net/http"

	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
	"github.com/dalemusser/boardhub/internal/app/system/normalize"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SearchCards handles GET /boards/{boardID}/cards/search?q=. The query is a
// case-insensitive substring over card title, description, and labels; cards
// whose assignees match the query by name or email are included too.
func (h *Handler) SearchCards(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	boardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "boardID"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid board id"))
		return
	}
	q := normalize.QueryParam(r.URL.Query().Get("q"))
	if q == "" {
		httpjson.Error(w, h.Log, apperr.Validation("search query is required"))
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

	ctx := r.Context()

	matchedUsers, err := h.Users.MatchNameOrEmail(ctx, q)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to match users", err))
		return
	}

	lists, err := h.Lists.ListByBoard(ctx, boardID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to load lists", err))
		return
	}
	listIDs := make([]primitive.ObjectID, 0, len(lists))
	for _, l := range lists {
		listIDs = append(listIDs, l.ID)
	}

	cards, err := h.Cards.Search(ctx, listIDs, q, matchedUsers)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to search cards", err))
		return
	}
	if cards == nil {
		cards = []models.Card{}
	}
	httpjson.Respond(w, http.StatusOK, cards)
}
