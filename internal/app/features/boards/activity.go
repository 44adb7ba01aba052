// internal/app/features/boards/activity.go
package boards

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity handles GET /boards/{boardID}/activity. Entries come back newest
// first; ?limit= may lower the cap but never raise it past the configured
// maximum.
func (h *Handler) ActivityFeed(w http.ResponseWriter, r *http.Request) {
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

	limit := h.ActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			httpjson.Error(w, h.Log, apperr.Validation("invalid limit"))
			return
		}
		if n < limit {
			limit = n
		}
	}

	entries, err := h.Activity.QueryByBoard(r.Context(), boardID, limit)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to load activity", err))
		return
	}
	if entries == nil {
		entries = []models.ActivityLogEntry{}
	}
	httpjson.Respond(w, http.StatusOK, entries)
}
