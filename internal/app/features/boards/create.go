// internal/app/features/boards/create.go
package boards

import (
	"net/http"

	workspacestore "github.com/dalemusser/boardhub/internal/app/store/workspaces"
	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
	"github.com/dalemusser/boardhub/internal/app/system/normalize"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createRequest struct {
	Title       string `json:"title"`
	WorkspaceID string `json:"workspaceId"`
	Visibility  string `json:"visibility"`
	Background  string `json:"background"`
}

// Create handles POST /boards. The actor must belong to the target workspace
// and becomes the board's owner and sole member.
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
	wsID, err := primitive.ObjectIDFromHex(req.WorkspaceID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid workspace id"))
		return
	}
	if req.Visibility != "" && !models.IsValidBoardVisibility(req.Visibility) {
		httpjson.Error(w, h.Log, apperr.Validation("invalid visibility"))
		return
	}

	ws, err := h.Workspaces.GetByID(r.Context(), wsID)
	if err != nil {
		if err == workspacestore.ErrNotFound {
			httpjson.Error(w, h.Log, apperr.NotFound("workspace not found"))
			return
		}
		httpjson.Error(w, h.Log, apperr.Internal("failed to load workspace", err))
		return
	}
	if !ws.HasMember(actor.ID) {
		httpjson.Error(w, h.Log, apperr.Forbidden("not a workspace member"))
		return
	}

	b, err := h.Boards.Create(r.Context(), models.Board{
		Title:       req.Title,
		Owner:       actor.ID,
		Visibility:  req.Visibility,
		WorkspaceID: ws.ID,
		Background:  req.Background,
	})
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to create board", err))
		return
	}

	h.recordActivity(r.Context(), models.ActivityLogEntry{
		Type:     models.ActivityBoardCreate,
		ActorID:  actor.ID,
		BoardID:  b.ID,
		Metadata: models.ActivityMetadata{Title: b.Title},
	})

	h.Log.Info("board created",
		zap.String("board_id", b.ID.Hex()),
		zap.String("owner_id", actor.ID.Hex()))
	httpjson.Respond(w, http.StatusCreated, b)
}
