// internal/app/features/workspaces/handler.go
package workspaces

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

// Handler serves workspace creation, listing, and joining.
type Handler struct {
	Workspaces *workspacestore.Store
	Log        *zap.Logger
}

func NewHandler(workspaces *workspacestore.Store, log *zap.Logger) *Handler {
	return &Handler{Workspaces: workspaces, Log: log}
}

type createRequest struct {
	Name       string `json:"name"`
	Visibility string `json:"visibility"`
}

// Create handles POST /workspaces. The actor becomes owner and first member.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	req.Name = normalize.Name(req.Name)
	if req.Name == "" {
		httpjson.Error(w, h.Log, apperr.Validation("name is required"))
		return
	}
	if req.Visibility != "" && !models.IsValidWorkspaceVisibility(req.Visibility) {
		httpjson.Error(w, h.Log, apperr.Validation("invalid visibility"))
		return
	}

	ws, err := h.Workspaces.Create(r.Context(), models.Workspace{
		Name:       req.Name,
		Owner:      actor.ID,
		Visibility: req.Visibility,
	})
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to create workspace", err))
		return
	}

	h.Log.Info("workspace created",
		zap.String("workspace_id", ws.ID.Hex()),
		zap.String("owner_id", actor.ID.Hex()))
	httpjson.Respond(w, http.StatusCreated, ws)
}

// List handles GET /workspaces.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	out, err := h.Workspaces.ListForMember(r.Context(), actor.ID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to list workspaces", err))
		return
	}
	if out == nil {
		out = []models.Workspace{}
	}
	httpjson.Respond(w, http.StatusOK, out)
}

type joinRequest struct {
	WorkspaceID string `json:"workspaceId"`
}

// Join handles POST /workspaces/join.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	var req joinRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	id, err := primitive.ObjectIDFromHex(req.WorkspaceID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid workspace id"))
		return
	}

	ws, err := h.Workspaces.GetByID(r.Context(), id)
	if err != nil {
		if err == workspacestore.ErrNotFound {
			httpjson.Error(w, h.Log, apperr.NotFound("workspace not found"))
			return
		}
		httpjson.Error(w, h.Log, apperr.Internal("failed to load workspace", err))
		return
	}
	if ws.HasMember(actor.ID) {
		httpjson.Error(w, h.Log, apperr.Conflict("already a workspace member"))
		return
	}

	if err := h.Workspaces.AddMember(r.Context(), ws.ID, actor.ID); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to join workspace", err))
		return
	}

	h.Log.Info("workspace joined",
		zap.String("workspace_id", ws.ID.Hex()),
		zap.String("user_id", actor.ID.Hex()))
	httpjson.Respond(w, http.StatusOK, map[string]string{"message": "joined workspace"})
}
