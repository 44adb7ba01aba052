// internal/app/features/boards/view.go
package boards

import (
	"net/http"

	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// boardDetail is a board with its member profiles resolved.
type boardDetail struct {
	models.Board
	MemberProfiles []models.Profile `json:"memberProfiles"`
}

// boardSummary is a board listing row with owner and workspace resolved.
type boardSummary struct {
	models.Board
	OwnerProfile  *models.Profile `json:"ownerProfile,omitempty"`
	WorkspaceName string          `json:"workspaceName,omitempty"`
}

// List handles GET /boards.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)
	ctx := r.Context()

	boards, err := h.Boards.ListForMember(ctx, actor.ID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to list boards", err))
		return
	}

	ownerIDs := make([]primitive.ObjectID, 0, len(boards))
	wsIDs := make([]primitive.ObjectID, 0, len(boards))
	seenOwner := make(map[primitive.ObjectID]struct{}, len(boards))
	seenWS := make(map[primitive.ObjectID]struct{}, len(boards))
	for _, b := range boards {
		if _, ok := seenOwner[b.Owner]; !ok {
			seenOwner[b.Owner] = struct{}{}
			ownerIDs = append(ownerIDs, b.Owner)
		}
		if _, ok := seenWS[b.WorkspaceID]; !ok {
			seenWS[b.WorkspaceID] = struct{}{}
			wsIDs = append(wsIDs, b.WorkspaceID)
		}
	}
	owners, err := h.Users.Profiles(ctx, ownerIDs)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to load owners", err))
		return
	}
	wsNames, err := h.Workspaces.Names(ctx, wsIDs)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to load workspaces", err))
		return
	}

	out := make([]boardSummary, 0, len(boards))
	for _, b := range boards {
		row := boardSummary{Board: b, WorkspaceName: wsNames[b.WorkspaceID]}
		if p, ok := owners[b.Owner]; ok {
			row.OwnerProfile = &p
		}
		out = append(out, row)
	}
	httpjson.Respond(w, http.StatusOK, out)
}

// Get handles GET /boards/{boardID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
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

	profiles, err := h.Users.Profiles(r.Context(), res.Board.Members)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to load member profiles", err))
		return
	}
	members := make([]models.Profile, 0, len(res.Board.Members))
	for _, id := range res.Board.Members {
		if p, ok := profiles[id]; ok {
			members = append(members, p)
		}
	}

	httpjson.Respond(w, http.StatusOK, boardDetail{Board: res.Board, MemberProfiles: members})
}
