// internal/app/features/boards/invite.go
package boards

import (
	"net/http"

	userstore "github.com/dalemusser/boardhub/internal/app/store/users"
	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
	"github.com/dalemusser/boardhub/internal/app/system/normalize"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type inviteRequest struct {
	BoardID string `json:"boardId"`
	Email   string `json:"email"`
}

// Invite handles POST /boards/invite. Any board member may invite; the
// response distinguishes an unknown email from an existing member, which
// does reveal whether an account exists. That trade-off is accepted so the
// inviter can correct typos.
func (h *Handler) Invite(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	var req inviteRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	boardID, err := primitive.ObjectIDFromHex(req.BoardID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid board id"))
		return
	}
	req.Email = normalize.Email(req.Email)
	if req.Email == "" {
		httpjson.Error(w, h.Log, apperr.Validation("email is required"))
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

	invitee, err := h.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if err == userstore.ErrNotFound {
			httpjson.Error(w, h.Log, apperr.NotFound("no user with that email"))
			return
		}
		httpjson.Error(w, h.Log, apperr.Internal("failed to look up user", err))
		return
	}
	if res.Board.HasMember(invitee.ID) {
		httpjson.Error(w, h.Log, apperr.Conflict("user is already a board member"))
		return
	}

	if err := h.Boards.AddMember(r.Context(), boardID, invitee.ID); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to add member", err))
		return
	}

	h.recordActivity(r.Context(), models.ActivityLogEntry{
		Type:    models.ActivityMemberInvite,
		ActorID: actor.ID,
		BoardID: boardID,
		Metadata: models.ActivityMetadata{
			InvitedUserID:   &invitee.ID,
			InvitedUserName: invitee.Name,
		},
	})

	h.Log.Info("member invited",
		zap.String("board_id", boardID.Hex()),
		zap.String("invitee_id", invitee.ID.Hex()))
	httpjson.Respond(w, http.StatusOK, invitee.PublicProfile())
}
