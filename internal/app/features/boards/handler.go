// internal/app/features/boards/handler.go
package boards

import (
	"context"

	"github.com/dalemusser/boardhub/internal/app/policy/boardpolicy"
	activitystore "github.com/dalemusser/boardhub/internal/app/store/activity"
	boardstore "github.com/dalemusser/boardhub/internal/app/store/boards"
	cardstore "github.com/dalemusser/boardhub/internal/app/store/cards"
	commentstore "github.com/dalemusser/boardhub/internal/app/store/comments"
	liststore "github.com/dalemusser/boardhub/internal/app/store/lists"
	userstore "github.com/dalemusser/boardhub/internal/app/store/users"
	workspacestore "github.com/dalemusser/boardhub/internal/app/store/workspaces"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"go.uber.org/zap"
)

// DefaultActivityLimit caps the activity feed when the client does not ask
// for less.
const DefaultActivityLimit = 20

// Handler serves board CRUD, invites, the activity feed, and card search.
type Handler struct {
	Boards     *boardstore.Store
	Workspaces *workspacestore.Store
	Lists      *liststore.Store
	Cards      *cardstore.Store
	Comments   *commentstore.Store
	Users      *userstore.Store
	Activity   *activitystore.Store
	Resolver   *boardpolicy.Resolver

	ActivityLimit int64
	Log           *zap.Logger
}

func NewHandler(
	boards *boardstore.Store,
	workspaces *workspacestore.Store,
	lists *liststore.Store,
	cards *cardstore.Store,
	comments *commentstore.Store,
	users *userstore.Store,
	activity *activitystore.Store,
	resolver *boardpolicy.Resolver,
	log *zap.Logger,
) *Handler {
	return &Handler{
		Boards:        boards,
		Workspaces:    workspaces,
		Lists:         lists,
		Cards:         cards,
		Comments:      comments,
		Users:         users,
		Activity:      activity,
		Resolver:      resolver,
		ActivityLimit: DefaultActivityLimit,
		Log:           log,
	}
}

// recordActivity appends a feed entry. Feed writes are best-effort: a
// failure is logged and never surfaces to the request that triggered it.
func (h *Handler) recordActivity(ctx context.Context, e models.ActivityLogEntry) {
	if err := h.Activity.Record(ctx, e); err != nil {
		h.Log.Error("failed to record activity",
			zap.String("type", e.Type),
			zap.String("board_id", e.BoardID.Hex()),
			zap.Error(err))
	}
}
