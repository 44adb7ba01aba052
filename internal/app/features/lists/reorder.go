// internal/app/features/lists/reorder.go
package lists

import (
	"context"
	"net/http"

	liststore "github.com/dalemusser/boardhub/internal/app/store/lists"
	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
	"github.com/dalemusser/boardhub/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type reorderItem struct {
	ID       string  `json:"id"`
	Position float64 `json:"position"`
}

type reorderRequest struct {
	Lists []reorderItem `json:"lists"`
}

// Reorder handles PUT /lists/reorder. The batch's board is pinned by its
// first list; a list from any other board rejects the whole batch. The
// entire batch is validated before the first write, and the writes go
// through a transaction when the deployment supports one, so a reorder is
// all-or-nothing.
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	var req reorderRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if len(req.Lists) == 0 {
		httpjson.Error(w, h.Log, apperr.Validation("lists are required"))
		return
	}

	ctx := r.Context()

	positions := make(map[primitive.ObjectID]float64, len(req.Lists))
	var boardID primitive.ObjectID
	for i, item := range req.Lists {
		id, err := primitive.ObjectIDFromHex(item.ID)
		if err != nil {
			httpjson.Error(w, h.Log, apperr.Validation("invalid list id"))
			return
		}
		if _, dup := positions[id]; dup {
			httpjson.Error(w, h.Log, apperr.Validation("duplicate list in batch"))
			return
		}

		l, err := h.Lists.GetByID(ctx, id)
		if err != nil {
			if err == liststore.ErrNotFound {
				httpjson.Error(w, h.Log, apperr.NotFound("list not found"))
				return
			}
			httpjson.Error(w, h.Log, apperr.Internal("failed to load list", err))
			return
		}
		if i == 0 {
			boardID = l.BoardID
		} else if l.BoardID != boardID {
			httpjson.Error(w, h.Log, apperr.Conflict("lists belong to different boards"))
			return
		}
		positions[id] = item.Position
	}

	res, err := h.Resolver.ResolveBoard(ctx, boardID, actor.ID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to resolve board", err))
		return
	}
	if !res.Authorized() {
		httpjson.Error(w, h.Log, res.Err())
		return
	}

	err = txn.Run(ctx, h.Client, h.Log, func(ctx context.Context) error {
		return h.Lists.ApplyPositions(ctx, positions)
	})
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to reorder lists", err))
		return
	}

	h.Log.Info("lists reordered",
		zap.String("board_id", boardID.Hex()),
		zap.Int("count", len(positions)))

	out, err := h.Lists.ListByBoard(ctx, boardID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to list lists", err))
		return
	}
	httpjson.Respond(w, http.StatusOK, out)
}
