// internal/app/features/cards/move.go
package cards

import (
	"context"
	"net/http"

	cardstore "github.com/dalemusser/boardhub/internal/app/store/cards"
	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
	"github.com/dalemusser/boardhub/internal/app/system/position"
	"github.com/dalemusser/boardhub/internal/app/system/realtime"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type moveRequest struct {
	CardID      string   `json:"cardId"`
	NewListID   string   `json:"newListId"`
	NewPosition *float64 `json:"newPosition"`
	// AfterCardID places the card right after a sibling in the destination
	// list; the server computes the midpoint position. Ignored when
	// NewPosition is set. Empty string means "first in the list".
	AfterCardID *string `json:"afterCardId"`
}

// Move handles PUT /cards/move. The destination list must belong to the same
// board as the card; only the moved card's position is rewritten, never its
// new siblings'. Emits card:move.
func (h *Handler) Move(w http.ResponseWriter, r *http.Request) {
	actor, _ := sysauth.CurrentActor(r)

	var req moveRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	cardID, err := primitive.ObjectIDFromHex(req.CardID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid card id"))
		return
	}
	newListID, err := primitive.ObjectIDFromHex(req.NewListID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("invalid list id"))
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

	ctx := r.Context()

	dstRes, err := h.Resolver.ResolveList(ctx, newListID, actor.ID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to resolve destination list", err))
		return
	}
	if !dstRes.Authorized() {
		httpjson.Error(w, h.Log, dstRes.Err())
		return
	}
	if dstRes.Board.ID != res.Board.ID {
		httpjson.Error(w, h.Log, apperr.Validation("destination list is on a different board"))
		return
	}

	var pos float64
	switch {
	case req.NewPosition != nil:
		pos = *req.NewPosition
	case req.AfterCardID != nil:
		pos, err = h.placeAfter(ctx, newListID, *req.AfterCardID, cardID)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
	default:
		max, ok, err := h.Cards.MaxPosition(ctx, newListID)
		if err != nil {
			httpjson.Error(w, h.Log, apperr.Internal("failed to compute position", err))
			return
		}
		pos = h.PositionStep
		if ok {
			pos = position.Append(max, h.PositionStep)
		}
	}

	if err := h.Cards.Move(ctx, cardID, newListID, pos); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to move card", err))
		return
	}

	h.Hub.Publish(res.Board.ID, realtime.EventCardMove, map[string]any{
		"cardId":      cardID.Hex(),
		"newListId":   newListID.Hex(),
		"newPosition": pos,
	})
	h.Log.Debug("card moved",
		zap.String("card_id", cardID.Hex()),
		zap.String("list_id", newListID.Hex()))
	httpjson.Respond(w, http.StatusOK, map[string]any{
		"cardId":      cardID.Hex(),
		"newListId":   newListID.Hex(),
		"newPosition": pos,
	})
}

// placeAfter computes a midpoint position after the named sibling, or before
// the list's first card when afterHex is empty. When two neighbors sit too
// close for a representable midpoint the list is rebalanced onto a fresh
// evenly spaced sequence and the placement recomputed.
func (h *Handler) placeAfter(ctx context.Context, listID primitive.ObjectID, afterHex string, movingID primitive.ObjectID) (float64, error) {
	siblings, err := h.Cards.ListByList(ctx, listID)
	if err != nil {
		return 0, apperr.Internal("failed to load cards", err)
	}
	// The card being moved does not count as its own neighbor.
	kept := siblings[:0]
	for _, c := range siblings {
		if c.ID != movingID {
			kept = append(kept, c)
		}
	}
	siblings = kept

	pos, exhausted, ok := placeIn(siblings, afterHex, h.PositionStep)
	if !ok {
		return 0, apperr.NotFound("card not found")
	}
	if !exhausted {
		return pos, nil
	}

	// Midpoint exhausted: respread the list and try again.
	if err := h.rebalance(ctx, siblings); err != nil {
		return 0, err
	}
	siblings, err = h.Cards.ListByList(ctx, listID)
	if err != nil {
		return 0, apperr.Internal("failed to load cards", err)
	}
	kept = siblings[:0]
	for _, c := range siblings {
		if c.ID != movingID {
			kept = append(kept, c)
		}
	}
	pos, exhausted, ok = placeIn(kept, afterHex, h.PositionStep)
	if !ok || exhausted {
		return 0, apperr.Internal("failed to place card", nil)
	}
	return pos, nil
}

// placeIn returns the position for a card placed after afterHex among the
// ordered siblings. Positions are unbounded floats, so a negative result is a
// legitimate midpoint; "no representable midpoint" is signalled through the
// separate exhausted return. ok is false when afterHex names no sibling.
func placeIn(siblings []models.Card, afterHex string, step float64) (pos float64, exhausted, ok bool) {
	if afterHex == "" {
		if len(siblings) == 0 {
			return step, false, true
		}
		first := siblings[0].Position
		if position.Exhausted(0, first) {
			return 0, true, true
		}
		return position.Between(0, first), false, true
	}
	for i, c := range siblings {
		if c.ID.Hex() != afterHex {
			continue
		}
		if i == len(siblings)-1 {
			return position.Append(c.Position, step), false, true
		}
		next := siblings[i+1].Position
		if position.Exhausted(c.Position, next) {
			return 0, true, true
		}
		return position.Between(c.Position, next), false, true
	}
	return 0, false, false
}

// rebalance respreads the given cards onto a fresh evenly spaced sequence,
// preserving their current order.
func (h *Handler) rebalance(ctx context.Context, ordered []models.Card) error {
	seq := position.Sequence(len(ordered), h.PositionStep)
	for i, c := range ordered {
		if err := h.Cards.Move(ctx, c.ID, c.ListID, seq[i]); err != nil {
			if err == cardstore.ErrNotFound {
				continue
			}
			return apperr.Internal("failed to rebalance list", err)
		}
	}
	return nil
}
