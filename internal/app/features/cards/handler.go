// internal/app/features/cards/handler.go
package cards

import (
	"github.com/dalemusser/boardhub/internal/app/policy/boardpolicy"
	cardstore "github.com/dalemusser/boardhub/internal/app/store/cards"
	commentstore "github.com/dalemusser/boardhub/internal/app/store/comments"
	liststore "github.com/dalemusser/boardhub/internal/app/store/lists"
	userstore "github.com/dalemusser/boardhub/internal/app/store/users"
	"github.com/dalemusser/boardhub/internal/app/system/realtime"
	"go.uber.org/zap"
)

// Handler serves card CRUD, moves, assignment and label toggles, and
// comments. Mutations fan out to the board's realtime subscribers.
type Handler struct {
	Cards    *cardstore.Store
	Lists    *liststore.Store
	Comments *commentstore.Store
	Users    *userstore.Store
	Resolver *boardpolicy.Resolver
	Hub      *realtime.Hub

	PositionStep float64
	Log          *zap.Logger
}

func NewHandler(
	cards *cardstore.Store,
	lists *liststore.Store,
	comments *commentstore.Store,
	users *userstore.Store,
	resolver *boardpolicy.Resolver,
	hub *realtime.Hub,
	positionStep float64,
	log *zap.Logger,
) *Handler {
	return &Handler{
		Cards:        cards,
		Lists:        lists,
		Comments:     comments,
		Users:        users,
		Resolver:     resolver,
		Hub:          hub,
		PositionStep: positionStep,
		Log:          log,
	}
}
