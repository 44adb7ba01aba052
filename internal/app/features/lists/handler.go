// internal/app/features/lists/handler.go
package lists

import (
	"github.com/dalemusser/boardhub/internal/app/policy/boardpolicy"
	cardstore "github.com/dalemusser/boardhub/internal/app/store/cards"
	commentstore "github.com/dalemusser/boardhub/internal/app/store/comments"
	liststore "github.com/dalemusser/boardhub/internal/app/store/lists"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves list CRUD and bulk reorder.
type Handler struct {
	Lists    *liststore.Store
	Cards    *cardstore.Store
	Comments *commentstore.Store
	Resolver *boardpolicy.Resolver

	// Client is needed to run the bulk reorder inside a transaction when
	// the deployment supports one.
	Client *mongo.Client

	PositionStep float64
	Log          *zap.Logger
}

func NewHandler(
	lists *liststore.Store,
	cards *cardstore.Store,
	comments *commentstore.Store,
	resolver *boardpolicy.Resolver,
	client *mongo.Client,
	positionStep float64,
	log *zap.Logger,
) *Handler {
	return &Handler{
		Lists:        lists,
		Cards:        cards,
		Comments:     comments,
		Resolver:     resolver,
		Client:       client,
		PositionStep: positionStep,
		Log:          log,
	}
}
