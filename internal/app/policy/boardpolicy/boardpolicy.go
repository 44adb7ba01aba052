// Package boardpolicy resolves whether an actor may touch a board-scoped
// resource.
//
// Authorization rules:
//   - Board members can read and mutate everything under the board: lists,
//     cards, and comments carry no permissions of their own.
//   - Board update and board delete are owner-only; any member may invite
//     another user.
//   - Comment deletion is author-only and checked by the comments feature on
//     top of the membership resolution done here.
//
// A list is checked by walking up to its board; a card walks list then
// board; a comment walks card, list, board. A missing link anywhere in that
// chain resolves to a not-found outcome naming the first missing resource,
// so a dangling child never grants access through an absent parent.
package boardpolicy

import (
	"context"

	boardstore "github.com/dalemusser/boardhub/internal/app/store/boards"
	cardstore "github.com/dalemusser/boardhub/internal/app/store/cards"
	commentstore "github.com/dalemusser/boardhub/internal/app/store/comments"
	liststore "github.com/dalemusser/boardhub/internal/app/store/lists"
	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Outcome classifies a resolution.
type Outcome int

const (
	// Authorized means the full parent chain exists and the actor is a
	// member of the root board.
	Authorized Outcome = iota
	// Denied means the chain exists but the actor is not a board member,
	// or an owner-only action was attempted by a non-owner.
	Denied
	// NotFound means the requested resource or one of its parents does not
	// exist. The Reason names the first missing link.
	NotFound
)

// Result carries the resolved chain. Board is always populated on an
// Authorized outcome; List, Card, and Comment are populated as far down the
// chain as the resolution walked.
type Result struct {
	Outcome Outcome
	Reason  string

	Board   models.Board
	List    models.List
	Card    models.Card
	Comment models.Comment
}

// Authorized reports whether the actor may proceed.
func (r Result) Authorized() bool {
	return r.Outcome == Authorized
}

// Err converts a non-authorized result into the API error taxonomy: Denied
// becomes a forbidden error, NotFound a not-found error. Err on an
// authorized result returns nil.
func (r Result) Err() error {
	switch r.Outcome {
	case Denied:
		return apperr.Forbidden(r.Reason)
	case NotFound:
		return apperr.NotFound(r.Reason)
	default:
		return nil
	}
}

// Resolver walks the card -> list -> board parent chain and checks board
// membership at the root.
type Resolver struct {
	boards   *boardstore.Store
	lists    *liststore.Store
	cards    *cardstore.Store
	comments *commentstore.Store
}

func NewResolver(boards *boardstore.Store, lists *liststore.Store, cards *cardstore.Store, comments *commentstore.Store) *Resolver {
	return &Resolver{boards: boards, lists: lists, cards: cards, comments: comments}
}

// ResolveBoard checks that the board exists and the actor is a member.
func (rs *Resolver) ResolveBoard(ctx context.Context, boardID, actorID primitive.ObjectID) (Result, error) {
	b, err := rs.boards.GetByID(ctx, boardID)
	if err != nil {
		if err == boardstore.ErrNotFound {
			return Result{Outcome: NotFound, Reason: "board not found"}, nil
		}
		return Result{}, err
	}
	if !b.HasMember(actorID) {
		return Result{Outcome: Denied, Reason: "not a board member", Board: b}, nil
	}
	return Result{Outcome: Authorized, Board: b}, nil
}

// ResolveList checks the list and its owning board.
func (rs *Resolver) ResolveList(ctx context.Context, listID, actorID primitive.ObjectID) (Result, error) {
	l, err := rs.lists.GetByID(ctx, listID)
	if err != nil {
		if err == liststore.ErrNotFound {
			return Result{Outcome: NotFound, Reason: "list not found"}, nil
		}
		return Result{}, err
	}
	res, err := rs.ResolveBoard(ctx, l.BoardID, actorID)
	if err != nil {
		return Result{}, err
	}
	res.List = l
	if res.Outcome == NotFound {
		res.Reason = "parent board not found"
	}
	return res, nil
}

// ResolveCard checks the card, its list, and the owning board.
func (rs *Resolver) ResolveCard(ctx context.Context, cardID, actorID primitive.ObjectID) (Result, error) {
	c, err := rs.cards.GetByID(ctx, cardID)
	if err != nil {
		if err == cardstore.ErrNotFound {
			return Result{Outcome: NotFound, Reason: "card not found"}, nil
		}
		return Result{}, err
	}
	res, err := rs.ResolveList(ctx, c.ListID, actorID)
	if err != nil {
		return Result{}, err
	}
	res.Card = c
	if res.Outcome == NotFound && res.Reason == "list not found" {
		res.Reason = "parent list not found"
	}
	return res, nil
}

// ResolveComment checks the comment and its full parent chain.
func (rs *Resolver) ResolveComment(ctx context.Context, commentID, actorID primitive.ObjectID) (Result, error) {
	cm, err := rs.comments.GetByID(ctx, commentID)
	if err != nil {
		if err == commentstore.ErrNotFound {
			return Result{Outcome: NotFound, Reason: "comment not found"}, nil
		}
		return Result{}, err
	}
	res, err := rs.ResolveCard(ctx, cm.CardID, actorID)
	if err != nil {
		return Result{}, err
	}
	res.Comment = cm
	if res.Outcome == NotFound && res.Reason == "card not found" {
		res.Reason = "parent card not found"
	}
	return res, nil
}

// RequireOwner narrows an authorized board resolution to the board owner.
// Used for board update and board delete.
func RequireOwner(res Result, actorID primitive.ObjectID) Result {
	if res.Outcome != Authorized {
		return res
	}
	if res.Board.Owner != actorID {
		return Result{Outcome: Denied, Reason: "only the board owner can do that", Board: res.Board}
	}
	return res
}
