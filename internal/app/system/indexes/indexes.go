// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	var problems []string

	if err := ensureUsers(ctx, db, log); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureWorkspaces(ctx, db, log); err != nil {
		problems = append(problems, "workspaces: "+err.Error())
	}
	if err := ensureBoards(ctx, db, log); err != nil {
		problems = append(problems, "boards: "+err.Error())
	}
	if err := ensureLists(ctx, db, log); err != nil {
		problems = append(problems, "lists: "+err.Error())
	}
	if err := ensureCards(ctx, db, log); err != nil {
		problems = append(problems, "cards: "+err.Error())
	}
	if err := ensureComments(ctx, db, log); err != nil {
		problems = append(problems, "comments: "+err.Error())
	}
	if err := ensureActivityLog(ctx, db, log); err != nil {
		problems = append(problems, "activity_log: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ------------------------------------------------------------------ */
/* Core helper: create a set of desired indexes for one collection    */
/* ------------------------------------------------------------------ */

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

// isDuplicateKeyErr detects E11000 regardless of which error shape the
// driver surfaces it in.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, log *zap.Logger, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var name string
		var unique bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			if m.Options.Unique != nil {
				unique = *m.Options.Unique
			}
		}
		sig := keySig(m.Keys.(bson.D))

		// CreateOne is idempotent for an identical keys+options pair.
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && unique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index, duplicates present", coll.Name(), name))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			}
			continue
		}
		log.Debug("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* ------------------------------------------------------------------ */
/* Per-collection index sets                                          */
/* ------------------------------------------------------------------ */

func ensureUsers(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("users"), log, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_users_email").SetUnique(true),
		},
		// Substring search over assignee names pivots through name_ci.
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_users_name_ci"),
		},
	})
}

func ensureWorkspaces(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("workspaces"), log, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "members", Value: 1}},
			Options: options.Index().SetName("idx_workspaces_members"),
		},
		{
			Keys:    bson.D{{Key: "owner", Value: 1}},
			Options: options.Index().SetName("idx_workspaces_owner"),
		},
	})
}

func ensureBoards(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("boards"), log, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "members", Value: 1}},
			Options: options.Index().SetName("idx_boards_members"),
		},
		{
			Keys:    bson.D{{Key: "workspace_id", Value: 1}},
			Options: options.Index().SetName("idx_boards_workspace"),
		},
	})
}

func ensureLists(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	// Sibling listings sort {position, _id}; the compound index serves both
	// the scoped lookup and the order.
	return ensureIndexSet(ctx, db.Collection("lists"), log, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "board_id", Value: 1}, {Key: "position", Value: 1}},
			Options: options.Index().SetName("idx_lists_board_position"),
		},
	})
}

func ensureCards(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("cards"), log, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "list_id", Value: 1}, {Key: "position", Value: 1}},
			Options: options.Index().SetName("idx_cards_list_position"),
		},
		{
			Keys:    bson.D{{Key: "assignees", Value: 1}},
			Options: options.Index().SetName("idx_cards_assignees"),
		},
	})
}

func ensureComments(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("comments"), log, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "card_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_comments_card"),
		},
	})
}

func ensureActivityLog(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("activity_log"), log, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "board_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_activity_board_ts"),
		},
	})
}
