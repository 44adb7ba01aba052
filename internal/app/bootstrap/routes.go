// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authfeature "github.com/dalemusser/boardhub/internal/app/features/auth"
	boardsfeature "github.com/dalemusser/boardhub/internal/app/features/boards"
	cardsfeature "github.com/dalemusser/boardhub/internal/app/features/cards"
	healthfeature "github.com/dalemusser/boardhub/internal/app/features/health"
	listsfeature "github.com/dalemusser/boardhub/internal/app/features/lists"
	workspacesfeature "github.com/dalemusser/boardhub/internal/app/features/workspaces"
	wsfeature "github.com/dalemusser/boardhub/internal/app/features/ws"
	"github.com/dalemusser/boardhub/internal/app/policy/boardpolicy"
	activitystore "github.com/dalemusser/boardhub/internal/app/store/activity"
	boardstore "github.com/dalemusser/boardhub/internal/app/store/boards"
	cardstore "github.com/dalemusser/boardhub/internal/app/store/cards"
	commentstore "github.com/dalemusser/boardhub/internal/app/store/comments"
	liststore "github.com/dalemusser/boardhub/internal/app/store/lists"
	userstore "github.com/dalemusser/boardhub/internal/app/store/users"
	workspacestore "github.com/dalemusser/boardhub/internal/app/store/workspaces"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. It wires the stores, the access resolver, the
// token manager, and the realtime hub into the feature routers and mounts
// them.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	users := userstore.New(db)
	workspaces := workspacestore.New(db)
	boards := boardstore.New(db)
	lists := liststore.New(db)
	cards := cardstore.New(db)
	comments := commentstore.New(db)
	activity := activitystore.New(db)

	resolver := boardpolicy.NewResolver(boards, lists, cards, comments)

	tokens, err := sysauth.NewManager(appCfg.JWTSecret, appCfg.JWTExpiry, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	authH := authfeature.NewHandler(users, tokens, logger)
	workspacesH := workspacesfeature.NewHandler(workspaces, logger)
	boardsH := boardsfeature.NewHandler(boards, workspaces, lists, cards, comments, users, activity, resolver, logger)
	if appCfg.ActivityFeedLimit > 0 {
		boardsH.ActivityLimit = int64(appCfg.ActivityFeedLimit)
	}
	listsH := listsfeature.NewHandler(lists, cards, comments, resolver, deps.MongoClient, appCfg.PositionStep, logger)
	cardsH := cardsfeature.NewHandler(cards, lists, comments, users, resolver, hub, appCfg.PositionStep, logger)
	wsH := wsfeature.NewHandler(hub, resolver, appCfg.WSWriteTimeout, appCfg.WSMaxMessageBytes, logger)
	healthH := healthfeature.NewHandler(deps.MongoClient, logger)

	r := chi.NewRouter()

	r.Mount("/auth", authfeature.Routes(authH, tokens))
	r.Mount("/health", healthfeature.Routes(healthH))

	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireBearer)
		r.Mount("/workspaces", workspacesfeature.Routes(workspacesH))
		r.Mount("/boards", boardsfeature.Routes(boardsH))
		r.Mount("/lists", listsfeature.Routes(listsH))
		r.Mount("/cards", cardsfeature.Routes(cardsH))
		r.Mount("/ws", wsfeature.Routes(wsH))
	})

	return r, nil
}
