// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/boardhub/internal/app/system/realtime"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// hub is the process-wide broadcaster. Created in Startup so BuildHandler
// and Shutdown share the same instance.
var hub *realtime.Hub

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	hub = realtime.NewHub(logger)
	return nil
}
