// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for BoardHub. They are loaded
// via WAFFLE's config system from config files, BOARDHUB_* environment
// variables, and command-line flags, in ascending precedence.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "boardhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Bearer token signing secret (must be strong in production)"},
	{Name: "jwt_expiry", Default: "720h", Desc: "Bearer token lifetime (e.g., 720h, 24h)"},

	{Name: "activity_feed_limit", Default: 20, Desc: "Max activity entries returned per board"},
	{Name: "position_step", Default: 1000, Desc: "Position spacing for appended lists and cards"},

	{Name: "ws_write_timeout", Default: "10s", Desc: "WebSocket write deadline per message"},
	{Name: "ws_max_message_bytes", Default: 4096, Desc: "Max size of a client WebSocket message"},
}

// LoadConfig loads WAFFLE core config and app-specific config. It is called
// early in startup so both layers are available before any backends or
// handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "BOARDHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTExpiry: appValues.Duration("jwt_expiry", 30*24*time.Hour),

		ActivityFeedLimit: appValues.Int("activity_feed_limit"),
		PositionStep:      float64(appValues.Int("position_step")),

		WSWriteTimeout:    appValues.Duration("ws_write_timeout", 10*time.Second),
		WSMaxMessageBytes: int64(appValues.Int("ws_max_message_bytes")),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig enforces invariants the loader cannot: a parseable Mongo
// URI and sane numeric knobs, caught before any connection attempt.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.JWTSecret == "" {
		return fmt.Errorf("jwt_secret must not be empty")
	}
	if coreCfg.Env == "prod" && appCfg.JWTSecret == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("jwt_secret must be changed from its default in production")
	}
	if appCfg.ActivityFeedLimit < 1 {
		return fmt.Errorf("activity_feed_limit must be at least 1")
	}
	if appCfg.PositionStep <= 0 {
		return fmt.Errorf("position_step must be positive")
	}
	if appCfg.WSMaxMessageBytes < 256 {
		return fmt.Errorf("ws_max_message_bytes must be at least 256")
	}
	return nil
}
