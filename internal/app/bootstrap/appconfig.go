// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, logging,
// CORS); AppConfig is everything specific to BoardHub. The struct is passed
// to most lifecycle hooks, so any configuration needed during startup,
// request handling, or shutdown lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer token configuration
	JWTSecret string
	JWTExpiry time.Duration

	// Activity feed query cap
	ActivityFeedLimit int

	// Ordering key spacing for appended lists and cards
	PositionStep float64

	// WebSocket tuning
	WSWriteTimeout    time.Duration
	WSMaxMessageBytes int64
}
