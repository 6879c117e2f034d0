// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where everything specific to FreightHub lives. Add fields
// here as the service grows; the struct is passed to most lifecycle
// hooks.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session cookie decoding. The portal issues the cookie; this service
	// only reads it, so the key and name must match the portal's.
	SessionKey    string
	SessionName   string
	SessionDomain string // Cookie domain (blank means current host)

	// Live push over Redis pub/sub. Blank addr disables live push; the
	// persisted mailbox path still works.
	RedisAddr              string
	RedisPushChannelPrefix string

	// NotificationIDPrefix is prepended to generated notification ids.
	NotificationIDPrefix string
}
