// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration; CoreConfig handles
// framework-level settings like ports, TLS, logging level, and CORS.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Identity verification configuration
	AuthProjectID   string // Token-provider project id (token audience); blank disables verification
	AuthCertsURL    string // Override for the provider's signing-cert endpoint (tests)
	TrustHeaderAuth bool   // Accept the x-user-email header when no verifier is configured

	// Application behavior
	AdminEmail  string // Email seeded with the admin role on first login
	RecentLimit int    // Number of issues returned by /issues/recent
}
