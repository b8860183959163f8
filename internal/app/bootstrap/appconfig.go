// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// framework-level settings (HTTP ports, TLS, log level); AppConfig is
// everything specific to this application.
//
// The service talks to two stores: MongoDB holds categories, games, and
// trainings; PostgreSQL holds the student records. This split is
// inherited from the existing deployments and is not something this
// service tries to unify.
type AppConfig struct {
	// MongoDB connection configuration (categories, games, trainings)
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// PostgreSQL connection configuration (students)
	PostgresDSN          string
	PostgresMaxOpenConns int
	PostgresMaxIdleConns int

	// DB operation timeout overrides. Zero keeps the built-in defaults.
	DBTimeoutShort  time.Duration
	DBTimeoutMedium time.Duration
	DBTimeoutLong   time.Duration
}
