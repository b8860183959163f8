// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the service.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, postgres_dsn, etc.
//   - Environment variables: ESCOLINHA_MONGO_URI, ESCOLINHA_POSTGRES_DSN, etc.
//   - Command-line flags: --mongo_uri, --postgres_dsn, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "escolinha", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "postgres_dsn", Default: "postgres://localhost:5432/escolinha?sslmode=disable", Desc: "PostgreSQL connection string for the student records"},
	{Name: "postgres_max_open_conns", Default: 25, Desc: "PostgreSQL max open connections"},
	{Name: "postgres_max_idle_conns", Default: 5, Desc: "PostgreSQL max idle connections"},

	{Name: "db_timeout_short_seconds", Default: 0, Desc: "Override for short DB operation timeout (0 keeps the default)"},
	{Name: "db_timeout_medium_seconds", Default: 0, Desc: "Override for medium DB operation timeout (0 keeps the default)"},
	{Name: "db_timeout_long_seconds", Default: 0, Desc: "Override for long DB operation timeout (0 keeps the default)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ESCOLINHA", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		PostgresDSN:          appValues.String("postgres_dsn"),
		PostgresMaxOpenConns: appValues.Int("postgres_max_open_conns"),
		PostgresMaxIdleConns: appValues.Int("postgres_max_idle_conns"),

		DBTimeoutShort:  time.Duration(appValues.Int("db_timeout_short_seconds")) * time.Second,
		DBTimeoutMedium: time.Duration(appValues.Int("db_timeout_medium_seconds")) * time.Second,
		DBTimeoutLong:   time.Duration(appValues.Int("db_timeout_long_seconds")) * time.Second,
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// connection attempt, so configuration errors surface early.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.PostgresDSN == "" {
		return fmt.Errorf("postgres_dsn must be set")
	}
	return nil
}
