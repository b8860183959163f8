// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"github.com/dalemusser/waffle/config"
	studentstore "github.com/pbfagundes/escolinha/internal/app/store/students"
	"github.com/pbfagundes/escolinha/internal/app/system/indexes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens both backends and verifies connectivity before the
// rest of startup runs.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		logger.Error("mongo connect failed", zap.Error(err))
		return DBDeps{}, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		logger.Error("mongo ping failed", zap.Error(err))
		return DBDeps{}, err
	}

	db, err := sql.Open("postgres", appCfg.PostgresDSN)
	if err != nil {
		logger.Error("postgres open failed", zap.Error(err))
		return DBDeps{}, err
	}
	db.SetMaxOpenConns(appCfg.PostgresMaxOpenConns)
	db.SetMaxIdleConns(appCfg.PostgresMaxIdleConns)
	if err := db.PingContext(connectCtx); err != nil {
		logger.Error("postgres ping failed", zap.Error(err))
		return DBDeps{}, err
	}

	logger.Info("databases connected",
		zap.String("mongo_database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		SQL:           db,
	}, nil
}

// EnsureSchema sets up the Mongo indexes and the Postgres tables.
// Both halves are idempotent.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return err
	}
	return studentstore.EnsureSchema(ctx, deps.SQL)
}
