// app/store.go
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/salihkiraz/lumen-theme/config"
	dbmongo "github.com/salihkiraz/lumen-theme/db/mongo"
	dbmysql "github.com/salihkiraz/lumen-theme/db/mysql"
	dbpostgres "github.com/salihkiraz/lumen-theme/db/postgres"
	dbredis "github.com/salihkiraz/lumen-theme/db/redis"
	dbsqlite "github.com/salihkiraz/lumen-theme/db/sqlite"
	"github.com/salihkiraz/lumen-theme/health"
	"github.com/salihkiraz/lumen-theme/theme"
)

// BuildStore connects the configured state-store backend. It registers a
// health check for the backing service into checks and returns the store
// together with a close function for shutdown.
func BuildStore(cfg *config.Config, checks map[string]health.Check, logger *zap.Logger) (theme.StateStore, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case "", "memory":
		store := theme.NewMemoryStore()
		checks["store"] = store.Ping
		return store, noop, nil

	case "file":
		store := theme.NewFileStore(cfg.Store.File)
		checks["store"] = store.Ping
		logger.Info("state store ready",
			zap.String("backend", "file"), zap.String("path", cfg.Store.File))
		return store, noop, nil

	case "env":
		store := theme.NewEnvStore("")
		checks["store"] = store.Ping
		return store, noop, nil

	case "redis":
		client, err := dbredis.ConnectWithPassword(
			cfg.Store.RedisAddr, cfg.Store.RedisPassword, cfg.Store.RedisDB, cfg.Store.ConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		checks["redis"] = dbredis.HealthCheck(client)
		logger.Info("state store ready",
			zap.String("backend", "redis"), zap.String("addr", cfg.Store.RedisAddr))
		return theme.NewRedisStore(client, ""), func() { client.Close() }, nil

	case "sql":
		db, check, err := connectSQL(cfg)
		if err != nil {
			return nil, nil, err
		}
		store := theme.NewSQLStore(db, cfg.Store.SQLDriver)

		schemaCtx, cancel := context.WithTimeout(context.Background(), cfg.Store.ConnectTimeout)
		defer cancel()
		if err := store.EnsureSchema(schemaCtx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ensure state schema: %w", err)
		}

		checks["database"] = check
		logger.Info("state store ready",
			zap.String("backend", "sql"), zap.String("driver", cfg.Store.SQLDriver))
		return store, func() { db.Close() }, nil

	case "mongo":
		client, err := dbmongo.Connect(cfg.Store.MongoURI, cfg.Store.ConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		checks["mongodb"] = dbmongo.HealthCheck(client)
		logger.Info("state store ready",
			zap.String("backend", "mongo"), zap.String("db", cfg.Store.MongoDB))
		store := theme.NewMongoStore(client.Database(cfg.Store.MongoDB))
		return store, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				logger.Warn("mongo disconnect", zap.Error(err))
			}
		}, nil
	}

	return nil, nil, fmt.Errorf("unknown state_store %q", cfg.Store.Backend)
}

// connectSQL opens the configured SQL driver through the db helpers.
func connectSQL(cfg *config.Config) (*sql.DB, health.Check, error) {
	switch cfg.Store.SQLDriver {
	case theme.DialectSQLite:
		db, err := dbsqlite.Connect(cfg.Store.SQLDSN, cfg.Store.ConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		return db, dbsqlite.HealthCheck(db), nil

	case theme.DialectMySQL:
		db, err := dbmysql.Connect(cfg.Store.SQLDSN, cfg.Store.ConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		return db, dbmysql.HealthCheck(db), nil

	case theme.DialectPostgres:
		db, err := dbpostgres.Connect(cfg.Store.SQLDSN, cfg.Store.ConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		return db, dbpostgres.HealthCheck(db), nil
	}

	return nil, nil, fmt.Errorf("unknown sql_driver %q", cfg.Store.SQLDriver)
}
