package database

import (
	"context"
	"fmt"
	"os"

	"users-tasks-service/config"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/db"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// Open connects to the configured store and applies the schema.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	var dbConn *sqlx.DB

	switch cfg.Driver {
	case DriverSQLite:
		conn, err := connectSQLite(cfg.DSN)
		if err != nil {
			return nil, err
		}
		dbConn = conn
	case DriverPostgres, DriverMySQL:
		conn, err := sqlx.ConnectContext(ctx, cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
		}
		dbConn = conn
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	if err := ApplySchema(ctx, dbConn); err != nil {
		dbConn.Close()
		return nil, err
	}
	return dbConn, nil
}

// connectSQLite opens the file through go-utils, which panics instead of
// returning open and ping failures and caps the pool at 10 connections.
func connectSQLite(dsn string) (conn *sqlx.DB, err error) {
	defer func() {
		if r := recover(); r != nil {
			conn = nil
			if e, ok := r.(error); ok {
				err = fmt.Errorf("connect %s: %w", DriverSQLite, e)
				return
			}
			err = fmt.Errorf("connect %s: %v", DriverSQLite, r)
		}
	}()

	return db.GetDBConnection(db.DatabaseConfig{
		DRIVER: DriverSQLite,
		DB:     dsn,
	}), nil
}

func InitializeDatabase(cfg config.DatabaseConfig) *Store {
	dbConn, err := Open(context.Background(), cfg)
	if err != nil {
		logger.Error("Error while opening database", zap.String("driver", cfg.Driver), zap.Error(err))
		os.Exit(1)
	}

	store, err := NewStore(dbConn)
	if err != nil {
		logger.Error("Error while creating store", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Database initialized successfully", zap.String("driver", cfg.Driver))
	return store
}
