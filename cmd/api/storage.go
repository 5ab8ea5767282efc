package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Larafmp/acai-mae-e-filha/internal/repo"
	"github.com/Larafmp/acai-mae-e-filha/internal/store/memory"
	"github.com/Larafmp/acai-mae-e-filha/internal/store/mongo"
	"github.com/Larafmp/acai-mae-e-filha/internal/store/postgres"
	"github.com/Larafmp/acai-mae-e-filha/internal/store/sqlite"
	"go.uber.org/zap"
)

const (
	driverSQLite   = "sqlite"
	driverMongo    = "mongo"
	driverPostgres = "postgres"
	driverMemory   = "memory"
)

// storage is the blob store selected by STORAGE_DRIVER.
type storage struct {
	driver string
	blobs  repo.BlobStore
	close  func(ctx context.Context) error
}

func (s *storage) Ping(ctx context.Context) error {
	if p, ok := s.blobs.(repo.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *storage) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

func openStorage(ctx context.Context, cfg storageConfig, logger *zap.SugaredLogger) (*storage, error) {
	switch cfg.driver {
	case driverSQLite:
		db, err := sqlite.New(sqlite.Config{Path: cfg.sqlitePath})
		if err != nil {
			return nil, err
		}
		logger.Infow("opened sqlite database", "path", cfg.sqlitePath)

		return &storage{
			driver: cfg.driver,
			blobs:  db,
			close:  func(context.Context) error { return db.Close() },
		}, nil

	case driverMongo:
		db, err := mongo.New(mongo.Config{
			URI:      cfg.mongo.URI,
			Database: cfg.mongo.Database,
			Timeout:  cfg.timeout,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("connected to MongoDB")

		if err := db.CreateIndexes(ctx); err != nil {
			logger.Warnw("failed to create indexes", "error", err)
		} else {
			logger.Info("MongoDB indexes created successfully")
		}

		return &storage{driver: cfg.driver, blobs: db, close: db.Close}, nil

	case driverPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
		defer cancel()

		db, err := postgres.New(connectCtx, postgres.Config{URL: cfg.postgresURL})
		if err != nil {
			return nil, err
		}
		logger.Info("connected to Postgres")

		if err := db.Migrate(connectCtx); err != nil {
			db.Close()
			return nil, err
		}

		return &storage{
			driver: cfg.driver,
			blobs:  db,
			close: func(context.Context) error {
				db.Close()
				return nil
			},
		}, nil

	case driverMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		return &storage{driver: cfg.driver, blobs: memory.New()}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.driver)
}

type storageConfig struct {
	driver      string
	sqlitePath  string
	mongo       mongoConfig
	postgresURL string
	timeout     time.Duration
}

type mongoConfig struct {
	URI      string
	Database string
}
