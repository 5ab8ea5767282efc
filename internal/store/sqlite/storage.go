package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type Storage struct {
	db *gorm.DB
}

type Config struct {
	Path string
}

type blobRecord struct {
	Key       string `gorm:"primaryKey;column:blob_key"`
	Value     string
	UpdatedAt time.Time
}

func (blobRecord) TableName() string {
	return "blobs"
}

func New(cfg Config) (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&blobRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	var rec blobRecord
	err := s.db.WithContext(ctx).Where("blob_key = ?", key).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get blob: %w", err)
	}

	return rec.Value, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	rec := blobRecord{Key: key, Value: value, UpdatedAt: time.Now()}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blob_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to set blob: %w", err)
	}

	return nil
}
