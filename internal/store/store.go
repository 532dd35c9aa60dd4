// Package store persists serialized sheet snapshots in a local SQLite
// database, one row per sheet code. The blob is opaque here; the session
// package owns its shape.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type sheetRecord struct {
	Code      string `gorm:"primaryKey;size:16"`
	Snapshot  []byte
	UpdatedAt time.Time
}

func (sheetRecord) TableName() string { return "sheets" }

type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the SQLite file at path and migrates the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.AutoMigrate(&sheetRecord{}); err != nil {
		return nil, fmt.Errorf("migrate sheets table: %w", err)
	}
	return &Store{db: db}, nil
}

// Save upserts the snapshot blob for one sheet code.
func (s *Store) Save(ctx context.Context, code string, blob []byte) error {
	rec := sheetRecord{Code: code, Snapshot: blob}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"snapshot", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save sheet %s: %w", code, err)
	}
	return nil
}

// Load returns the persisted snapshot blob for code, or found=false if the
// sheet was never saved.
func (s *Store) Load(ctx context.Context, code string) ([]byte, bool, error) {
	var rec sheetRecord
	err := s.db.WithContext(ctx).First(&rec, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load sheet %s: %w", code, err)
	}
	return rec.Snapshot, true, nil
}
