package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/go-cotizaciones/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRecord is one stored blob.
type SnapshotRecord struct {
	Key       string    `gorm:"column:snapshot_key;primaryKey;size:191"`
	Data      string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (SnapshotRecord) TableName() string { return "snapshots" }

// SQLStore keeps blobs in the snapshots table of a gorm database.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Load(ctx context.Context, key string) ([]byte, error) {
	var rec SnapshotRecord
	err := s.db.WithContext(ctx).Where("snapshot_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return []byte(rec.Data), nil
}

func (s *SQLStore) Save(ctx context.Context, key string, data []byte) error {
	rec := SnapshotRecord{Key: key, Data: string(data), UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "snapshot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
