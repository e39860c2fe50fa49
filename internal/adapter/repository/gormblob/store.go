// Package gormblob implements the blob Store boundary on a single
// gorm-managed table. The remote file store is modeled as rows of
// (name, ref, data); tables and rendered documents all live here.
package gormblob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "rapport-backend/internal/domain/store"
	"rapport-backend/pkg/id"
)

type Blob struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:191;not null;uniqueIndex:ux_blobs_name"`
	Ref       string `gorm:"size:32;not null"`
	Data      []byte `gorm:"type:longblob"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Blob) TableName() string { return "blobs" }

type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// AutoMigrate creates the blobs table.
func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(&Blob{}) }

func (s *Store) Read(ctx context.Context, name string) ([]byte, string, error) {
	var b Blob
	res := s.db.WithContext(ctx).Where("name = ?", name).First(&b)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, "", nil
	}
	if res.Error != nil {
		return nil, "", fmt.Errorf("%w: read %s: %v", domain.ErrUnavailable, name, res.Error)
	}
	return b.Data, b.Ref, nil
}

func (s *Store) Write(ctx context.Context, name string, data []byte, existingRef string) (string, error) {
	if existingRef == "" {
		b := Blob{Name: name, Ref: id.NewID32(), Data: data}
		if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
			return "", fmt.Errorf("%w: create %s: %v", domain.ErrUnavailable, name, err)
		}
		return b.Ref, nil
	}
	res := s.db.WithContext(ctx).Model(&Blob{}).
		Where("name = ? AND ref = ?", name, existingRef).
		Update("data", data)
	if res.Error != nil {
		return "", fmt.Errorf("%w: overwrite %s: %v", domain.ErrUnavailable, name, res.Error)
	}
	if res.RowsAffected == 0 {
		return "", fmt.Errorf("%w: overwrite %s: ref %s not found", domain.ErrUnavailable, name, existingRef)
	}
	return existingRef, nil
}

var _ domain.Store = (*Store)(nil)
