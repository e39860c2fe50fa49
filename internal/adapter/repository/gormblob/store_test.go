package gormblob

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "rapport-backend/internal/domain/store"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(db)
}

func TestReadAbsent(t *testing.T) {
	s := newStore(t)
	data, ref, err := s.Read(context.Background(), "Projects")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if data != nil || ref != "" {
		t.Fatalf("absent blob: data=%v ref=%q", data, ref)
	}
}

func TestWriteCreateThenOverwrite(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	ref, err := s.Write(ctx, "Projects", []byte("v1"), "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(ref) != 32 {
		t.Fatalf("ref=%q", ref)
	}

	ref2, err := s.Write(ctx, "Projects", []byte("v2"), ref)
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if ref2 != ref {
		t.Fatalf("overwrite changed ref: %q -> %q", ref, ref2)
	}

	data, gotRef, err := s.Read(ctx, "Projects")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v2" || gotRef != ref {
		t.Fatalf("data=%q ref=%q", data, gotRef)
	}
}

func TestWrite_StaleRef(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	if _, err := s.Write(ctx, "Projects", []byte("v1"), ""); err != nil {
		t.Fatal(err)
	}
	_, err := s.Write(ctx, "Projects", []byte("v2"), "ffffffffffffffffffffffffffffffff")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("err=%v", err)
	}
}

func TestWrite_DuplicateCreate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	if _, err := s.Write(ctx, "Projects", []byte("v1"), ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Write(ctx, "Projects", []byte("v2"), ""); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("err=%v", err)
	}
}
