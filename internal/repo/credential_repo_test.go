package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jinacker/smart-wms-gateway/internal/domain"
)

func newCredDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:credentials_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Credential{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestBearerToken_MissingIsErrNotFound(t *testing.T) {
	db := newCredDB(t)

	_, err := BearerToken(context.Background(), db)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveBearerToken_RoundTripAndReplace(t *testing.T) {
	db := newCredDB(t)
	ctx := context.Background()

	if err := SaveBearerToken(ctx, db, "tok-1"); err != nil {
		t.Fatalf("SaveBearerToken: %v", err)
	}
	got, err := BearerToken(ctx, db)
	if err != nil || got != "tok-1" {
		t.Fatalf("BearerToken = %q, %v", got, err)
	}

	// Saving again replaces rather than duplicates.
	if err := SaveBearerToken(ctx, db, "tok-2"); err != nil {
		t.Fatalf("SaveBearerToken replace: %v", err)
	}
	got, err = BearerToken(ctx, db)
	if err != nil || got != "tok-2" {
		t.Fatalf("BearerToken after replace = %q, %v", got, err)
	}

	var count int64
	if err := db.Model(&domain.Credential{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("credential rows = %d; want 1", count)
	}
}

func TestDeleteBearerToken(t *testing.T) {
	db := newCredDB(t)
	ctx := context.Background()

	// Deleting a missing token is fine.
	if err := DeleteBearerToken(ctx, db); err != nil {
		t.Fatalf("DeleteBearerToken on empty table: %v", err)
	}

	if err := SaveBearerToken(ctx, db, "tok"); err != nil {
		t.Fatalf("SaveBearerToken: %v", err)
	}
	if err := DeleteBearerToken(ctx, db); err != nil {
		t.Fatalf("DeleteBearerToken: %v", err)
	}
	if _, err := BearerToken(ctx, db); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCredentialStore_Token(t *testing.T) {
	db := newCredDB(t)
	ctx := context.Background()
	store := &CredentialStore{DB: db}

	// Absent token reported as empty without error.
	tok, err := store.Token(ctx)
	if err != nil || tok != "" {
		t.Fatalf("Token on empty store = %q, %v", tok, err)
	}

	if err := SaveBearerToken(ctx, db, "persisted"); err != nil {
		t.Fatalf("SaveBearerToken: %v", err)
	}
	tok, err = store.Token(ctx)
	if err != nil || tok != "persisted" {
		t.Fatalf("Token = %q, %v", tok, err)
	}
}
