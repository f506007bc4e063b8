// Package repo – credential repository.
//
// Thin persistence functions for the stored bearer token, plus the
// CredentialStore adapter the transport pipeline consumes. The pipeline only
// needs "give me the current token, if any"; write access (login, logout) is
// exercised by wmsctl.
//
// Error semantics:
//   - When no credential of the requested kind exists, functions return
//     gorm.ErrRecordNotFound (also exported here as ErrNotFound).
//   - On DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jinacker/smart-wms-gateway/internal/domain"
)

// ErrNotFound is returned when a requested credential does not exist.
// It aliases gorm.ErrRecordNotFound for consistency with the callers.
var ErrNotFound = gorm.ErrRecordNotFound

// SaveBearerToken stores (or replaces) the persisted bearer token.
func SaveBearerToken(ctx context.Context, db *gorm.DB, value string) error {
	cred := &domain.Credential{Kind: domain.CredentialBearer, Value: value}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(cred).Error
}

// BearerToken returns the persisted bearer token, or ErrNotFound when no
// token has been stored.
func BearerToken(ctx context.Context, db *gorm.DB) (string, error) {
	var cred domain.Credential
	err := db.WithContext(ctx).
		Where("kind = ?", domain.CredentialBearer).
		First(&cred).Error
	if err != nil {
		return "", err
	}
	return cred.Value, nil
}

// DeleteBearerToken removes the persisted bearer token. Deleting a missing
// token is not an error.
func DeleteBearerToken(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).
		Where("kind = ?", domain.CredentialBearer).
		Delete(&domain.Credential{}).Error
}

// CredentialStore adapts the credential table to the transport pipeline's
// bearer-source contract: a token read on demand, absence reported without
// error so the pipeline simply sends the request unauthenticated.
type CredentialStore struct {
	DB *gorm.DB
}

// Token returns the stored bearer token. A missing credential yields
// ("", nil); other DB failures are propagated.
func (s *CredentialStore) Token(ctx context.Context) (string, error) {
	tok, err := BearerToken(ctx, s.DB)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return tok, err
}
