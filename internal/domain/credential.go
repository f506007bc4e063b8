// Package domain – persisted credential model.
//
// Under the bearer security model the gateway reads a long-lived token from
// client-local persistent storage; this type is its on-disk representation,
// mapped with GORM into the small credential database the commands open at
// startup. Session (CSRF) tokens are never persisted and have no model here.
package domain

import "time"

// Credential is a stored client credential, keyed by kind so the table can
// hold at most one row per credential class.
type Credential struct {
	ID        uint      `gorm:"primaryKey"`
	Kind      string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_credential_kind"`
	Value     string    `gorm:"type:TEXT NOT NULL"`
	UpdatedAt time.Time `gorm:"type:DATETIME NOT NULL;autoUpdateTime"`
}

// CredentialBearer is the kind under which the bearer token is stored.
const CredentialBearer = "bearer"

// TableName implements the GORM tabler interface.
func (Credential) TableName() string { return "credentials" }
