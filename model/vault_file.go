package model

import "time"

type VaultFile struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	Name string `gorm:"column:name;size:255;not null" json:"name"`

	// Description is reserved for a future auto-generated summary.
	Description string `gorm:"column:description;size:1024;not null;default:''" json:"description"`

	StoragePath string `gorm:"column:storage_path;size:512;not null;index" json:"storage_path"`

	OwnerEmail string `gorm:"column:owner_email;size:255;not null;index" json:"owner_email"`

	CreatedAt time.Time `json:"created_at"`

	// ResolvedURL is filled lazily per render and never persisted.
	ResolvedURL string `gorm:"-" json:"resolved_url,omitempty"`
}

// TableName returns the database table name.
func (VaultFile) TableName() string {
	return "vault_file"
}
