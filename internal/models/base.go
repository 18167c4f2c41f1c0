package models

import (
	"time"

	"continuum/internal/uuid"

	"gorm.io/gorm"
)

// Base contains the identity columns shared by every tracked entity.
// CreatedAt is filled by gorm on insert when zero and is excluded from every
// update statement, so it never changes after creation.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
