package models

import (
	"time"

	"continuum/internal/uuid"

	"gorm.io/gorm"
)

// Activity actions recorded for mutations and backup operations.
const (
	ActionCreateSubscription = "CREATE_SUBSCRIPTION"
	ActionUpdateSubscription = "UPDATE_SUBSCRIPTION"
	ActionRenewSubscription  = "RENEW_SUBSCRIPTION"
	ActionDeleteSubscription = "DELETE_SUBSCRIPTION"
	ActionCreateAsset        = "CREATE_ASSET"
	ActionUpdateAsset        = "UPDATE_ASSET"
	ActionDeleteAsset        = "DELETE_ASSET"
	ActionCreateWarranty     = "CREATE_WARRANTY"
	ActionUpdateWarranty     = "UPDATE_WARRANTY"
	ActionDeleteWarranty     = "DELETE_WARRANTY"
	ActionExportSnapshot     = "EXPORT_SNAPSHOT"
	ActionImportSnapshot     = "IMPORT_SNAPSHOT"
)

// Resource types referenced by activity entries.
const (
	ResourceSubscription = "subscription"
	ResourceAsset        = "asset"
	ResourceWarranty     = "warranty"
	ResourceSnapshot     = "snapshot"
)

// ActivityLog records one mutation or backup operation on the local store.
// Entries are append-only diagnostics and are not part of backups.
type ActivityLog struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Action       string    `gorm:"not null;index" json:"action"`
	ResourceType string    `gorm:"not null" json:"resource_type"`
	ResourceID   string    `json:"resource_id,omitempty"`
	Changes      string    `json:"changes,omitempty"`
	CreatedAt    time.Time `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New()
	}
	return nil
}
