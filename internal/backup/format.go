// Package backup defines the JSON snapshot format used to export and
// restore the whole tracker, and the rules for turning entities into
// records and records back into entities.
//
// Record fields are declared in lexicographic key order so the encoded
// output has sorted keys at every level.
package backup

import (
	"fmt"
	"time"
)

// CurrentVersion is the snapshot schema version written by Export.
const CurrentVersion = 1

// Snapshot is the top-level export envelope.
type Snapshot struct {
	Assets        []AssetRecord        `json:"assets"`
	ExportDate    string               `json:"exportDate"`
	Subscriptions []SubscriptionRecord `json:"subscriptions"`
	Version       int                  `json:"version"`
	Warranties    []WarrantyRecord     `json:"warranties"`
}

// SubscriptionRecord is the flat form of a subscription.
type SubscriptionRecord struct {
	Amount         string `json:"amount"`
	BillingCycle   string `json:"billingCycle"`
	Category       string `json:"category"`
	CreatedAt      string `json:"createdAt"`
	IsSubscription bool   `json:"isSubscription"`
	Name           string `json:"name"`
	NextDueDate    string `json:"nextDueDate"`
	Notes          string `json:"notes"`
}

// AssetRecord is the flat form of an asset with its value history nested
// in insertion order.
type AssetRecord struct {
	Category     string              `json:"category"`
	CreatedAt    string              `json:"createdAt"`
	CurrentValue string              `json:"currentValue"`
	Name         string              `json:"name"`
	Notes        string              `json:"notes"`
	PurchaseDate *string             `json:"purchaseDate"`
	UpdatedAt    string              `json:"updatedAt"`
	ValueChanges []ValueChangeRecord `json:"valueChanges"`
}

// ValueChangeRecord is the flat form of one asset value change.
type ValueChangeRecord struct {
	Date          string  `json:"date"`
	NewValue      string  `json:"newValue"`
	Note          *string `json:"note"`
	PreviousValue string  `json:"previousValue"`
}

// WarrantyRecord is the flat form of a warranty.
type WarrantyRecord struct {
	CreatedAt    string `json:"createdAt"`
	ExpiryDate   string `json:"expiryDate"`
	Notes        string `json:"notes"`
	ProductName  string `json:"productName"`
	PurchaseDate string `json:"purchaseDate"`
	Vendor       string `json:"vendor"`
}

// FileName is the suggested file name for a snapshot exported at now,
// for example Continuum-Backup-2026-02-17-093015.json.
func FileName(now time.Time) string {
	return fmt.Sprintf("Continuum-Backup-%s.json", now.Format("2006-01-02-150405"))
}

// FormatTime renders t the way every snapshot timestamp is written.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
