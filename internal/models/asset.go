package models

import (
	"errors"
	"strings"
	"time"

	"continuum/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PersonalAsset is an owned item tracked for its current value. It owns its
// value history exclusively: deleting the asset deletes every change.
type PersonalAsset struct {
	Base
	Name         string          `gorm:"not null;index" json:"name"`
	CurrentValue decimal.Decimal `gorm:"type:text;not null" json:"current_value"`
	PurchaseDate *time.Time      `json:"purchase_date"`
	Category     AssetCategory   `gorm:"not null" json:"category"`
	Notes        string          `gorm:"not null;default:''" json:"notes"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`

	// Relationships
	ValueChanges []AssetValueChange `gorm:"foreignKey:AssetID" json:"value_changes"`
}

// NewPersonalAsset returns an asset with the edit form defaults.
func NewPersonalAsset(name string) *PersonalAsset {
	return &PersonalAsset{
		Name:         name,
		CurrentValue: decimal.Zero,
		Category:     AssetCategoryOther,
	}
}

// ApplyValue sets the asset's current value. When the value differs from
// the current one it returns the change record to append; an unchanged
// value returns nil and no history is written.
func (a *PersonalAsset) ApplyValue(value decimal.Decimal, note *string, now time.Time) *AssetValueChange {
	if value.Equal(a.CurrentValue) {
		return nil
	}
	change := &AssetValueChange{
		AssetID:       a.ID,
		Sequence:      a.nextSequence(),
		Date:          now,
		PreviousValue: a.CurrentValue,
		NewValue:      value,
		Note:          note,
	}
	a.CurrentValue = value
	a.ValueChanges = append(a.ValueChanges, *change)
	return change
}

// LatestChange returns the most recently appended value change, if any.
func (a *PersonalAsset) LatestChange() (AssetValueChange, bool) {
	var latest AssetValueChange
	found := false
	for _, c := range a.ValueChanges {
		if !found || c.Sequence > latest.Sequence {
			latest = c
			found = true
		}
	}
	return latest, found
}

func (a *PersonalAsset) nextSequence() int {
	if latest, ok := a.LatestChange(); ok {
		return latest.Sequence + 1
	}
	return 1
}

// Validate is the optional edit-form check.
func (a *PersonalAsset) Validate() error {
	var errs []error
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, errors.New("asset name cannot be empty"))
	}
	if _, ok := ParseAssetCategory(string(a.Category)); !ok {
		errs = append(errs, errors.New("unknown asset category "+string(a.Category)))
	}
	return errors.Join(errs...)
}

// AssetValueChange is an immutable record of one value transition of an
// asset. Sequence orders the changes of one asset by insertion.
type AssetValueChange struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID       string          `gorm:"type:uuid;not null;index;uniqueIndex:idx_asset_value_changes_asset_sequence,priority:1" json:"asset_id"`
	Sequence      int             `gorm:"not null;uniqueIndex:idx_asset_value_changes_asset_sequence,priority:2" json:"sequence"`
	Date          time.Time       `gorm:"not null" json:"date"`
	PreviousValue decimal.Decimal `gorm:"type:text;not null" json:"previous_value"`
	NewValue      decimal.Decimal `gorm:"type:text;not null" json:"new_value"`
	Note          *string         `json:"note"`
}

// BeforeCreate hook generates a UUIDv7 and defaults the date to now.
func (c *AssetValueChange) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New()
	}
	if c.Date.IsZero() {
		c.Date = time.Now()
	}
	return nil
}

// ChangeAmount is NewValue minus PreviousValue.
func (c AssetValueChange) ChangeAmount() decimal.Decimal {
	return c.NewValue.Sub(c.PreviousValue)
}

// ChangePercent is the relative change as a fraction (0.25 for +25%).
// ok is false when PreviousValue is zero and the ratio is undefined.
func (c AssetValueChange) ChangePercent() (pct decimal.Decimal, ok bool) {
	if c.PreviousValue.IsZero() {
		return decimal.Zero, false
	}
	return c.ChangeAmount().Div(c.PreviousValue), true
}
