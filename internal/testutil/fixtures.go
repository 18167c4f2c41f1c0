package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"continuum/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestSubscription creates a monthly streaming subscription due in a week.
func CreateTestSubscription(t *testing.T, db *gorm.DB) *models.Subscription {
	t.Helper()
	return CreateTestSubscriptionWith(t, db, "9.99", models.BillingCycleMonthly, time.Now().UTC().AddDate(0, 0, 7))
}

// CreateTestSubscriptionWith creates a subscription with the given amount, cycle and due date.
func CreateTestSubscriptionWith(t *testing.T, db *gorm.DB, amount string, cycle models.BillingCycle, due time.Time) *models.Subscription {
	t.Helper()

	sub := &models.Subscription{
		Name:           fmt.Sprintf("Test Subscription %d", nextID()),
		Amount:         decimal.RequireFromString(amount),
		BillingCycle:   cycle,
		NextDueDate:    due.UTC(),
		Category:       models.SubscriptionCategoryStreaming,
		IsSubscription: true,
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create test subscription: %v", err)
	}
	return sub
}

// CreateTestAsset creates an asset with the given value and no history.
func CreateTestAsset(t *testing.T, db *gorm.DB, value string) *models.PersonalAsset {
	t.Helper()

	asset := &models.PersonalAsset{
		Name:         fmt.Sprintf("Test Asset %d", nextID()),
		CurrentValue: decimal.RequireFromString(value),
		Category:     models.AssetCategoryElectronics,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestValueChanges appends n value changes to asset, each adding 10
// to the current value, and keeps the asset row in step.
func CreateTestValueChanges(t *testing.T, db *gorm.DB, asset *models.PersonalAsset, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		change := asset.ApplyValue(asset.CurrentValue.Add(decimal.NewFromInt(10)), nil, time.Now().UTC())
		if err := db.Create(change).Error; err != nil {
			t.Fatalf("failed to create test value change: %v", err)
		}
	}
	if err := db.Model(&models.PersonalAsset{}).Where("id = ?", asset.ID).Update("current_value", asset.CurrentValue).Error; err != nil {
		t.Fatalf("failed to update test asset value: %v", err)
	}
}

// CreateTestWarranty creates a warranty expiring after the given number of days.
func CreateTestWarranty(t *testing.T, db *gorm.DB, expiresInDays int) *models.Warranty {
	t.Helper()

	now := time.Now().UTC()
	warranty := &models.Warranty{
		ProductName:  fmt.Sprintf("Test Product %d", nextID()),
		PurchaseDate: now.AddDate(-1, 0, 0),
		ExpiryDate:   now.AddDate(0, 0, expiresInDays),
		Vendor:       "Test Vendor",
	}
	if err := db.Create(warranty).Error; err != nil {
		t.Fatalf("failed to create test warranty: %v", err)
	}
	return warranty
}
