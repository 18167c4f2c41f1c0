package models

import (
	"errors"
	"strings"
	"time"
)

// Warranty is a time-bounded coverage record for a purchased product.
type Warranty struct {
	Base
	ProductName  string    `gorm:"not null" json:"product_name"`
	PurchaseDate time.Time `gorm:"not null" json:"purchase_date"`
	ExpiryDate   time.Time `gorm:"not null;index" json:"expiry_date"`
	Vendor       string    `gorm:"not null;default:''" json:"vendor"`
	Notes        string    `gorm:"not null;default:''" json:"notes"`
}

// NewWarranty returns a warranty purchased now and expiring one calendar
// year later.
func NewWarranty(productName string, now time.Time) *Warranty {
	return &Warranty{
		ProductName:  productName,
		PurchaseDate: now,
		ExpiryDate:   AddYears(now, 1),
	}
}

// IsExpired reports whether the expiry date is strictly before now.
func (w Warranty) IsExpired(now time.Time) bool {
	return w.ExpiryDate.Before(now)
}

// DaysUntilExpiry counts calendar days from now to the expiry date. It is
// zero on the expiry day itself and negative once that day has passed.
func (w Warranty) DaysUntilExpiry(now time.Time) int {
	return CalendarDaysBetween(now, w.ExpiryDate)
}

// IsExpiringWithin reports whether the warranty is still valid but expires
// no more than days calendar days from now.
func (w Warranty) IsExpiringWithin(now time.Time, days int) bool {
	return !w.IsExpired(now) && w.DaysUntilExpiry(now) <= days
}

// Validate is the optional edit-form check.
func (w *Warranty) Validate() error {
	var errs []error
	if strings.TrimSpace(w.ProductName) == "" {
		errs = append(errs, errors.New("warranty product name cannot be empty"))
	}
	if w.ExpiryDate.Before(w.PurchaseDate) {
		errs = append(errs, errors.New("warranty expiry date is before its purchase date"))
	}
	return errors.Join(errs...)
}
