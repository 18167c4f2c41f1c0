package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	weeksPerYear      = decimal.NewFromInt(52)
	fortnightsPerYear = decimal.NewFromInt(26)
	monthsPerYear     = decimal.NewFromInt(12)
	monthsPerQuarter  = decimal.NewFromInt(3)
)

// Subscription is a recurring financial obligation: either a subscription
// (streaming, software) or a recurring payment such as rent.
type Subscription struct {
	Base
	Name           string               `gorm:"not null" json:"name"`
	Amount         decimal.Decimal      `gorm:"type:text;not null" json:"amount"`
	BillingCycle   BillingCycle         `gorm:"not null" json:"billing_cycle"`
	NextDueDate    time.Time            `gorm:"not null;index" json:"next_due_date"`
	Category       SubscriptionCategory `gorm:"not null" json:"category"`
	Notes          string               `gorm:"not null;default:''" json:"notes"`
	IsSubscription bool                 `gorm:"not null" json:"is_subscription"`
}

// NewSubscription returns a subscription with the edit form defaults:
// amount 0, monthly, category Other, flagged as a subscription, due now.
func NewSubscription(name string, now time.Time) *Subscription {
	return &Subscription{
		Name:           name,
		Amount:         decimal.Zero,
		BillingCycle:   DefaultBillingCycle,
		NextDueDate:    now,
		Category:       SubscriptionCategoryOther,
		IsSubscription: true,
	}
}

// MonthlyEquivalent normalizes the amount to a per-month figure. Division
// keeps shopspring's DivisionPrecision digits; round only for display.
func (s Subscription) MonthlyEquivalent() decimal.Decimal {
	switch s.BillingCycle {
	case BillingCycleWeekly:
		return s.Amount.Mul(weeksPerYear).Div(monthsPerYear)
	case BillingCycleBiweekly:
		return s.Amount.Mul(fortnightsPerYear).Div(monthsPerYear)
	case BillingCycleQuarterly:
		return s.Amount.Div(monthsPerQuarter)
	case BillingCycleYearly:
		return s.Amount.Div(monthsPerYear)
	default:
		return s.Amount
	}
}

// IsPastDue reports whether the next due date is strictly before now.
func (s Subscription) IsPastDue(now time.Time) bool {
	return s.NextDueDate.Before(now)
}

// NextRenewalDate is the due date one billing cycle after NextDueDate.
func (s Subscription) NextRenewalDate() time.Time {
	switch s.BillingCycle {
	case BillingCycleWeekly:
		return s.NextDueDate.AddDate(0, 0, 7)
	case BillingCycleBiweekly:
		return s.NextDueDate.AddDate(0, 0, 14)
	case BillingCycleQuarterly:
		return AddMonths(s.NextDueDate, 3)
	case BillingCycleYearly:
		return AddYears(s.NextDueDate, 1)
	default:
		return AddMonths(s.NextDueDate, 1)
	}
}

// NextRenewalDateIn steps one billing cycle on the calendar of loc, so a
// due date at local midnight on the 31st stays on the local month end.
func (s Subscription) NextRenewalDateIn(loc *time.Location) time.Time {
	s.NextDueDate = s.NextDueDate.In(loc)
	return s.NextRenewalDate()
}

// Renewed returns a copy advanced by one billing cycle.
func (s Subscription) Renewed() Subscription {
	s.NextDueDate = s.NextRenewalDate()
	return s
}

// Validate is the optional edit-form check. The store accepts any values.
func (s *Subscription) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, errors.New("subscription name cannot be empty"))
	}
	if _, ok := ParseBillingCycle(string(s.BillingCycle)); !ok {
		errs = append(errs, errors.New("unknown billing cycle "+string(s.BillingCycle)))
	}
	if _, ok := ParseSubscriptionCategory(string(s.Category)); !ok {
		errs = append(errs, errors.New("unknown subscription category "+string(s.Category)))
	}
	return errors.Join(errs...)
}
