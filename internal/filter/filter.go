// Package filter narrows listed collections the way list screens do:
// category chips, a search box and status buckets. Filtering never happens
// in the repository; these functions run over results it already returned
// and keep their order.
package filter

import (
	"strings"
	"time"

	"continuum/internal/models"
)

// Subscription kinds.
const (
	KindSubscription = "subscription"
	KindPayment      = "payment"
)

// Statuses understood by the queries below.
const (
	StatusPastDue  = "past_due"
	StatusUpcoming = "upcoming"
	StatusExpired  = "expired"
	StatusExpiring = "expiring"
	StatusActive   = "active"
)

// SubscriptionQuery selects subscriptions. Zero fields match everything.
type SubscriptionQuery struct {
	Category models.SubscriptionCategory
	Text     string
	Kind     string
	Status   string
}

// AssetQuery selects assets. Zero fields match everything.
type AssetQuery struct {
	Category models.AssetCategory
	Text     string
}

// WarrantyQuery selects warranties. Zero fields match everything.
type WarrantyQuery struct {
	Text   string
	Status string
}

// ValidSubscriptionStatus reports whether s is empty or a known subscription status.
func ValidSubscriptionStatus(s string) bool {
	return s == "" || s == StatusPastDue || s == StatusUpcoming
}

// ValidKind reports whether s is empty or a known subscription kind.
func ValidKind(s string) bool {
	return s == "" || s == KindSubscription || s == KindPayment
}

// ValidWarrantyStatus reports whether s is empty or a known warranty status.
func ValidWarrantyStatus(s string) bool {
	return s == "" || s == StatusExpired || s == StatusExpiring || s == StatusActive
}

// Subscriptions returns the subscriptions matching q.
func Subscriptions(list []models.Subscription, q SubscriptionQuery, now time.Time) []models.Subscription {
	out := make([]models.Subscription, 0, len(list))
	for _, s := range list {
		if q.Category != "" && s.Category != q.Category {
			continue
		}
		if !containsFold(q.Text, s.Name, string(s.Category)) {
			continue
		}
		switch q.Kind {
		case KindSubscription:
			if !s.IsSubscription {
				continue
			}
		case KindPayment:
			if s.IsSubscription {
				continue
			}
		}
		switch q.Status {
		case StatusPastDue:
			if !s.IsPastDue(now) {
				continue
			}
		case StatusUpcoming:
			if s.IsPastDue(now) {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// Assets returns the assets matching q.
func Assets(list []models.PersonalAsset, q AssetQuery) []models.PersonalAsset {
	out := make([]models.PersonalAsset, 0, len(list))
	for _, a := range list {
		if q.Category != "" && a.Category != q.Category {
			continue
		}
		if !containsFold(q.Text, a.Name, string(a.Category)) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Warranties returns the warranties matching q. A warranty is expiring when
// it is not expired and expires within windowDays calendar days, and active
// when it expires later than that.
func Warranties(list []models.Warranty, q WarrantyQuery, now time.Time, windowDays int) []models.Warranty {
	out := make([]models.Warranty, 0, len(list))
	for _, w := range list {
		if !containsFold(q.Text, w.ProductName, w.Vendor) {
			continue
		}
		if q.Status != "" && WarrantyStatus(w, now, windowDays) != q.Status {
			continue
		}
		out = append(out, w)
	}
	return out
}

// WarrantyStatus buckets w into expired, expiring or active.
func WarrantyStatus(w models.Warranty, now time.Time, windowDays int) string {
	switch {
	case w.IsExpired(now):
		return StatusExpired
	case w.IsExpiringWithin(now, windowDays):
		return StatusExpiring
	default:
		return StatusActive
	}
}

// containsFold reports whether needle is a case-insensitive substring of
// any of the fields. An empty needle matches.
func containsFold(needle string, fields ...string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
