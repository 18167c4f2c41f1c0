package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"continuum/internal/models"
)

// dashboardService aggregates the dashboard figures from the repositories.
type dashboardService struct {
	subscriptions SubscriptionServicer
	assets        AssetServicer
	warranties    WarrantyServicer
	windowDays    int
	itemLimit     int
}

// NewDashboardService creates a new DashboardServicer. windowDays bounds
// the upcoming renewal and expiring warranty lists; itemLimit caps their
// length.
func NewDashboardService(subs SubscriptionServicer, assets AssetServicer, warranties WarrantyServicer, windowDays, itemLimit int) DashboardServicer {
	return &dashboardService{
		subscriptions: subs,
		assets:        assets,
		warranties:    warranties,
		windowDays:    windowDays,
		itemLimit:     itemLimit,
	}
}

// GetSummary computes the dashboard as of now. Totals sum unrounded
// monthly equivalents and are rounded to cents once at the end.
func (s *dashboardService) GetSummary(now time.Time) (*DashboardSummary, error) {
	subs, err := s.subscriptions.ListSubscriptions()
	if err != nil {
		return nil, err
	}
	assets, err := s.assets.ListAssets()
	if err != nil {
		return nil, err
	}
	warranties, err := s.warranties.ListWarranties()
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		MonthlyBreakdown:   make([]BreakdownItem, 0, len(subs)),
		AssetCount:         len(assets),
		WarrantyCount:      len(warranties),
		UpcomingRenewals:   []models.Subscription{},
		ExpiringWarranties: []models.Warranty{},
		WindowDays:         s.windowDays,
		GeneratedAt:        now,
	}

	total := decimal.Zero
	for _, sub := range subs {
		monthly := sub.MonthlyEquivalent()
		total = total.Add(monthly)
		summary.MonthlyBreakdown = append(summary.MonthlyBreakdown, BreakdownItem{
			ID:                sub.ID,
			Name:              sub.Name,
			Category:          string(sub.Category),
			IsSubscription:    sub.IsSubscription,
			MonthlyEquivalent: monthly,
		})
		if sub.IsSubscription {
			summary.SubscriptionCount++
		} else {
			summary.RecurringPaymentCount++
		}
		// subs is ordered by due date, so the first matches are the soonest.
		if models.CalendarDaysBetween(now, sub.NextDueDate) <= s.windowDays && len(summary.UpcomingRenewals) < s.itemLimit {
			summary.UpcomingRenewals = append(summary.UpcomingRenewals, sub)
		}
	}
	summary.MonthlyRecurringTotal = total.Round(2)

	sort.SliceStable(summary.MonthlyBreakdown, func(i, j int) bool {
		a, b := summary.MonthlyBreakdown[i], summary.MonthlyBreakdown[j]
		if cmp := a.MonthlyEquivalent.Cmp(b.MonthlyEquivalent); cmp != 0 {
			return cmp > 0
		}
		return a.Name < b.Name
	})
	for i := range summary.MonthlyBreakdown {
		summary.MonthlyBreakdown[i].MonthlyEquivalent = summary.MonthlyBreakdown[i].MonthlyEquivalent.Round(2)
	}

	assetTotal := decimal.Zero
	for _, a := range assets {
		assetTotal = assetTotal.Add(a.CurrentValue)
	}
	summary.TotalAssetValue = assetTotal

	for _, w := range warranties {
		if len(summary.ExpiringWarranties) >= s.itemLimit {
			break
		}
		if w.IsExpiringWithin(now, s.windowDays) {
			summary.ExpiringWarranties = append(summary.ExpiringWarranties, w)
		}
	}

	return summary, nil
}
