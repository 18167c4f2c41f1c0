package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"continuum/internal/models"
	"continuum/internal/services"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestMoney(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"968.82", "$968.82"},
		{"15.49", "$15.49"},
		{"0", "$0.00"},
		{"1234567.891", "$1,234,567.89"},
		{"43.3333333333333333", "$43.33"},
		{"0.005", "$0.01"},
		{"-12.5", "-$12.50"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(decimal.RequireFromString(tt.amount), "USD"))
		})
	}
}

func TestMoney_ZeroFractionCurrency(t *testing.T) {
	assert.Equal(t, "¥1,500", Money(decimal.RequireFromString("1499.6"), "JPY"))
}

func TestDashboard(t *testing.T) {
	summary := &services.DashboardSummary{
		MonthlyRecurringTotal: decimal.RequireFromString("1215.49"),
		MonthlyBreakdown: []services.BreakdownItem{
			{Name: "Rent", Category: "Rent", MonthlyEquivalent: decimal.NewFromInt(1200)},
			{Name: "Netflix | 4K", Category: "Streaming", IsSubscription: true, MonthlyEquivalent: decimal.RequireFromString("15.49")},
		},
		TotalAssetValue:       decimal.RequireFromString("2500"),
		SubscriptionCount:     1,
		RecurringPaymentCount: 1,
		AssetCount:            2,
		WarrantyCount:         1,
		UpcomingRenewals: []models.Subscription{
			{Name: "Rent", Amount: decimal.NewFromInt(1200), BillingCycle: models.BillingCycleMonthly, NextDueDate: now.AddDate(0, 0, 1)},
		},
		ExpiringWarranties: []models.Warranty{
			{ProductName: "Laptop", ExpiryDate: now.AddDate(0, 0, 12)},
		},
		WindowDays:  30,
		GeneratedAt: now,
	}

	var b strings.Builder
	Dashboard(&b, summary, "USD")
	out := b.String()

	assert.True(t, strings.HasPrefix(out, "# Dashboard\n"))
	assert.Contains(t, out, "_As of 2026-03-10, looking 30 days ahead._")
	assert.Contains(t, out, "| Monthly recurring | $1,215.49 |")
	assert.Contains(t, out, "| Total asset value | $2,500.00 |")
	assert.Contains(t, out, "| Recurring payments | 1 |")
	assert.Contains(t, out, `| Netflix \| 4K | Streaming | Subscription | $15.49 |`)
	assert.Contains(t, out, "| Rent | Rent | Payment | $1,200.00 |")
	assert.Contains(t, out, "| Rent | 2026-03-11 | tomorrow | $1,200.00 | Monthly |")
	assert.Contains(t, out, "| Laptop | - | 2026-03-22 | in 12 days |")

	// Breakdown keeps the summary's order.
	assert.Less(t, strings.Index(out, "| Rent | Rent |"), strings.Index(out, "| Netflix"))
}

func TestDashboard_Empty(t *testing.T) {
	summary := &services.DashboardSummary{WindowDays: 14, GeneratedAt: now}

	var b strings.Builder
	Dashboard(&b, summary, "USD")
	out := b.String()

	assert.Contains(t, out, "| Monthly recurring | $0.00 |")
	assert.Contains(t, out, "_Nothing recurring yet._")
	assert.Equal(t, 2, strings.Count(out, "_None in the next 14 days._"))
}

func TestUpcoming_LocalDates(t *testing.T) {
	ist := time.FixedZone("IST", 19800)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, ist)
	renewals := []models.Subscription{
		// Stored UTC on the 10th, the 11th in India.
		{Name: "Gym", Amount: decimal.NewFromInt(40), BillingCycle: models.BillingCycleMonthly, NextDueDate: time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)},
	}
	warranties := []models.Warranty{
		{ProductName: "Router", ExpiryDate: time.Date(2026, 3, 14, 18, 45, 0, 0, time.UTC)},
	}

	var b strings.Builder
	Upcoming(&b, renewals, warranties, at, 30, "USD")
	out := b.String()

	assert.Contains(t, out, "| Gym | 2026-03-11 | tomorrow | $40.00 | Monthly |")
	assert.Contains(t, out, "| Router | - | 2026-03-15 | in 5 days |")
}

func TestRelativeDays(t *testing.T) {
	tests := []struct {
		offset int
		want   string
	}{
		{0, "today"},
		{1, "tomorrow"},
		{5, "in 5 days"},
		{-1, "1 day ago"},
		{-3, "3 days ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, relativeDays(now, now.AddDate(0, 0, tt.offset)))
		})
	}
}
