package services

import (
	"time"

	"github.com/shopspring/decimal"

	"continuum/internal/backup"
	"continuum/internal/filter"
	"continuum/internal/models"
	"continuum/internal/pagination"
)

// SubscriptionUpdate holds the subscription fields to change. Nil fields
// are left as they are.
type SubscriptionUpdate struct {
	Name           *string
	Amount         *decimal.Decimal
	BillingCycle   *models.BillingCycle
	NextDueDate    *time.Time
	Category       *models.SubscriptionCategory
	Notes          *string
	IsSubscription *bool
}

// SubscriptionServicer defines the contract for subscription storage.
type SubscriptionServicer interface {
	CreateSubscription(sub *models.Subscription) (*models.Subscription, error)
	GetSubscriptionByID(id string) (*models.Subscription, error)
	ListSubscriptions() ([]models.Subscription, error)
	UpdateSubscription(id string, update SubscriptionUpdate) (*models.Subscription, error)
	RenewSubscription(id string) (*models.Subscription, error)
	DeleteSubscription(id string) error
	WatchSubscriptions(fn func([]models.Subscription, error)) (stop func())
}

// AssetUpdate holds the asset fields to change. Nil fields are left as they
// are. ClearPurchaseDate removes the purchase date; ValueNote annotates the
// value change recorded when CurrentValue differs from the stored value.
type AssetUpdate struct {
	Name              *string
	CurrentValue      *decimal.Decimal
	PurchaseDate      *time.Time
	ClearPurchaseDate bool
	Category          *models.AssetCategory
	Notes             *string
	ValueNote         *string
}

// AssetServicer defines the contract for asset storage and value history.
type AssetServicer interface {
	CreateAsset(asset *models.PersonalAsset) (*models.PersonalAsset, error)
	GetAssetByID(id string) (*models.PersonalAsset, error)
	ListAssets() ([]models.PersonalAsset, error)
	UpdateAsset(id string, update AssetUpdate) (*models.PersonalAsset, error)
	DeleteAsset(id string) error
	ListValueChanges(assetID string) ([]models.AssetValueChange, error)
	WatchAssets(fn func([]models.PersonalAsset, error)) (stop func())
}

// WarrantyUpdate holds the warranty fields to change. Nil fields are left
// as they are.
type WarrantyUpdate struct {
	ProductName  *string
	PurchaseDate *time.Time
	ExpiryDate   *time.Time
	Vendor       *string
	Notes        *string
}

// WarrantyServicer defines the contract for warranty storage.
type WarrantyServicer interface {
	CreateWarranty(w *models.Warranty) (*models.Warranty, error)
	GetWarrantyByID(id string) (*models.Warranty, error)
	ListWarranties() ([]models.Warranty, error)
	UpdateWarranty(id string, update WarrantyUpdate) (*models.Warranty, error)
	DeleteWarranty(id string) error
	WatchWarranties(fn func([]models.Warranty, error)) (stop func())
}

// ImportResult summarizes a completed import.
type ImportResult struct {
	Version       int               `json:"version"`
	ExportDate    time.Time         `json:"export_date"`
	Subscriptions int               `json:"subscriptions"`
	Assets        int               `json:"assets"`
	ValueChanges  int               `json:"value_changes"`
	Warranties    int               `json:"warranties"`
	Coercions     []backup.Coercion `json:"coercions"`
}

// BackupServicer defines the contract for whole-store export and import.
type BackupServicer interface {
	Export(now time.Time) ([]byte, error)
	Import(data []byte) (*ImportResult, error)
}

// BreakdownItem is one subscription's share of the monthly total.
type BreakdownItem struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	IsSubscription    bool            `json:"is_subscription"`
	MonthlyEquivalent decimal.Decimal `json:"monthly_equivalent"`
}

// DashboardSummary contains the figures shown on the dashboard.
type DashboardSummary struct {
	MonthlyRecurringTotal decimal.Decimal       `json:"monthly_recurring_total"`
	MonthlyBreakdown      []BreakdownItem       `json:"monthly_breakdown"`
	TotalAssetValue       decimal.Decimal       `json:"total_asset_value"`
	SubscriptionCount     int                   `json:"subscription_count"`
	RecurringPaymentCount int                   `json:"recurring_payment_count"`
	AssetCount            int                   `json:"asset_count"`
	WarrantyCount         int                   `json:"warranty_count"`
	UpcomingRenewals      []models.Subscription `json:"upcoming_renewals"`
	ExpiringWarranties    []models.Warranty     `json:"expiring_warranties"`
	WindowDays            int                   `json:"window_days"`
	GeneratedAt           time.Time             `json:"generated_at"`
}

// DashboardServicer defines the contract for dashboard aggregation.
type DashboardServicer interface {
	GetSummary(now time.Time) (*DashboardSummary, error)
}

// Calendar event kinds.
const (
	EventSubscriptionDue = "subscription_due"
	EventWarrantyExpiry  = "warranty_expiry"
)

// Calendar event statuses. Warranty statuses are the filter buckets.
const (
	EventStatusPastDue  = filter.StatusPastDue
	EventStatusDue      = "due"
	EventStatusExpired  = filter.StatusExpired
	EventStatusExpiring = filter.StatusExpiring
	EventStatusActive   = filter.StatusActive
)

// CalendarEvent is one due date or expiry on the calendar.
type CalendarEvent struct {
	Kind       string           `json:"kind"`
	ResourceID string           `json:"resource_id"`
	Title      string           `json:"title"`
	Date       time.Time        `json:"date"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Status     string           `json:"status"`
}

// CalendarDay lists what falls on one civil day.
type CalendarDay struct {
	Date          time.Time             `json:"date"`
	Subscriptions []models.Subscription `json:"subscriptions"`
	Warranties    []models.Warranty     `json:"warranties"`
}

// CalendarServicer defines the contract for the due and expiry calendar.
type CalendarServicer interface {
	GetDay(day time.Time) (*CalendarDay, error)
	GetEvents(from, to, now time.Time) ([]CalendarEvent, error)
}

// ActivityServicer defines the contract for the local activity log.
type ActivityServicer interface {
	Log(action, resourceType, resourceID string, changes map[string]any)
	List(page pagination.PageRequest) (*pagination.PageResponse[models.ActivityLog], error)
}
