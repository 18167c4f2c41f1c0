package handlers

import (
	"time"

	"continuum/internal/models"
	"continuum/internal/pagination"
	"continuum/internal/services"
)

// --- mock subscription service ---

type mockSubscriptionService struct {
	createSubscriptionFn  func(sub *models.Subscription) (*models.Subscription, error)
	getSubscriptionByIDFn func(id string) (*models.Subscription, error)
	listSubscriptionsFn   func() ([]models.Subscription, error)
	updateSubscriptionFn  func(id string, update services.SubscriptionUpdate) (*models.Subscription, error)
	renewSubscriptionFn   func(id string) (*models.Subscription, error)
	deleteSubscriptionFn  func(id string) error
	watchSubscriptionsFn  func(fn func([]models.Subscription, error)) func()
}

func (m *mockSubscriptionService) CreateSubscription(sub *models.Subscription) (*models.Subscription, error) {
	if m.createSubscriptionFn != nil {
		return m.createSubscriptionFn(sub)
	}
	return sub, nil
}

func (m *mockSubscriptionService) GetSubscriptionByID(id string) (*models.Subscription, error) {
	if m.getSubscriptionByIDFn != nil {
		return m.getSubscriptionByIDFn(id)
	}
	return &models.Subscription{Base: models.Base{ID: id}}, nil
}

func (m *mockSubscriptionService) ListSubscriptions() ([]models.Subscription, error) {
	if m.listSubscriptionsFn != nil {
		return m.listSubscriptionsFn()
	}
	return []models.Subscription{}, nil
}

func (m *mockSubscriptionService) UpdateSubscription(id string, update services.SubscriptionUpdate) (*models.Subscription, error) {
	if m.updateSubscriptionFn != nil {
		return m.updateSubscriptionFn(id, update)
	}
	return &models.Subscription{Base: models.Base{ID: id}}, nil
}

func (m *mockSubscriptionService) RenewSubscription(id string) (*models.Subscription, error) {
	if m.renewSubscriptionFn != nil {
		return m.renewSubscriptionFn(id)
	}
	return &models.Subscription{Base: models.Base{ID: id}}, nil
}

func (m *mockSubscriptionService) DeleteSubscription(id string) error {
	if m.deleteSubscriptionFn != nil {
		return m.deleteSubscriptionFn(id)
	}
	return nil
}

func (m *mockSubscriptionService) WatchSubscriptions(fn func([]models.Subscription, error)) func() {
	if m.watchSubscriptionsFn != nil {
		return m.watchSubscriptionsFn(fn)
	}
	fn([]models.Subscription{}, nil)
	return func() {}
}

var _ services.SubscriptionServicer = (*mockSubscriptionService)(nil)

// --- mock asset service ---

type mockAssetService struct {
	createAssetFn      func(asset *models.PersonalAsset) (*models.PersonalAsset, error)
	getAssetByIDFn     func(id string) (*models.PersonalAsset, error)
	listAssetsFn       func() ([]models.PersonalAsset, error)
	updateAssetFn      func(id string, update services.AssetUpdate) (*models.PersonalAsset, error)
	deleteAssetFn      func(id string) error
	listValueChangesFn func(assetID string) ([]models.AssetValueChange, error)
	watchAssetsFn      func(fn func([]models.PersonalAsset, error)) func()
}

func (m *mockAssetService) CreateAsset(asset *models.PersonalAsset) (*models.PersonalAsset, error) {
	if m.createAssetFn != nil {
		return m.createAssetFn(asset)
	}
	return asset, nil
}

func (m *mockAssetService) GetAssetByID(id string) (*models.PersonalAsset, error) {
	if m.getAssetByIDFn != nil {
		return m.getAssetByIDFn(id)
	}
	return &models.PersonalAsset{Base: models.Base{ID: id}}, nil
}

func (m *mockAssetService) ListAssets() ([]models.PersonalAsset, error) {
	if m.listAssetsFn != nil {
		return m.listAssetsFn()
	}
	return []models.PersonalAsset{}, nil
}

func (m *mockAssetService) UpdateAsset(id string, update services.AssetUpdate) (*models.PersonalAsset, error) {
	if m.updateAssetFn != nil {
		return m.updateAssetFn(id, update)
	}
	return &models.PersonalAsset{Base: models.Base{ID: id}}, nil
}

func (m *mockAssetService) DeleteAsset(id string) error {
	if m.deleteAssetFn != nil {
		return m.deleteAssetFn(id)
	}
	return nil
}

func (m *mockAssetService) ListValueChanges(assetID string) ([]models.AssetValueChange, error) {
	if m.listValueChangesFn != nil {
		return m.listValueChangesFn(assetID)
	}
	return []models.AssetValueChange{}, nil
}

func (m *mockAssetService) WatchAssets(fn func([]models.PersonalAsset, error)) func() {
	if m.watchAssetsFn != nil {
		return m.watchAssetsFn(fn)
	}
	fn([]models.PersonalAsset{}, nil)
	return func() {}
}

var _ services.AssetServicer = (*mockAssetService)(nil)

// --- mock warranty service ---

type mockWarrantyService struct {
	createWarrantyFn  func(w *models.Warranty) (*models.Warranty, error)
	getWarrantyByIDFn func(id string) (*models.Warranty, error)
	listWarrantiesFn  func() ([]models.Warranty, error)
	updateWarrantyFn  func(id string, update services.WarrantyUpdate) (*models.Warranty, error)
	deleteWarrantyFn  func(id string) error
	watchWarrantiesFn func(fn func([]models.Warranty, error)) func()
}

func (m *mockWarrantyService) CreateWarranty(w *models.Warranty) (*models.Warranty, error) {
	if m.createWarrantyFn != nil {
		return m.createWarrantyFn(w)
	}
	return w, nil
}

func (m *mockWarrantyService) GetWarrantyByID(id string) (*models.Warranty, error) {
	if m.getWarrantyByIDFn != nil {
		return m.getWarrantyByIDFn(id)
	}
	return &models.Warranty{Base: models.Base{ID: id}}, nil
}

func (m *mockWarrantyService) ListWarranties() ([]models.Warranty, error) {
	if m.listWarrantiesFn != nil {
		return m.listWarrantiesFn()
	}
	return []models.Warranty{}, nil
}

func (m *mockWarrantyService) UpdateWarranty(id string, update services.WarrantyUpdate) (*models.Warranty, error) {
	if m.updateWarrantyFn != nil {
		return m.updateWarrantyFn(id, update)
	}
	return &models.Warranty{Base: models.Base{ID: id}}, nil
}

func (m *mockWarrantyService) DeleteWarranty(id string) error {
	if m.deleteWarrantyFn != nil {
		return m.deleteWarrantyFn(id)
	}
	return nil
}

func (m *mockWarrantyService) WatchWarranties(fn func([]models.Warranty, error)) func() {
	if m.watchWarrantiesFn != nil {
		return m.watchWarrantiesFn(fn)
	}
	fn([]models.Warranty{}, nil)
	return func() {}
}

var _ services.WarrantyServicer = (*mockWarrantyService)(nil)

// --- mock backup service ---

type mockBackupService struct {
	exportFn func(now time.Time) ([]byte, error)
	importFn func(data []byte) (*services.ImportResult, error)
}

func (m *mockBackupService) Export(now time.Time) ([]byte, error) {
	if m.exportFn != nil {
		return m.exportFn(now)
	}
	return []byte(`{}`), nil
}

func (m *mockBackupService) Import(data []byte) (*services.ImportResult, error) {
	if m.importFn != nil {
		return m.importFn(data)
	}
	return &services.ImportResult{Version: 1}, nil
}

var _ services.BackupServicer = (*mockBackupService)(nil)

// --- mock dashboard, calendar and activity services ---

type mockDashboardService struct {
	getSummaryFn func(now time.Time) (*services.DashboardSummary, error)
}

func (m *mockDashboardService) GetSummary(now time.Time) (*services.DashboardSummary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(now)
	}
	return &services.DashboardSummary{GeneratedAt: now}, nil
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

type mockCalendarService struct {
	getDayFn    func(day time.Time) (*services.CalendarDay, error)
	getEventsFn func(from, to, now time.Time) ([]services.CalendarEvent, error)
}

func (m *mockCalendarService) GetDay(day time.Time) (*services.CalendarDay, error) {
	if m.getDayFn != nil {
		return m.getDayFn(day)
	}
	return &services.CalendarDay{Date: day}, nil
}

func (m *mockCalendarService) GetEvents(from, to, now time.Time) ([]services.CalendarEvent, error) {
	if m.getEventsFn != nil {
		return m.getEventsFn(from, to, now)
	}
	return []services.CalendarEvent{}, nil
}

var _ services.CalendarServicer = (*mockCalendarService)(nil)

type mockActivityService struct {
	listFn func(page pagination.PageRequest) (*pagination.PageResponse[models.ActivityLog], error)
}

func (m *mockActivityService) Log(_, _, _ string, _ map[string]any) {}

func (m *mockActivityService) List(page pagination.PageRequest) (*pagination.PageResponse[models.ActivityLog], error) {
	if m.listFn != nil {
		return m.listFn(page)
	}
	resp := pagination.NewPageResponse([]models.ActivityLog{}, 1, 20, 0)
	return &resp, nil
}

var _ services.ActivityServicer = (*mockActivityService)(nil)
