package services

import (
	"gorm.io/gorm"

	apperrors "continuum/internal/errors"
	"continuum/internal/live"
	"continuum/internal/models"
)

// warrantyService stores product warranties.
type warrantyService struct {
	db       *gorm.DB
	feed     *live.Feed
	activity ActivityServicer
}

// NewWarrantyService creates a new WarrantyServicer.
func NewWarrantyService(db *gorm.DB, feed *live.Feed, activity ActivityServicer) WarrantyServicer {
	return &warrantyService{db: db, feed: feed, activity: activity}
}

// CreateWarranty inserts w.
func (s *warrantyService) CreateWarranty(w *models.Warranty) (*models.Warranty, error) {
	w.PurchaseDate = w.PurchaseDate.UTC()
	w.ExpiryDate = w.ExpiryDate.UTC()
	if err := s.db.Create(w).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	s.activity.Log(models.ActionCreateWarranty, models.ResourceWarranty, w.ID, map[string]any{
		"product_name": w.ProductName,
		"expiry_date":  w.ExpiryDate,
	})
	s.feed.Publish(live.Warranties)
	return w, nil
}

// GetWarrantyByID returns a warranty by ID.
func (s *warrantyService) GetWarrantyByID(id string) (*models.Warranty, error) {
	var w models.Warranty
	if err := s.db.Where("id = ?", id).First(&w).Error; err != nil {
		return nil, lookupError(err, apperrors.ErrWarrantyNotFound)
	}
	return &w, nil
}

// ListWarranties returns every warranty, soonest expiry first.
func (s *warrantyService) ListWarranties() ([]models.Warranty, error) {
	warranties := []models.Warranty{}
	if err := s.db.Order("expiry_date ASC, id ASC").Find(&warranties).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return warranties, nil
}

// UpdateWarranty changes the given fields in place.
func (s *warrantyService) UpdateWarranty(id string, update WarrantyUpdate) (*models.Warranty, error) {
	w, err := s.GetWarrantyByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.ProductName != nil {
		updates["product_name"] = *update.ProductName
	}
	if update.PurchaseDate != nil {
		updates["purchase_date"] = update.PurchaseDate.UTC()
	}
	if update.ExpiryDate != nil {
		updates["expiry_date"] = update.ExpiryDate.UTC()
	}
	if update.Vendor != nil {
		updates["vendor"] = *update.Vendor
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}

	if len(updates) == 0 {
		return w, nil
	}
	if err := s.db.Model(w).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	s.activity.Log(models.ActionUpdateWarranty, models.ResourceWarranty, w.ID, updates)
	s.feed.Publish(live.Warranties)
	return w, nil
}

// DeleteWarranty permanently removes a warranty.
func (s *warrantyService) DeleteWarranty(id string) error {
	w, err := s.GetWarrantyByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(w).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	s.activity.Log(models.ActionDeleteWarranty, models.ResourceWarranty, w.ID, map[string]any{"product_name": w.ProductName})
	s.feed.Publish(live.Warranties)
	return nil
}

// WatchWarranties delivers the ordered list now and after every change.
func (s *warrantyService) WatchWarranties(fn func([]models.Warranty, error)) func() {
	return watch(s.feed, live.Warranties, s.ListWarranties, fn)
}
