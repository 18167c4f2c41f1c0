package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "continuum/internal/errors"
	"continuum/internal/live"
	"continuum/internal/models"
)

// assetService stores personal assets and their value history.
type assetService struct {
	db       *gorm.DB
	feed     *live.Feed
	activity ActivityServicer
	now      func() time.Time
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB, feed *live.Feed, activity ActivityServicer) AssetServicer {
	return &assetService{db: db, feed: feed, activity: activity, now: clock}
}

// CreateAsset inserts asset without any value history. Setting the first
// value is not a change.
func (s *assetService) CreateAsset(asset *models.PersonalAsset) (*models.PersonalAsset, error) {
	if asset.UpdatedAt.IsZero() {
		asset.UpdatedAt = s.now()
	}
	if asset.PurchaseDate != nil {
		pd := asset.PurchaseDate.UTC()
		asset.PurchaseDate = &pd
	}
	asset.ValueChanges = []models.AssetValueChange{}

	if err := s.db.Omit(clause.Associations).Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	s.activity.Log(models.ActionCreateAsset, models.ResourceAsset, asset.ID, map[string]any{
		"name":          asset.Name,
		"current_value": asset.CurrentValue.String(),
	})
	s.feed.Publish(live.Assets)
	return asset, nil
}

// GetAssetByID returns an asset with its value changes in insertion order.
func (s *assetService) GetAssetByID(id string) (*models.PersonalAsset, error) {
	return loadAsset(s.db, id)
}

func loadAsset(db *gorm.DB, id string) (*models.PersonalAsset, error) {
	var asset models.PersonalAsset
	err := db.Preload("ValueChanges", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence ASC")
	}).Where("id = ?", id).First(&asset).Error
	if err != nil {
		return nil, lookupError(err, apperrors.ErrAssetNotFound)
	}
	return &asset, nil
}

// forUpdate locks the selected rows until tx ends. SQLite has no row locks
// and already serializes writers.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// ListAssets returns every asset with its value changes, ordered by name.
func (s *assetService) ListAssets() ([]models.PersonalAsset, error) {
	assets := []models.PersonalAsset{}
	err := s.db.Preload("ValueChanges", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence ASC")
	}).Order("name ASC, id ASC").Find(&assets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return assets, nil
}

// UpdateAsset changes the given fields and refreshes UpdatedAt. When
// CurrentValue differs from the stored value exactly one value change is
// appended in the same transaction; an equal value appends none. The asset
// is read inside the transaction so the previous value and sequence of the
// new change are the committed ones.
func (s *assetService) UpdateAsset(id string, update AssetUpdate) (*models.PersonalAsset, error) {
	now := s.now()
	updates := map[string]interface{}{"updated_at": now}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.ClearPurchaseDate {
		updates["purchase_date"] = nil
	} else if update.PurchaseDate != nil {
		updates["purchase_date"] = update.PurchaseDate.UTC()
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}

	var (
		asset  *models.PersonalAsset
		change *models.AssetValueChange
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		asset, err = loadAsset(forUpdate(tx), id)
		if err != nil {
			return err
		}

		if update.CurrentValue != nil {
			change = asset.ApplyValue(*update.CurrentValue, update.ValueNote, now)
			updates["current_value"] = asset.CurrentValue
		}
		if change != nil {
			if err := tx.Create(change).Error; err != nil {
				return err
			}
			// ApplyValue appended a copy before the id was assigned.
			asset.ValueChanges[len(asset.ValueChanges)-1] = *change
		}
		return tx.Model(&models.PersonalAsset{}).Where("id = ?", asset.ID).Updates(updates).Error
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	s.applyUpdates(asset, update, now)

	changes := map[string]any{"fields": len(updates) - 1}
	if change != nil {
		changes["previous_value"] = change.PreviousValue.String()
		changes["new_value"] = change.NewValue.String()
	}
	s.activity.Log(models.ActionUpdateAsset, models.ResourceAsset, asset.ID, changes)
	s.feed.Publish(live.Assets)
	return asset, nil
}

// applyUpdates mirrors a committed update onto the loaded asset.
func (s *assetService) applyUpdates(asset *models.PersonalAsset, update AssetUpdate, now time.Time) {
	asset.UpdatedAt = now
	if update.Name != nil {
		asset.Name = *update.Name
	}
	if update.ClearPurchaseDate {
		asset.PurchaseDate = nil
	} else if update.PurchaseDate != nil {
		pd := update.PurchaseDate.UTC()
		asset.PurchaseDate = &pd
	}
	if update.Category != nil {
		asset.Category = *update.Category
	}
	if update.Notes != nil {
		asset.Notes = *update.Notes
	}
}

// DeleteAsset removes the asset and every value change it owns in one
// transaction.
func (s *assetService) DeleteAsset(id string) error {
	asset, err := s.GetAssetByID(id)
	if err != nil {
		return err
	}

	var removed int64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("asset_id = ?", asset.ID).Delete(&models.AssetValueChange{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return tx.Delete(&models.PersonalAsset{}, "id = ?", asset.ID).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	s.activity.Log(models.ActionDeleteAsset, models.ResourceAsset, asset.ID, map[string]any{
		"name":                  asset.Name,
		"value_changes_removed": removed,
	})
	s.feed.Publish(live.Assets)
	return nil
}

// ListValueChanges returns an asset's value history, newest first.
func (s *assetService) ListValueChanges(assetID string) ([]models.AssetValueChange, error) {
	if _, err := s.GetAssetByID(assetID); err != nil {
		return nil, err
	}

	changes := []models.AssetValueChange{}
	if err := s.db.Where("asset_id = ?", assetID).Order("sequence DESC").Find(&changes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return changes, nil
}

// WatchAssets delivers the ordered list now and after every change.
func (s *assetService) WatchAssets(fn func([]models.PersonalAsset, error)) func() {
	return watch(s.feed, live.Assets, s.ListAssets, fn)
}
