package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"continuum/internal/backup"
	apperrors "continuum/internal/errors"
	"continuum/internal/live"
	"continuum/internal/logger"
	"continuum/internal/models"
)

// backupService exports and imports the whole store as a JSON snapshot.
type backupService struct {
	db       *gorm.DB
	feed     *live.Feed
	activity ActivityServicer
}

// NewBackupService creates a new BackupServicer.
func NewBackupService(db *gorm.DB, feed *live.Feed, activity ActivityServicer) BackupServicer {
	return &backupService{db: db, feed: feed, activity: activity}
}

// Export reads every entity in creation order and encodes a snapshot
// stamped with now.
func (s *backupService) Export(now time.Time) ([]byte, error) {
	var (
		subs       []models.Subscription
		assets     []models.PersonalAsset
		warranties []models.Warranty
	)

	if err := s.db.Order("created_at ASC, id ASC").Find(&subs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	err := s.db.Preload("ValueChanges", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence ASC")
	}).Order("created_at ASC, id ASC").Find(&assets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	if err := s.db.Order("created_at ASC, id ASC").Find(&warranties).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	data, err := backup.Marshal(backup.Build(subs, assets, warranties, now))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.activity.Log(models.ActionExportSnapshot, models.ResourceSnapshot, "", map[string]any{
		"subscriptions": len(subs),
		"assets":        len(assets),
		"warranties":    len(warranties),
		"bytes":         len(data),
	})
	return data, nil
}

// Import decodes data and inserts every record it holds. Nothing is
// written unless the whole snapshot decodes, and all inserts share one
// transaction, so a failure leaves the store as it was. Existing records
// are never touched: importing the same file twice duplicates it.
func (s *backupService) Import(data []byte) (*ImportResult, error) {
	decoded, err := backup.Decode(data)
	if err != nil {
		return nil, err
	}

	for _, c := range decoded.Coercions {
		logger.Get().Warnw("coerced snapshot field",
			"path", c.Path,
			"field", c.Field,
			"value", c.Value,
			"fallback", c.Fallback,
		)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(decoded.Subscriptions) > 0 {
			if err := tx.Create(&decoded.Subscriptions).Error; err != nil {
				return err
			}
		}

		for i := range decoded.Assets {
			asset := &decoded.Assets[i]
			if err := tx.Omit(clause.Associations).Create(asset).Error; err != nil {
				return err
			}
			for j := range asset.ValueChanges {
				asset.ValueChanges[j].AssetID = asset.ID
			}
			if len(asset.ValueChanges) > 0 {
				if err := tx.Create(&asset.ValueChanges).Error; err != nil {
					return err
				}
			}
		}

		if len(decoded.Warranties) > 0 {
			if err := tx.Create(&decoded.Warranties).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	result := &ImportResult{
		Version:       decoded.Version,
		ExportDate:    decoded.ExportDate,
		Subscriptions: len(decoded.Subscriptions),
		Assets:        len(decoded.Assets),
		ValueChanges:  decoded.ValueChangeCount(),
		Warranties:    len(decoded.Warranties),
		Coercions:     decoded.Coercions,
	}
	if result.Coercions == nil {
		result.Coercions = []backup.Coercion{}
	}

	s.activity.Log(models.ActionImportSnapshot, models.ResourceSnapshot, "", map[string]any{
		"subscriptions": result.Subscriptions,
		"assets":        result.Assets,
		"value_changes": result.ValueChanges,
		"warranties":    result.Warranties,
		"coercions":     result.Coercions,
	})
	s.feed.Publish(live.AllTopics...)
	return result, nil
}
