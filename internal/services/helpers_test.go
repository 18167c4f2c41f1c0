package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"continuum/internal/live"
	"continuum/internal/testutil"
)

// testServices bundles every service over one isolated database.
type testServices struct {
	db            *gorm.DB
	feed          *live.Feed
	activity      ActivityServicer
	subscriptions SubscriptionServicer
	assets        AssetServicer
	warranties    WarrantyServicer
	backup        BackupServicer
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	return setupServicesIn(t, time.UTC)
}

// setupServicesIn builds the services with renewals on the calendar of loc.
func setupServicesIn(t *testing.T, loc *time.Location) *testServices {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	feed := live.NewFeed()
	activity := NewActivityService(db)
	return &testServices{
		db:            db,
		feed:          feed,
		activity:      activity,
		subscriptions: NewSubscriptionService(db, feed, activity, loc),
		assets:        NewAssetService(db, feed, activity),
		warranties:    NewWarrantyService(db, feed, activity),
		backup:        NewBackupService(db, feed, activity),
	}
}

func ptr[T any](v T) *T {
	return &v
}
