package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"continuum/internal/backup"
	apperrors "continuum/internal/errors"
	"continuum/internal/logger"
	"continuum/internal/models"
	"continuum/internal/testutil"
)

func seedStore(t *testing.T, s *testServices) {
	t.Helper()
	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	netflix := models.NewSubscription("Netflix", now.AddDate(0, 0, 10))
	netflix.Amount = decimal.RequireFromString("15.49")
	netflix.Category = models.SubscriptionCategoryStreaming
	_, err := s.subscriptions.CreateSubscription(netflix)
	require.NoError(t, err)

	rent := models.NewSubscription("Rent", now)
	rent.Amount = decimal.RequireFromString("1250")
	rent.IsSubscription = false
	rent.Category = models.SubscriptionCategoryRent
	rent.Notes = "landlord"
	_, err = s.subscriptions.CreateSubscription(rent)
	require.NoError(t, err)

	laptop := models.NewPersonalAsset("Laptop")
	laptop.CurrentValue = decimal.RequireFromString("1500")
	laptop.Category = models.AssetCategoryElectronics
	laptop, err = s.assets.CreateAsset(laptop)
	require.NoError(t, err)
	_, err = s.assets.UpdateAsset(laptop.ID, AssetUpdate{CurrentValue: ptr(decimal.RequireFromString("1200")), ValueNote: ptr("one year")})
	require.NoError(t, err)
	_, err = s.assets.UpdateAsset(laptop.ID, AssetUpdate{CurrentValue: ptr(decimal.RequireFromString("999.99"))})
	require.NoError(t, err)

	_, err = s.warranties.CreateWarranty(models.NewWarranty("Laptop", now))
	require.NoError(t, err)
}

func countAll(t *testing.T, s *testServices) map[string]int64 {
	t.Helper()
	counts := map[string]int64{}
	for name, model := range map[string]any{
		"subscriptions": &models.Subscription{},
		"assets":        &models.PersonalAsset{},
		"changes":       &models.AssetValueChange{},
		"warranties":    &models.Warranty{},
	} {
		var n int64
		require.NoError(t, s.db.Model(model).Count(&n).Error)
		counts[name] = n
	}
	return counts
}

func TestExport_AssetWithTwoChanges(t *testing.T) {
	s := setupServices(t)
	seedStore(t, s)

	data, err := s.backup.Export(time.Now())
	require.NoError(t, err)

	var snap backup.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, backup.CurrentVersion, snap.Version)
	require.Len(t, snap.Assets, 1)
	changes := snap.Assets[0].ValueChanges
	require.Len(t, changes, 2)
	assert.Equal(t, "1500", changes[0].PreviousValue)
	assert.Equal(t, "1200", changes[0].NewValue)
	assert.Equal(t, "one year", *changes[0].Note)
	assert.Equal(t, "999.99", changes[1].NewValue)
	assert.Nil(t, changes[1].Note)
	assert.Equal(t, "999.99", snap.Assets[0].CurrentValue)

	require.Len(t, snap.Subscriptions, 2)
	assert.Equal(t, "Netflix", snap.Subscriptions[0].Name, "exported in creation order")
	assert.Equal(t, "1250", snap.Subscriptions[1].Amount)
}

func TestExportImport_RoundTrip(t *testing.T) {
	source := setupServices(t)
	seedStore(t, source)
	data, err := source.backup.Export(time.Now())
	require.NoError(t, err)

	target := setupServices(t)
	result, err := target.backup.Import(data)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Subscriptions)
	assert.Equal(t, 1, result.Assets)
	assert.Equal(t, 2, result.ValueChanges)
	assert.Equal(t, 1, result.Warranties)
	assert.Empty(t, result.Coercions)

	wantSubs, err := source.subscriptions.ListSubscriptions()
	require.NoError(t, err)
	gotSubs, err := target.subscriptions.ListSubscriptions()
	require.NoError(t, err)
	require.Len(t, gotSubs, len(wantSubs))
	for i := range wantSubs {
		assert.Equal(t, wantSubs[i].Name, gotSubs[i].Name)
		assert.True(t, wantSubs[i].Amount.Equal(gotSubs[i].Amount))
		assert.True(t, wantSubs[i].NextDueDate.Equal(gotSubs[i].NextDueDate))
		assert.True(t, wantSubs[i].CreatedAt.Equal(gotSubs[i].CreatedAt), "createdAt is restored")
		assert.Equal(t, wantSubs[i].IsSubscription, gotSubs[i].IsSubscription)
		assert.Equal(t, wantSubs[i].Notes, gotSubs[i].Notes)
		assert.NotEqual(t, wantSubs[i].ID, gotSubs[i].ID, "imported records get new ids")
	}

	wantAssets, err := source.assets.ListAssets()
	require.NoError(t, err)
	gotAssets, err := target.assets.ListAssets()
	require.NoError(t, err)
	require.Len(t, gotAssets, 1)
	assert.True(t, wantAssets[0].UpdatedAt.Equal(gotAssets[0].UpdatedAt))
	require.Len(t, gotAssets[0].ValueChanges, 2)
	for i, c := range gotAssets[0].ValueChanges {
		want := wantAssets[0].ValueChanges[i]
		assert.Equal(t, gotAssets[0].ID, c.AssetID)
		assert.True(t, want.PreviousValue.Equal(c.PreviousValue))
		assert.True(t, want.NewValue.Equal(c.NewValue))
		assert.True(t, want.Date.Equal(c.Date))
	}

	// Exporting the restored store yields the same records.
	again, err := target.backup.Export(time.Now())
	require.NoError(t, err)
	var first, second backup.Snapshot
	require.NoError(t, json.Unmarshal(data, &first))
	require.NoError(t, json.Unmarshal(again, &second))
	assert.Equal(t, first.Subscriptions, second.Subscriptions)
	assert.Equal(t, first.Assets, second.Assets)
	assert.Equal(t, first.Warranties, second.Warranties)
}

func TestImport_TwiceDoublesCounts(t *testing.T) {
	s := setupServices(t)
	seedStore(t, s)
	data, err := s.backup.Export(time.Now())
	require.NoError(t, err)
	before := countAll(t, s)

	_, err = s.backup.Import(data)
	require.NoError(t, err)
	_, err = s.backup.Import(data)
	require.NoError(t, err)

	after := countAll(t, s)
	for name, n := range before {
		assert.Equal(t, 3*n, after[name], name)
	}
}

func TestImport_UnknownBillingCycleBecomesMonthly(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger.Set(zap.New(core).Sugar())
	defer logger.Set(zap.NewNop().Sugar())

	s := setupServices(t)
	data := []byte(`{
		"assets": [],
		"exportDate": "2026-02-17T09:30:15Z",
		"subscriptions": [{
			"amount": "4.99", "billingCycle": "Unknown", "category": "Software",
			"createdAt": "2026-01-01T00:00:00Z", "isSubscription": true,
			"name": "Notes app", "nextDueDate": "2026-03-01T00:00:00Z", "notes": ""
		}],
		"version": 1,
		"warranties": []
	}`)

	result, err := s.backup.Import(data)
	require.NoError(t, err)
	require.Len(t, result.Coercions, 1)

	subs, err := s.subscriptions.ListSubscriptions()
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, models.BillingCycleMonthly, subs[0].BillingCycle)

	entries := logs.FilterMessage("coerced snapshot field").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Unknown", entries[0].ContextMap()["value"])

	var entry models.ActivityLog
	require.NoError(t, s.db.Where("action = ?", models.ActionImportSnapshot).First(&entry).Error)
	assert.Contains(t, entry.Changes, "billingCycle")
}

func TestImport_InvalidSnapshotWritesNothing(t *testing.T) {
	s := setupServices(t)
	seedStore(t, s)
	before := countAll(t, s)

	_, err := s.backup.Import([]byte(`{"version": 1, "exportDate": "2026-01-01T00:00:00Z", "subscriptions": [], "assets": []}`))
	testutil.AssertAppError(t, err, apperrors.ErrInvalidSnapshot)

	_, err = s.backup.Import([]byte(`{"version": 7}`))
	testutil.AssertAppError(t, err, apperrors.ErrUnsupportedSnapshotVersion)

	assert.Equal(t, before, countAll(t, s))
}

func TestImport_IsAllOrNothing(t *testing.T) {
	source := setupServices(t)
	seedStore(t, source)
	data, err := source.backup.Export(time.Now())
	require.NoError(t, err)

	target := setupServices(t)
	// Warranties are inserted last; without their table the import fails
	// after subscriptions and assets were already written in the transaction.
	require.NoError(t, target.db.Migrator().DropTable(&models.Warranty{}))

	_, err = target.backup.Import(data)
	testutil.AssertAppError(t, err, apperrors.ErrPersistence)

	var subs, assets, changes int64
	target.db.Model(&models.Subscription{}).Count(&subs)
	target.db.Model(&models.PersonalAsset{}).Count(&assets)
	target.db.Model(&models.AssetValueChange{}).Count(&changes)
	assert.Zero(t, subs)
	assert.Zero(t, assets)
	assert.Zero(t, changes)
}

func TestImport_NotifiesWatchers(t *testing.T) {
	source := setupServices(t)
	seedStore(t, source)
	data, err := source.backup.Export(time.Now())
	require.NoError(t, err)

	target := setupServices(t)
	var subDeliveries, assetDeliveries, warrantyDeliveries int
	defer target.subscriptions.WatchSubscriptions(func([]models.Subscription, error) { subDeliveries++ })()
	defer target.assets.WatchAssets(func([]models.PersonalAsset, error) { assetDeliveries++ })()
	defer target.warranties.WatchWarranties(func([]models.Warranty, error) { warrantyDeliveries++ })()

	_, err = target.backup.Import(data)
	require.NoError(t, err)

	assert.Equal(t, 2, subDeliveries)
	assert.Equal(t, 2, assetDeliveries)
	assert.Equal(t, 2, warrantyDeliveries)
}
