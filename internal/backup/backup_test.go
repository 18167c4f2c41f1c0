package backup

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	apperrors "continuum/internal/errors"
	"continuum/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportedAt = time.Date(2026, 2, 17, 9, 30, 15, 0, time.UTC)

func sampleEntities() ([]models.Subscription, []models.PersonalAsset, []models.Warranty) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 123456789, time.UTC)
	purchase := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	note := "after repair"
	empty := ""

	subs := []models.Subscription{{
		Base:           models.Base{ID: "s1", CreatedAt: created},
		Name:           "Netflix",
		Amount:         decimal.RequireFromString("15.49"),
		BillingCycle:   models.BillingCycleMonthly,
		NextDueDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Category:       models.SubscriptionCategoryStreaming,
		Notes:          "family plan",
		IsSubscription: true,
	}}
	assets := []models.PersonalAsset{{
		Base:         models.Base{ID: "a1", CreatedAt: created},
		Name:         "Laptop",
		CurrentValue: decimal.RequireFromString("900.10"),
		PurchaseDate: &purchase,
		Category:     models.AssetCategoryElectronics,
		UpdatedAt:    created.Add(time.Hour),
		ValueChanges: []models.AssetValueChange{
			{Sequence: 2, Date: created.Add(time.Hour), PreviousValue: decimal.RequireFromString("1000"), NewValue: decimal.RequireFromString("900.10"), Note: &note},
			{Sequence: 1, Date: created.Add(time.Hour), PreviousValue: decimal.RequireFromString("1200"), NewValue: decimal.RequireFromString("1000"), Note: &empty},
		},
	}}
	warranties := []models.Warranty{{
		Base:         models.Base{ID: "w1", CreatedAt: created},
		ProductName:  "AT&T Router",
		PurchaseDate: purchase,
		ExpiryDate:   models.AddYears(purchase, 2),
		Vendor:       "Shop <Main>",
	}}
	return subs, assets, warranties
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Continuum-Backup-2026-02-17-093015.json", FileName(exportedAt))
}

func TestBuild_ValueChangesInInsertionOrder(t *testing.T) {
	subs, assets, warranties := sampleEntities()
	snap := Build(subs, assets, warranties, exportedAt)

	require.Len(t, snap.Assets, 1)
	changes := snap.Assets[0].ValueChanges
	require.Len(t, changes, 2)
	assert.Equal(t, "1200", changes[0].PreviousValue)
	assert.Equal(t, "1000", changes[1].PreviousValue)
	assert.Equal(t, "900.1", changes[1].NewValue)
	assert.Equal(t, CurrentVersion, snap.Version)
	assert.Equal(t, "2026-02-17T09:30:15Z", snap.ExportDate)
}

func TestMarshal_SortedKeysAndEmptyArrays(t *testing.T) {
	data, err := Marshal(Build(nil, nil, nil, exportedAt))
	require.NoError(t, err)

	want := "{\n" +
		"  \"assets\": [],\n" +
		"  \"exportDate\": \"2026-02-17T09:30:15Z\",\n" +
		"  \"subscriptions\": [],\n" +
		"  \"version\": 1,\n" +
		"  \"warranties\": []\n" +
		"}\n"
	assert.Equal(t, want, string(data))
}

func TestMarshal_NestedKeysSorted(t *testing.T) {
	subs, assets, warranties := sampleEntities()
	data, err := Marshal(Build(subs, assets, warranties, exportedAt))
	require.NoError(t, err)
	text := string(data)

	assertOrder(t, text, `"amount"`, `"billingCycle"`, `"category"`, `"createdAt"`, `"isSubscription"`, `"name"`, `"nextDueDate"`, `"notes"`)
	assertOrder(t, text, `"date"`, `"newValue"`, `"note"`, `"previousValue"`)
	assertOrder(t, text, `"expiryDate"`, `"productName"`, `"vendor"`)
	assert.Contains(t, text, `"productName": "AT&T Router"`)
	assert.Contains(t, text, `"createdAt": "2026-01-02T03:04:05.123456789Z"`)
}

func assertOrder(t *testing.T, text string, keys ...string) {
	t.Helper()
	last := -1
	for _, k := range keys {
		i := strings.Index(text[last+1:], k)
		require.GreaterOrEqual(t, i, 0, "key %s missing or out of order", k)
		last += i + 1
	}
}

func TestRoundTrip(t *testing.T) {
	subs, assets, warranties := sampleEntities()
	data, err := Marshal(Build(subs, assets, warranties, exportedAt))
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, got.Coercions)
	assert.Equal(t, 1, got.Version)
	assert.True(t, exportedAt.Equal(got.ExportDate))

	require.Len(t, got.Subscriptions, 1)
	s := got.Subscriptions[0]
	assert.Equal(t, subs[0].Name, s.Name)
	assert.True(t, subs[0].Amount.Equal(s.Amount))
	assert.Equal(t, subs[0].BillingCycle, s.BillingCycle)
	assert.Equal(t, subs[0].Category, s.Category)
	assert.Equal(t, subs[0].Notes, s.Notes)
	assert.Equal(t, subs[0].IsSubscription, s.IsSubscription)
	assert.True(t, subs[0].CreatedAt.Equal(s.CreatedAt), "createdAt keeps nanoseconds")
	assert.True(t, subs[0].NextDueDate.Equal(s.NextDueDate))
	assert.Empty(t, s.ID)

	require.Len(t, got.Assets, 1)
	a := got.Assets[0]
	assert.True(t, assets[0].CurrentValue.Equal(a.CurrentValue))
	require.NotNil(t, a.PurchaseDate)
	assert.True(t, assets[0].PurchaseDate.Equal(*a.PurchaseDate))
	assert.True(t, assets[0].UpdatedAt.Equal(a.UpdatedAt))
	require.Len(t, a.ValueChanges, 2)
	assert.Equal(t, 1, a.ValueChanges[0].Sequence)
	assert.True(t, a.ValueChanges[0].PreviousValue.Equal(decimal.RequireFromString("1200")))
	assert.Equal(t, 2, a.ValueChanges[1].Sequence)
	require.NotNil(t, a.ValueChanges[0].Note)
	assert.Equal(t, "", *a.ValueChanges[0].Note, "empty note stays distinct from absent")
	assert.Equal(t, "after repair", *a.ValueChanges[1].Note)

	require.Len(t, got.Warranties, 1)
	w := got.Warranties[0]
	assert.Equal(t, "AT&T Router", w.ProductName)
	assert.Equal(t, "Shop <Main>", w.Vendor)
	assert.True(t, warranties[0].ExpiryDate.Equal(w.ExpiryDate))
	assert.Equal(t, 2, got.ValueChangeCount())
}

const validSnapshot = `{
  "assets": [
    {
      "category": "Spaceship",
      "createdAt": "2026-01-01T00:00:00Z",
      "currentValue": 250.5,
      "name": "Bike",
      "notes": "",
      "purchaseDate": null,
      "updatedAt": "2026-01-01T00:00:00+02:00",
      "valueChanges": [
        {"date": "2026-01-01T00:00:00Z", "newValue": "250.5", "previousValue": "abc"}
      ]
    }
  ],
  "exportDate": "2026-02-17T09:30:15Z",
  "subscriptions": [
    {
      "amount": "9.99",
      "billingCycle": "Unknown",
      "category": "Games",
      "createdAt": "2026-01-01T00:00:00Z",
      "isSubscription": false,
      "name": "Arcade",
      "nextDueDate": "2026-03-01T00:00:00Z",
      "notes": "",
      "extraKeyFromNewerBuild": true
    }
  ],
  "version": 1,
  "warranties": []
}`

func TestDecode_Coercions(t *testing.T) {
	got, err := Decode([]byte(validSnapshot))
	require.NoError(t, err)

	require.Len(t, got.Subscriptions, 1)
	assert.Equal(t, models.BillingCycleMonthly, got.Subscriptions[0].BillingCycle)
	assert.Equal(t, models.SubscriptionCategoryOther, got.Subscriptions[0].Category)
	assert.False(t, got.Subscriptions[0].IsSubscription)

	require.Len(t, got.Assets, 1)
	a := got.Assets[0]
	assert.Equal(t, models.AssetCategoryOther, a.Category)
	assert.True(t, a.CurrentValue.Equal(decimal.RequireFromString("250.5")), "numeric decimals are accepted")
	assert.Nil(t, a.PurchaseDate)
	assert.Equal(t, time.UTC, a.UpdatedAt.Location())
	assert.True(t, time.Date(2025, 12, 31, 22, 0, 0, 0, time.UTC).Equal(a.UpdatedAt))
	require.Len(t, a.ValueChanges, 1)
	assert.True(t, a.ValueChanges[0].PreviousValue.IsZero())
	assert.Nil(t, a.ValueChanges[0].Note)

	assert.Equal(t, []Coercion{
		{Path: "subscriptions[0]", Field: "billingCycle", Value: "Unknown", Fallback: "Monthly"},
		{Path: "subscriptions[0]", Field: "category", Value: "Games", Fallback: "Other"},
		{Path: "assets[0]", Field: "category", Value: "Spaceship", Fallback: "Other"},
		{Path: "assets[0].valueChanges[0]", Field: "previousValue", Value: "abc", Fallback: "0"},
	}, got.Coercions)
	assert.Equal(t, `subscriptions[0].billingCycle: "Unknown" replaced with "Monthly"`, got.Coercions[0].String())
}

func TestDecode_Failures(t *testing.T) {
	mutate := func(fn func(m map[string]any)) []byte {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(validSnapshot), &m))
		fn(m)
		data, err := json.Marshal(m)
		require.NoError(t, err)
		return data
	}
	firstSub := func(m map[string]any) map[string]any {
		return m["subscriptions"].([]any)[0].(map[string]any)
	}

	tests := []struct {
		name    string
		data    []byte
		code    string
		message string
	}{
		{name: "not json", data: []byte("{not json"), code: "INVALID_SNAPSHOT", message: "not valid JSON"},
		{name: "array document", data: []byte("[]"), code: "INVALID_SNAPSHOT", message: "does not contain a snapshot object"},
		{name: "empty object", data: []byte("{}"), code: "INVALID_SNAPSHOT", message: "assets is required"},
		{
			name:    "missing subscription key",
			data:    mutate(func(m map[string]any) { delete(firstSub(m), "notes") }),
			code:    "INVALID_SNAPSHOT",
			message: "subscriptions[0].notes is required",
		},
		{
			name:    "null required key",
			data:    mutate(func(m map[string]any) { firstSub(m)["isSubscription"] = nil }),
			code:    "INVALID_SNAPSHOT",
			message: "subscriptions[0].isSubscription is required",
		},
		{
			name:    "missing nested value change key",
			data:    mutate(func(m map[string]any) { delete(m["assets"].([]any)[0].(map[string]any)["valueChanges"].([]any)[0].(map[string]any), "date") }),
			code:    "INVALID_SNAPSHOT",
			message: "assets[0].valueChanges[0].date is required",
		},
		{
			name:    "bad date",
			data:    mutate(func(m map[string]any) { firstSub(m)["nextDueDate"] = "next tuesday" }),
			code:    "INVALID_SNAPSHOT",
			message: "unreadable date",
		},
		{
			name:    "wrong type",
			data:    mutate(func(m map[string]any) { firstSub(m)["name"] = 42 }),
			code:    "INVALID_SNAPSHOT",
			message: "expects string",
		},
		{
			name:    "newer version",
			data:    mutate(func(m map[string]any) { m["version"] = 2 }),
			code:    "UNSUPPORTED_SNAPSHOT_VERSION",
			message: "version 2",
		},
		{
			name:    "version zero",
			data:    mutate(func(m map[string]any) { m["version"] = 0 }),
			code:    "UNSUPPORTED_SNAPSHOT_VERSION",
			message: "version 0",
		},
		{
			name:    "missing version",
			data:    mutate(func(m map[string]any) { delete(m, "version") }),
			code:    "INVALID_SNAPSHOT",
			message: "version is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.data)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Equal(t, tt.code, apperrors.CodeOf(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
