package backup

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"

	"continuum/internal/models"
)

// Build projects the stored entities into a snapshot. Entities keep the
// order they are given in; value changes are ordered by sequence.
func Build(subs []models.Subscription, assets []models.PersonalAsset, warranties []models.Warranty, now time.Time) Snapshot {
	snap := Snapshot{
		Assets:        make([]AssetRecord, 0, len(assets)),
		ExportDate:    FormatTime(now),
		Subscriptions: make([]SubscriptionRecord, 0, len(subs)),
		Version:       CurrentVersion,
		Warranties:    make([]WarrantyRecord, 0, len(warranties)),
	}

	for _, s := range subs {
		snap.Subscriptions = append(snap.Subscriptions, SubscriptionRecord{
			Amount:         s.Amount.String(),
			BillingCycle:   string(s.BillingCycle),
			Category:       string(s.Category),
			CreatedAt:      FormatTime(s.CreatedAt),
			IsSubscription: s.IsSubscription,
			Name:           s.Name,
			NextDueDate:    FormatTime(s.NextDueDate),
			Notes:          s.Notes,
		})
	}

	for _, a := range assets {
		rec := AssetRecord{
			Category:     string(a.Category),
			CreatedAt:    FormatTime(a.CreatedAt),
			CurrentValue: a.CurrentValue.String(),
			Name:         a.Name,
			Notes:        a.Notes,
			UpdatedAt:    FormatTime(a.UpdatedAt),
			ValueChanges: make([]ValueChangeRecord, 0, len(a.ValueChanges)),
		}
		if a.PurchaseDate != nil {
			pd := FormatTime(*a.PurchaseDate)
			rec.PurchaseDate = &pd
		}

		changes := append([]models.AssetValueChange(nil), a.ValueChanges...)
		sort.SliceStable(changes, func(i, j int) bool { return changes[i].Sequence < changes[j].Sequence })
		for _, c := range changes {
			rec.ValueChanges = append(rec.ValueChanges, ValueChangeRecord{
				Date:          FormatTime(c.Date),
				NewValue:      c.NewValue.String(),
				Note:          c.Note,
				PreviousValue: c.PreviousValue.String(),
			})
		}
		snap.Assets = append(snap.Assets, rec)
	}

	for _, w := range warranties {
		snap.Warranties = append(snap.Warranties, WarrantyRecord{
			CreatedAt:    FormatTime(w.CreatedAt),
			ExpiryDate:   FormatTime(w.ExpiryDate),
			Notes:        w.Notes,
			ProductName:  w.ProductName,
			PurchaseDate: FormatTime(w.PurchaseDate),
			Vendor:       w.Vendor,
		})
	}

	return snap
}

// Marshal encodes the snapshot as pretty-printed JSON with sorted keys.
// HTML characters are written as is so names like "AT&T" stay readable.
func Marshal(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
