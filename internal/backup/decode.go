package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "continuum/internal/errors"
	"continuum/internal/models"
	"continuum/internal/validator"

	"github.com/shopspring/decimal"
)

// Coercion reports one field that held an unparseable or unknown value and
// was replaced by its fallback during decoding. Coercions never fail an
// import.
type Coercion struct {
	Path     string `json:"path"`
	Field    string `json:"field"`
	Value    string `json:"value"`
	Fallback string `json:"fallback"`
}

func (c Coercion) String() string {
	return fmt.Sprintf("%s.%s: %q replaced with %q", c.Path, c.Field, c.Value, c.Fallback)
}

// Decoded holds the entities rebuilt from a snapshot, ready to insert.
// None of them have ids yet. Value changes are attached to their asset and
// numbered in file order.
type Decoded struct {
	Version       int
	ExportDate    time.Time
	Subscriptions []models.Subscription
	Assets        []models.PersonalAsset
	Warranties    []models.Warranty
	Coercions     []Coercion
}

// ValueChangeCount is the number of value changes across all assets.
func (d *Decoded) ValueChangeCount() int {
	n := 0
	for _, a := range d.Assets {
		n += len(a.ValueChanges)
	}
	return n
}

// decimalText accepts a decimal written as a JSON string or a JSON number.
type decimalText string

func (d *decimalText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = decimalText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a decimal string, got %s", b)
	}
	*d = decimalText(n)
	return nil
}

type snapshotInput struct {
	Assets        *[]assetInput        `json:"assets" validate:"required,dive"`
	ExportDate    *time.Time           `json:"exportDate" validate:"required"`
	Subscriptions *[]subscriptionInput `json:"subscriptions" validate:"required,dive"`
	Version       *int                 `json:"version" validate:"required"`
	Warranties    *[]warrantyInput     `json:"warranties" validate:"required,dive"`
}

type subscriptionInput struct {
	Amount         *decimalText `json:"amount" validate:"required"`
	BillingCycle   *string      `json:"billingCycle" validate:"required"`
	Category       *string      `json:"category" validate:"required"`
	CreatedAt      *time.Time   `json:"createdAt" validate:"required"`
	IsSubscription *bool        `json:"isSubscription" validate:"required"`
	Name           *string      `json:"name" validate:"required"`
	NextDueDate    *time.Time   `json:"nextDueDate" validate:"required"`
	Notes          *string      `json:"notes" validate:"required"`
}

type assetInput struct {
	Category     *string             `json:"category" validate:"required"`
	CreatedAt    *time.Time          `json:"createdAt" validate:"required"`
	CurrentValue *decimalText        `json:"currentValue" validate:"required"`
	Name         *string             `json:"name" validate:"required"`
	Notes        *string             `json:"notes" validate:"required"`
	PurchaseDate *time.Time          `json:"purchaseDate"`
	UpdatedAt    *time.Time          `json:"updatedAt" validate:"required"`
	ValueChanges *[]valueChangeInput `json:"valueChanges" validate:"required,dive"`
}

type valueChangeInput struct {
	Date          *time.Time   `json:"date" validate:"required"`
	NewValue      *decimalText `json:"newValue" validate:"required"`
	Note          *string      `json:"note"`
	PreviousValue *decimalText `json:"previousValue" validate:"required"`
}

type warrantyInput struct {
	CreatedAt    *time.Time `json:"createdAt" validate:"required"`
	ExpiryDate   *time.Time `json:"expiryDate" validate:"required"`
	Notes        *string    `json:"notes" validate:"required"`
	ProductName  *string    `json:"productName" validate:"required"`
	PurchaseDate *time.Time `json:"purchaseDate" validate:"required"`
	Vendor       *string    `json:"vendor" validate:"required"`
}

// Decode parses and validates a snapshot and rebuilds its entities.
// It returns ErrInvalidSnapshot for malformed JSON, a missing or null
// required key, or an unparseable date, and ErrUnsupportedSnapshotVersion
// for a version this build cannot read. Unknown enum labels and
// unparseable decimals are coerced to their defaults and reported in
// Decoded.Coercions.
func Decode(data []byte) (*Decoded, error) {
	var in snapshotInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, apperrors.WrapWithMessage(apperrors.ErrInvalidSnapshot, describeJSONError(err), err)
	}

	if in.Version != nil && (*in.Version < 1 || *in.Version > CurrentVersion) {
		return nil, apperrors.WithMessage(apperrors.ErrUnsupportedSnapshotVersion,
			fmt.Sprintf("Backup version %d is not supported (this build reads version %d)", *in.Version, CurrentVersion))
	}

	if err := validator.Struct(in); err != nil {
		return nil, apperrors.WrapWithMessage(apperrors.ErrInvalidSnapshot,
			"The backup file is incomplete: "+validator.Describe(err), err)
	}

	out := &Decoded{
		Version:    *in.Version,
		ExportDate: in.ExportDate.UTC(),
	}
	c := &coercer{}

	for i, s := range *in.Subscriptions {
		path := fmt.Sprintf("subscriptions[%d]", i)
		out.Subscriptions = append(out.Subscriptions, models.Subscription{
			Base:           models.Base{CreatedAt: s.CreatedAt.UTC()},
			Name:           *s.Name,
			Amount:         c.decimal(path, "amount", *s.Amount),
			BillingCycle:   c.billingCycle(path, *s.BillingCycle),
			NextDueDate:    s.NextDueDate.UTC(),
			Category:       c.subscriptionCategory(path, *s.Category),
			Notes:          *s.Notes,
			IsSubscription: *s.IsSubscription,
		})
	}

	for i, a := range *in.Assets {
		path := fmt.Sprintf("assets[%d]", i)
		asset := models.PersonalAsset{
			Base:         models.Base{CreatedAt: a.CreatedAt.UTC()},
			Name:         *a.Name,
			CurrentValue: c.decimal(path, "currentValue", *a.CurrentValue),
			Category:     c.assetCategory(path, *a.Category),
			Notes:        *a.Notes,
			UpdatedAt:    a.UpdatedAt.UTC(),
		}
		if a.PurchaseDate != nil {
			pd := a.PurchaseDate.UTC()
			asset.PurchaseDate = &pd
		}
		for j, v := range *a.ValueChanges {
			vpath := fmt.Sprintf("%s.valueChanges[%d]", path, j)
			asset.ValueChanges = append(asset.ValueChanges, models.AssetValueChange{
				Sequence:      j + 1,
				Date:          v.Date.UTC(),
				PreviousValue: c.decimal(vpath, "previousValue", *v.PreviousValue),
				NewValue:      c.decimal(vpath, "newValue", *v.NewValue),
				Note:          v.Note,
			})
		}
		out.Assets = append(out.Assets, asset)
	}

	for _, w := range *in.Warranties {
		out.Warranties = append(out.Warranties, models.Warranty{
			Base:         models.Base{CreatedAt: w.CreatedAt.UTC()},
			ProductName:  *w.ProductName,
			PurchaseDate: w.PurchaseDate.UTC(),
			ExpiryDate:   w.ExpiryDate.UTC(),
			Vendor:       *w.Vendor,
			Notes:        *w.Notes,
		})
	}

	out.Coercions = c.coercions
	return out, nil
}

type coercer struct {
	coercions []Coercion
}

func (c *coercer) note(path, field, value, fallback string) {
	c.coercions = append(c.coercions, Coercion{Path: path, Field: field, Value: value, Fallback: fallback})
}

func (c *coercer) decimal(path, field string, raw decimalText) decimal.Decimal {
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		c.note(path, field, string(raw), "0")
		return decimal.Zero
	}
	return d
}

func (c *coercer) billingCycle(path, raw string) models.BillingCycle {
	cycle, ok := models.ParseBillingCycle(raw)
	if !ok {
		c.note(path, "billingCycle", raw, string(cycle))
	}
	return cycle
}

func (c *coercer) subscriptionCategory(path, raw string) models.SubscriptionCategory {
	cat, ok := models.ParseSubscriptionCategory(raw)
	if !ok {
		c.note(path, "category", raw, string(cat))
	}
	return cat
}

func (c *coercer) assetCategory(path, raw string) models.AssetCategory {
	cat, ok := models.ParseAssetCategory(raw)
	if !ok {
		c.note(path, "category", raw, string(cat))
	}
	return cat
}

func describeJSONError(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var timeErr *time.ParseError
	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("The backup file is not valid JSON (offset %d)", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Sprintf("The backup file has a %s where %s expects %s", typeErr.Value, typeErr.Field, typeErr.Type)
		}
		return "The backup file does not contain a snapshot object"
	case errors.As(err, &timeErr):
		return fmt.Sprintf("The backup file has an unreadable date %s", timeErr.Value)
	default:
		return "The backup file could not be read: " + err.Error()
	}
}
