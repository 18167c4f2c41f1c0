// Package report renders dashboard figures as markdown for the terminal and
// for the HTTP markdown view.
package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats amount in currency using the currency's symbol, separators
// and minor-unit count. Amounts are rounded half away from zero to the
// currency's fraction.
func Money(amount decimal.Decimal, currency string) string {
	// money.New never returns a nil currency, unlike GetCurrency.
	cur := *money.New(0, currency).Currency()
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
