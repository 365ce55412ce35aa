package validate

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxInvestmentAmount is the hard ceiling for a single simulated investment.
var MaxInvestmentAmount = decimal.NewFromInt(50000)

var amountCleaner = strings.NewReplacer(",", "", "₹", "", "INR", "", "Rs.", "", " ", "")

// IsInvestmentAmountAllowed reports whether amount is at or below the ceiling.
func IsInvestmentAmountAllowed(amount decimal.Decimal) bool {
	return !amount.GreaterThan(MaxInvestmentAmount)
}

// ParseAmount reads a positive money amount from a slot value. It accepts
// numbers, numeric strings with optional currency decoration and the
// {"amount": n, "currency": "INR"} object produced for currency slots.
func ParseAmount(raw any) (decimal.Decimal, bool) {
	var (
		d   decimal.Decimal
		err error
	)
	switch v := raw.(type) {
	case float64:
		d = decimal.NewFromFloat(v)
	case float32:
		d = decimal.NewFromFloat32(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case json.Number:
		d, err = decimal.NewFromString(v.String())
	case string:
		s := amountCleaner.Replace(strings.TrimSpace(v))
		if s == "" {
			return decimal.Zero, false
		}
		d, err = decimal.NewFromString(s)
	case decimal.Decimal:
		d = v
	case map[string]any:
		return ParseAmount(v["amount"])
	default:
		return decimal.Zero, false
	}
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}
