package validate

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestIsInvestmentAmountAllowed_Boundary(t *testing.T) {
	require.True(t, IsInvestmentAmountAllowed(decimal.NewFromInt(50000)))
	require.True(t, IsInvestmentAmountAllowed(decimal.RequireFromString("49999.99")))
	require.False(t, IsInvestmentAmountAllowed(decimal.NewFromInt(50001)))
	require.False(t, IsInvestmentAmountAllowed(decimal.RequireFromString("50000.01")))
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want string
		ok   bool
	}{
		{name: "float", raw: float64(500), want: "500", ok: true},
		{name: "string", raw: "1,500", want: "1500", ok: true},
		{name: "rupee string", raw: "₹ 2500.50", want: "2500.5", ok: true},
		{name: "json number", raw: json.Number("750"), want: "750", ok: true},
		{name: "currency object", raw: map[string]any{"amount": float64(60000), "currency": "INR"}, want: "60000", ok: true},
		{name: "zero", raw: float64(0), ok: false},
		{name: "negative", raw: "-10", ok: false},
		{name: "garbage", raw: "lots", ok: false},
		{name: "empty", raw: "", ok: false},
		{name: "nil", raw: nil, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseAmount(tc.raw)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				require.Equal(t, tc.want, got.String())
			}
		})
	}
}
