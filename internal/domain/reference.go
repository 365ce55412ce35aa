package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Account is a customer's holdings keyed by normalized mobile number.
type Account struct {
	Identity     string        `json:"mobile"`
	Transactions []Transaction `json:"transactions"`
}

// Transaction is one purchase recorded against an account.
type Transaction struct {
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	FundName string          `json:"fund_name"`
}

// FundCategory groups funds under a browsable category name.
type FundCategory struct {
	Category string    `json:"category"`
	Funds    []FundRef `json:"funds"`
}

// FundRef names a fund inside a category listing.
type FundRef struct {
	FundName string `json:"fund_name"`
	FundID   string `json:"fund_id"`
}

// FundDetail describes a fund's asset allocation.
type FundDetail struct {
	FundName    string    `json:"fund_name"`
	Breakdown   Breakdown `json:"breakdown"`
	DetailsLink string    `json:"details_link"`
}

// Allocation is one line of a fund breakdown.
type Allocation struct {
	Name    string
	Percent decimal.Decimal
}

// Breakdown keeps allocations in the order the dataset lists them.
type Breakdown []Allocation

func (b *Breakdown) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("domain: breakdown is not valid JSON")
	}
	res := gjson.ParseBytes(data)
	if res.Type == gjson.Null {
		*b = nil
		return nil
	}
	if !res.IsObject() {
		return errors.New("domain: breakdown must be an object")
	}
	out := Breakdown{}
	var err error
	res.ForEach(func(key, value gjson.Result) bool {
		pct, perr := decimal.NewFromString(value.String())
		if perr != nil {
			err = fmt.Errorf("domain: breakdown %q: %w", key.String(), perr)
			return false
		}
		out = append(out, Allocation{Name: key.String(), Percent: pct})
		return true
	})
	if err != nil {
		return err
	}
	*b = out
	return nil
}
