package usecase

import (
	"fmt"
	"strings"
)

// Intent is the closed set of requests this service fulfills.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentWelcome
	IntentProvideIdentity
	IntentChangeIdentity
	IntentPortfolioValuation
	IntentTransactionHistory
	IntentExploreFunds
	IntentFundDetails
	IntentInvestInFund
)

var intentNames = [...]string{
	IntentUnknown:            "unknown",
	IntentWelcome:            "welcome",
	IntentProvideIdentity:    "provide_identity",
	IntentChangeIdentity:     "change_identity",
	IntentPortfolioValuation: "portfolio_valuation",
	IntentTransactionHistory: "transaction_history",
	IntentExploreFunds:       "explore_funds",
	IntentFundDetails:        "fund_details",
	IntentInvestInFund:       "invest_in_fund",
}

// String returns the canonical name, which is also what a pending
// resumption records.
func (i Intent) String() string {
	if i < 0 || int(i) >= len(intentNames) {
		return intentNames[IntentUnknown]
	}
	return intentNames[i]
}

// Resumable reports whether the intent can be suspended for a missing mobile
// number and resumed once it arrives.
func (i Intent) Resumable() bool {
	switch i {
	case IntentPortfolioValuation, IntentTransactionHistory, IntentExploreFunds, IntentInvestInFund:
		return true
	default:
		return false
	}
}

// ParseIntent resolves a canonical intent name.
func ParseIntent(name string) (Intent, bool) {
	for i, n := range intentNames {
		if Intent(i) != IntentUnknown && n == name {
			return Intent(i), true
		}
	}
	return IntentUnknown, false
}

// DefaultIntentNames maps each canonical intent to the NLU intent names that
// trigger it, including historical spellings still present in deployed agents.
func DefaultIntentNames() map[string][]string {
	return map[string][]string{
		"welcome":             {"WelcomeIntent", "Default Welcome Intent"},
		"provide_identity":    {"GetMobileNumber"},
		"change_identity":     {"ChangeMobileNumber"},
		"portfolio_valuation": {"PortfolioValuation", "PortfolioEvalution"},
		"transaction_history": {"TransactionHistory"},
		"explore_funds":       {"ExploreFunds"},
		"fund_details":        {"GetFundDetails"},
		"invest_in_fund":      {"InvestInFund", "InvestInMutualFund"},
	}
}

// IntentTable maps NLU intent names onto Intent values. Matching ignores case.
type IntentTable struct {
	byName map[string]Intent
}

// NewIntentTable builds a table from canonical name -> NLU names. Every key
// must be a canonical intent and no NLU name may map to two intents.
func NewIntentTable(names map[string][]string) (*IntentTable, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("usecase: intent table must not be empty")
	}
	t := &IntentTable{byName: make(map[string]Intent)}
	for canonical, aliases := range names {
		intent, ok := ParseIntent(canonical)
		if !ok {
			return nil, fmt.Errorf("usecase: unknown intent %q in intent table", canonical)
		}
		for _, alias := range append([]string{canonical}, aliases...) {
			key := strings.ToLower(strings.TrimSpace(alias))
			if key == "" {
				continue
			}
			if prev, dup := t.byName[key]; dup && prev != intent {
				return nil, fmt.Errorf("usecase: intent name %q maps to both %s and %s", alias, prev, intent)
			}
			t.byName[key] = intent
		}
	}
	return t, nil
}

// Lookup resolves an NLU intent name.
func (t *IntentTable) Lookup(name string) (Intent, bool) {
	intent, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]
	return intent, ok
}
