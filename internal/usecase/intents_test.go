package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntentTable_DefaultNames(t *testing.T) {
	table, err := NewIntentTable(DefaultIntentNames())
	require.NoError(t, err)

	cases := map[string]Intent{
		"Default Welcome Intent": IntentWelcome,
		"GetMobileNumber":        IntentProvideIdentity,
		"changemobilenumber":     IntentChangeIdentity,
		"PortfolioValuation":     IntentPortfolioValuation,
		"PortfolioEvalution":     IntentPortfolioValuation,
		"TransactionHistory":     IntentTransactionHistory,
		"ExploreFunds":           IntentExploreFunds,
		"GetFundDetails":         IntentFundDetails,
		"InvestInFund":           IntentInvestInFund,
		" InvestInMutualFund ":   IntentInvestInFund,
		"invest_in_fund":         IntentInvestInFund,
	}
	for name, want := range cases {
		got, ok := table.Lookup(name)
		require.True(t, ok, name)
		require.Equal(t, want, got, name)
	}

	_, ok := table.Lookup("BookFlight")
	require.False(t, ok)
}

func TestNewIntentTable_Validation(t *testing.T) {
	_, err := NewIntentTable(nil)
	require.Error(t, err)

	_, err = NewIntentTable(map[string][]string{"book_flight": {"BookFlight"}})
	require.ErrorContains(t, err, "unknown intent")

	_, err = NewIntentTable(map[string][]string{
		"welcome":          {"Hello"},
		"provide_identity": {"hello"},
	})
	require.ErrorContains(t, err, "maps to both")
}

func TestIntent_StringRoundTrip(t *testing.T) {
	for i := IntentWelcome; i <= IntentInvestInFund; i++ {
		got, ok := ParseIntent(i.String())
		require.True(t, ok)
		require.Equal(t, i, got)
	}
	_, ok := ParseIntent("unknown")
	require.False(t, ok)
	require.Equal(t, "unknown", Intent(99).String())
}

func TestIntent_Resumable(t *testing.T) {
	resumable := map[Intent]bool{
		IntentPortfolioValuation: true,
		IntentTransactionHistory: true,
		IntentExploreFunds:       true,
		IntentInvestInFund:       true,
	}
	for i := IntentUnknown; i <= IntentInvestInFund; i++ {
		require.Equal(t, resumable[i], i.Resumable(), i.String())
	}
}
