package refdata

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	accountsJSON   = `[{"mobile":"98765-43210","transactions":[{"date":"2025-04-10","amount":500,"fund_name":"Alpha"}]},{"mobile":"12345","transactions":[]}]`
	categoriesJSON = `[{"category":"Equity","funds":[{"fund_name":"Alpha","fund_id":"EQ01"}]}]`
	detailsJSON    = `[{"fund_name":"Alpha","breakdown":{"Equity":80,"Cash":20},"details_link":"https://example.com/alpha"}]`
)

type countingSource struct {
	data  map[string]string
	err   error
	reads atomic.Int32
	gate  chan struct{}
}

func (s *countingSource) Read(_ context.Context, dataset string) ([]byte, error) {
	s.reads.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	if s.err != nil {
		return nil, s.err
	}
	raw, ok := s.data[dataset]
	if !ok {
		return nil, errors.New("no such dataset")
	}
	return []byte(raw), nil
}

func newSource() *countingSource {
	return &countingSource{data: map[string]string{
		"accounts":        accountsJSON,
		"fund_categories": categoriesJSON,
		"fund_details":    detailsJSON,
	}}
}

func mustGateway(t *testing.T, src Source) *Gateway {
	t.Helper()
	g, err := NewGateway(src)
	require.NoError(t, err)
	return g
}

func TestNewGateway_NilSource(t *testing.T) {
	_, err := NewGateway(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be nil")
}

func TestLoad_IsMemoized(t *testing.T) {
	src := newSource()
	g := mustGateway(t, src)

	first, err := g.Accounts(context.Background())
	require.NoError(t, err)
	second, err := g.Accounts(context.Background())
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Same(t, &first[0], &second[0])
	require.EqualValues(t, 1, src.reads.Load())
}

func TestLoad_NormalizesAndFiltersAccountIdentities(t *testing.T) {
	g := mustGateway(t, newSource())
	accounts, err := g.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Equal(t, "9876543210", accounts[0].Identity)
	require.Equal(t, "500", accounts[0].Transactions[0].Amount.String())
}

func TestLoad_DecodesEveryDataset(t *testing.T) {
	g := mustGateway(t, newSource())

	cats, err := g.FundCategories(context.Background())
	require.NoError(t, err)
	require.Equal(t, "EQ01", cats[0].Funds[0].FundID)

	details, err := g.FundDetails(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Equity", details[0].Breakdown[0].Name)
	require.Equal(t, "https://example.com/alpha", details[0].DetailsLink)
}

func TestLoad_ReadFailureIsDataUnavailable(t *testing.T) {
	src := newSource()
	src.err = errors.New("disk on fire")
	g := mustGateway(t, src)

	_, err := g.FundDetails(context.Background())
	require.ErrorIs(t, err, ErrDataUnavailable)
	var ue *UnavailableError
	require.ErrorAs(t, err, &ue)
	require.Equal(t, DatasetFundDetails, ue.Dataset)
	require.ErrorContains(t, err, "disk on fire")
}

func TestLoad_ParseFailureIsDataUnavailable(t *testing.T) {
	src := newSource()
	src.data["fund_categories"] = `{not json`
	g := mustGateway(t, src)

	_, err := g.FundCategories(context.Background())
	require.ErrorIs(t, err, ErrDataUnavailable)
}

func TestLoad_FailureIsRetriedOnNextCall(t *testing.T) {
	src := newSource()
	src.err = errors.New("temporary")
	g := mustGateway(t, src)

	_, err := g.Accounts(context.Background())
	require.Error(t, err)

	src.err = nil
	accounts, err := g.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.EqualValues(t, 2, src.reads.Load())
}

func TestLoad_UnknownDataset(t *testing.T) {
	src := newSource()
	src.data["mystery"] = `[]`
	g := mustGateway(t, src)
	_, err := g.Load(context.Background(), Dataset("mystery"))
	require.ErrorIs(t, err, ErrDataUnavailable)
}

func TestLoad_ConcurrentFirstLoadsReadOnce(t *testing.T) {
	src := newSource()
	src.gate = make(chan struct{})
	g := mustGateway(t, src)

	var wg sync.WaitGroup
	results := make([]any, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := g.Load(context.Background(), DatasetFundDetails)
			if err == nil {
				results[i] = v
			}
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	require.EqualValues(t, 1, src.reads.Load())
	for _, r := range results {
		require.NotNil(t, r)
	}
}

func TestFileSource_ReadsJSONFiles(t *testing.T) {
	src, err := NewFSSource(fstest.MapFS{
		"fund_details.json": {Data: []byte(detailsJSON)},
	})
	require.NoError(t, err)

	raw, err := src.Read(context.Background(), "fund_details")
	require.NoError(t, err)
	require.JSONEq(t, detailsJSON, string(raw))

	_, err = src.Read(context.Background(), "accounts")
	require.Error(t, err)
}

func TestNewFileSource_EmptyDir(t *testing.T) {
	_, err := NewFileSource(" ")
	require.Error(t, err)
}
