// Package refdata serves the read-only reference datasets the intent handlers
// look things up in. Each dataset is read from its Source once and memoized
// for the lifetime of the process.
package refdata

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/singleflight"

	"fund-agent/internal/domain"
	"fund-agent/internal/validate"
)

// Dataset identifies one reference collection.
type Dataset string

const (
	DatasetAccounts       Dataset = "accounts"
	DatasetFundCategories Dataset = "fund_categories"
	DatasetFundDetails    Dataset = "fund_details"
)

// ErrDataUnavailable matches every failure to read or parse a dataset.
var ErrDataUnavailable = errors.New("refdata: data unavailable")

// UnavailableError reports which dataset failed and why.
type UnavailableError struct {
	Dataset Dataset
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("refdata: dataset %q unavailable: %v", e.Dataset, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrDataUnavailable }

// Source returns the raw JSON array for a dataset.
type Source interface {
	Read(ctx context.Context, dataset string) ([]byte, error)
}

// Gateway is a read-through cache over a Source. Failed loads are not cached.
type Gateway struct {
	source Source
	group  singleflight.Group

	mu    sync.RWMutex
	cache map[Dataset]any
}

// NewGateway creates a Gateway reading from src.
func NewGateway(src Source) (*Gateway, error) {
	if src == nil {
		return nil, errors.New("refdata: source must not be nil")
	}
	return &Gateway{source: src, cache: make(map[Dataset]any)}, nil
}

// Load returns the decoded collection for key, reading the source only on
// the first successful call. Concurrent first calls share one read.
func (g *Gateway) Load(ctx context.Context, key Dataset) (any, error) {
	if v, ok := g.cached(key); ok {
		return v, nil
	}
	v, err, _ := g.group.Do(string(key), func() (any, error) {
		if v, ok := g.cached(key); ok {
			return v, nil
		}
		raw, err := g.source.Read(ctx, string(key))
		if err != nil {
			return nil, &UnavailableError{Dataset: key, Err: err}
		}
		decoded, err := decode(key, raw)
		if err != nil {
			return nil, &UnavailableError{Dataset: key, Err: err}
		}
		g.mu.Lock()
		g.cache[key] = decoded
		g.mu.Unlock()
		return decoded, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (g *Gateway) cached(key Dataset) (any, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.cache[key]
	return v, ok
}

// Accounts returns the accounts-with-transactions collection.
func (g *Gateway) Accounts(ctx context.Context) ([]domain.Account, error) {
	v, err := g.Load(ctx, DatasetAccounts)
	if err != nil {
		return nil, err
	}
	return v.([]domain.Account), nil
}

// FundCategories returns the category collection.
func (g *Gateway) FundCategories(ctx context.Context) ([]domain.FundCategory, error) {
	v, err := g.Load(ctx, DatasetFundCategories)
	if err != nil {
		return nil, err
	}
	return v.([]domain.FundCategory), nil
}

// FundDetails returns the fund detail collection.
func (g *Gateway) FundDetails(ctx context.Context) ([]domain.FundDetail, error) {
	v, err := g.Load(ctx, DatasetFundDetails)
	if err != nil {
		return nil, err
	}
	return v.([]domain.FundDetail), nil
}

func decode(key Dataset, raw []byte) (any, error) {
	switch key {
	case DatasetAccounts:
		var accounts []domain.Account
		if err := sonic.ConfigStd.Unmarshal(raw, &accounts); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		return normalizeAccounts(accounts), nil
	case DatasetFundCategories:
		var categories []domain.FundCategory
		if err := sonic.ConfigStd.Unmarshal(raw, &categories); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		return categories, nil
	case DatasetFundDetails:
		var details []domain.FundDetail
		if err := sonic.ConfigStd.Unmarshal(raw, &details); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		return details, nil
	default:
		return nil, fmt.Errorf("unknown dataset %q", key)
	}
}

// normalizeAccounts rewrites identities to their normalized form and drops
// accounts whose identity cannot be normalized.
func normalizeAccounts(in []domain.Account) []domain.Account {
	out := make([]domain.Account, 0, len(in))
	for _, a := range in {
		id, ok := validate.NormalizeIdentity(a.Identity)
		if !ok {
			continue
		}
		a.Identity = id
		out = append(out, a)
	}
	return out
}
