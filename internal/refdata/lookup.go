package refdata

import (
	"strings"

	"fund-agent/internal/domain"
	"fund-agent/internal/validate"
)

// FindAccount returns the account for an identity. The identity is
// normalized first; anything that does not normalize never matches.
func FindAccount(accounts []domain.Account, identity string) (domain.Account, bool) {
	id, ok := validate.NormalizeIdentity(identity)
	if !ok {
		return domain.Account{}, false
	}
	for _, a := range accounts {
		if a.Identity == id {
			return a, true
		}
	}
	return domain.Account{}, false
}

// FindCategory matches a category by name, ignoring case and surrounding space.
func FindCategory(categories []domain.FundCategory, name string) (domain.FundCategory, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.FundCategory{}, false
	}
	for _, c := range categories {
		if strings.EqualFold(strings.TrimSpace(c.Category), name) {
			return c, true
		}
	}
	return domain.FundCategory{}, false
}

// FindFund matches a fund by name, ignoring case and surrounding space.
func FindFund(funds []domain.FundDetail, name string) (domain.FundDetail, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.FundDetail{}, false
	}
	for _, f := range funds {
		if strings.EqualFold(strings.TrimSpace(f.FundName), name) {
			return f, true
		}
	}
	return domain.FundDetail{}, false
}
