package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fund-agent/internal/domain"
	"fund-agent/internal/refdata"
)

const (
	slotMobile     = "mobile"
	slotDatePeriod = "date-period"
	slotCategory   = "fund-category"
	slotFundName   = "fund-name"
	slotAmount     = "amount"
)

func (s *Service) portfolioValuation(ctx context.Context, t *turn) {
	id, ok := s.requireIdentity(t, IntentPortfolioValuation, msgAskIdentityValuation)
	if !ok {
		return
	}
	account, ok := s.account(ctx, t, id)
	if !ok {
		return
	}

	total := decimal.Zero
	for _, tx := range account.Transactions {
		total = total.Add(tx.Amount)
	}
	t.say(fmt.Sprintf(msgValuation, total.String()), msgValuationNext)
}

func (s *Service) transactionHistory(ctx context.Context, t *turn) {
	id, ok := s.requireIdentity(t, IntentTransactionHistory, msgAskIdentityHistory)
	if !ok {
		return
	}
	raw, _ := t.params.Value(slotDatePeriod)
	period, ok := parsePeriod(raw)
	if !ok {
		t.say(msgAskDateRange)
		return
	}
	account, ok := s.account(ctx, t, id)
	if !ok {
		return
	}

	var lines []string
	for _, tx := range account.Transactions {
		day, ok := parseDay(tx.Date)
		if !ok {
			s.logger.Warn("skipping transaction with unreadable date",
				zap.String("conversation_id", t.conversationID),
				zap.String("date", tx.Date),
			)
			continue
		}
		if period.contains(day) {
			lines = append(lines, fmt.Sprintf(msgHistoryLine, tx.Date, tx.Amount.String(), tx.FundName))
		}
	}
	if len(lines) == 0 {
		t.say(msgNoTransactions)
		return
	}
	t.say(msgHistoryHeader+"\n"+strings.Join(lines, "\n"), msgHistoryNext)
}

// account loads the accounts dataset and finds id, answering the user itself
// when the data is unavailable or the account does not exist.
func (s *Service) account(ctx context.Context, t *turn, id string) (domain.Account, bool) {
	accounts, err := s.data.Accounts(ctx)
	if err != nil {
		s.dataTrouble(t, err)
		return domain.Account{}, false
	}
	account, ok := refdata.FindAccount(accounts, id)
	if !ok {
		t.say(msgNoAccount)
		return domain.Account{}, false
	}
	return account, true
}

func (s *Service) dataTrouble(t *turn, err error) {
	var unavailable *refdata.UnavailableError
	dataset := ""
	if errors.As(err, &unavailable) {
		dataset = string(unavailable.Dataset)
	}
	s.logger.Error("reference data unavailable",
		zap.String("conversation_id", t.conversationID),
		zap.String("dataset", dataset),
		zap.Error(err),
	)
	t.say(msgDataTrouble)
}

// period is an inclusive range of calendar days.
type period struct {
	start, end civilDay
}

type civilDay struct {
	year  int
	month time.Month
	day   int
}

func (d civilDay) before(o civilDay) bool {
	if d.year != o.year {
		return d.year < o.year
	}
	if d.month != o.month {
		return d.month < o.month
	}
	return d.day < o.day
}

func (p period) contains(d civilDay) bool {
	return !d.before(p.start) && !p.end.before(d)
}

// parsePeriod accepts {startDate, endDate}, a two element list, or a single
// date meaning that one day. An inverted range is rejected.
func parsePeriod(raw any) (period, bool) {
	var startRaw, endRaw any
	switch v := raw.(type) {
	case map[string]any:
		startRaw, endRaw = v["startDate"], v["endDate"]
	case domain.Params:
		startRaw, endRaw = v["startDate"], v["endDate"]
	case []any:
		if len(v) != 2 {
			return period{}, false
		}
		startRaw, endRaw = v[0], v[1]
	case string:
		startRaw, endRaw = v, v
	default:
		return period{}, false
	}

	startText, ok1 := startRaw.(string)
	endText, ok2 := endRaw.(string)
	if !ok1 || !ok2 {
		return period{}, false
	}
	start, ok1 := parseDay(startText)
	end, ok2 := parseDay(endText)
	if !ok1 || !ok2 || end.before(start) {
		return period{}, false
	}
	return period{start: start, end: end}, true
}

// parseDay reads an RFC 3339 timestamp or a bare date. A timestamp keeps the
// calendar day of its own offset.
func parseDay(s string) (civilDay, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civilDay{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateTime, time.DateOnly} {
		if ts, err := time.Parse(layout, s); err == nil {
			y, m, d := ts.Date()
			return civilDay{year: y, month: m, day: d}, true
		}
	}
	return civilDay{}, false
}
