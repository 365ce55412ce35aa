package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"fund-agent/internal/refdata"
	"fund-agent/internal/validate"
)

func (s *Service) exploreFunds(ctx context.Context, t *turn) {
	if _, ok := s.requireIdentity(t, IntentExploreFunds, msgAskIdentityExplore); !ok {
		return
	}
	name := t.params.String(slotCategory)
	if name == "" {
		t.say(msgAskCategory)
		return
	}
	categories, err := s.data.FundCategories(ctx)
	if err != nil {
		s.dataTrouble(t, err)
		return
	}
	category, ok := refdata.FindCategory(categories, name)
	if !ok {
		t.say(fmt.Sprintf(msgCategoryNotFound, name))
		return
	}

	lines := make([]string, 0, len(category.Funds)+1)
	lines = append(lines, fmt.Sprintf(msgCategoryHeader, category.Category))
	for _, f := range category.Funds {
		lines = append(lines, fmt.Sprintf(msgCategoryLine, f.FundName, f.FundID))
	}
	t.say(strings.Join(lines, "\n"), msgCategoryNext)
}

func (s *Service) fundDetails(ctx context.Context, t *turn) {
	name := t.params.String(slotFundName)
	if name == "" {
		t.say(msgAskFundName)
		return
	}
	funds, err := s.data.FundDetails(ctx)
	if err != nil {
		s.dataTrouble(t, err)
		return
	}
	fund, ok := refdata.FindFund(funds, name)
	if !ok {
		t.say(fmt.Sprintf(msgFundNotFound, name))
		return
	}

	lines := make([]string, 0, len(fund.Breakdown)+2)
	lines = append(lines, fmt.Sprintf(msgFundHeader, fund.FundName))
	for _, a := range fund.Breakdown {
		lines = append(lines, fmt.Sprintf(msgFundLine, a.Name, a.Percent.String()))
	}
	if fund.DetailsLink != "" {
		lines = append(lines, "", fmt.Sprintf(msgFundMoreInfo, fund.DetailsLink))
	}
	t.say(strings.Join(lines, "\n"))
}

func (s *Service) investInFund(ctx context.Context, t *turn) {
	if _, ok := s.requireIdentity(t, IntentInvestInFund, msgAskIdentityInvest); !ok {
		return
	}
	name := t.params.String(slotFundName)
	rawAmount, _ := t.params.Value(slotAmount)
	amount, ok := validate.ParseAmount(rawAmount)
	if name == "" || !ok {
		t.say(msgAskInvestment)
		return
	}
	if !validate.IsInvestmentAmountAllowed(amount) {
		s.logger.Info("investment above ceiling blocked",
			zap.String("conversation_id", t.conversationID),
			zap.String("amount", amount.String()),
		)
		t.say(msgInvestBlocked)
		return
	}

	funds, err := s.data.FundDetails(ctx)
	if err != nil {
		s.dataTrouble(t, err)
		return
	}
	fund, ok := refdata.FindFund(funds, name)
	if !ok {
		t.say(fmt.Sprintf(msgInvestNotFound, name))
		return
	}
	t.say(fmt.Sprintf(msgInvested, amount.String(), fund.FundName), msgInvestNext)
}
