package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"fund-agent/internal/domain"
	"fund-agent/internal/session"
)

const (
	identityLifespan = 5
	pendingLifespan  = 2
	lockKeyPrefix    = "conversation:"
)

type ReferenceData interface {
	Accounts(ctx context.Context) ([]domain.Account, error)
	FundCategories(ctx context.Context) ([]domain.FundCategory, error)
	FundDetails(ctx context.Context) ([]domain.FundDetail, error)
}

type Locker interface {
	WithLock(ctx context.Context, key string, fn func(context.Context) error) error
}

// Service fulfills one recognized intent per call.
type Service struct {
	data    ReferenceData
	locker  Locker
	intents *IntentTable
	logger  *zap.Logger
}

type FulfillInput struct {
	ConversationID string
	Intent         string
	Parameters     map[string]any
	Contexts       []domain.ConversationContext
}

type FulfillOutput struct {
	Intent    Intent
	Responses []string
	Contexts  []domain.ConversationContext
}

// turn carries the state one handler invocation works on.
type turn struct {
	conversationID string
	params         domain.Params
	store          session.Store
	replies        []string
}

func (t *turn) say(msgs ...string) {
	t.replies = append(t.replies, msgs...)
}

func NewService(data ReferenceData, locker Locker, intents *IntentTable, logger *zap.Logger) (*Service, error) {
	if data == nil {
		return nil, errors.New("usecase: reference data must not be nil")
	}
	if locker == nil {
		return nil, errors.New("usecase: locker must not be nil")
	}
	if intents == nil {
		return nil, errors.New("usecase: intent table must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{data: data, locker: locker, intents: intents, logger: logger}, nil
}

// Fulfill runs the handler for in.Intent against the contexts supplied with
// the request. The whole turn runs under the conversation's lock.
func (s *Service) Fulfill(ctx context.Context, in FulfillInput) (FulfillOutput, error) {
	convID := strings.TrimSpace(in.ConversationID)
	if convID == "" {
		return FulfillOutput{}, newError(ErrorInvalidInput, "missing_conversation_id", nil)
	}
	name := strings.TrimSpace(in.Intent)
	if name == "" {
		return FulfillOutput{}, newError(ErrorInvalidInput, "missing_intent", nil)
	}
	intent, ok := s.intents.Lookup(name)
	if !ok {
		return FulfillOutput{}, newError(ErrorUnknownIntent, "unknown_intent", errors.New(name))
	}

	var out FulfillOutput
	err := s.locker.WithLock(ctx, lockKeyPrefix+convID, func(ctx context.Context) error {
		store := session.NewTurnStore(in.Contexts)
		t := &turn{
			conversationID: convID,
			params:         domain.NormalizeParams(in.Parameters),
			store:          store,
		}
		s.dispatch(ctx, intent, t)
		out = FulfillOutput{
			Intent:    intent,
			Responses: t.replies,
			Contexts:  store.Mutations(),
		}
		return nil
	})
	if err != nil {
		return FulfillOutput{}, newError(ErrorInternal, "conversation_lock_error", err)
	}

	s.logger.Info("intent fulfilled",
		zap.String("conversation_id", convID),
		zap.String("intent_name", name),
		zap.Stringer("intent", intent),
		zap.Int("responses", len(out.Responses)),
		zap.Int("context_writes", len(out.Contexts)),
	)
	return out, nil
}

func (s *Service) dispatch(ctx context.Context, intent Intent, t *turn) {
	switch intent {
	case IntentWelcome:
		s.welcome(t)
	case IntentProvideIdentity:
		s.provideIdentity(ctx, t)
	case IntentChangeIdentity:
		s.changeIdentity(t)
	case IntentPortfolioValuation:
		s.portfolioValuation(ctx, t)
	case IntentTransactionHistory:
		s.transactionHistory(ctx, t)
	case IntentExploreFunds:
		s.exploreFunds(ctx, t)
	case IntentFundDetails:
		s.fundDetails(ctx, t)
	case IntentInvestInFund:
		s.investInFund(ctx, t)
	default:
		s.logger.Error("no handler for intent", zap.Stringer("intent", intent))
		t.say(msgFallback)
	}
}
