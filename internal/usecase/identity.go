package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"fund-agent/internal/domain"
	"fund-agent/internal/validate"
)

// requireIdentity returns the verified mobile number held in the turn's
// contexts. When there is none it records a pending resumption for intent,
// asks for the number and reports false; the caller must stop.
func (s *Service) requireIdentity(t *turn, intent Intent, prompt string) (string, bool) {
	if c, ok := t.store.Get(domain.ContextIdentity); ok {
		if id, ok := validate.NormalizeIdentity(c.Parameters[domain.ParamIdentity]); ok {
			return id, true
		}
	}

	saved := t.params.Without(domain.ParamResumeIntent)
	saved[domain.ParamResumeIntent] = intent.String()
	t.store.Set(domain.ContextPending, pendingLifespan, saved)
	t.say(prompt)

	s.logger.Debug("intent suspended until mobile number is provided",
		zap.String("conversation_id", t.conversationID),
		zap.Stringer("intent", intent),
	)
	return "", false
}

func (s *Service) provideIdentity(ctx context.Context, t *turn) {
	raw, _ := t.params.Value(slotMobile)
	id, ok := validate.NormalizeIdentity(raw)
	if !ok {
		t.say(msgInvalidIdentity)
		return
	}
	t.store.Set(domain.ContextIdentity, identityLifespan, domain.Params{domain.ParamIdentity: id})

	if pending, ok := t.store.Get(domain.ContextPending); ok {
		t.store.Set(domain.ContextPending, 0, nil)
		if name := pending.Parameters.String(domain.ParamResumeIntent); name != "" {
			if s.resume(ctx, t, name, pending.Parameters) {
				return
			}
		}
	}
	t.say(fmt.Sprintf(msgIdentitySaved, id))
}

func (s *Service) changeIdentity(t *turn) {
	t.store.Set(domain.ContextIdentity, 0, domain.Params{})
	t.store.Set(domain.ContextPending, pendingLifespan, domain.Params{})
	t.say(msgChangeIdentity)
}

func (s *Service) welcome(t *turn) {
	t.say(msgWelcome)
}
