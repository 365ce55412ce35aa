package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"fund-agent/internal/domain"
)

// resumeTarget accepts only the resumable intents, by canonical name.
func resumeTarget(name string) (Intent, error) {
	intent, ok := ParseIntent(name)
	if !ok || !intent.Resumable() {
		return IntentUnknown, newError(ErrorUnknownResumeTarget, "unknown_resume_target",
			fmt.Errorf("usecase: %q is not a resumable intent", name))
	}
	return intent, nil
}

// resume re-enters the suspended intent named by name. The saved parameters
// form the base and the current turn's non-empty parameters override them.
// It reports false when the target is rejected and nothing was said.
func (s *Service) resume(ctx context.Context, t *turn, name string, saved domain.Params) bool {
	target, err := resumeTarget(name)
	if err != nil {
		s.logger.Warn("discarding pending resumption",
			zap.String("conversation_id", t.conversationID),
			zap.String("resume_intent", name),
			zap.Error(err),
		)
		return false
	}

	resumed := &turn{
		conversationID: t.conversationID,
		params:         domain.Merge(saved.Without(domain.ParamResumeIntent), t.params),
		store:          t.store,
	}
	s.logger.Info("resuming suspended intent",
		zap.String("conversation_id", t.conversationID),
		zap.Stringer("intent", target),
	)
	s.dispatch(ctx, target, resumed)
	t.say(resumed.replies...)
	return true
}
