// Package session holds the per-turn view of a conversation's named contexts.
package session

import (
	"sync"

	"fund-agent/internal/domain"
)

// Store reads and writes named, lifespan-counted contexts for one conversation.
type Store interface {
	// Get returns the live context with the given name. Contexts whose
	// lifespan has run out are reported as absent.
	Get(name string) (domain.ConversationContext, bool)
	// Set creates or overwrites a context. A lifespan of 0 deletes it.
	Set(name string, lifespan int, params domain.Params)
}

// TurnStore is a Store seeded from the contexts the NLU framework sent with
// the current request. Every Set is recorded so the transport can hand the
// upserts back to the framework at the end of the turn.
type TurnStore struct {
	mu      sync.Mutex
	current map[string]domain.ConversationContext
	order   []string
	changed map[string]domain.ConversationContext
}

// NewTurnStore builds a store from the inbound contexts. Later duplicates of a
// name replace earlier ones.
func NewTurnStore(inbound []domain.ConversationContext) *TurnStore {
	s := &TurnStore{
		current: make(map[string]domain.ConversationContext, len(inbound)),
		changed: make(map[string]domain.ConversationContext),
	}
	for _, c := range inbound {
		if c.Name == "" {
			continue
		}
		s.current[c.Name] = c
	}
	return s
}

func (s *TurnStore) Get(name string) (domain.ConversationContext, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.current[name]
	if !ok || !c.Live() {
		return domain.ConversationContext{}, false
	}
	c.Parameters = copyParams(c.Parameters)
	return c, true
}

func (s *TurnStore) Set(name string, lifespan int, params domain.Params) {
	if name == "" {
		return
	}
	if lifespan < 0 {
		lifespan = 0
	}
	c := domain.ConversationContext{Name: name, Lifespan: lifespan, Parameters: copyParams(params)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.changed[name]; !seen {
		s.order = append(s.order, name)
	}
	s.changed[name] = c
	s.current[name] = c
}

// Mutations returns the contexts written during the turn in first-write
// order, each carrying its last written value.
func (s *TurnStore) Mutations() []domain.ConversationContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ConversationContext, 0, len(s.order))
	for _, name := range s.order {
		c := s.changed[name]
		c.Parameters = copyParams(c.Parameters)
		out = append(out, c)
	}
	return out
}

func copyParams(p domain.Params) domain.Params {
	out := make(domain.Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
