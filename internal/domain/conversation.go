package domain

// Context names shared by the intent handlers.
const (
	ContextIdentity = "got_identity"
	ContextPending  = "ask_identity"
)

// Context parameter keys.
const (
	ParamIdentity     = "identity"
	ParamResumeIntent = "resume_intent"
)

// ConversationContext is a named, lifespan-counted memory slot scoped to one
// conversation. A context with Lifespan 0 is inert.
type ConversationContext struct {
	Name       string
	Lifespan   int
	Parameters Params
}

// Live reports whether the context may still be read.
func (c ConversationContext) Live() bool {
	return c.Name != "" && c.Lifespan > 0
}
