package domain

// IntentCompletion is the host callback fired when a navigation intent is
// confirmed. The mapping carries at least "intent_id" on the tool-call path,
// and "query" plus "matched_keywords" on the local-match path. The registry
// holds the callback as a capability reference only; it does not manage the
// host object's lifetime.
type IntentCompletion func(entities map[string]any)

// AppIntent is a host-declared, navigable application feature, discoverable
// either via the model's tool-call mechanism or via local keyword matching.
// Immutable after registration.
type AppIntent struct {
	ID               string
	Title            string
	Description      string
	SampleUtterances []string
	Keywords         []string
	OnNavigate       IntentCompletion
}

// PendingIntent is the single-slot state holding an intent awaiting explicit
// user confirmation before its side effect executes. At most one exists per
// orchestrator at any time; setting a new one discards the previous one.
type PendingIntent struct {
	Intent   AppIntent
	Entities map[string]any
}

// IntentMatch is the outcome of locally scoring free text against the
// registered intents.
type IntentMatch struct {
	Intent   AppIntent
	Score    int
	Entities map[string]any
}

// NavigateToolName is the fixed name of the synthetic tool declaration the
// intent registry advertises for navigation.
const NavigateToolName = "navigate_to_intent"

// IntentRegistry holds host-declared navigation intents, produces the
// dynamic navigation tool schema, and scores free text against the
// registered intents when the model declares no tool call.
type IntentRegistry interface {
	// Register adds or replaces the intent under its id.
	Register(intent AppIntent)
	// RegisterAll registers intents in order.
	RegisterAll(intents []AppIntent)
	// Get returns the intent registered under id.
	Get(id string) (AppIntent, bool)
	// List returns all registered intents in registration order.
	List() []AppIntent
	// ToolSchema returns the synthetic navigation declaration whose
	// required intent_id parameter enumerates the currently registered
	// ids. The second return is false when no intents are registered.
	ToolSchema() (ToolDeclaration, bool)
	// MatchLocally scores the input against keywords, sample utterances
	// and titles. The second return is false when no intent scores
	// above zero. Ties resolve to the earliest-registered intent.
	MatchLocally(text string) (IntentMatch, bool)
}
