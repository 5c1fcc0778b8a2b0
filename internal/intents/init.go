package intents

import (
	"context"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
	"github.com/cleitonmarx/symbiont/depend"
)

// InitIntentRegistry initializes the intent registry. Intents themselves
// are registered by the embedding host after startup.
type InitIntentRegistry struct{}

// Initialize registers the domain.IntentRegistry implementation.
func (i InitIntentRegistry) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[domain.IntentRegistry](NewManager())
	return ctx, nil
}
