package assistant

import (
	"context"
	"log"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
	"github.com/cleitonmarx/symbiont/depend"
)

// InitOrchestrator initializes the conversational orchestrator.
type InitOrchestrator struct {
	Gateway      domain.ModelGateway        `resolve:""`
	Tools        domain.ToolRegistry        `resolve:""`
	Intents      domain.IntentRegistry      `resolve:""`
	TimeProvider domain.CurrentTimeProvider `resolve:""`
	Logger       *log.Logger                `resolve:""`
}

// Initialize registers the orchestrator instance.
func (i InitOrchestrator) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[*Orchestrator](NewOrchestrator(
		i.Gateway,
		i.Tools,
		i.Intents,
		i.TimeProvider,
		i.Logger,
	))
	return ctx, nil
}
