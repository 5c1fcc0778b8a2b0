package tools

import (
	"context"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
	"github.com/cleitonmarx/symbiont/depend"
)

// InitToolRegistry initializes the tool registry with the built-in tools.
type InitToolRegistry struct {
	TimeProvider domain.CurrentTimeProvider `resolve:""`
}

// Initialize registers the domain.ToolRegistry implementation.
func (i InitToolRegistry) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[domain.ToolRegistry](NewManager(
		NewKnowledgeSearchTool(),
		NewCreateTaskTool(i.TimeProvider),
	))
	return ctx, nil
}
