// Package tools implements the assistant tool registry and the built-in
// tools shipped with it.
package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultStatusMessage = "⏳ Processing request..."

// Manager is the concurrency-safe tool registry. Registration is
// last-write-wins by declared name.
type Manager struct {
	mu    sync.RWMutex
	tools map[string]domain.Tool
}

// NewManager creates a tool registry with the given tools pre-registered.
func NewManager(initial ...domain.Tool) *Manager {
	m := &Manager{tools: make(map[string]domain.Tool)}
	for _, tool := range initial {
		m.Register(tool)
	}
	return m
}

// Register adds or replaces the tool under its declared name.
func (m *Manager) Register(tool domain.Tool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tools[tool.Definition().Name] = tool
}

// Unregister removes the named tool if present.
func (m *Manager) Unregister(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tools, name)
}

// Clear removes all registered tools.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tools = make(map[string]domain.Tool)
}

// Call executes the named tool. An unregistered name yields a not-found
// result rather than an error so the outcome can flow back into model
// context like any other tool response.
func (m *Manager) Call(ctx context.Context, name string, args map[string]any) domain.FunctionResult {
	spanCtx, span := telemetry.Start(ctx,
		trace.WithAttributes(attribute.String("tool.name", name)),
	)
	defer span.End()

	m.mu.RLock()
	tool, exists := m.tools[name]
	m.mu.RUnlock()
	if !exists {
		result := domain.NotFoundResult(fmt.Sprintf("Tool '%s' is not registered.", name))
		telemetry.RecordErrorAndStatus(span, result.Err)
		return result
	}

	result := tool.Call(spanCtx, args)
	var callErr error
	if result.Err != nil {
		callErr = result.Err
	}
	telemetry.RecordErrorAndStatus(span, callErr)
	return result
}

// Names returns the registered tool names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.tools))
	for name := range m.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Declarations returns all tool declarations, sorted by name.
func (m *Manager) Declarations() []domain.ToolDeclaration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	decls := make([]domain.ToolDeclaration, 0, len(m.tools))
	for _, tool := range m.tools {
		decls = append(decls, tool.Definition())
	}
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name < decls[j].Name
	})
	return decls
}

// StatusMessage returns a status message about the tool execution.
func (m *Manager) StatusMessage(name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if tool, ok := m.tools[name]; ok {
		if msg := tool.StatusMessage(); msg != "" {
			return msg
		}
	}
	return defaultStatusMessage
}
