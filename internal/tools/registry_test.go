package tools

import (
	"context"
	"testing"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	name   string
	status string
	result domain.FunctionResult
}

func (s stubTool) Definition() domain.ToolDeclaration {
	return domain.ToolDeclaration{Name: s.name, Description: "stub"}
}

func (s stubTool) StatusMessage() string {
	return s.status
}

func (s stubTool) Call(_ context.Context, _ map[string]any) domain.FunctionResult {
	return s.result
}

func TestManagerRegisterAndCall(t *testing.T) {
	manager := NewManager(
		stubTool{name: "alpha", result: domain.SuccessResult(map[string]any{"ok": true})},
		stubTool{name: "beta", result: domain.ExecutionFailedResult("boom")},
	)

	assert.Equal(t, []string{"alpha", "beta"}, manager.Names())

	result := manager.Call(context.Background(), "alpha", nil)
	require.True(t, result.Succeeded())
	assert.Equal(t, map[string]any{"ok": true}, result.AsToolResponse())

	result = manager.Call(context.Background(), "beta", nil)
	require.False(t, result.Succeeded())
	assert.Equal(t, domain.FunctionErrorKind_ExecutionFailed, result.Err.Kind)
}

func TestManagerCall_UnknownTool(t *testing.T) {
	manager := NewManager()

	result := manager.Call(context.Background(), "missing", map[string]any{"x": 1})

	require.False(t, result.Succeeded())
	assert.Equal(t, domain.FunctionErrorKind_NotFound, result.Err.Kind)
	assert.Equal(t, map[string]any{
		"error":   "not_found",
		"details": "Tool 'missing' is not registered.",
	}, result.AsToolResponse())
}

func TestManagerRegister_LastWriteWins(t *testing.T) {
	manager := NewManager(stubTool{name: "dup", result: domain.SuccessResult(map[string]any{"version": 1})})
	manager.Register(stubTool{name: "dup", result: domain.SuccessResult(map[string]any{"version": 2})})

	result := manager.Call(context.Background(), "dup", nil)

	require.True(t, result.Succeeded())
	assert.Equal(t, map[string]any{"version": 2}, result.Data)
	assert.Equal(t, []string{"dup"}, manager.Names())
}

func TestManagerUnregisterAndClear(t *testing.T) {
	manager := NewManager(
		stubTool{name: "a"},
		stubTool{name: "b"},
	)

	manager.Unregister("a")
	assert.Equal(t, []string{"b"}, manager.Names())

	manager.Unregister("not-there")
	assert.Equal(t, []string{"b"}, manager.Names())

	manager.Clear()
	assert.Empty(t, manager.Names())
	assert.Empty(t, manager.Declarations())
}

func TestManagerDeclarations_SortedByName(t *testing.T) {
	manager := NewManager(
		stubTool{name: "zulu"},
		stubTool{name: "alpha"},
		stubTool{name: "mike"},
	)

	decls := manager.Declarations()

	require.Len(t, decls, 3)
	assert.Equal(t, "alpha", decls[0].Name)
	assert.Equal(t, "mike", decls[1].Name)
	assert.Equal(t, "zulu", decls[2].Name)
}

func TestManagerStatusMessage(t *testing.T) {
	manager := NewManager(
		stubTool{name: "with-status", status: "🔎 Working..."},
		stubTool{name: "without-status"},
	)

	assert.Equal(t, "🔎 Working...", manager.StatusMessage("with-status"))
	assert.Equal(t, defaultStatusMessage, manager.StatusMessage("without-status"))
	assert.Equal(t, defaultStatusMessage, manager.StatusMessage("missing"))
}
