package domain

import "context"

// FunctionErrorKind classifies a failed tool invocation.
type FunctionErrorKind string

const (
	FunctionErrorKind_NotFound         FunctionErrorKind = "not_found"
	FunctionErrorKind_InvalidArguments FunctionErrorKind = "invalid_arguments"
	FunctionErrorKind_ExecutionFailed  FunctionErrorKind = "execution_failed"
)

// FunctionError describes why a tool invocation failed.
type FunctionError struct {
	Kind    FunctionErrorKind
	Message string
}

// Error returns the error message.
func (e FunctionError) Error() string {
	return e.Message
}

// FunctionResult is the tagged outcome of one tool invocation: either a
// success payload or a typed failure. It is produced per call and consumed
// immediately, never stored.
type FunctionResult struct {
	Data map[string]any
	Err  *FunctionError
}

// Succeeded reports whether the invocation produced a success payload.
func (r FunctionResult) Succeeded() bool {
	return r.Err == nil
}

// AsToolResponse flattens the result into the mapping serialized back into
// model context as a tool-result part.
func (r FunctionResult) AsToolResponse() map[string]any {
	if r.Err != nil {
		return map[string]any{
			"error":   string(r.Err.Kind),
			"details": r.Err.Message,
		}
	}
	if r.Data == nil {
		return map[string]any{}
	}
	return r.Data
}

// SuccessResult builds a successful FunctionResult.
func SuccessResult(data map[string]any) FunctionResult {
	return FunctionResult{Data: data}
}

// NotFoundResult reports an unregistered tool name. This is a normal,
// expected outcome used to detect gateway/registry drift, not a panic path.
func NotFoundResult(message string) FunctionResult {
	return FunctionResult{Err: &FunctionError{Kind: FunctionErrorKind_NotFound, Message: message}}
}

// InvalidArgumentsResult reports missing or mis-shaped required arguments.
func InvalidArgumentsResult(message string) FunctionResult {
	return FunctionResult{Err: &FunctionError{Kind: FunctionErrorKind_InvalidArguments, Message: message}}
}

// ExecutionFailedResult reports a value that failed domain validation or an
// execution error inside the handler.
func ExecutionFailedResult(message string) FunctionResult {
	return FunctionResult{Err: &FunctionError{Kind: FunctionErrorKind_ExecutionFailed, Message: message}}
}

// Tool represents one executable assistant tool.
type Tool interface {
	// Definition returns the tool declaration advertised to the model.
	Definition() ToolDeclaration
	// StatusMessage returns a user-friendly status line for this tool.
	StatusMessage() string
	// Call executes the tool with the given arguments. Failures are
	// reported as typed results, never as panics across this boundary.
	Call(ctx context.Context, args map[string]any) FunctionResult
}

// ToolRegistry resolves and executes registered tools by name.
type ToolRegistry interface {
	// Register adds or replaces the tool under its declared name.
	// Re-registering a name silently replaces the prior tool.
	Register(tool Tool)
	// Call executes the named tool. Unregistered names yield a
	// not-found FunctionResult.
	Call(ctx context.Context, name string, args map[string]any) FunctionResult
	// Unregister removes the named tool if present.
	Unregister(name string)
	// Clear removes all registered tools.
	Clear()
	// Names returns the registered tool names, sorted.
	Names() []string
	// Declarations returns the declarations of all registered tools,
	// sorted by name.
	Declarations() []ToolDeclaration
	// StatusMessage returns a friendly status message for the given tool name.
	StatusMessage(name string) string
}
