package domain

import "context"

// ModelRole represents the role of a turn in the model conversation format.
type ModelRole string

const (
	ModelRole_User  ModelRole = "user"
	ModelRole_Model ModelRole = "model"
)

// ToolSelectionMode controls how the model may select declared tools.
type ToolSelectionMode string

const (
	ToolSelectionMode_Auto ToolSelectionMode = "AUTO"
	ToolSelectionMode_Any  ToolSelectionMode = "ANY"
	ToolSelectionMode_None ToolSelectionMode = "NONE"
)

// ModelToolCall is a structured request from the model to invoke a named tool.
type ModelToolCall struct {
	Name string
	Args map[string]any
}

// ModelToolResult carries the outcome of a tool invocation back to the model.
type ModelToolResult struct {
	Name     string
	Response map[string]any
}

// ModelPart is one part of a turn: plain text, a tool call, or a tool result.
// Exactly one field is expected to be set.
type ModelPart struct {
	Text       string
	ToolCall   *ModelToolCall
	ToolResult *ModelToolResult
}

// TextPart builds a text-only part.
func TextPart(text string) ModelPart {
	return ModelPart{Text: text}
}

// ToolResultPart builds a tool-result part.
func ToolResultPart(name string, response map[string]any) ModelPart {
	return ModelPart{ToolResult: &ModelToolResult{Name: name, Response: response}}
}

// ModelTurn is one request/response exchange unit in the model conversation
// format: a role plus one or more ordered parts.
type ModelTurn struct {
	Role  ModelRole
	Parts []ModelPart
}

// FirstToolCall scans the turn parts in order and returns the first tool
// call found, preferring it over any sibling text in the same turn.
func (t ModelTurn) FirstToolCall() (ModelToolCall, bool) {
	for _, part := range t.Parts {
		if part.ToolCall != nil {
			return *part.ToolCall, true
		}
	}
	return ModelToolCall{}, false
}

// JoinedText concatenates all text parts of the turn.
func (t ModelTurn) JoinedText() string {
	var text string
	for _, part := range t.Parts {
		text += part.Text
	}
	return text
}

// Schema is a JSON-Schema-shaped description of a tool parameter structure.
type Schema struct {
	Type        string
	Description string
	Enum        []string
	Properties  map[string]Schema
	Required    []string
	Items       *Schema
}

// ToolDeclaration describes one named, schema-described capability
// advertised to the model so it may request invocation instead of free text.
type ToolDeclaration struct {
	Name        string
	Description string
	Parameters  Schema
}

// GenerationOptions holds optional per-call generation settings.
type GenerationOptions struct {
	Temperature      *float64
	TopP             *float64
	TopK             *int
	ResponseMIMEType string
}

// GenerationRequest is one model generation call: ordered turns, declared
// tools, a tool selection mode, and generation options.
type GenerationRequest struct {
	Turns         []ModelTurn
	Tools         []ToolDeclaration
	ToolSelection ToolSelectionMode
	Options       *GenerationOptions
}

// GenerationUsage contains token usage for one generation call.
type GenerationUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// GenerationResponse is the decoded result of one generation call. At least
// one candidate is present on success.
type GenerationResponse struct {
	Candidates []ModelTurn
	Usage      GenerationUsage
}

// ModelGateway is the stateless wire-protocol client for the hosted text
// generation endpoint. Each Generate performs exactly one outbound network
// call, with no retries and no caching. The system instruction and safety
// thresholds are fixed at gateway construction time.
type ModelGateway interface {
	Generate(ctx context.Context, req GenerationRequest) (GenerationResponse, error)
}
