package genai

import (
	"context"
	"embed"
	"fmt"
	"net/http"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.yaml.in/yaml/v3"
)

//go:embed prompts/gateway.yml
var gatewayPrompt embed.FS

// gatewayPromptFile is the embedded gateway construction config: the fixed
// system instruction and safety thresholds applied to every call.
type gatewayPromptFile struct {
	SystemInstruction string          `yaml:"system_instruction"`
	SafetySettings    []SafetySetting `yaml:"safety_settings"`
}

// Gateway adapts GenerativeAPIClient to domain.ModelGateway. The system
// instruction and safety settings are fixed at construction and apply to
// every call; per-call customization is limited to turns, tools, selection
// mode and generation options.
type Gateway struct {
	client            GenerativeAPIClient
	model             string
	systemInstruction string
	safetySettings    []SafetySetting
}

// NewGateway creates a new gateway adapter.
func NewGateway(client GenerativeAPIClient, model, systemInstruction string, safetySettings []SafetySetting) Gateway {
	return Gateway{
		client:            client,
		model:             model,
		systemInstruction: systemInstruction,
		safetySettings:    safetySettings,
	}
}

// Generate implements domain.ModelGateway.
func (g Gateway) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResponse, error) {
	spanCtx, span := telemetry.Start(ctx,
		trace.WithAttributes(
			attribute.String("genai.model", g.model),
			attribute.Int("genai.turns", len(req.Turns)),
			attribute.Int("genai.tools", len(req.Tools)),
		),
	)
	defer span.End()

	if len(req.Turns) == 0 {
		err := domain.NewValidationErr("turns cannot be empty")
		telemetry.RecordErrorAndStatus(span, err)
		return domain.GenerationResponse{}, err
	}
	if err := validateToolNames(req.Tools); err != nil {
		telemetry.RecordErrorAndStatus(span, err)
		return domain.GenerationResponse{}, err
	}

	wireReq, err := g.toWireRequest(req)
	if err != nil {
		telemetry.RecordErrorAndStatus(span, err)
		return domain.GenerationResponse{}, err
	}

	resp, err := g.client.GenerateContent(spanCtx, g.model, wireReq)
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.GenerationResponse{}, err
	}

	// A present block reason is a policy refusal and must surface before
	// any candidate inspection.
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		err := domain.NewPolicyBlockedErr(resp.PromptFeedback.BlockReason)
		telemetry.RecordErrorAndStatus(span, err)
		return domain.GenerationResponse{}, err
	}

	if len(resp.Candidates) == 0 {
		err := domain.NewGatewayErr(domain.GatewayErrKind_NoCandidates, "response contains no candidates")
		telemetry.RecordErrorAndStatus(span, err)
		return domain.GenerationResponse{}, err
	}

	out := domain.GenerationResponse{
		Candidates: make([]domain.ModelTurn, len(resp.Candidates)),
	}
	for i, candidate := range resp.Candidates {
		out.Candidates[i] = fromWireContent(candidate.Content)
	}
	if resp.UsageMetadata != nil {
		out.Usage = domain.GenerationUsage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}
	return out, nil
}

// validateToolNames rejects duplicate declaration names.
func validateToolNames(tools []domain.ToolDeclaration) error {
	seen := make(map[string]struct{}, len(tools))
	for _, tool := range tools {
		if _, dup := seen[tool.Name]; dup {
			return domain.NewValidationErr(fmt.Sprintf("duplicate tool declaration: %s", tool.Name))
		}
		seen[tool.Name] = struct{}{}
	}
	return nil
}

func (g Gateway) toWireRequest(req domain.GenerationRequest) (GenerateContentRequest, error) {
	wireReq := GenerateContentRequest{
		Contents:       make([]Content, len(req.Turns)),
		SafetySettings: g.safetySettings,
	}

	for i, turn := range req.Turns {
		content, err := toWireContent(turn)
		if err != nil {
			return GenerateContentRequest{}, err
		}
		wireReq.Contents[i] = content
	}

	if g.systemInstruction != "" {
		wireReq.SystemInstruction = &Content{
			Role:  "system",
			Parts: []Part{{Text: g.systemInstruction}},
		}
	}

	if len(req.Tools) > 0 {
		tool := Tool{FunctionDeclarations: make([]FunctionDeclaration, len(req.Tools))}
		for i, decl := range req.Tools {
			params := toWireSchema(decl.Parameters)
			tool.FunctionDeclarations[i] = FunctionDeclaration{
				Name:        decl.Name,
				Description: decl.Description,
				Parameters:  &params,
			}
		}
		wireReq.Tools = []Tool{tool}
	}

	if req.ToolSelection != "" {
		wireReq.ToolConfig = &ToolConfig{
			FunctionCallingConfig: FunctionCallingConfig{Mode: string(req.ToolSelection)},
		}
	}

	if req.Options != nil {
		wireReq.GenerationConfig = &GenerationConfig{
			Temperature:      req.Options.Temperature,
			TopP:             req.Options.TopP,
			TopK:             req.Options.TopK,
			ResponseMimeType: req.Options.ResponseMIMEType,
		}
	}

	return wireReq, nil
}

func toWireContent(turn domain.ModelTurn) (Content, error) {
	content := Content{
		Role:  string(turn.Role),
		Parts: make([]Part, len(turn.Parts)),
	}
	for i, part := range turn.Parts {
		switch {
		case part.ToolCall != nil:
			args, err := ObjectFromMap(part.ToolCall.Args)
			if err != nil {
				return Content{}, fmt.Errorf("tool call %q: %w", part.ToolCall.Name, err)
			}
			content.Parts[i] = Part{FunctionCall: &FunctionCall{Name: part.ToolCall.Name, Args: args}}
		case part.ToolResult != nil:
			response, err := ObjectFromMap(part.ToolResult.Response)
			if err != nil {
				return Content{}, fmt.Errorf("tool result %q: %w", part.ToolResult.Name, err)
			}
			content.Parts[i] = Part{FunctionResponse: &FunctionResponse{Name: part.ToolResult.Name, Response: response}}
		default:
			content.Parts[i] = Part{Text: part.Text}
		}
	}
	return content, nil
}

func fromWireContent(content Content) domain.ModelTurn {
	turn := domain.ModelTurn{
		Role:  domain.ModelRole(content.Role),
		Parts: make([]domain.ModelPart, len(content.Parts)),
	}
	for i, part := range content.Parts {
		switch {
		case part.FunctionCall != nil:
			turn.Parts[i] = domain.ModelPart{ToolCall: &domain.ModelToolCall{
				Name: part.FunctionCall.Name,
				Args: MapFromObject(part.FunctionCall.Args),
			}}
		case part.FunctionResponse != nil:
			turn.Parts[i] = domain.ModelPart{ToolResult: &domain.ModelToolResult{
				Name:     part.FunctionResponse.Name,
				Response: MapFromObject(part.FunctionResponse.Response),
			}}
		default:
			turn.Parts[i] = domain.ModelPart{Text: part.Text}
		}
	}
	return turn
}

func toWireSchema(schema domain.Schema) Schema {
	out := Schema{
		Type:        schema.Type,
		Description: schema.Description,
		Enum:        schema.Enum,
		Required:    schema.Required,
	}
	if len(schema.Properties) > 0 {
		out.Properties = make(map[string]Schema, len(schema.Properties))
		for name, prop := range schema.Properties {
			out.Properties[name] = toWireSchema(prop)
		}
	}
	if schema.Items != nil {
		items := toWireSchema(*schema.Items)
		out.Items = &items
	}
	return out
}

// loadGatewayPrompt reads the embedded gateway construction config.
func loadGatewayPrompt() (gatewayPromptFile, error) {
	file, err := gatewayPrompt.Open("prompts/gateway.yml")
	if err != nil {
		return gatewayPromptFile{}, fmt.Errorf("failed to open gateway prompt: %w", err)
	}
	defer file.Close() //nolint:errcheck

	var cfg gatewayPromptFile
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return gatewayPromptFile{}, fmt.Errorf("failed to decode gateway prompt: %w", err)
	}
	return cfg, nil
}

// InitModelGateway initializes the model gateway dependency.
type InitModelGateway struct {
	HttpClient *http.Client `resolve:""`
	APIKey     string       `config:"GENAI_API_KEY"`
	BaseURL    string       `config:"GENAI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	Model      string       `config:"GENAI_MODEL" default:"gemini-1.5-flash"`
}

// Initialize registers the domain.ModelGateway implementation.
func (i InitModelGateway) Initialize(ctx context.Context) (context.Context, error) {
	cfg, err := loadGatewayPrompt()
	if err != nil {
		return ctx, err
	}

	gateway := NewGateway(
		NewGenerativeAPIClient(i.BaseURL, i.APIKey, i.HttpClient),
		i.Model,
		cfg.SystemInstruction,
		cfg.SafetySettings,
	)
	depend.Register[domain.ModelGateway](gateway)
	return ctx, nil
}
