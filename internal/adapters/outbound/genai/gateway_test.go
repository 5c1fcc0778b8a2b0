package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/common"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) (Gateway, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewGenerativeAPIClient(server.URL, "test-key", server.Client())
	return NewGateway(client, "gemini-1.5-flash", "You are a helpful assistant.", []SafetySetting{
		{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	}), server
}

func textRequest(text string) domain.GenerationRequest {
	return domain.GenerationRequest{
		Turns: []domain.ModelTurn{
			{Role: domain.ModelRole_User, Parts: []domain.ModelPart{{Text: text}}},
		},
	}
}

func TestGatewayGenerate_RequestShape(t *testing.T) {
	var captured GenerateContentRequest
	var capturedURL string
	gateway, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		capturedURL = r.URL.String()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		writeTextCandidate(w, "Hello!")
	})

	req := domain.GenerationRequest{
		Turns: []domain.ModelTurn{
			{Role: domain.ModelRole_User, Parts: []domain.ModelPart{{Text: "Hi"}}},
			{Role: domain.ModelRole_Model, Parts: []domain.ModelPart{{Text: "Hello"}}},
		},
		Tools: []domain.ToolDeclaration{
			{
				Name:        "search_knowledge_base",
				Description: "Search the knowledge base.",
				Parameters: domain.Schema{
					Type: "object",
					Properties: map[string]domain.Schema{
						"query": {Type: "string", Description: "The search query."},
					},
					Required: []string{"query"},
				},
			},
		},
		ToolSelection: domain.ToolSelectionMode_Auto,
		Options: &domain.GenerationOptions{
			Temperature: common.Ptr(0.3),
		},
	}

	_, err := gateway.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent?key=test-key", capturedURL)
	require.Len(t, captured.Contents, 2)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "model", captured.Contents[1].Role)
	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "You are a helpful assistant.", captured.SystemInstruction.Parts[0].Text)
	require.Len(t, captured.Tools, 1)
	require.Len(t, captured.Tools[0].FunctionDeclarations, 1)
	decl := captured.Tools[0].FunctionDeclarations[0]
	assert.Equal(t, "search_knowledge_base", decl.Name)
	require.NotNil(t, decl.Parameters)
	assert.Equal(t, []string{"query"}, decl.Parameters.Required)
	require.NotNil(t, captured.ToolConfig)
	assert.Equal(t, "AUTO", captured.ToolConfig.FunctionCallingConfig.Mode)
	require.Len(t, captured.SafetySettings, 1)
	assert.Equal(t, "HARM_CATEGORY_HARASSMENT", captured.SafetySettings[0].Category)
	require.NotNil(t, captured.GenerationConfig)
	require.NotNil(t, captured.GenerationConfig.Temperature)
	assert.Equal(t, 0.3, *captured.GenerationConfig.Temperature)
}

func TestGatewayGenerate_TranslatesCandidates(t *testing.T) {
	gateway, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		resp := GenerateContentResponse{
			Candidates: []Candidate{
				{
					Content: Content{
						Role: "model",
						Parts: []Part{
							{FunctionCall: &FunctionCall{
								Name: "navigate_to_intent",
								Args: map[string]Value{"intent_id": StringValue("settings")},
							}},
							{Text: "Opening settings."},
						},
					},
				},
			},
			UsageMetadata: &UsageMetadata{PromptTokenCount: 12, CandidatesTokenCount: 7, TotalTokenCount: 19},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})

	resp, err := gateway.Generate(context.Background(), textRequest("open settings"))
	require.NoError(t, err)

	require.Len(t, resp.Candidates, 1)
	call, ok := resp.Candidates[0].FirstToolCall()
	require.True(t, ok)
	assert.Equal(t, "navigate_to_intent", call.Name)
	assert.Equal(t, map[string]any{"intent_id": "settings"}, call.Args)
	assert.Equal(t, "Opening settings.", resp.Candidates[0].JoinedText())
	assert.Equal(t, 12, resp.Usage.PromptTokens)
	assert.Equal(t, 7, resp.Usage.CompletionTokens)
	assert.Equal(t, 19, resp.Usage.TotalTokens)
}

func TestGatewayGenerate_SendsToolResults(t *testing.T) {
	var captured GenerateContentRequest
	gateway, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		writeTextCandidate(w, "Found 2 results.")
	})

	req := domain.GenerationRequest{
		Turns: []domain.ModelTurn{
			{Role: domain.ModelRole_User, Parts: []domain.ModelPart{{Text: "search docs"}}},
			{Role: domain.ModelRole_Model, Parts: []domain.ModelPart{{ToolCall: &domain.ModelToolCall{
				Name: "search_knowledge_base",
				Args: map[string]any{"query": "docs"},
			}}}},
			{Role: domain.ModelRole_User, Parts: []domain.ModelPart{domain.ToolResultPart("search_knowledge_base", map[string]any{
				"results": []any{"a", "b"},
			})}},
		},
	}

	_, err := gateway.Generate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, captured.Contents, 3)
	callPart := captured.Contents[1].Parts[0]
	require.NotNil(t, callPart.FunctionCall)
	assert.Equal(t, "search_knowledge_base", callPart.FunctionCall.Name)
	resultPart := captured.Contents[2].Parts[0]
	require.NotNil(t, resultPart.FunctionResponse)
	assert.Equal(t, "search_knowledge_base", resultPart.FunctionResponse.Name)
	assert.True(t, resultPart.FunctionResponse.Response["results"].Equal(
		ArrayValue([]Value{StringValue("a"), StringValue("b")}),
	))
}

func TestGatewayGenerate_Errors(t *testing.T) {
	testCases := map[string]struct {
		handler      http.HandlerFunc
		req          domain.GenerationRequest
		expectedKind domain.GatewayErrKind
		validation   bool
	}{
		"EmptyTurns": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("server must not be called")
			},
			req:        domain.GenerationRequest{},
			validation: true,
		},
		"DuplicateToolNames": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("server must not be called")
			},
			req: domain.GenerationRequest{
				Turns: textRequest("hi").Turns,
				Tools: []domain.ToolDeclaration{
					{Name: "create_task"},
					{Name: "create_task"},
				},
			},
			validation: true,
		},
		"HTTPStatus": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"message":"invalid key"}}`, http.StatusForbidden)
			},
			req:          textRequest("hi"),
			expectedKind: domain.GatewayErrKind_HTTPStatus,
		},
		"DecodeFailure": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
			req:          textRequest("hi"),
			expectedKind: domain.GatewayErrKind_Decode,
		},
		"NoCandidates": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[]}`))
			},
			req:          textRequest("hi"),
			expectedKind: domain.GatewayErrKind_NoCandidates,
		},
		"PolicyBlockedBeforeCandidates": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`))
			},
			req:          textRequest("hi"),
			expectedKind: domain.GatewayErrKind_PolicyBlocked,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			gateway, _ := newTestGateway(t, tc.handler)

			_, err := gateway.Generate(context.Background(), tc.req)

			require.Error(t, err)
			if tc.validation {
				var verr *domain.ValidationErr
				assert.ErrorAs(t, err, &verr)
				return
			}
			var gerr *domain.GatewayErr
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, tc.expectedKind, gerr.Kind)
			if tc.expectedKind == domain.GatewayErrKind_HTTPStatus {
				assert.Equal(t, http.StatusForbidden, gerr.StatusCode)
			}
			if tc.expectedKind == domain.GatewayErrKind_PolicyBlocked {
				assert.Equal(t, "SAFETY", gerr.BlockReason)
			}
		})
	}
}

func TestGatewayGenerate_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewGenerativeAPIClient(server.URL, "test-key", server.Client())
	server.Close()
	gateway := NewGateway(client, "gemini-1.5-flash", "", nil)

	_, err := gateway.Generate(context.Background(), textRequest("hi"))

	require.Error(t, err)
	var gerr *domain.GatewayErr
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, domain.GatewayErrKind_Transport, gerr.Kind)
}

func TestLoadGatewayPrompt(t *testing.T) {
	cfg, err := loadGatewayPrompt()

	require.NoError(t, err)
	assert.NotEmpty(t, cfg.SystemInstruction)
	assert.NotEmpty(t, cfg.SafetySettings)
	for _, setting := range cfg.SafetySettings {
		assert.NotEmpty(t, setting.Category)
		assert.NotEmpty(t, setting.Threshold)
	}
}

func writeTextCandidate(w http.ResponseWriter, text string) {
	resp := GenerateContentResponse{
		Candidates: []Candidate{
			{Content: Content{Role: "model", Parts: []Part{{Text: text}}}},
		},
	}
	_ = json.NewEncoder(w).Encode(resp)
}
