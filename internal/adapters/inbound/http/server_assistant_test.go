package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/assistant"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/intents"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var serverNow = time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*AssistantServer, *domain.MockModelGateway) {
	t.Helper()

	gateway := domain.NewMockModelGateway(t)
	timeProvider := domain.NewMockCurrentTimeProvider(t)
	timeProvider.EXPECT().Now().Return(serverNow).Maybe()
	logger := log.New(io.Discard, "", 0)

	orchestrator := assistant.NewOrchestrator(
		gateway,
		tools.NewManager(),
		intents.NewManager(),
		timeProvider,
		logger,
	)

	return &AssistantServer{
		Port:         8080,
		Logger:       logger,
		Orchestrator: orchestrator,
		TimeProvider: timeProvider,
	}, gateway
}

func serializeJSON(t *testing.T, payload any) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return data
}

func textResponse(text string) domain.GenerationResponse {
	return domain.GenerationResponse{
		Candidates: []domain.ModelTurn{
			{Role: domain.ModelRole_Model, Parts: []domain.ModelPart{domain.TextPart(text)}},
		},
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAssistantServer_PostMessage(t *testing.T) {
	testCases := map[string]struct {
		requestBody    []byte
		setupMocks     func(*domain.MockModelGateway)
		expectedStatus int
		expectedMode   domain.ResponseMode
		expectedText   string
		expectedError  string
	}{
		"PlainAnswer": {
			requestBody: []byte(`{"text":"hello there"}`),
			setupMocks: func(m *domain.MockModelGateway) {
				m.EXPECT().
					Generate(mock.Anything, mock.Anything).
					Return(textResponse("Hi, how can I help?"), nil).
					Once()
			},
			expectedStatus: http.StatusOK,
			expectedMode:   domain.ResponseMode_Answer,
			expectedText:   "Hi, how can I help?",
		},
		"BlankText": {
			requestBody:    []byte(`{"text":"   "}`),
			expectedStatus: http.StatusBadRequest,
			expectedError:  errCodeBadRequest,
		},
		"MalformedBody": {
			requestBody:    []byte(`{"text":`),
			expectedStatus: http.StatusBadRequest,
			expectedError:  errCodeBadRequest,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			server, gateway := newTestServer(t)
			if tc.setupMocks != nil {
				tc.setupMocks(gateway)
			}

			rec := postJSON(t, server.PostMessage, tc.requestBody)
			require.Equal(t, tc.expectedStatus, rec.Code)

			if tc.expectedError != "" {
				var errResp ErrorResp
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.Equal(t, tc.expectedError, errResp.Error.Code)
				return
			}

			var resp MessageResp
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.expectedMode, resp.Response.Mode)
			assert.Equal(t, tc.expectedText, resp.Response.Text)
		})
	}
}

func TestAssistantServer_PostIntents(t *testing.T) {
	testCases := map[string]struct {
		requestBody    []byte
		expectedStatus int
	}{
		"RegistersIntents": {
			requestBody: serializeJSON(t, RegisterIntentsReq{Intents: []IntentReq{
				{ID: "settings", Title: "Settings", Description: "App settings", Keywords: []string{"settings"}},
				{ID: "profile", Title: "Profile", Keywords: []string{"profile"}},
			}}),
			expectedStatus: http.StatusCreated,
		},
		"EmptyBatch": {
			requestBody:    serializeJSON(t, RegisterIntentsReq{}),
			expectedStatus: http.StatusBadRequest,
		},
		"MissingID": {
			requestBody: serializeJSON(t, RegisterIntentsReq{Intents: []IntentReq{
				{Title: "Settings"},
			}}),
			expectedStatus: http.StatusBadRequest,
		},
		"MissingTitle": {
			requestBody: serializeJSON(t, RegisterIntentsReq{Intents: []IntentReq{
				{ID: "settings"},
			}}),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			server, _ := newTestServer(t)
			rec := postJSON(t, server.PostIntents, tc.requestBody)
			assert.Equal(t, tc.expectedStatus, rec.Code)
		})
	}
}

func TestAssistantServer_ConfirmFlowRecordsNavigation(t *testing.T) {
	server, gateway := newTestServer(t)

	rec := postJSON(t, server.PostIntents, serializeJSON(t, RegisterIntentsReq{Intents: []IntentReq{
		{ID: "pay_bills", Title: "Pay Bills", Keywords: []string{"bills", "payment"}},
	}}))
	require.Equal(t, http.StatusCreated, rec.Code)

	// The model declares no tool call, so the local matcher picks up the
	// registered intent and the turn becomes a confirmation question.
	gateway.EXPECT().
		Generate(mock.Anything, mock.Anything).
		Return(textResponse("You can pay bills in the billing section."), nil).
		Once()

	rec = postJSON(t, server.PostMessage, []byte(`{"text":"I want to pay my bills"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	var msgResp MessageResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgResp))
	require.Equal(t, domain.ResponseMode_ConfirmNavigation, msgResp.Response.Mode)

	rec = postJSON(t, server.PostConfirm, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgResp))
	assert.Equal(t, domain.ResponseMode_Navigation, msgResp.Response.Mode)

	rec = httptest.NewRecorder()
	server.GetNavigations(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var navResp NavigationsResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &navResp))
	require.Len(t, navResp.Navigations, 1)
	assert.Equal(t, "pay_bills", navResp.Navigations[0].IntentID)
	assert.Equal(t, "Pay Bills", navResp.Navigations[0].Title)
	assert.Equal(t, "I want to pay my bills", navResp.Navigations[0].Entities["query"])
	assert.Equal(t, serverNow, navResp.Navigations[0].OccurredAt)
}

func TestAssistantServer_ConfirmWithoutPending(t *testing.T) {
	server, _ := newTestServer(t)

	rec := postJSON(t, server.PostConfirm, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = postJSON(t, server.PostCancel, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAssistantServer_HistoryLifecycle(t *testing.T) {
	server, gateway := newTestServer(t)

	gateway.EXPECT().
		Generate(mock.Anything, mock.Anything).
		Return(textResponse("Sure thing."), nil).
		Once()

	rec := postJSON(t, server.PostMessage, []byte(`{"text":"hello"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	server.GetHistory(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var histResp HistoryResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &histResp))
	require.Len(t, histResp.Messages, 2)
	assert.Equal(t, "user", histResp.Messages[0].Role)
	assert.Equal(t, "hello", histResp.Messages[0].Content)
	assert.Equal(t, "assistant", histResp.Messages[1].Role)
	assert.Equal(t, "Sure thing.", histResp.Messages[1].Content)

	rec = httptest.NewRecorder()
	server.DeleteHistory(rec, httptest.NewRequest(http.MethodDelete, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	server.GetHistory(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &histResp))
	assert.Empty(t, histResp.Messages)
}
