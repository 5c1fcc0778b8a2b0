package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
)

// MessageReq is the request body for a user message turn.
type MessageReq struct {
	Text string `json:"text"`
}

// MessageResp wraps the assistant's structured per-turn response.
type MessageResp struct {
	Response domain.AssistantResponse `json:"response"`
}

// HistoryMessage is the wire form of one conversation message.
type HistoryMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryResp lists the conversation history in append order.
type HistoryResp struct {
	Messages []HistoryMessage `json:"messages"`
}

// IntentReq declares one navigable app intent over the wire.
type IntentReq struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	SampleUtterances []string `json:"sample_utterances,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
}

// RegisterIntentsReq registers a batch of intents in order.
type RegisterIntentsReq struct {
	Intents []IntentReq `json:"intents"`
}

// NavigationEvent records one confirmed navigation, in confirmation order.
type NavigationEvent struct {
	IntentID   string         `json:"intent_id"`
	Title      string         `json:"title"`
	Entities   map[string]any `json:"entities,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NavigationsResp lists the confirmed-navigation feed.
type NavigationsResp struct {
	Navigations []NavigationEvent `json:"navigations"`
}

func (api *AssistantServer) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errCodeBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, errCodeBadRequest, "text is required")
		return
	}

	response, err := api.Orchestrator.ProcessInput(r.Context(), req.Text)
	if err != nil {
		api.Logger.Printf("AssistantServer: error processing message: %v", err)
		respondError(w, errCodeInternal, "failed to process message")
		return
	}
	respondJSON(w, http.StatusOK, MessageResp{Response: response})
}

func (api *AssistantServer) PostConfirm(w http.ResponseWriter, r *http.Request) {
	response, err := api.Orchestrator.ConfirmIntent(r.Context())
	if err != nil {
		api.Logger.Printf("AssistantServer: error confirming navigation: %v", err)
		respondError(w, errCodeInternal, "failed to confirm navigation")
		return
	}
	if response.IsZero() {
		respondError(w, errCodeConflict, "no navigation awaiting confirmation")
		return
	}
	respondJSON(w, http.StatusOK, MessageResp{Response: response})
}

func (api *AssistantServer) PostCancel(w http.ResponseWriter, r *http.Request) {
	response, err := api.Orchestrator.CancelIntent(r.Context())
	if err != nil {
		api.Logger.Printf("AssistantServer: error cancelling navigation: %v", err)
		respondError(w, errCodeInternal, "failed to cancel navigation")
		return
	}
	if response.IsZero() {
		respondError(w, errCodeConflict, "no navigation awaiting confirmation")
		return
	}
	respondJSON(w, http.StatusOK, MessageResp{Response: response})
}

func (api *AssistantServer) PostIntents(w http.ResponseWriter, r *http.Request) {
	var req RegisterIntentsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errCodeBadRequest, "invalid request body")
		return
	}
	if len(req.Intents) == 0 {
		respondError(w, errCodeBadRequest, "at least one intent is required")
		return
	}

	intents := make([]domain.AppIntent, 0, len(req.Intents))
	for _, in := range req.Intents {
		if strings.TrimSpace(in.ID) == "" || strings.TrimSpace(in.Title) == "" {
			respondError(w, errCodeBadRequest, "intent id and title are required")
			return
		}
		intents = append(intents, api.toAppIntent(in))
	}

	api.Orchestrator.RegisterIntents(intents)
	respondJSON(w, http.StatusCreated, struct {
		Registered int `json:"registered"`
	}{Registered: len(intents)})
}

// toAppIntent binds the wire intent to a domain intent whose completion
// callback appends to the server's navigation feed.
func (api *AssistantServer) toAppIntent(in IntentReq) domain.AppIntent {
	id, title := in.ID, in.Title
	return domain.AppIntent{
		ID:               id,
		Title:            title,
		Description:      in.Description,
		SampleUtterances: in.SampleUtterances,
		Keywords:         in.Keywords,
		OnNavigate: func(entities map[string]any) {
			api.recordNavigation(NavigationEvent{
				IntentID:   id,
				Title:      title,
				Entities:   entities,
				OccurredAt: api.TimeProvider.Now(),
			})
		},
	}
}

func (api *AssistantServer) recordNavigation(event NavigationEvent) {
	api.mu.Lock()
	defer api.mu.Unlock()
	api.navigations = append(api.navigations, event)
}

func (api *AssistantServer) GetNavigations(w http.ResponseWriter, r *http.Request) {
	api.mu.Lock()
	events := make([]NavigationEvent, len(api.navigations))
	copy(events, api.navigations)
	api.mu.Unlock()

	respondJSON(w, http.StatusOK, NavigationsResp{Navigations: events})
}

func (api *AssistantServer) GetHistory(w http.ResponseWriter, r *http.Request) {
	messages := api.Orchestrator.History()

	resp := HistoryResp{Messages: make([]HistoryMessage, 0, len(messages))}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, HistoryMessage{
			ID:        m.ID.String(),
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (api *AssistantServer) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	api.Orchestrator.ClearConversation()
	w.WriteHeader(http.StatusNoContent)
}
