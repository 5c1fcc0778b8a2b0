// Package assistant implements the conversational orchestrator: the
// two-phase generation turn loop, the pending-navigation confirmation state
// machine, and the deterministic presentation layer around model output.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/common"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/telemetry"
)

const (
	// CHAT_TEMPERATURE keeps generation close to deterministic so tool
	// selection stays stable across repeated similar inputs.
	CHAT_TEMPERATURE = 0.3

	fallbackAnswerText = "Sorry, I could not process your request. Please try again."
)

var errorSuggestions = []string{"Try asking again", "What can you do?"}

// Orchestrator drives one conversational session. All public mutating
// methods are serialized by one mutex; no two turns run concurrently against
// the same instance. History and the pending slot are exclusively owned by
// the orchestrator.
type Orchestrator struct {
	gateway      domain.ModelGateway
	tools        domain.ToolRegistry
	intents      domain.IntentRegistry
	timeProvider domain.CurrentTimeProvider
	logger       *log.Logger

	mu           sync.Mutex
	history      []domain.ConversationMessage
	pending      *domain.PendingIntent
	lastResponse domain.AssistantResponse
	processing   bool
	subscribers  []func()
}

// NewOrchestrator creates an idle orchestrator with empty history.
func NewOrchestrator(
	gateway domain.ModelGateway,
	tools domain.ToolRegistry,
	intents domain.IntentRegistry,
	timeProvider domain.CurrentTimeProvider,
	logger *log.Logger,
) *Orchestrator {
	return &Orchestrator{
		gateway:      gateway,
		tools:        tools,
		intents:      intents,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// RegisterIntents registers navigation intents with the underlying registry.
// Intended to run before steady-state conversation.
func (o *Orchestrator) RegisterIntents(intents []domain.AppIntent) {
	o.intents.RegisterAll(intents)
}

// History returns a copy of the conversation history, oldest first.
func (o *Orchestrator) History() []domain.ConversationMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]domain.ConversationMessage, len(o.history))
	copy(out, o.history)
	return out
}

// LastResponse returns the most recent structured response.
func (o *Orchestrator) LastResponse() domain.AssistantResponse {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastResponse
}

// IsProcessing reports whether a turn is currently in flight.
func (o *Orchestrator) IsProcessing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.processing
}

// PendingNavigation returns the intent awaiting confirmation, if any.
func (o *Orchestrator) PendingNavigation() (domain.PendingIntent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending == nil {
		return domain.PendingIntent{}, false
	}
	return *o.pending, true
}

// ClearConversation drops history, the pending slot and the last response.
func (o *Orchestrator) ClearConversation() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = nil
	o.pending = nil
	o.lastResponse = domain.AssistantResponse{}
	o.notify()
}

// Subscribe registers a change-notification callback fired after every
// observable state mutation. Callbacks run synchronously under the
// orchestrator mutex and must not call back into the orchestrator.
func (o *Orchestrator) Subscribe(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subscribers = append(o.subscribers, fn)
}

func (o *Orchestrator) notify() {
	for _, fn := range o.subscribers {
		fn()
	}
}

// ProcessInput handles one user turn. Blank input is a no-op. In Idle state
// it runs the two-phase generation algorithm; while a navigation is awaiting
// confirmation the text is interpreted as a confirmation reply instead of a
// new conversational turn. It always completes with a displayable last
// response; gateway failures are absorbed into an apologetic answer, never
// returned as an error.
func (o *Orchestrator) ProcessInput(ctx context.Context, text string) (domain.AssistantResponse, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	if strings.TrimSpace(text) == "" {
		return domain.AssistantResponse{}, nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.processing = true
	o.notify()
	defer func() {
		o.processing = false
		o.notify()
	}()

	var response domain.AssistantResponse
	if o.pending != nil {
		response = o.processConfirmationReply(spanCtx, text)
	} else {
		response = o.processGenerationTurn(spanCtx, text)
	}

	o.lastResponse = response
	o.notify()
	recordTurnProcessed(spanCtx, string(response.Mode))
	telemetry.RecordErrorAndStatus(span, nil)
	return response, nil
}

// ConfirmIntent executes the pending navigation: it appends a short
// confirmation message, fires the completion callback exactly once, then
// clears the slot. Without a pending navigation it is a no-op.
func (o *Orchestrator) ConfirmIntent(ctx context.Context) (domain.AssistantResponse, error) {
	_, span := telemetry.Start(ctx)
	defer span.End()

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending == nil {
		return domain.AssistantResponse{}, nil
	}

	response := o.resolvePendingConfirmed()
	o.lastResponse = response
	o.notify()
	return response, nil
}

// CancelIntent discards the pending navigation without firing its callback.
// Without a pending navigation it is a no-op.
func (o *Orchestrator) CancelIntent(ctx context.Context) (domain.AssistantResponse, error) {
	_, span := telemetry.Start(ctx)
	defer span.End()

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending == nil {
		return domain.AssistantResponse{}, nil
	}

	response := o.resolvePendingCancelled()
	o.lastResponse = response
	o.notify()
	return response, nil
}

// processGenerationTurn runs the two-phase generation algorithm for one
// Idle-state user turn. Caller holds the mutex.
func (o *Orchestrator) processGenerationTurn(ctx context.Context, text string) domain.AssistantResponse {
	o.appendMessage(domain.ChatRole_User, text)

	declarations := o.tools.Declarations()
	if navSchema, ok := o.intents.ToolSchema(); ok {
		declarations = append(declarations, navSchema)
	}

	request := domain.GenerationRequest{
		Turns:         o.serializeHistory(),
		Tools:         declarations,
		ToolSelection: domain.ToolSelectionMode_Auto,
		Options: &domain.GenerationOptions{
			Temperature: common.Ptr(CHAT_TEMPERATURE),
		},
	}

	resp, err := o.gateway.Generate(ctx, request)
	if err != nil {
		return o.gatewayFailureResponse(ctx, err)
	}
	recordTokensUsed(ctx, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	candidate := resp.Candidates[0]
	call, hasCall := candidate.FirstToolCall()

	switch {
	case hasCall && call.Name == domain.NavigateToolName:
		if response, ok := o.resolveNavigationCall(call); ok {
			return response
		}
		// Unknown intent id is a gateway/registry inconsistency; degrade
		// to the plain-text path below.
		o.logger.Printf("navigation call for unknown intent id, degrading to text: %v", call.Args)
	case hasCall:
		return o.executeToolTurn(ctx, text, request, candidate, call)
	default:
		if match, found := o.intents.MatchLocally(text); found {
			return o.setPendingIntent(match.Intent, match.Entities, nil)
		}
	}

	answer := candidate.JoinedText()
	if strings.TrimSpace(answer) == "" {
		answer = fallbackAnswerText
	}
	o.appendMessage(domain.ChatRole_Assistant, answer)
	return o.presentAnswer(text, answer, nil)
}

// resolveNavigationCall looks up the intent named by a navigation tool call.
func (o *Orchestrator) resolveNavigationCall(call domain.ModelToolCall) (domain.AssistantResponse, bool) {
	intentID, _ := call.Args["intent_id"].(string)
	intent, found := o.intents.Get(intentID)
	if !found {
		return domain.AssistantResponse{}, false
	}

	entities := call.Args
	if entities == nil {
		entities = map[string]any{}
	}
	if _, ok := entities["intent_id"]; !ok {
		entities["intent_id"] = intent.ID
	}
	return o.setPendingIntent(intent, entities, &domain.FunctionCallInfo{Name: call.Name, Args: call.Args}), true
}

// executeToolTurn runs a registered tool and issues the follow-up gateway
// call that turns the tool result into the final natural-language answer.
func (o *Orchestrator) executeToolTurn(
	ctx context.Context,
	input string,
	request domain.GenerationRequest,
	candidate domain.ModelTurn,
	call domain.ModelToolCall,
) domain.AssistantResponse {
	result := o.tools.Call(ctx, call.Name, call.Args)
	recordToolExecution(ctx, call.Name, result.Succeeded())

	request.Turns = append(request.Turns,
		candidate,
		domain.ModelTurn{
			Role:  domain.ModelRole_User,
			Parts: []domain.ModelPart{domain.ToolResultPart(call.Name, result.AsToolResponse())},
		},
	)

	resp, err := o.gateway.Generate(ctx, request)
	if err != nil {
		return o.gatewayFailureResponse(ctx, err)
	}
	recordTokensUsed(ctx, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	answer := resp.Candidates[0].JoinedText()
	if strings.TrimSpace(answer) == "" {
		answer = fallbackAnswerText
	}
	o.appendMessage(domain.ChatRole_Assistant, answer)
	return o.presentAnswer(input, answer, &domain.FunctionCallInfo{Name: call.Name, Args: call.Args})
}

// setPendingIntent stores the single pending slot, overwriting any previous
// value, and synthesizes the confirmation question without a second gateway
// call.
func (o *Orchestrator) setPendingIntent(
	intent domain.AppIntent,
	entities map[string]any,
	callInfo *domain.FunctionCallInfo,
) domain.AssistantResponse {
	o.pending = &domain.PendingIntent{Intent: intent, Entities: entities}

	text := fmt.Sprintf("Would you like me to navigate to '%s'?", intent.Title)
	return domain.AssistantResponse{
		Mode:         domain.ResponseMode_ConfirmNavigation,
		Title:        intent.Title,
		Text:         text,
		SpeechText:   speechText(text),
		Suggestions:  []string{"Yes, navigate", "No, cancel"},
		FunctionCall: callInfo,
		CreatedAt:    o.timeProvider.Now(),
	}
}

// processConfirmationReply interprets free text while a navigation awaits
// confirmation. It never re-enters the generation algorithm.
func (o *Orchestrator) processConfirmationReply(ctx context.Context, text string) domain.AssistantResponse {
	outcome := o.classifyConfirmation(ctx, o.pending.Intent.Title, text)
	switch outcome {
	case confirmationYes:
		return o.resolvePendingConfirmed()
	case confirmationNo:
		return o.resolvePendingCancelled()
	default:
		return o.clarificationResponse()
	}
}

// resolvePendingConfirmed appends the confirmation message, fires the
// callback exactly once and clears the slot. Caller holds the mutex.
func (o *Orchestrator) resolvePendingConfirmed() domain.AssistantResponse {
	pending := *o.pending

	text := fmt.Sprintf("Navigating to '%s'.", pending.Intent.Title)
	o.appendMessage(domain.ChatRole_Assistant, text)

	if pending.Intent.OnNavigate != nil {
		pending.Intent.OnNavigate(pending.Entities)
	}
	o.pending = nil

	return domain.AssistantResponse{
		Mode:        domain.ResponseMode_Navigation,
		Title:       pending.Intent.Title,
		Text:        text,
		SpeechText:  speechText(text),
		Suggestions: []string{"What else can you do?"},
		CreatedAt:   o.timeProvider.Now(),
	}
}

// resolvePendingCancelled appends the cancellation message and clears the
// slot without firing the callback. Caller holds the mutex.
func (o *Orchestrator) resolvePendingCancelled() domain.AssistantResponse {
	pending := *o.pending
	o.pending = nil

	text := fmt.Sprintf("Okay, I won't navigate to '%s'.", pending.Intent.Title)
	o.appendMessage(domain.ChatRole_Assistant, text)

	return domain.AssistantResponse{
		Mode:        domain.ResponseMode_Navigation,
		Title:       pending.Intent.Title,
		Text:        text,
		SpeechText:  speechText(text),
		Suggestions: []string{"Is there anything else I can help with?"},
		CreatedAt:   o.timeProvider.Now(),
	}
}

// clarificationResponse re-prompts after an unclear confirmation reply; the
// pending slot stays set.
func (o *Orchestrator) clarificationResponse() domain.AssistantResponse {
	text := fmt.Sprintf(
		"Sorry, I didn't catch that. Would you like me to navigate to '%s'? Please answer yes or no.",
		o.pending.Intent.Title,
	)
	o.appendMessage(domain.ChatRole_Assistant, text)

	return domain.AssistantResponse{
		Mode:        domain.ResponseMode_Clarification,
		Title:       o.pending.Intent.Title,
		Text:        text,
		SpeechText:  speechText(text),
		Suggestions: []string{"Yes, navigate", "No, cancel"},
		CreatedAt:   o.timeProvider.Now(),
	}
}

// gatewayFailureResponse absorbs a gateway failure into the fixed apologetic
// answer. History keeps the already-appended user message; the pending slot
// is untouched.
func (o *Orchestrator) gatewayFailureResponse(ctx context.Context, err error) domain.AssistantResponse {
	o.logger.Printf("model gateway call failed: %v", err)

	safety := domain.SafetyInfo{}
	var gerr *domain.GatewayErr
	if errors.As(err, &gerr) && gerr.Kind == domain.GatewayErrKind_PolicyBlocked {
		safety.Refused = true
		safety.RefusalReason = gerr.BlockReason
	}

	recordGatewayFailure(ctx, err)
	return domain.AssistantResponse{
		Mode:        domain.ResponseMode_Error,
		Title:       "Something went wrong",
		Text:        fallbackAnswerText,
		SpeechText:  speechText(fallbackAnswerText),
		Suggestions: errorSuggestions,
		Safety:      safety,
		CreatedAt:   o.timeProvider.Now(),
	}
}

// presentAnswer wraps final text in the deterministic presentation computed
// from the input alone.
func (o *Orchestrator) presentAnswer(input, answer string, callInfo *domain.FunctionCallInfo) domain.AssistantResponse {
	bucket := classifyInputBucket(input)
	return domain.AssistantResponse{
		Mode:         domain.ResponseMode_Answer,
		Title:        bucketTitle(bucket),
		Text:         answer,
		SpeechText:   speechText(answer),
		Suggestions:  bucketSuggestions(bucket),
		FunctionCall: callInfo,
		Safety:       sniffSafety(answer),
		CreatedAt:    o.timeProvider.Now(),
	}
}

func (o *Orchestrator) appendMessage(role domain.ChatRole, content string) {
	o.history = append(o.history, domain.NewConversationMessage(role, content, o.timeProvider.Now()))
	o.notify()
}

// serializeHistory maps conversation history into gateway turns, oldest
// first. User messages become "user" turns, assistant messages "model".
func (o *Orchestrator) serializeHistory() []domain.ModelTurn {
	turns := make([]domain.ModelTurn, len(o.history))
	for i, msg := range o.history {
		role := domain.ModelRole_User
		if msg.Role == domain.ChatRole_Assistant {
			role = domain.ModelRole_Model
		}
		turns[i] = domain.ModelTurn{Role: role, Parts: []domain.ModelPart{domain.TextPart(msg.Content)}}
	}
	return turns
}
