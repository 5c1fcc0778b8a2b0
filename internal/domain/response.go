package domain

import "time"

// ResponseMode tags how a per-turn response was produced.
type ResponseMode string

const (
	// ResponseMode_Answer is a direct natural-language answer.
	ResponseMode_Answer ResponseMode = "answer"
	// ResponseMode_ConfirmNavigation asks the user to confirm a pending
	// navigation intent.
	ResponseMode_ConfirmNavigation ResponseMode = "confirm_navigation"
	// ResponseMode_Clarification re-prompts after an unclear confirmation
	// reply.
	ResponseMode_Clarification ResponseMode = "clarification"
	// ResponseMode_Navigation reports a confirmed or cancelled navigation.
	ResponseMode_Navigation ResponseMode = "navigation"
	// ResponseMode_Error is the apologetic fallback after a gateway failure.
	ResponseMode_Error ResponseMode = "error"
)

// FunctionCallInfo describes the tool invocation behind a response, when any.
type FunctionCallInfo struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// SafetyInfo is the per-response safety descriptor.
type SafetyInfo struct {
	ContainsPII     bool   `json:"contains_pii"`
	NeedsDisclaimer bool   `json:"needs_disclaimer"`
	Refused         bool   `json:"refused"`
	RefusalReason   string `json:"refusal_reason,omitempty"`
}

// AssistantResponse is the structured per-turn output of the orchestrator.
// The orchestrator's last-response slot holds exactly one, the most recent.
type AssistantResponse struct {
	Mode         ResponseMode      `json:"mode"`
	Title        string            `json:"title,omitempty"`
	Text         string            `json:"text"`
	SpeechText   string            `json:"speech_text,omitempty"`
	Suggestions  []string          `json:"suggestions,omitempty"`
	FunctionCall *FunctionCallInfo `json:"function_call,omitempty"`
	Safety       SafetyInfo        `json:"safety"`
	CreatedAt    time.Time         `json:"created_at"`
}

// IsZero reports whether the response is the zero value.
func (r AssistantResponse) IsZero() bool {
	return r.Mode == "" && r.Text == ""
}
