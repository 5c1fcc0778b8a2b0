package tools

import (
	"context"
	"strings"
	"time"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
	"github.com/google/uuid"
)

// createdTask is one task recorded by CreateTaskTool.
type createdTask struct {
	ID    uuid.UUID
	Title string
	When  time.Time
}

// CreateTaskTool answers create_task calls. Tasks are kept in memory for
// the lifetime of the tool; there is no persistence behind it.
type CreateTaskTool struct {
	timeProvider domain.CurrentTimeProvider
	created      []createdTask
}

// NewCreateTaskTool creates the task creation tool.
func NewCreateTaskTool(timeProvider domain.CurrentTimeProvider) *CreateTaskTool {
	return &CreateTaskTool{timeProvider: timeProvider}
}

// StatusMessage returns a status message about the tool execution.
func (t *CreateTaskTool) StatusMessage() string {
	return "📝 Creating your task..."
}

// Definition returns the tool declaration for CreateTaskTool.
func (t *CreateTaskTool) Definition() domain.ToolDeclaration {
	return domain.ToolDeclaration{
		Name:        "create_task",
		Description: "Create one task or reminder for the user.",
		Parameters: domain.Schema{
			Type: "object",
			Properties: map[string]domain.Schema{
				"title": {
					Type:        "string",
					Description: "Task title. REQUIRED.",
				},
				"when": {
					Type:        "string",
					Description: "When the task is due, as an ISO 8601 timestamp. REQUIRED.",
				},
			},
			Required: []string{"title", "when"},
		},
	}
}

// Call executes CreateTaskTool.
func (t *CreateTaskTool) Call(_ context.Context, args map[string]any) domain.FunctionResult {
	params := struct {
		Title string `json:"title"`
		When  string `json:"when"`
	}{}
	if err := decodeArguments(args, &params); err != nil {
		return domain.InvalidArgumentsResult(err.Error())
	}
	if strings.TrimSpace(params.Title) == "" {
		return domain.InvalidArgumentsResult("title is required and cannot be empty")
	}
	if strings.TrimSpace(params.When) == "" {
		return domain.InvalidArgumentsResult("when is required and cannot be empty")
	}

	when, ok := parseWhen(params.When, t.timeProvider.Now())
	if !ok {
		return domain.ExecutionFailedResult("could not understand date '" + params.When + "'; an ISO 8601 timestamp is expected")
	}

	task := createdTask{
		ID:    uuid.New(),
		Title: strings.TrimSpace(params.Title),
		When:  when,
	}
	t.created = append(t.created, task)

	return domain.SuccessResult(map[string]any{
		"task_id": task.ID.String(),
		"title":   task.Title,
		"when":    task.When.Format(time.RFC3339),
	})
}

// parseWhen accepts a full RFC 3339 timestamp first, then the looser date
// phrases the model sometimes emits.
func parseWhen(text string, now time.Time) (time.Time, bool) {
	trimmed := strings.TrimSpace(text)
	if when, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return when, true
	}
	return domain.ExtractTimeFromText(trimmed, now, time.UTC)
}
