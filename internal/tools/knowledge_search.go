package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
)

const (
	knowledgeSearchDefaultTopK = 3
	knowledgeSearchMaxTopK     = 10
)

// knowledgeEntry is one indexed help article.
type knowledgeEntry struct {
	Title   string
	Snippet string
	Terms   []string
}

// KnowledgeSearchTool answers search_knowledge_base calls against a small
// in-memory help index. It performs no network or disk I/O.
type KnowledgeSearchTool struct {
	entries []knowledgeEntry
}

// NewKnowledgeSearchTool creates the knowledge search tool with the built-in
// help index.
func NewKnowledgeSearchTool() KnowledgeSearchTool {
	return KnowledgeSearchTool{
		entries: []knowledgeEntry{
			{
				Title:   "Getting started",
				Snippet: "Create an account, then follow the setup checklist on the home screen to finish onboarding.",
				Terms:   []string{"start", "setup", "onboarding", "account", "begin"},
			},
			{
				Title:   "Managing notifications",
				Snippet: "Open Settings > Notifications to choose which alerts you receive and how they are delivered.",
				Terms:   []string{"notification", "alert", "push", "email", "mute"},
			},
			{
				Title:   "Creating and organizing tasks",
				Snippet: "Use the plus button or ask the assistant to create a task. Tasks can carry a due date and tags.",
				Terms:   []string{"task", "todo", "create", "due", "tag", "organize"},
			},
			{
				Title:   "Account and billing",
				Snippet: "Billing details, invoices and plan changes live under Settings > Account.",
				Terms:   []string{"billing", "invoice", "plan", "payment", "subscription"},
			},
			{
				Title:   "Troubleshooting sync issues",
				Snippet: "If changes are not appearing on other devices, check your connection and force a sync from Settings.",
				Terms:   []string{"sync", "offline", "refresh", "device", "troubleshoot"},
			},
		},
	}
}

// StatusMessage returns a status message about the tool execution.
func (t KnowledgeSearchTool) StatusMessage() string {
	return "🔎 Searching the knowledge base..."
}

// Definition returns the tool declaration for KnowledgeSearchTool.
func (t KnowledgeSearchTool) Definition() domain.ToolDeclaration {
	return domain.ToolDeclaration{
		Name:        "search_knowledge_base",
		Description: "Search the application help articles for information relevant to the user's question.",
		Parameters: domain.Schema{
			Type: "object",
			Properties: map[string]domain.Schema{
				"query": {
					Type:        "string",
					Description: "The search query. REQUIRED.",
				},
				"top_k": {
					Type:        "integer",
					Description: "Maximum number of results to return, between 1 and 10.",
				},
			},
			Required: []string{"query"},
		},
	}
}

// Call executes KnowledgeSearchTool.
func (t KnowledgeSearchTool) Call(_ context.Context, args map[string]any) domain.FunctionResult {
	params := struct {
		Query string `json:"query"`
		TopK  *int   `json:"top_k"`
	}{}
	if err := decodeArguments(args, &params); err != nil {
		return domain.InvalidArgumentsResult(err.Error())
	}
	if strings.TrimSpace(params.Query) == "" {
		return domain.InvalidArgumentsResult("query is required and cannot be empty")
	}

	topK := knowledgeSearchDefaultTopK
	if params.TopK != nil {
		if *params.TopK < 1 || *params.TopK > knowledgeSearchMaxTopK {
			return domain.InvalidArgumentsResult(
				fmt.Sprintf("top_k must be between 1 and %d", knowledgeSearchMaxTopK),
			)
		}
		topK = *params.TopK
	}

	query := strings.ToLower(params.Query)
	results := make([]any, 0, topK)
	for _, entry := range t.entries {
		if len(results) == topK {
			break
		}
		if t.matches(entry, query) {
			results = append(results, map[string]any{
				"title":   entry.Title,
				"snippet": entry.Snippet,
			})
		}
	}

	return domain.SuccessResult(map[string]any{
		"query":   params.Query,
		"results": results,
	})
}

func (t KnowledgeSearchTool) matches(entry knowledgeEntry, query string) bool {
	if strings.Contains(strings.ToLower(entry.Title), query) {
		return true
	}
	for _, term := range entry.Terms {
		if strings.Contains(query, term) {
			return true
		}
	}
	return false
}
