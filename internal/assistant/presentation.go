package assistant

import (
	"regexp"
	"strings"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
)

// inputBucket is the coarse topic class of a user input, used only for
// deterministic presentation (titles and follow-up suggestions).
type inputBucket int

const (
	bucketGeneric inputBucket = iota
	bucketGreeting
	bucketHelp
	bucketReminder
	bucketSearch
)

var bucketKeywords = map[inputBucket][]string{
	bucketGreeting: {"hello", "hi ", "hey", "good morning", "good afternoon", "good evening"},
	bucketHelp:     {"help", "how do i", "how to", "what can you", "support"},
	bucketReminder: {"remind", "reminder", "task", "todo", "schedule"},
	bucketSearch:   {"search", "find", "look up", "where", "show me"},
}

// bucketOrder fixes evaluation order so overlapping inputs classify
// deterministically.
var bucketOrder = []inputBucket{bucketGreeting, bucketHelp, bucketReminder, bucketSearch}

// classifyInputBucket sniffs the input for coarse topic keywords.
func classifyInputBucket(input string) inputBucket {
	normalized := strings.ToLower(strings.TrimSpace(input)) + " "
	for _, bucket := range bucketOrder {
		for _, keyword := range bucketKeywords[bucket] {
			if strings.Contains(normalized, keyword) {
				return bucket
			}
		}
	}
	return bucketGeneric
}

func bucketTitle(bucket inputBucket) string {
	switch bucket {
	case bucketGreeting:
		return "Hello there"
	case bucketHelp:
		return "Here to help"
	case bucketReminder:
		return "Your tasks"
	case bucketSearch:
		return "Search results"
	default:
		return "Assistant"
	}
}

func bucketSuggestions(bucket inputBucket) []string {
	switch bucket {
	case bucketGreeting:
		return []string{"What can you do?", "Show me around", "Create a task"}
	case bucketHelp:
		return []string{"Search the knowledge base", "What can you do?", "Create a task"}
	case bucketReminder:
		return []string{"Create another task", "Show my tasks", "What else can you do?"}
	case bucketSearch:
		return []string{"Refine the search", "Search for something else", "What can you do?"}
	default:
		return []string{"Tell me more", "What can you do?"}
	}
}

var (
	markdownEmphasisRe = regexp.MustCompile(`[*_]{1,3}([^*_]+)[*_]{1,3}`)
	bulletGlyphRe      = regexp.MustCompile(`(?m)^\s*[-*•]\s+`)
	piiRe              = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b|\b(?:\+?\d[\d\s-]{8,}\d)\b|\b\d{3}-\d{2}-\d{4}\b`)
)

var disclaimerTerms = []string{"medical", "diagnosis", "legal advice", "lawyer", "financial advice", "investment", "medication"}

// speechText converts display text into a speech-friendly variant: markdown
// emphasis markers and bullet glyphs are stripped, whitespace collapsed.
func speechText(text string) string {
	out := markdownEmphasisRe.ReplaceAllString(text, "$1")
	out = bulletGlyphRe.ReplaceAllString(out, "")
	out = strings.Join(strings.Fields(out), " ")
	return strings.TrimSpace(out)
}

// sniffSafety computes the per-response safety descriptor from the final
// text alone. The refusal flag is owned by the gateway error path, not here.
func sniffSafety(text string) domain.SafetyInfo {
	normalized := strings.ToLower(text)
	info := domain.SafetyInfo{
		ContainsPII: piiRe.MatchString(text),
	}
	for _, term := range disclaimerTerms {
		if strings.Contains(normalized, term) {
			info.NeedsDisclaimer = true
			break
		}
	}
	return info
}
