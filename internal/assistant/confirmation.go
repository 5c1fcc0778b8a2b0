package assistant

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
	"go.yaml.in/yaml/v3"
)

//go:embed prompts/confirmation.yml
var confirmationPrompt embed.FS

// confirmationOutcome is the classification of a free-text reply to a
// pending navigation question.
type confirmationOutcome int

const (
	confirmationUnclear confirmationOutcome = iota
	confirmationYes
	confirmationNo
)

// Keyword fallback sets used when the classification gateway call fails.
// Exactly one side matching wins; both or neither is unclear.
var (
	positiveWords = []string{"yes", "y", "sure", "ok", "okay", "go", "navigate", "proceed", "continue", "let's go", "take me there"}
	negativeWords = []string{"no", "n", "cancel", "stop", "don't", "not now", "later", "never mind"}
)

type confirmationPromptFile struct {
	ClassifyInstruction string `yaml:"classify_instruction"`
}

func loadConfirmationPrompt() (string, error) {
	file, err := confirmationPrompt.Open("prompts/confirmation.yml")
	if err != nil {
		return "", fmt.Errorf("failed to open confirmation prompt: %w", err)
	}
	defer file.Close() //nolint:errcheck

	var cfg confirmationPromptFile
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return "", fmt.Errorf("failed to decode confirmation prompt: %w", err)
	}
	return cfg.ClassifyInstruction, nil
}

// classifyConfirmation interprets a reply against the pending intent title:
// one tool-less gateway call classifying it YES/NO/UNCLEAR, with the keyword
// classifier as the offline fallback.
func (o *Orchestrator) classifyConfirmation(ctx context.Context, intentTitle, reply string) confirmationOutcome {
	instruction, err := loadConfirmationPrompt()
	if err != nil {
		o.logger.Printf("confirmation prompt unavailable, using keyword fallback: %v", err)
		return classifyByKeywords(reply)
	}

	request := domain.GenerationRequest{
		Turns: []domain.ModelTurn{
			{
				Role:  domain.ModelRole_User,
				Parts: []domain.ModelPart{domain.TextPart(fmt.Sprintf(instruction, intentTitle, reply))},
			},
		},
	}

	resp, err := o.gateway.Generate(ctx, request)
	if err != nil {
		o.logger.Printf("confirmation classification call failed, using keyword fallback: %v", err)
		return classifyByKeywords(reply)
	}
	recordTokensUsed(ctx, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	switch strings.ToLower(strings.TrimSpace(resp.Candidates[0].JoinedText())) {
	case "yes":
		return confirmationYes
	case "no":
		return confirmationNo
	default:
		return confirmationUnclear
	}
}

// classifyByKeywords is the deterministic local classifier.
func classifyByKeywords(reply string) confirmationOutcome {
	normalized := strings.ToLower(strings.TrimSpace(reply))
	if normalized == "" {
		return confirmationUnclear
	}

	positive := containsAnyWord(normalized, positiveWords)
	negative := containsAnyWord(normalized, negativeWords)

	switch {
	case positive && !negative:
		return confirmationYes
	case negative && !positive:
		return confirmationNo
	default:
		return confirmationUnclear
	}
}

// containsAnyWord matches single words on token boundaries and multi-word
// phrases as substrings, so "now" does not match the lone "n".
func containsAnyWord(normalized string, words []string) bool {
	tokens := strings.FieldsFunc(normalized, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '!' || r == '?'
	})
	for _, word := range words {
		if strings.Contains(word, " ") {
			if strings.Contains(normalized, word) {
				return true
			}
			continue
		}
		for _, token := range tokens {
			if token == word {
				return true
			}
		}
	}
	return false
}
