// Package intents implements the navigation intent registry: dynamic tool
// schema generation for the model and local keyword matching as the offline
// fallback.
package intents

import (
	"sort"
	"strings"
	"sync"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
)

// Scoring weights for local matching. Keyword hits weigh less than a full
// sample utterance hit; title containment is the weakest signal.
const (
	keywordScore   = 2
	utteranceScore = 3
	titleScore     = 1
)

// registeredIntent pairs an intent with its registration sequence number,
// which breaks score ties deterministically.
type registeredIntent struct {
	intent domain.AppIntent
	seq    int
}

// Manager is the concurrency-safe intent registry. Re-registering an id
// replaces the intent but keeps its original position for tie-breaking and
// listing.
type Manager struct {
	mu      sync.RWMutex
	intents map[string]registeredIntent
	nextSeq int
}

// NewManager creates an empty intent registry.
func NewManager() *Manager {
	return &Manager{intents: make(map[string]registeredIntent)}
}

// Register adds or replaces the intent under its id.
func (m *Manager) Register(intent domain.AppIntent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.intents[intent.ID]; ok {
		m.intents[intent.ID] = registeredIntent{intent: intent, seq: existing.seq}
		return
	}
	m.intents[intent.ID] = registeredIntent{intent: intent, seq: m.nextSeq}
	m.nextSeq++
}

// RegisterAll registers intents in order.
func (m *Manager) RegisterAll(intents []domain.AppIntent) {
	for _, intent := range intents {
		m.Register(intent)
	}
}

// Get returns the intent registered under id.
func (m *Manager) Get(id string) (domain.AppIntent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.intents[id]
	return entry.intent, ok
}

// List returns all registered intents in registration order.
func (m *Manager) List() []domain.AppIntent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ordered()
}

func (m *Manager) ordered() []domain.AppIntent {
	entries := make([]registeredIntent, 0, len(m.intents))
	for _, entry := range m.intents {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})
	out := make([]domain.AppIntent, len(entries))
	for i, entry := range entries {
		out[i] = entry.intent
	}
	return out
}

// ToolSchema returns the synthetic navigation tool declaration. The
// intent_id parameter enumerates the registered ids so the model can only
// name intents that actually exist.
func (m *Manager) ToolSchema() (domain.ToolDeclaration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.intents) == 0 {
		return domain.ToolDeclaration{}, false
	}

	ordered := m.ordered()
	ids := make([]string, len(ordered))
	var desc strings.Builder
	desc.WriteString("Navigate the user to a screen or feature of the application. Available destinations:")
	for i, intent := range ordered {
		ids[i] = intent.ID
		desc.WriteString("\n- ")
		desc.WriteString(intent.ID)
		desc.WriteString(": ")
		desc.WriteString(intent.Title)
		if intent.Description != "" {
			desc.WriteString(" (")
			desc.WriteString(intent.Description)
			desc.WriteString(")")
		}
	}

	return domain.ToolDeclaration{
		Name:        domain.NavigateToolName,
		Description: desc.String(),
		Parameters: domain.Schema{
			Type: "object",
			Properties: map[string]domain.Schema{
				"intent_id": {
					Type:        "string",
					Description: "The id of the destination intent.",
					Enum:        ids,
				},
			},
			Required: []string{"intent_id"},
		},
	}, true
}

// MatchLocally scores the input against every registered intent. Keywords
// count per substring hit, sample utterances and titles count on symmetric
// containment. A strictly highest positive score wins; ties resolve to the
// earliest-registered intent.
func (m *Manager) MatchLocally(text string) (domain.IntentMatch, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return domain.IntentMatch{}, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	best := domain.IntentMatch{}
	bestSeq := -1
	for _, entry := range m.intents {
		score, matched := scoreIntent(entry.intent, normalized)
		if score == 0 {
			continue
		}
		if score > best.Score || (score == best.Score && (bestSeq == -1 || entry.seq < bestSeq)) {
			best = domain.IntentMatch{
				Intent: entry.intent,
				Score:  score,
				Entities: map[string]any{
					"query":            text,
					"matched_keywords": matched,
				},
			}
			bestSeq = entry.seq
		}
	}

	if best.Score == 0 {
		return domain.IntentMatch{}, false
	}
	return best, true
}

func scoreIntent(intent domain.AppIntent, normalized string) (int, []string) {
	score := 0
	matched := []string{}

	for _, keyword := range intent.Keywords {
		kw := strings.ToLower(strings.TrimSpace(keyword))
		if kw == "" {
			continue
		}
		if strings.Contains(normalized, kw) {
			score += keywordScore
			matched = append(matched, keyword)
		}
	}

	for _, utterance := range intent.SampleUtterances {
		sample := strings.ToLower(strings.TrimSpace(utterance))
		if sample == "" {
			continue
		}
		if strings.Contains(normalized, sample) || strings.Contains(sample, normalized) {
			score += utteranceScore
		}
	}

	title := strings.ToLower(strings.TrimSpace(intent.Title))
	if title != "" && (strings.Contains(normalized, title) || strings.Contains(title, normalized)) {
		score += titleScore
	}

	return score, matched
}
