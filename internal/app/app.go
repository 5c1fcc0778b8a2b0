package app

import (
	"github.com/cleitonmarx/symbiont"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/adapters/inbound/http"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/adapters/outbound/config"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/adapters/outbound/genai"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/adapters/outbound/log"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/adapters/outbound/time"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/assistant"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/intents"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/telemetry"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/tools"
)

// NewAssistantApp creates and returns a new instance of the assistant
// application.
func NewAssistantApp(initializers ...symbiont.Initializer) *symbiont.App {
	return symbiont.NewApp().
		Initialize(initializers...).
		Initialize(
			&config.InitDotEnv{},
			&config.InitVaultProvider{},
			&log.InitLogger{},
			&telemetry.InitOpenTelemetry{},
			&telemetry.InitHttpClient{},
			&time.InitCurrentTimeProvider{},

			&genai.InitModelGateway{},
			&tools.InitToolRegistry{},
			&intents.InitIntentRegistry{},
			&assistant.InitOrchestrator{},
		).
		Host(
			&http.AssistantServer{},
		).
		Introspect(&MermaidGraphIntrospector{})
}
