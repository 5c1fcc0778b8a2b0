package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/assistant"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-assistant/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
	"github.com/rs/cors"
)

// AssistantServer exposes the conversational assistant over a JSON REST API.
// It plays the role of the host application: intents registered through it
// navigate into an in-memory feed the host can poll.
type AssistantServer struct {
	Port         int                        `config:"HTTP_PORT" default:"8080"`
	Logger       *log.Logger                `resolve:""`
	Orchestrator *assistant.Orchestrator    `resolve:""`
	TimeProvider domain.CurrentTimeProvider `resolve:""`

	mu          sync.Mutex
	navigations []NavigationEvent
}

// Run starts the HTTP server for the AssistantServer.
func (api *AssistantServer) Run(ctx context.Context) error {

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", api.Healthz)
	mux.HandleFunc("GET /introspect", IntrospectHandler)

	mux.HandleFunc("POST /api/v1/assistant/message", api.PostMessage)
	mux.HandleFunc("POST /api/v1/assistant/confirm", api.PostConfirm)
	mux.HandleFunc("POST /api/v1/assistant/cancel", api.PostCancel)
	mux.HandleFunc("POST /api/v1/assistant/intents", api.PostIntents)
	mux.HandleFunc("GET /api/v1/assistant/history", api.GetHistory)
	mux.HandleFunc("DELETE /api/v1/assistant/history", api.DeleteHistory)
	mux.HandleFunc("GET /api/v1/assistant/navigations", api.GetNavigations)

	var h http.Handler = telemetry.Middleware("assistant-api")(mux)

	// Apply CORS at the top-level so preflight requests hit it, too.
	h = cors.AllowAll().Handler(h)

	s := &http.Server{
		Handler: h,
		Addr:    fmt.Sprintf(":%d", api.Port),
	}

	errCh := make(chan error, 1)
	go func() {
		api.Logger.Printf("AssistantServer: Listening on port %d", api.Port)
		errCh <- s.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.Shutdown(shutdownCtx)
		if err != nil {
			api.Logger.Printf("AssistantServer: error during shutdown: %v", err)
		} else {
			api.Logger.Println("AssistantServer: stopped")
		}
		return err
	case err := <-errCh:
		return err
	}
}

// Healthz reports liveness.
func (api *AssistantServer) Healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{Status: "ok"})
}

// IntrospectHandler serves the application's dependency graph as a Mermaid
// document, for debugging and testing purposes.
func IntrospectHandler(w http.ResponseWriter, r *http.Request) {
	mermaidGraph, err := depend.ResolveNamed[string]("introspection-graph-mermaid")
	if err != nil {
		http.Error(w, "Failed to resolve dependency graph", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(mermaidGraph))
}

// IsReady checks if the AssistantServer is ready by performing a health check.
func (api *AssistantServer) IsReady(ctx context.Context) error {
	resp, err := http.Get(fmt.Sprintf("http://:%d/healthz", api.Port))
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}
