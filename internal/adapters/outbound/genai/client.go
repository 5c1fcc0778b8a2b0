// Package genai provides the wire-protocol client for a hosted
// generateContent-style text generation REST endpoint.
//
// The client performs exactly one outbound call per invocation: no retries,
// no caching. Transport, HTTP-status and decode failures are surfaced as
// typed domain.GatewayErr values so the orchestration layer can distinguish
// infrastructure failure from provider policy refusal.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cleitonmarx/symbiont-ai-assistant/internal/domain"
)

// requestTimeout bounds one generateContent round trip.
const requestTimeout = 30 * time.Second

// GenerativeAPIClient is a thin client for the generateContent REST API.
// The API key travels as a query parameter on every request.
type GenerativeAPIClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewGenerativeAPIClient creates a new client.
func NewGenerativeAPIClient(baseURL, apiKey string, httpClient *http.Client) GenerativeAPIClient {
	return GenerativeAPIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpClient,
	}
}

// GenerateContent posts one generation request for the given model.
func (c GenerativeAPIClient) GenerateContent(ctx context.Context, model string, req GenerateContentRequest) (*GenerateContentResponse, error) {
	if model == "" {
		return nil, domain.NewValidationErr("model is required")
	}
	if len(req.Contents) == 0 {
		return nil, domain.NewValidationErr("contents are required")
	}

	endpoint, err := url.JoinPath(c.baseURL, "/v1beta/models/", model+":generateContent")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, domain.NewGatewayErr(domain.GatewayErrKind_Transport, fmt.Sprintf("http do: %v", err))
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewGatewayErr(domain.GatewayErrKind_Transport, fmt.Sprintf("read response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gerr := domain.NewGatewayErr(
			domain.GatewayErrKind_HTTPStatus,
			fmt.Sprintf("non-2xx response: %s: %s", resp.Status, string(respBody)),
		)
		gerr.StatusCode = resp.StatusCode
		return nil, gerr
	}

	var out GenerateContentResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, domain.NewGatewayErr(domain.GatewayErrKind_Decode, fmt.Sprintf("unmarshal response: %v", err))
	}

	return &out, nil
}
