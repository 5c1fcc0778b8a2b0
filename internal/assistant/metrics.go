package assistant

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter           = otel.Meter("assistant")
	turnsProcessed  metric.Int64Counter
	toolExecutions  metric.Int64Counter
	gatewayFailures metric.Int64Counter
	tokensUsed      metric.Int64Counter
)

func init() {
	var err error
	turnsProcessed, err = meter.Int64Counter(
		"assistant_turns_processed_total",
		metric.WithDescription("Total processed conversation turns"),
	)
	if err != nil {
		panic(err)
	}
	toolExecutions, err = meter.Int64Counter(
		"assistant_tool_executions_total",
		metric.WithDescription("Total tool executions dispatched by the orchestrator"),
	)
	if err != nil {
		panic(err)
	}
	gatewayFailures, err = meter.Int64Counter(
		"assistant_gateway_failures_total",
		metric.WithDescription("Total model gateway calls absorbed as apologetic answers"),
	)
	if err != nil {
		panic(err)
	}
	// Tokens consumed by the model (input + output)
	tokensUsed, err = meter.Int64Counter(
		"model_tokens_used_total",
		metric.WithDescription("Total model tokens consumed"),
	)
	if err != nil {
		panic(err)
	}
}

func recordTurnProcessed(ctx context.Context, mode string) {
	turnsProcessed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", mode),
	))
}

func recordToolExecution(ctx context.Context, toolName string, succeeded bool) {
	toolExecutions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool", toolName),
		attribute.Bool("succeeded", succeeded),
	))
}

func recordGatewayFailure(ctx context.Context, err error) {
	gatewayFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("error", err.Error()),
	))
}

// recordTokensUsed records the token usage of one model generation call.
func recordTokensUsed(ctx context.Context, promptTokens, completionTokens int) {
	tokensUsed.Add(ctx, int64(promptTokens), metric.WithAttributes(
		attribute.String("token_type", "prompt"),
	))
	tokensUsed.Add(ctx, int64(completionTokens), metric.WithAttributes(
		attribute.String("token_type", "completion"),
	))
}
