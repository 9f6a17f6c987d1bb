package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/research-queue/internal/application/mediator"
)

// PrometheusMiddleware creates a middleware that records command execution metrics
//
// Records execution duration and success/failure counts per request type.
// Command names are extracted via reflection and simplified to remove package prefixes.
// For example: "*commands.AdvanceProgressCommand" becomes "AdvanceProgressCommand"
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		commandName := extractCommandName(request)
		start := time.Now()

		response, err := next(ctx, request)

		collector.RecordCommandExecution(commandName, time.Since(start).Seconds(), err == nil)

		return response, err
	}
}

// extractCommandName extracts a clean command name from the request using reflection
// Examples:
//   - "*commands.EnqueueProjectsCommand" → "EnqueueProjectsCommand"
//   - "*queries.GetQueueQuery" → "GetQueueQuery"
func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if idx := strings.LastIndex(fullName, "."); idx >= 0 {
		return fullName[idx+1:]
	}
	return fullName
}
