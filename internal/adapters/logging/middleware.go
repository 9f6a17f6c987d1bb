package logging

import (
	"context"
	"fmt"
	"path"
	"reflect"
	"time"

	"github.com/andrescamacho/research-queue/internal/application/common"
	"github.com/andrescamacho/research-queue/internal/application/mediator"
)

// LoggingMiddleware logs every command and query dispatched through the mediator
func LoggingMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger := common.LoggerFromContext(ctx)
		name := requestName(request)
		start := time.Now()

		logger.Log(common.LevelDebug, "Handling request", map[string]interface{}{
			"request": name,
		})

		response, err := next(ctx, request)

		metadata := map[string]interface{}{
			"request":     name,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log(common.LevelError, "Request failed", metadata)
			return response, err
		}

		logger.Log(common.LevelDebug, "Request handled", metadata)
		return response, nil
	}
}

func requestName(request mediator.Request) string {
	t := reflect.TypeOf(request)
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return fmt.Sprintf("%s.%s", path.Base(t.PkgPath()), t.Name())
}
