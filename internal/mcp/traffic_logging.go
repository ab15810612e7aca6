package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// trafficLoggingMiddleware logs every MCP request and response at debug level.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			sessionID, params := inspectRequest(req)
			base := []any{"direction", direction, "method", method, "session_id", sessionID}
			logger.DebugContext(ctx, "mcp request", append(base, "params", jsonPayload{params})...)

			start := time.Now()
			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}

			attrs := append(base, "duration_ms", time.Since(start).Milliseconds(), "result", jsonPayload{result})
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			logger.DebugContext(ctx, "mcp response", attrs...)
			return result, err
		}
	}
}

// inspectRequest reads the session id and params. Some request types panic
// on a nil session, so both lookups are guarded.
func inspectRequest(req sdkmcp.Request) (sessionID string, params any) {
	if req == nil {
		return "", nil
	}
	defer func() { _ = recover() }()
	params = req.GetParams()
	if session := req.GetSession(); session != nil {
		sessionID = session.ID()
	}
	return sessionID, params
}

// jsonPayload defers marshalling until the handler formats the record.
type jsonPayload struct{ v any }

func (p jsonPayload) LogValue() slog.Value {
	if p.v == nil {
		return slog.StringValue("<nil>")
	}
	data, err := json.Marshal(p.v)
	if err != nil {
		return slog.StringValue(fmt.Sprintf("%T", p.v))
	}
	return slog.StringValue(string(data))
}
