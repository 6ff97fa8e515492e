package kit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Endpoint is a transport-agnostic action function.
// Each action (lemmatize, lemmatize_raw, dictionary_info) is an Endpoint.
// HTTP handlers, MCP tools and the CLI all dispatch to the same Endpoints.
type Endpoint func(ctx context.Context, request any) (response any, err error)

// Middleware wraps an Endpoint with cross-cutting concerns (logging, request IDs).
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares so the first is outermost.
// Chain(a, b, c)(endpoint) == a(b(c(endpoint)))
func Chain(outer Middleware, others ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(others) - 1; i >= 0; i-- {
			next = others[i](next)
		}
		return outer(next)
	}
}

// RequestID assigns a fresh UUID to requests that arrive without one.
func RequestID() Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, req any) (any, error) {
			if GetRequestID(ctx) == "" {
				ctx = WithRequestID(ctx, uuid.NewString())
			}
			return next(ctx, req)
		}
	}
}

// Logging logs one line per call at debug level, or at warn when the
// endpoint fails.
func Logging(logger *slog.Logger, name string) Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, req any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			attrs := []any{
				"endpoint", name,
				"request_id", GetRequestID(ctx),
				"transport", GetTransport(ctx),
				"duration", time.Since(start),
			}
			if err != nil {
				logger.WarnContext(ctx, "endpoint failed", append(attrs, "error", err)...)
			} else {
				logger.DebugContext(ctx, "endpoint", attrs...)
			}
			return resp, err
		}
	}
}
