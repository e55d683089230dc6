package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/skyscout/pkg/domain"
)

// LoggingHooks logs lookups and submissions at debug level, failures at warn.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLookupStart: func(ctx context.Context, e *domain.LookupEvent) {
			logger.DebugContext(ctx, "lookup_start", "field", e.Field, "query", e.Query, "ticket", e.Ticket)
		},
		OnLookupDone: func(ctx context.Context, e *domain.LookupEvent) {
			logger.DebugContext(ctx, "lookup_done",
				"field", e.Field,
				"ticket", e.Ticket,
				"results", e.Results,
				"duration", e.Duration,
			)
		},
		OnLookupDiscarded: func(ctx context.Context, e *domain.LookupEvent) {
			logger.DebugContext(ctx, "lookup_discarded", "field", e.Field, "query", e.Query, "ticket", e.Ticket)
		},
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			logger.DebugContext(ctx, "submit", "request_id", e.RequestID, "ticket", e.Ticket)
		},
		OnSubmitDone: func(ctx context.Context, e *domain.SubmitEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "submit_failed", "request_id", e.RequestID, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "submit_done",
				"request_id", e.RequestID,
				"status", e.Status,
				"results", e.Results,
				"duration", e.Duration,
			)
		},
	}
}
