package domain

import (
	"context"
	"time"
)

// LookupEvent describes one autocomplete lookup.
type LookupEvent struct {
	Field    string        `json:"field"`
	Query    string        `json:"query"`
	Ticket   uint64        `json:"ticket"`
	Results  int           `json:"results"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// SubmitEvent describes one search submission.
type SubmitEvent struct {
	RequestID string        `json:"request_id"`
	Ticket    uint64        `json:"ticket"`
	Status    SearchStatus  `json:"status"`
	Results   int           `json:"results"`
	Err       error         `json:"-"`
	Duration  time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for controller observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnLookupStart     func(context.Context, *LookupEvent)
	OnLookupDone      func(context.Context, *LookupEvent)
	OnLookupDiscarded func(context.Context, *LookupEvent) // Result arrived after a newer query
	OnSubmit          func(context.Context, *SubmitEvent)
	OnSubmitDone      func(context.Context, *SubmitEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnLookupStart:     chainLookup(h.OnLookupStart, other.OnLookupStart),
		OnLookupDone:      chainLookup(h.OnLookupDone, other.OnLookupDone),
		OnLookupDiscarded: chainLookup(h.OnLookupDiscarded, other.OnLookupDiscarded),
		OnSubmit:          chainSubmit(h.OnSubmit, other.OnSubmit),
		OnSubmitDone:      chainSubmit(h.OnSubmitDone, other.OnSubmitDone),
	}
}

func chainLookup(a, b func(context.Context, *LookupEvent)) func(context.Context, *LookupEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *LookupEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainSubmit(a, b func(context.Context, *SubmitEvent)) func(context.Context, *SubmitEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *SubmitEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
