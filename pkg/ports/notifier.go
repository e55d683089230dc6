package ports

import "context"

// Severity grades a transient notification.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notifier receives transient, user-facing notifications (toasts).
// Implementations must not block for long; they are called on the submitting goroutine.
type Notifier interface {
	Notify(ctx context.Context, severity Severity, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, severity Severity, message string)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, severity Severity, message string) {
	f(ctx, severity, message)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

// Notify does nothing.
func (NopNotifier) Notify(context.Context, Severity, string) {}
