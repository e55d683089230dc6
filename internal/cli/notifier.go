package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aretw0/skyscout/pkg/ports"
)

type writerNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewNotifier prints notifications as system messages on w, errors marked with "!!!".
func NewNotifier(w io.Writer) ports.Notifier {
	return &writerNotifier{w: w}
}

func (n *writerNotifier) Notify(_ context.Context, severity ports.Severity, message string) {
	prefix := ">>>"
	if severity == ports.SeverityError {
		prefix = "!!!"
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s %s\n", prefix, message)
}
