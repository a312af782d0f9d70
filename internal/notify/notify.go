// Package notify surfaces transient status messages to the user.
package notify

import (
	"fmt"
	"io"
	"time"
)

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// DefaultDismissAfter is how long a notification stays visible in UIs that
// support dismissal.
const DefaultDismissAfter = 6 * time.Second

// Notifier delivers a fire-and-forget status message.
type Notifier interface {
	Notify(msg string, severity Severity)
}

// ConsoleNotifier prints notifications to a writer with a severity tag.
type ConsoleNotifier struct {
	w io.Writer
}

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) Notify(msg string, severity Severity) {
	tag := "INFO"
	switch severity {
	case SeveritySuccess:
		tag = "OK"
	case SeverityError:
		tag = "ERROR"
	case SeverityWarning:
		tag = "WARN"
	}
	fmt.Fprintf(n.w, "[%s] %s\n", tag, msg)
}
