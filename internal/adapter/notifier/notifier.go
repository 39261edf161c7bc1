package notifier

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogNotifier emits user messages as log entries, for headless deployments.
type LogNotifier struct {
	log logrus.FieldLogger
}

func NewLogNotifier(log logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Error(message string) {
	n.log.WithField("notification", "error").Error(message)
}

// WriterNotifier prints one line per message, e.g. to a terminal's stderr.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "error: %s\n", message)
}
