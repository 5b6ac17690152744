package progress

import (
	"fmt"
	"io"
	"sync"
)

// Logger writes the line-oriented, append-only progress stream consumed by
// the external control surface. Each call emits exactly one line.
type Logger struct {
	mu sync.Mutex
	w  io.Writer
}

// New creates a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Printf writes one formatted, newline-terminated line.
func (l *Logger) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, format+"\n", args...)
}
