package logging

import (
	"io"
	"os"
	"sync"
)

// swapWriter forwards writes to a target that can be replaced while
// loggers hold on to the swapWriter itself.
type swapWriter struct {
	mu     sync.RWMutex
	target io.Writer
}

func (s *swapWriter) Write(p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.target.Write(p)
}

func (s *swapWriter) swap(w io.Writer) io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.target
	s.target = w
	return prev
}

var stderrSink = &swapWriter{target: os.Stderr}

// SetGlobalOutput redirects the stderr sink of every logger and returns the
// writer it replaced. The TUI host points it at io.Discard while it owns
// the screen.
func SetGlobalOutput(w io.Writer) (previous io.Writer) {
	return stderrSink.swap(w)
}

// GetGlobalOutput returns the writer loggers use for stderr.
func GetGlobalOutput() io.Writer {
	return stderrSink
}
