package shape

import (
	"log/slog"
	"sync"
)

// Registry interns shapes by key. It is safe for concurrent use; two callers
// racing to resolve the same unseen key observe the same *Shape.
type Registry struct {
	logger *slog.Logger
	shapes sync.Map // Key: Key, Value: *Shape
}

// NewRegistry creates an empty registry. A nil logger falls back to
// slog.Default().
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry. It is created on first use and
// never cleared.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(nil)
	})
	return defaultRegistry
}

// Resolve returns the canonical shape for key, creating it from positional
// and labels on first use. On a hit the arguments are not compared with the
// cached entry; keeping key, positional and labels consistent is the
// caller's job.
func (r *Registry) Resolve(key Key, positional int, labels []string) *Shape {
	if s, ok := r.shapes.Load(key); ok {
		return s.(*Shape)
	}
	actual, loaded := r.shapes.LoadOrStore(key, New(key, positional, labels))
	if !loaded {
		r.logger.Debug("Registered record shape.", "key", key, "positional", positional, "labels", labels)
	}
	return actual.(*Shape)
}

// Lookup returns the shape registered under key, if any.
func (r *Registry) Lookup(key Key) (*Shape, bool) {
	s, ok := r.shapes.Load(key)
	if !ok {
		return nil, false
	}
	return s.(*Shape), true
}

// Len returns the number of registered shapes.
func (r *Registry) Len() int {
	n := 0
	r.shapes.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
