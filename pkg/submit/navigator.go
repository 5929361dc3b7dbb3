package submit

import "sync"

// Navigator accepts a destination path. Fire-and-forget: the pipeline never
// consumes a return value.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts an ordinary function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

// NavRecorder captures navigation requests for inspection in tests.
type NavRecorder struct {
	mu    sync.Mutex
	paths []string
}

// NewNavRecorder creates an empty recorder.
func NewNavRecorder() *NavRecorder {
	return &NavRecorder{}
}

func (r *NavRecorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

// Paths returns a copy of every destination received so far.
func (r *NavRecorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}
