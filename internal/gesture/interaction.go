package gesture

import (
	"log"
	"sync"
)

// Handle marks one in-progress user interaction
type Handle int

// Registry tracks interaction handles and defers low-priority work until no
// handle is outstanding
type Registry struct {
	mu     sync.Mutex
	next   Handle
	active map[Handle]struct{}
	queue  []func()
}

// NewRegistry creates an empty interaction registry
func NewRegistry() *Registry {
	return &Registry{
		active: make(map[Handle]struct{}),
	}
}

// CreateHandle registers a new interaction
func (r *Registry) CreateHandle() Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.active[r.next] = struct{}{}
	return r.next
}

// ClearHandle ends an interaction. When it was the last one, queued tasks run
// in the order they were queued. Clearing an unknown handle is a no-op.
func (r *Registry) ClearHandle(h Handle) {
	r.mu.Lock()
	if _, ok := r.active[h]; !ok {
		r.mu.Unlock()
		return
	}
	delete(r.active, h)

	var tasks []func()
	if len(r.active) == 0 {
		tasks = r.queue
		r.queue = nil
	}
	r.mu.Unlock()

	if len(tasks) > 0 {
		log.Printf("Interactions settled, running %d deferred task(s)", len(tasks))
	}
	for _, task := range tasks {
		task()
	}
}

// RunAfterInteractions runs task now if no interaction is active, otherwise
// once the last active handle is cleared
func (r *Registry) RunAfterInteractions(task func()) {
	r.mu.Lock()
	if len(r.active) > 0 {
		r.queue = append(r.queue, task)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	task()
}

// Active returns the number of outstanding handles
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// Deferred returns the number of queued tasks
func (r *Registry) Deferred() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}
