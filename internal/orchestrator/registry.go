package orchestrator

import (
	"sync"

	"github.com/dreamware/shardkv/internal/connstate"
)

// registry is the orchestrator's single authoritative fd -> connection
// state map. The readiness set and in-flight pipeline stages are
// derived views over the same descriptors; the registry is the only
// place that owns the States themselves.
type registry struct {
	mu   sync.RWMutex
	byFD map[int]*connstate.State
}

func newRegistry() *registry {
	return &registry{byFD: make(map[int]*connstate.State)}
}

func (r *registry) insert(s *connstate.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byFD[s.FD] = s
}

func (r *registry) get(fd int) (*connstate.State, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byFD[fd]
	return s, ok
}

func (r *registry) remove(fd int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byFD, fd)
}

func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byFD)
}

// all returns a snapshot of every currently registered state, used only
// during shutdown to close remaining connections.
func (r *registry) all() []*connstate.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*connstate.State, 0, len(r.byFD))
	for _, s := range r.byFD {
		out = append(out, s)
	}
	return out
}
