package registry

import (
	"errors"
	"sync"

	"github.com/wippyai/logbridge/wire"
)

// ErrNameTaken is returned by Register when the name is held by a live proc.
var ErrNameTaken = errors.New("name is registered to a live proc")

// Registry maps well-known names to procs.
type Registry struct {
	names map[wire.Atom]*Proc
	mu    sync.RWMutex
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		names: make(map[wire.Atom]*Proc),
	}
}

// Register binds name to p. A name held by a dead proc may be taken over;
// this is the consumer-restart path. Registering over a live proc fails.
func (r *Registry) Register(name wire.Atom, p *Proc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.names[name]; ok && old.Alive() && old != p {
		return ErrNameTaken
	}
	r.names[name] = p
	return nil
}

// Unregister removes the binding for name, if any.
func (r *Registry) Unregister(name wire.Atom) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.names, name)
}

// Whereis resolves name to its proc. The result is never cached by
// callers; every delivery resolves fresh.
func (r *Registry) Whereis(name wire.Atom) (*Proc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.names[name]
	return p, ok
}
