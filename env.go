package logbridge

import (
	"sync"

	"github.com/petermattis/goid"

	"github.com/wippyai/logbridge/errors"
	"github.com/wippyai/logbridge/registry"
	"github.com/wippyai/logbridge/wire"
)

// Env is the addressing handle a worker goroutine needs to reach the
// logging consumer. It is lent to nested code for the dynamic extent of a
// With call and must not be stored beyond that scope.
type Env struct {
	reg      *registry.Registry
	consumer wire.Atom
}

// NewEnv creates an Env addressing the default consumer name,
// wire.AtomLoggerProxy.
func NewEnv(reg *registry.Registry) *Env {
	return NewEnvFor(reg, wire.AtomLoggerProxy)
}

// NewEnvFor creates an Env addressing a specific consumer name.
func NewEnvFor(reg *registry.Registry, consumer wire.Atom) *Env {
	return &Env{reg: reg, consumer: consumer}
}

// Consumer returns the well-known name this Env delivers to.
func (e *Env) Consumer() wire.Atom {
	return e.consumer
}

// Whereis resolves a registered name through the Env's registry.
func (e *Env) Whereis(name wire.Atom) (*registry.Proc, bool) {
	return e.reg.Whereis(name)
}

// slots holds the per-goroutine installed Env, keyed by goroutine ID.
// Each goroutine only ever touches its own key, so a sync.Map gives
// contention-free access without a per-slot lock.
var slots sync.Map

// With installs env as the calling goroutine's active context, runs fn,
// and restores whatever was installed before, even if fn panics. Nesting
// works the obvious way: the innermost installed Env wins until its scope
// exits.
func With[R any](env *Env, fn func() R) R {
	id := goid.Get()
	prev, nested := slots.Load(id)
	slots.Store(id, env)
	defer func() {
		if nested {
			slots.Store(id, prev)
		} else {
			slots.Delete(id)
		}
	}()
	return fn()
}

// Do is With for bodies that produce no result.
func Do(env *Env, fn func()) {
	With(env, func() struct{} {
		fn()
		return struct{}{}
	})
}

// Current returns the goroutine's installed Env. It fails with a
// no_active_context error when nothing is installed; callers on the
// delivery path treat that as fatal.
func Current() (*Env, error) {
	if v, ok := slots.Load(goid.Get()); ok {
		return v.(*Env), nil
	}
	return nil, errors.NoActiveContext()
}
