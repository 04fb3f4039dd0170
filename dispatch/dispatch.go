// Package dispatch wraps host-dispatched calls so their logging context is
// installed for the call's duration and their panics come back out as one
// Critical log record plus an error, instead of a dead goroutine.
//
// Hosts call fault.Install once at load time, then route every worker call
// through Call. Code generated around host entry points is expected to do
// exactly what Call does; Call is the hand-written form.
package dispatch

import (
	goerrors "errors"
	"fmt"

	"github.com/wippyai/logbridge"
	"github.com/wippyai/logbridge/fault"
	"github.com/wippyai/logbridge/wire"
)

// ErrPanicked tags the error returned when the dispatched function
// panicked. The returned error wraps it; match with errors.Is.
var ErrPanicked = goerrors.New(string(wire.AtomPanicked))

// Call installs env as the goroutine's execution context and runs fn
// under a recovery boundary. On panic it captures the fault, relays it as
// a Critical record while the context is still valid, and returns an
// ErrPanicked-wrapped error naming the operation and arity. A failure of
// the relay itself is fatal and propagates.
func Call(env *logbridge.Env, operation string, arity uint, fn func()) error {
	return logbridge.With(env, func() error {
		return protect(operation, arity, fn)
	})
}

func protect(operation string, arity uint, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fault.OnPanic(r)
			fault.Relay(operation, arity)
			err = fmt.Errorf("%w: %s/%d", ErrPanicked, operation, arity)
		}
	}()
	fn()
	return nil
}
