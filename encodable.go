package logbridge

import "github.com/wippyai/logbridge/wire"

// Encodable converts a value into the wire representation understood by
// the consumer. Encode is only called while a valid execution context is
// active; the host-interop layer supplies richer implementations, the
// adapters below cover plain values.
type Encodable interface {
	Encode(env *Env) (any, error)
}

// String is an Encodable plain string.
type String string

func (s String) Encode(_ *Env) (any, error) { return string(s), nil }

// Int is an Encodable signed integer.
type Int int64

func (i Int) Encode(_ *Env) (any, error) { return int64(i), nil }

// Uint is an Encodable unsigned integer.
type Uint uint64

func (u Uint) Encode(_ *Env) (any, error) { return uint64(u), nil }

// Float is an Encodable floating-point number.
type Float float64

func (f Float) Encode(_ *Env) (any, error) { return float64(f), nil }

// Bool is an Encodable boolean.
type Bool bool

func (b Bool) Encode(_ *Env) (any, error) { return bool(b), nil }

// Atom is an Encodable symbolic name.
type Atom wire.Atom

func (a Atom) Encode(_ *Env) (any, error) { return wire.Atom(a), nil }

// Raw is an Encodable wrapping an already-encoded term.
type Raw struct {
	Term any
}

func (r Raw) Encode(_ *Env) (any, error) { return r.Term, nil }
