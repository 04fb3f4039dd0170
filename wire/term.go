package wire

import "fmt"

// Atom is an interned symbolic name.
type Atom string

// Tuple is an ordered, fixed-position group of terms.
type Tuple []any

// List is an ordered sequence of terms.
type List []any

// Pair is a single metadata entry.
type Pair struct {
	Key   Atom
	Value any
}

// Map is an ordered key/value collection with unique keys.
type Map []Pair

// NewMap builds a Map from pairs, preserving order. It fails on an empty
// key or a duplicate key; callers treat that as a construction-time fault,
// never a transmit-time one.
func NewMap(pairs []Pair) (Map, error) {
	seen := make(map[Atom]struct{}, len(pairs))
	m := make(Map, 0, len(pairs))
	for _, p := range pairs {
		if p.Key == "" {
			return nil, fmt.Errorf("empty map key")
		}
		if _, dup := seen[p.Key]; dup {
			return nil, fmt.Errorf("duplicate map key %q", p.Key)
		}
		seen[p.Key] = struct{}{}
		m = append(m, p)
	}
	return m, nil
}

// Get returns the value stored under key.
func (m Map) Get(key Atom) (any, bool) {
	for _, p := range m {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// LogRecord assembles the wire tuple for one log record. Field positions
// are part of the consumer contract and must not change.
func LogRecord(level Atom, format string, args List, metadata Map) Tuple {
	return Tuple{AtomLog, level, format, args, metadata}
}
