// Package wire defines the value model for records crossing the bridge.
//
// The consumer receives one fixed-shape Tuple per log record:
//
//	Tuple{AtomLog, level Atom, format string, args List, metadata Map}
//
// Positions are fixed; the format string is opaque to this package and is
// interpreted by the consumer alone. Atoms are interned symbolic names; the
// well-known ones (the record tag, the severity names, the consumer's
// registered name) are declared here so both sides of the bridge agree on
// them without string duplication.
//
// Map preserves insertion order and rejects duplicate or empty keys at
// construction time, so a malformed metadata set is caught before anything
// is transmitted.
package wire
