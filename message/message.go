// Package message implements the log record builder and its delivery
// protocol.
//
// A Log moves through exactly one lifecycle: Building, then either Sent or
// Cancelled. Constructing a Log and letting it fall out of scope without a
// terminal call is a programming error, caught by a runtime leak trap that
// aborts instead of silently dropping the record. All delivery failures
// are fatal: they panic with a structured *errors.Error and are never
// retried or buffered.
package message

import (
	"fmt"
	"runtime"

	"github.com/wippyai/logbridge"
	"github.com/wippyai/logbridge/errors"
	"github.com/wippyai/logbridge/severity"
	"github.com/wippyai/logbridge/wire"
)

// Log is one not-yet-delivered log record. It is single-use: every Log
// must end in exactly one of Send or Cancel. Not safe for concurrent use;
// a Log belongs to the call chain that built it.
type Log struct {
	level    severity.Level
	format   string
	args     []logbridge.Encodable
	metadata []metaEntry
	consumed bool
}

type metaEntry struct {
	key   string
	value logbridge.Encodable
}

// leakHandler fires when a Log is collected while still pending. The
// default aborts.
var leakHandler = func(format string) {
	panic(errors.UnconsumedMessage(format))
}

// SetLeakHandler replaces the fatal handler invoked when a Log is
// collected while still pending, returning the previous handler. The
// default panics with an unconsumed_message error from the finalizer
// goroutine. Intended for tests and for hosts that route fatal signals
// through their own abort path.
func SetLeakHandler(fn func(format string)) func(format string) {
	prev := leakHandler
	leakHandler = fn
	return prev
}

// New creates a Log in the Building state.
//
// Once created, a log message must be sent explicitly. To prevent building
// a message but erroneously failing to send it, a Log collected without
// Send or Cancel trips a fatal runtime check. If a message is legitimately
// built but not sent, use Cancel.
//
//	message.New(severity.Info, "hello, %s").
//	    Arg(logbridge.String("world")).
//	    Send()
func New(level severity.Level, format string) *Log {
	l := &Log{level: level, format: format}
	runtime.SetFinalizer(l, finalize)
	return l
}

func finalize(l *Log) {
	if !l.consumed {
		leakHandler(l.format)
	}
}

func (l *Log) ensureBuilding(op string) {
	if l.consumed {
		panic(errors.UseAfterConsumption(op))
	}
}

// consume moves the Log out of Building and disarms the leak trap.
func (l *Log) consume() {
	l.consumed = true
	runtime.SetFinalizer(l, nil)
}

// Arg appends a positional format argument.
func (l *Log) Arg(v logbridge.Encodable) *Log {
	l.ensureBuilding("Arg")
	l.args = append(l.args, v)
	return l
}

// OptArg appends v if present. A nil Encodable appends nothing at all;
// the positional slot is omitted, not filled with a placeholder.
func (l *Log) OptArg(v logbridge.Encodable) *Log {
	l.ensureBuilding("OptArg")
	if v != nil {
		l.args = append(l.args, v)
	}
	return l
}

// OptArgOr appends v if present, otherwise fallback. Unlike OptArg the
// positional slot always exists.
func (l *Log) OptArgOr(v, fallback logbridge.Encodable) *Log {
	l.ensureBuilding("OptArgOr")
	if v != nil {
		l.args = append(l.args, v)
	} else {
		l.args = append(l.args, fallback)
	}
	return l
}

// Meta appends a metadata key/value pair. Insertion order is preserved on
// the wire; duplicate keys are rejected at Send time.
func (l *Log) Meta(key string, v logbridge.Encodable) *Log {
	l.ensureBuilding("Meta")
	l.metadata = append(l.metadata, metaEntry{key: key, value: v})
	return l
}

// OptMeta appends the pair only if v is present.
func (l *Log) OptMeta(key string, v logbridge.Encodable) *Log {
	l.ensureBuilding("OptMeta")
	if v != nil {
		l.metadata = append(l.metadata, metaEntry{key: key, value: v})
	}
	return l
}

// Send delivers the record to the consumer and consumes the Log.
//
// Steps, in order: resolve the goroutine's execution context, encode every
// argument and metadata value, construct the metadata map, resolve the
// consumer and check it is alive, then transmit. Any failure panics with
// the matching *errors.Error. Failures before the transmission step leave
// the Log in Building, so a caller that traps the abort may still Cancel;
// from the transmission step on the Log counts as consumed and can never
// be sent twice.
func (l *Log) Send() {
	l.ensureBuilding("Send")

	env, err := logbridge.Current()
	if err != nil {
		panic(err)
	}

	args := make(wire.List, 0, len(l.args))
	for i, a := range l.args {
		term, err := a.Encode(env)
		if err != nil {
			panic(errors.EncodeFailed(fmt.Sprintf("arg[%d]", i), err))
		}
		args = append(args, term)
	}

	pairs := make([]wire.Pair, 0, len(l.metadata))
	for _, m := range l.metadata {
		term, err := m.value.Encode(env)
		if err != nil {
			panic(errors.EncodeFailed(fmt.Sprintf("meta[%s]", m.key), err))
		}
		pairs = append(pairs, wire.Pair{Key: wire.Atom(m.key), Value: term})
	}
	metadata, err := wire.NewMap(pairs)
	if err != nil {
		panic(errors.DuplicateOrInvalidKey(err))
	}

	name := env.Consumer()
	proc, ok := env.Whereis(name)
	if !ok {
		panic(errors.ConsumerUnresolvable(string(name), nil))
	}
	if !proc.Alive() {
		panic(errors.New(errors.StageResolve, errors.KindConsumerUnresolvable).
			Op("send").
			Consumer(string(name)).
			Detail("registered proc %s is not alive", proc.ID()).
			Build())
	}

	l.consume()

	record := wire.LogRecord(l.level.Symbol(), l.format, args, metadata)
	if err := proc.Send(record); err != nil {
		panic(errors.DeliveryFailed(string(name), err))
	}
}

// Cancel discards a Log that has not been sent. Cancelling a consumed Log
// is fatal, the same as sending one twice.
func (l *Log) Cancel() {
	if l.consumed {
		panic(errors.UseAfterConsumption("Cancel"))
	}
	l.consume()
}
