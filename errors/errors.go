package errors

import (
	"fmt"
	"strings"
)

// Stage indicates where in the delivery pipeline the error occurred
type Stage string

const (
	StageResolve Stage = "resolve" // context and consumer resolution
	StageEncode  Stage = "encode"  // argument/metadata value encoding
	StageBuild   Stage = "build"   // message and metadata construction
	StageDeliver Stage = "deliver" // transmission to the consumer
	StageRelay   Stage = "relay"   // panic capture and relay
)

// Kind categorizes the error. Every kind is fatal to the calling unit of
// work; there is no recoverable category in this taxonomy.
type Kind string

const (
	KindNoActiveContext       Kind = "no_active_context"
	KindConsumerUnresolvable  Kind = "consumer_unresolvable"
	KindDuplicateOrInvalidKey Kind = "duplicate_or_invalid_key"
	KindDeliveryFailed        Kind = "delivery_failed"
	KindUseAfterConsumption   Kind = "use_after_consumption"
	KindUnconsumedMessage     Kind = "unconsumed_message"
	KindEncodeFailed          Kind = "encode_failed"
	KindAlreadyRegistered     Kind = "already_registered"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Stage    Stage
	Kind     Kind
	Op       string // builder method or dispatched operation involved
	Key      string // metadata key involved
	Consumer string // consumer name involved
	Detail   string
	Cause    error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Stage))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}
	if e.Key != "" {
		b.WriteString(" key ")
		b.WriteString(e.Key)
	}
	if e.Consumer != "" {
		b.WriteString(" consumer ")
		b.WriteString(e.Consumer)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Stage == t.Stage && e.Kind == t.Kind
	}
	return false
}

// KindOf extracts the Kind from a recovered panic value. It returns the
// empty Kind when v is not a *Error; useful at recovery boundaries and in
// tests asserting on fatal aborts.
func KindOf(v any) Kind {
	if e, ok := v.(*Error); ok {
		return e.Kind
	}
	return ""
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(stage Stage, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Stage: stage,
			Kind:  kind,
		},
	}
}

// Op sets the operation or builder method involved
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Key sets the metadata key involved
func (b *Builder) Key(key string) *Builder {
	b.err.Key = key
	return b
}

// Consumer sets the consumer name involved
func (b *Builder) Consumer(name string) *Builder {
	b.err.Consumer = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NoActiveContext creates the error for delivery attempted with no
// installed execution context on the calling goroutine
func NoActiveContext() *Error {
	return &Error{
		Stage:  StageResolve,
		Kind:   KindNoActiveContext,
		Detail: "no execution context installed on this goroutine",
	}
}

// ConsumerUnresolvable creates the error for a consumer that is not
// registered or not alive
func ConsumerUnresolvable(consumer string, cause error) *Error {
	return &Error{
		Stage:    StageResolve,
		Kind:     KindConsumerUnresolvable,
		Consumer: consumer,
		Detail:   "consumer is not registered or not alive",
		Cause:    cause,
	}
}

// DuplicateOrInvalidKey creates the error for a metadata collection that
// could not be constructed
func DuplicateOrInvalidKey(cause error) *Error {
	return &Error{
		Stage: StageBuild,
		Kind:  KindDuplicateOrInvalidKey,
		Cause: cause,
	}
}

// DeliveryFailed creates the error for a transmission rejected by a
// resolved, live consumer
func DeliveryFailed(consumer string, cause error) *Error {
	return &Error{
		Stage:    StageDeliver,
		Kind:     KindDeliveryFailed,
		Consumer: consumer,
		Cause:    cause,
	}
}

// UseAfterConsumption creates the error for an operation on an
// already-consumed message
func UseAfterConsumption(op string) *Error {
	return &Error{
		Stage:  StageBuild,
		Kind:   KindUseAfterConsumption,
		Op:     op,
		Detail: "message has already been sent or cancelled",
	}
}

// UnconsumedMessage creates the error for a message that was built but
// neither sent nor cancelled
func UnconsumedMessage(format string) *Error {
	return &Error{
		Stage:  StageBuild,
		Kind:   KindUnconsumedMessage,
		Detail: fmt.Sprintf("message %q built but never sent or cancelled", format),
	}
}

// EncodeFailed creates the error for an argument or metadata value that
// could not be encoded into its wire representation
func EncodeFailed(position string, cause error) *Error {
	return &Error{
		Stage:  StageEncode,
		Kind:   KindEncodeFailed,
		Op:     position,
		Detail: "value could not be encoded",
		Cause:  cause,
	}
}
