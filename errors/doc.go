// Package errors provides the structured error type used across the bridge.
//
// Errors are categorized by Stage (where in the delivery pipeline the
// failure happened) and Kind (what failed). Every Kind in this package is
// fatal: the bridge never recovers from its own failures, it panics with a
// *Error so the failing unit of work aborts loudly instead of dropping a
// log record on the floor.
//
// Use the Builder for structured construction:
//
//	err := errors.New(errors.StageDeliver, errors.KindDeliveryFailed).
//		Consumer("logger_proxy").
//		Detail("mailbox rejected the record").
//		Build()
//
// Or the convenience constructors for the common cases:
//
//	err := errors.NoActiveContext()
//	err := errors.UseAfterConsumption("Send")
//
// All errors implement the standard error interface and support
// errors.Is/As; Is matches on Stage and Kind.
package errors
