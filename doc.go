// Package logbridge lets code running in host-dispatched worker goroutines
// emit structured log records, and panic diagnostics, to an external
// logging consumer addressed through a process registry.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	logbridge/          Root package with the Env handle, the per-goroutine
//	                    context registry, and the Encodable interface
//	├── severity/       Ordered log levels with parse/display/symbol forms
//	├── wire/           Term model and well-known atoms for the record tuple
//	├── errors/         Structured fatal error taxonomy
//	├── registry/       Process registry and mailbox procs
//	├── message/        Log builder and the exactly-once delivery protocol
//	├── fault/          Panic capture store and Critical-severity relay
//	├── dispatch/       Call wrapper composing context, boundary, and relay
//	└── sink/           Reference zap-backed consumer
//
// # Quick Start
//
// Stand up a consumer, then dispatch worker calls through the bridge:
//
//	reg := registry.New()
//	consumer := &sink.Consumer{MinLevel: severity.Info, Logger: logger}
//	proc, _ := consumer.Start(reg, wire.AtomLoggerProxy)
//	defer proc.Close()
//
//	fault.Install()
//	env := logbridge.NewEnv(reg)
//
//	err := dispatch.Call(env, "greet", 1, func() {
//	    message.New(severity.Info, "hello, %s").
//	        Arg(logbridge.String("world")).
//	        Meta("worker", logbridge.Int(1)).
//	        Send()
//	})
//
// # Delivery Contract
//
// Every message constructed with message.New must end in exactly one of
// Send or Cancel. A message dropped while still pending trips a fatal
// runtime check; delivery failures of any kind abort the calling unit of
// work. The bridge never buffers, retries, or silently discards a record.
//
// # Concurrency Model
//
// The context slot and the panic capture slot are goroutine-local. No
// operation is asynchronous: Send blocks until the consumer's mailbox
// accepts the record, so records from one goroutine arrive in send order.
// Consumer resolution happens fresh on every Send, which tolerates a
// consumer restart between two sends.
package logbridge
