// Package registry implements the process registry the bridge uses to
// address its logging consumer.
//
// A Proc is an independently-scheduled goroutine owning a mailbox channel.
// The Registry maps well-known names to live procs; senders resolve the
// name fresh on every delivery, so a consumer that dies and is re-registered
// under the same name keeps working for subsequent sends without any caching
// invalidation.
//
// # Main Types
//
//   - [Proc]: a mailbox-owning process with a unique PID and a liveness flag
//   - [Registry]: name -> proc table with register/unregister/whereis
//
// Sends block until the consumer accepts the message or the proc dies;
// within one sending goroutine, mailbox order equals send order.
package registry
