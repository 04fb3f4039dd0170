// Package fault turns a panic on a worker goroutine into one Critical log
// record instead of an invisible abnormal termination.
//
// The protocol is split in two because the full delivery path is not safe
// to use mid-unwind: capture stores diagnostics in a goroutine-local slot
// and nothing else, and Relay, invoked later by the dispatch wrapper once
// the panic has been caught at a recovery boundary and a valid execution
// context re-established, drains the slot and ships it through the
// standard delivery protocol.
package fault

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"

	"github.com/wippyai/logbridge"
	"github.com/wippyai/logbridge/message"
	"github.com/wippyai/logbridge/severity"
)

// Location is a source position. Column is zero when the host cannot
// provide one; Go stack frames never carry columns.
type Location struct {
	File   string
	Line   int
	Column int
}

// Record is the captured diagnostics of one fault.
type Record struct {
	Message string
	Loc     *Location
}

// Info is what a fault boundary hands to the capture hook: the raw panic
// payload plus the panic site, when known.
type Info struct {
	Payload any
	Loc     *Location
}

// unknownPayload stands in for panic payloads that are neither a string
// nor an error.
const unknownPayload = "unrecognized panic payload"

// noRecordMessage is relayed when no fault was captured before Relay.
const noRecordMessage = "unable to find panic information"

// panicFormat identifies the faulted operation, its arity, and the fault
// site. Interpreted by the consumer, not by the bridge.
const panicFormat = "logbridge_panic[%s/%s@%s:%s:%s]: %s"

// records holds the per-goroutine capture slot, keyed by goroutine ID.
// One slot per goroutine, last write wins: a goroutine that faulted is
// tearing down, not accumulating work.
var records sync.Map

// installed flips once, at Install time. Reads happen on arbitrary
// worker goroutines, possibly concurrent with a late Install, so the
// flag is atomic.
var installed atomic.Bool

// Install registers the capture hook. Idempotent and safe to call
// concurrently with captures; repeat calls are no-ops. Until Install
// runs, OnFault and OnPanic capture nothing and Relay reports the
// placeholder record.
func Install() {
	installed.Store(true)
}

// OnFault runs the capture hook for one fault. It overwrites the calling
// goroutine's slot and returns; it neither stops nor resumes unwinding.
// Safe to call mid-unwind: no allocation beyond the record itself, no
// locking beyond the slot store, nothing that can itself fault.
func OnFault(info Info) {
	if !installed.Load() {
		return
	}
	records.Store(goid.Get(), Record{
		Message: payloadMessage(info.Payload),
		Loc:     info.Loc,
	})
}

// OnPanic is the form recovery boundaries use: it derives the panic site
// from the current stack and feeds the recovered value through OnFault.
// It must be called from a deferred function while the panic is still
// being handled, otherwise the site cannot be found.
func OnPanic(recovered any) {
	OnFault(Info{Payload: recovered, Loc: panicSite()})
}

// take drains the calling goroutine's slot.
func take() (Record, bool) {
	v, ok := records.LoadAndDelete(goid.Get())
	if !ok {
		return Record{}, false
	}
	return v.(Record), true
}

func payloadMessage(payload any) string {
	switch v := payload.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return unknownPayload
	}
}

// panicSite walks the current stack for the frame that raised the panic:
// the first non-runtime frame below runtime.gopanic.
func panicSite() *Location {
	var pcs [64]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	seenPanic := false
	for {
		frame, more := frames.Next()
		switch {
		case frame.Function == "runtime.gopanic":
			seenPanic = true
		case seenPanic && !strings.HasPrefix(frame.Function, "runtime."):
			return &Location{File: frame.File, Line: frame.Line}
		}
		if !more {
			return nil
		}
	}
}

// Relay drains the goroutine's capture slot and delivers it as one
// Critical record through the standard protocol. The caller must have a
// valid execution context installed; any delivery failure is fatal, there
// is no fallback sink.
//
// An empty slot relays the placeholder message with unknown location
// fields, so a relay without a preceding fault is still observable rather
// than silently absent.
func Relay(operation string, arity uint) {
	rec, ok := take()

	file, line, column := "<unknown>", "?", "?"
	if ok && rec.Loc != nil {
		file = rec.Loc.File
		line = strconv.Itoa(rec.Loc.Line)
		if rec.Loc.Column > 0 {
			column = strconv.Itoa(rec.Loc.Column)
		}
	}

	var text logbridge.Encodable
	if ok {
		text = logbridge.String(rec.Message)
	}

	message.New(severity.Critical, panicFormat).
		Arg(logbridge.String(operation)).
		Arg(logbridge.String(strconv.FormatUint(uint64(arity), 10))).
		Arg(logbridge.String(file)).
		Arg(logbridge.String(line)).
		Arg(logbridge.String(column)).
		OptArgOr(text, logbridge.String(noRecordMessage)).
		Meta("file", logbridge.String(file)).
		Meta("line", logbridge.String(line)).
		Meta("column", logbridge.String(column)).
		Send()
}
