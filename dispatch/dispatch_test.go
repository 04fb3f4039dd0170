package dispatch_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/wippyai/logbridge"
	"github.com/wippyai/logbridge/dispatch"
	"github.com/wippyai/logbridge/fault"
	"github.com/wippyai/logbridge/message"
	"github.com/wippyai/logbridge/registry"
	"github.com/wippyai/logbridge/severity"
	"github.com/wippyai/logbridge/wire"
)

func testEnv(t *testing.T, depth int) (*logbridge.Env, *registry.Proc) {
	t.Helper()
	reg := registry.New()
	p := registry.NewProc(depth)
	t.Cleanup(p.Close)
	if err := reg.Register(wire.AtomLoggerProxy, p); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	return logbridge.NewEnv(reg), p
}

func receiveRecord(t *testing.T, p *registry.Proc) wire.Tuple {
	t.Helper()
	msg, ok := p.Receive()
	if !ok {
		t.Fatal("no record delivered")
	}
	return msg.(wire.Tuple)
}

func TestCall_Success(t *testing.T) {
	env, p := testEnv(t, 1)

	err := dispatch.Call(env, "greet", 1, func() {
		message.New(severity.Info, "hello, %s").
			Arg(logbridge.String("world")).
			Send()
	})
	if err != nil {
		t.Fatalf("Call() error: %v", err)
	}

	rec := receiveRecord(t, p)
	if rec[1] != wire.AtomInfo || rec[2] != "hello, %s" {
		t.Errorf("record = %#v", rec)
	}

	// The context does not outlive the call.
	if _, err := logbridge.Current(); err == nil {
		t.Error("context leaked past Call")
	}
}

func TestCall_PanicRelaysOneCriticalRecord(t *testing.T) {
	fault.Install()
	env, p := testEnv(t, 2)

	err := dispatch.Call(env, "explode", 3, func() {
		panic("boom")
	})
	if err == nil {
		t.Fatal("Call() should report the panic")
	}
	if !errors.Is(err, dispatch.ErrPanicked) {
		t.Errorf("err = %v, want ErrPanicked", err)
	}
	if !strings.Contains(err.Error(), "explode/3") {
		t.Errorf("err = %v, want operation and arity named", err)
	}

	rec := receiveRecord(t, p)
	if rec[1] != wire.AtomCritical {
		t.Errorf("level = %v, want critical", rec[1])
	}
	args := rec[3].(wire.List)
	if args[0] != "explode" || args[1] != "3" {
		t.Errorf("operation args = %v/%v", args[0], args[1])
	}
	if args[len(args)-1] != "boom" {
		t.Errorf("final arg = %v, want the panic message", args[len(args)-1])
	}
	if file, _ := args[2].(string); !strings.HasSuffix(file, "dispatch_test.go") {
		t.Errorf("captured file = %q", file)
	}

	// Exactly one record.
	p.Close()
	if extra, ok := p.Receive(); ok {
		t.Errorf("unexpected second record: %#v", extra)
	}
}

func TestCall_PanicWithErrorPayload(t *testing.T) {
	fault.Install()
	env, p := testEnv(t, 1)

	wantErr := errors.New("wrapped failure")
	err := dispatch.Call(env, "wrap", 0, func() {
		panic(wantErr)
	})
	if !errors.Is(err, dispatch.ErrPanicked) {
		t.Fatalf("err = %v", err)
	}

	args := receiveRecord(t, p)[3].(wire.List)
	if args[len(args)-1] != "wrapped failure" {
		t.Errorf("relayed message = %v", args[len(args)-1])
	}
}
