package sink

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/logbridge"
	"github.com/wippyai/logbridge/message"
	"github.com/wippyai/logbridge/registry"
	"github.com/wippyai/logbridge/severity"
	"github.com/wippyai/logbridge/wire"
)

func startConsumer(t *testing.T, min severity.Level) (*logbridge.Env, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	c := &Consumer{MinLevel: min, Logger: zap.New(core)}

	reg := registry.New()
	p, err := c.Start(reg, wire.AtomLoggerProxy)
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	t.Cleanup(p.Close)
	return logbridge.NewEnv(reg), logs
}

func waitLogs(t *testing.T, logs *observer.ObservedLogs, n int) []observer.LoggedEntry {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for logs.Len() < n {
		select {
		case <-deadline:
			t.Fatalf("observed %d entries, want %d", logs.Len(), n)
		case <-time.After(5 * time.Millisecond):
		}
	}
	return logs.All()
}

func TestConsumer_RendersRecord(t *testing.T) {
	env, logs := startConsumer(t, severity.Debug)

	logbridge.Do(env, func() {
		message.New(severity.Warning, "user %s over quota").
			Arg(logbridge.String("bob")).
			Meta("uid", logbridge.Int(1003)).
			Send()
	})

	entry := waitLogs(t, logs, 1)[0]
	if entry.Message != "user bob over quota" {
		t.Errorf("message = %q", entry.Message)
	}
	if entry.Level != zap.WarnLevel {
		t.Errorf("zap level = %v, want warn", entry.Level)
	}

	fields := entry.ContextMap()
	if fields["severity"] != "warning" {
		t.Errorf("severity field = %v", fields["severity"])
	}
	if fields["uid"] != int64(1003) {
		t.Errorf("uid field = %v", fields["uid"])
	}
}

func TestConsumer_MinLevelFilter(t *testing.T) {
	env, logs := startConsumer(t, severity.Warning)

	logbridge.Do(env, func() {
		message.New(severity.Debug, "dropped").Send()
		message.New(severity.Info, "dropped too").Send()
		message.New(severity.Error, "kept").Send()
	})

	entry := waitLogs(t, logs, 1)[0]
	if entry.Message != "kept" {
		t.Errorf("message = %q", entry.Message)
	}

	// Give the consumer a moment; the filtered records must never appear.
	time.Sleep(20 * time.Millisecond)
	if logs.Len() != 1 {
		t.Errorf("observed %d entries, want 1", logs.Len())
	}
}

func TestConsumer_MalformedRecord(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := &Consumer{Logger: zap.New(core)}

	reg := registry.New()
	p, err := c.Start(reg, wire.AtomLoggerProxy)
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer p.Close()

	if err := p.Send("not a record"); err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	entry := waitLogs(t, logs, 1)[0]
	if entry.Level != zap.WarnLevel {
		t.Errorf("malformed record logged at %v, want warn", entry.Level)
	}
	if c.Malformed() != 1 {
		t.Errorf("Malformed() = %d, want 1", c.Malformed())
	}
}

func TestDecode_Strictness(t *testing.T) {
	md, _ := wire.NewMap(nil)
	good := wire.LogRecord(wire.AtomInfo, "x", wire.List{}, md)

	tests := []struct {
		name string
		msg  any
		ok   bool
	}{
		{"valid", good, true},
		{"not a tuple", "nope", false},
		{"wrong arity", wire.Tuple{wire.AtomLog, wire.AtomInfo, "x"}, false},
		{"wrong tag", wire.Tuple{wire.Atom("metric"), wire.AtomInfo, "x", wire.List{}, md}, false},
		{"level not an atom", wire.Tuple{wire.AtomLog, "info", "x", wire.List{}, md}, false},
		{"format not a string", wire.Tuple{wire.AtomLog, wire.AtomInfo, 3, wire.List{}, md}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, _, ok := decode(tt.msg)
			if ok != tt.ok {
				t.Errorf("decode() ok = %v, want %v", ok, tt.ok)
			}
		})
	}
}

func TestZapLevelMapping(t *testing.T) {
	tests := []struct {
		level severity.Level
		want  zapcore.Level
	}{
		{severity.Debug, zap.DebugLevel},
		{severity.Info, zap.InfoLevel},
		{severity.Notice, zap.InfoLevel},
		{severity.Warning, zap.WarnLevel},
		{severity.Error, zap.ErrorLevel},
		{severity.Critical, zap.ErrorLevel},
		{severity.Alert, zap.ErrorLevel},
		{severity.Emergency, zap.ErrorLevel},
	}
	for _, tt := range tests {
		if got := zapLevel(tt.level); got != tt.want {
			t.Errorf("zapLevel(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
