// Package sink provides a reference consumer for the bridge: a registered
// proc that decodes log record tuples and writes them through a zap
// logger.
//
// The consumer owns the format string's placeholder syntax; this
// implementation renders with fmt. Records below MinLevel are dropped
// here, on the consumer side, which is why severity ordering is part of
// the level contract. Malformed records are logged at Warn and counted,
// never fatal: consumer-side problems must not take the host down.
package sink

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/logbridge/registry"
	"github.com/wippyai/logbridge/severity"
	"github.com/wippyai/logbridge/wire"
)

// Consumer drains a mailbox of log record tuples into a zap logger.
type Consumer struct {
	// MinLevel drops records below it. Zero value keeps everything
	// (Debug is the lowest level).
	MinLevel severity.Level

	// Logger receives the rendered records. Nil means a no-op logger.
	Logger *zap.Logger

	malformed atomic.Uint64
}

// Start spawns the consumer proc and registers it under name. The caller
// owns the returned proc and closes it to stop the consumer.
func (c *Consumer) Start(reg *registry.Registry, name wire.Atom) (*registry.Proc, error) {
	p := registry.Spawn(registry.DefaultMailboxDepth, c.handle)
	if err := reg.Register(name, p); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// Malformed reports how many undecodable records arrived so far.
func (c *Consumer) Malformed() uint64 {
	return c.malformed.Load()
}

func (c *Consumer) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

func (c *Consumer) handle(msg any) {
	level, format, args, metadata, ok := decode(msg)
	if !ok {
		c.malformed.Add(1)
		c.logger().Warn("dropping malformed log record", zap.Any("record", msg))
		return
	}
	if level < c.MinLevel {
		return
	}

	fields := make([]zap.Field, 0, len(metadata)+1)
	fields = append(fields, zap.String("severity", level.String()))
	for _, pair := range metadata {
		fields = append(fields, zap.Any(string(pair.Key), pair.Value))
	}

	text := fmt.Sprintf(format, []any(args)...)
	c.logger().Log(zapLevel(level), text, fields...)
}

// decode takes a wire tuple apart, strictly: wrong tag, arity, or field
// type means the record is malformed.
func decode(msg any) (severity.Level, string, wire.List, wire.Map, bool) {
	rec, ok := msg.(wire.Tuple)
	if !ok || len(rec) != 5 || rec[0] != wire.AtomLog {
		return 0, "", nil, nil, false
	}
	levelAtom, ok := rec[1].(wire.Atom)
	if !ok {
		return 0, "", nil, nil, false
	}
	format, ok := rec[2].(string)
	if !ok {
		return 0, "", nil, nil, false
	}
	args, ok := rec[3].(wire.List)
	if !ok {
		return 0, "", nil, nil, false
	}
	metadata, ok := rec[4].(wire.Map)
	if !ok {
		return 0, "", nil, nil, false
	}
	return severity.Parse(string(levelAtom)), format, args, metadata, true
}

// zapLevel maps bridge severities onto zap's smaller level set. Notice
// collapses into Info and everything at Critical or above into Error; the
// severity field keeps the original level visible.
func zapLevel(l severity.Level) zapcore.Level {
	switch {
	case l <= severity.Debug:
		return zap.DebugLevel
	case l <= severity.Notice:
		return zap.InfoLevel
	case l == severity.Warning:
		return zap.WarnLevel
	default:
		return zap.ErrorLevel
	}
}
