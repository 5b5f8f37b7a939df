// Package progress implements the repair-loop progress sink (§6):
// iteration boundaries, weakening choices, and terminal outcomes
// surfaced to a caller-supplied sink, decoupled from any particular
// logging backend.
package progress

import "go.uber.org/zap"

// Sink receives repair-loop progress events. Implementations must be
// safe for concurrent use.
type Sink interface {
	// Debug logs a fine-grained event (iteration boundary, weakening
	// candidate chosen, oracle-call count).
	Debug(msg string, fields ...Field)
	// Info logs a terminal or milestone event (repair succeeded, round
	// discarded, strategy selected).
	Info(msg string, fields ...Field)
}

// Field is a single structured log attribute, kept backend-agnostic so
// callers don't need to import zap to implement Sink.
type Field struct {
	Key   string
	Value any
}

// F constructs a Field.
func F(key string, value any) Field { return Field{Key: key, Value: value} }

func toZap(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}

// ZapSink adapts a *zap.Logger to Sink (§6's "progress sink" backed by
// structured logging, matching the teacher corpus's zap usage).
type ZapSink struct {
	log *zap.Logger
}

// NewZapSink wraps log as a Sink. A nil log is replaced with zap.NewNop().
func NewZapSink(log *zap.Logger) *ZapSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapSink{log: log}
}

func (z *ZapSink) Debug(msg string, fields ...Field) { z.log.Debug(msg, toZap(fields)...) }
func (z *ZapSink) Info(msg string, fields ...Field)  { z.log.Info(msg, toZap(fields)...) }

// noop discards every event; used as the default Sink when a caller
// doesn't supply one.
type noop struct{}

func (noop) Debug(string, ...Field) {}
func (noop) Info(string, ...Field)  {}

// Noop returns a Sink that discards all events.
func Noop() Sink { return noop{} }
