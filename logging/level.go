package logging

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the severity of a log entry, ordered the same way zap orders its levels.
type Level int32

const (
	// DEBUG is the lowest severity; used for verbose, per-frame mesher tracing.
	DEBUG Level = iota
	// INFO is for ordinary operational messages.
	INFO
	// WARN is for recoverable, per-polygon/per-plane anomalies (e.g. a degenerate normal).
	WARN
	// ERROR is for anomalies that are logged but do not abort the frame (e.g. a missing landmark).
	ERROR
)

// AsZap converts a Level to its zapcore equivalent.
func (lvl Level) AsZap() zapcore.Level {
	switch lvl {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (lvl Level) String() string {
	switch lvl {
	case DEBUG:
		return "Debug"
	case INFO:
		return "Info"
	case WARN:
		return "Warn"
	case ERROR:
		return "Error"
	default:
		return "Unknown"
	}
}

// AtomicLevel is a thread-safe container for a Level that can be changed at runtime.
type AtomicLevel struct {
	val atomic.Int32
}

// NewAtomicLevelAt constructs an AtomicLevel initialized to the given Level.
func NewAtomicLevelAt(level Level) AtomicLevel {
	var al AtomicLevel
	al.Set(level)
	return al
}

// Set updates the level.
func (al *AtomicLevel) Set(level Level) {
	al.val.Store(int32(level))
}

// Get returns the current level.
func (al *AtomicLevel) Get() Level {
	return Level(al.val.Load())
}

// GlobalLogLevel gates the zap loggers built by impl.AsZap; setting it to DebugLevel
// makes every impl logger observe debug logs regardless of its own configured level.
var GlobalLogLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
