package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultTimeFormatStr is the timestamp format used by the stdout/test appenders.
const DefaultTimeFormatStr = "2006-01-02T15:04:05.000Z0700"

// Appender is a sink for log entries. Loggers fan out to zero or more appenders.
type Appender interface {
	Write(entry zapcore.Entry, fields []zapcore.Field) error
	Sync() error
}

type stdoutAppender struct{}

// NewStdoutAppender returns an Appender that writes plain tab-separated lines to stdout.
func NewStdoutAppender() Appender {
	return stdoutAppender{}
}

func (stdoutAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	line := fmt.Sprintf("%s\t%s\t%s\t%s\n",
		entry.Time.Format(DefaultTimeFormatStr),
		entry.Level.CapitalString(),
		entry.LoggerName,
		entry.Message)
	if entry.Caller.Defined {
		line = fmt.Sprintf("%s\t%s\t%s\t%s\t%s\n",
			entry.Time.Format(DefaultTimeFormatStr),
			entry.Level.CapitalString(),
			entry.LoggerName,
			callerToString(&entry.Caller),
			entry.Message)
	}
	_, err := fmt.Fprint(os.Stdout, line)
	return err
}

func (stdoutAppender) Sync() error {
	return nil
}

func callerToString(caller *zapcore.EntryCaller) string {
	return caller.TrimmedPath()
}

// NewZapLoggerConfig returns the zap.Config used to build the SugaredLogger that backs
// impl.AsZap; console encoding, colorized levels, no stacktraces.
func NewZapLoggerConfig() zap.Config {
	return zap.Config{
		Level:    GlobalLogLevel,
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}
