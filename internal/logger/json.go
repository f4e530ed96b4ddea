package logger

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// JSONLogger emits one JSON object per message through zerolog. It
// satisfies the same printf-style interface as Logger.
type JSONLogger struct {
	zl zerolog.Logger
}

// NewJSON creates a JSONLogger writing to out at the given level.
func NewJSON(out io.Writer, level LogLevel) *JSONLogger {
	zl := zerolog.New(out).With().Timestamp().Logger().Level(zerologLevel(level))
	return &JSONLogger{zl: zl}
}

func (l *JSONLogger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msg(fmt.Sprintf(format, args...))
}

func (l *JSONLogger) Info(format string, args ...interface{}) {
	l.zl.Info().Msg(fmt.Sprintf(format, args...))
}

func (l *JSONLogger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msg(fmt.Sprintf(format, args...))
}

func (l *JSONLogger) Error(format string, args ...interface{}) {
	l.zl.Error().Msg(fmt.Sprintf(format, args...))
}

func zerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}
