package logging

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// LogrusLogger implements the application logger over logrus.
type LogrusLogger struct {
	entry *log.Entry
}

// NewLogrusLogger returns a logger writing through l. A nil l means the logrus standard logger.
func NewLogrusLogger(l *log.Logger) *LogrusLogger {
	if l == nil {
		l = log.StandardLogger()
	}
	return &LogrusLogger{entry: log.NewEntry(l)}
}

// With returns a logger that attaches key=value to every line.
func (l *LogrusLogger) With(key string, value any) *LogrusLogger {
	return &LogrusLogger{entry: l.entry.WithField(key, value)}
}

func (l *LogrusLogger) Printf(format string, v ...any) {
	l.entry.Infof(format, v...)
}

func (l *LogrusLogger) Debugf(format string, v ...any) {
	l.entry.Debugf(format, v...)
}

// ParseLevel maps a settings level name onto logrus; unknown names fall back to info.
func ParseLevel(name string) log.Level {
	switch strings.ToLower(name) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) Printf(string, ...any) {}
func (Nop) Debugf(string, ...any) {}

