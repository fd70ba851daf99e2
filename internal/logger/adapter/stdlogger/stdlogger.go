// Package stdlogger adapts the global zerolog logger to printf style
// interfaces such as the gorm logger writer.
package stdlogger

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to the global zerolog logger.
type Logger struct {
	component string
	level     zerolog.Level // level used by Printf
}

// New returns a Logger tagged with component "std" printing on info level.
func New() *Logger {
	return &Logger{component: "std", level: zerolog.InfoLevel}
}

// NewWithLevel returns a Logger tagged with component whose Printf logs on level.
func NewWithLevel(component string, level zerolog.Level) *Logger {
	return &Logger{component: component, level: level}
}

func (l *Logger) logf(level zerolog.Level, format string, args ...interface{}) {
	log.WithLevel(level).Str("component", l.component).Msgf(strings.TrimSpace(format), args...)
}

// Printf implements gorm's logger.Writer.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.logf(l.level, format, args...)
}

// Debugf logs on debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(zerolog.DebugLevel, format, args...)
}

// Infof logs on info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(zerolog.InfoLevel, format, args...)
}

// Warningf logs on warn level.
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.logf(zerolog.WarnLevel, format, args...)
}

// Errorf logs on error level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(zerolog.ErrorLevel, format, args...)
}
