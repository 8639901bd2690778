// Package log provides the logger used throughout the emulator.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging interface accepted by every component.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	// SetDebug toggles whether Debugf output is emitted.
	SetDebug(enabled bool)
}

type logger struct {
	l *logrus.Logger
}

// New returns a Logger writing plain text to stderr.
func New() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}

	return &logger{l: l}
}

// Wrap returns a Logger backed by an existing logrus logger.
func Wrap(l *logrus.Logger) Logger {
	return &logger{l: l}
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.l.Infof(format, args...)
}

func (l *logger) Warnf(format string, args ...interface{}) {
	l.l.Warnf(format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.l.Errorf(format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.l.Debugf(format, args...)
}

func (l *logger) SetDebug(enabled bool) {
	if enabled {
		l.l.SetLevel(logrus.DebugLevel)
	} else {
		l.l.SetLevel(logrus.InfoLevel)
	}
}
