// Package logging provides the module's default structured logger: a
// logrus.Entry pre-configured for TTY-aware color output, matching the
// teacher's own ambient logging convention.
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var base = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
	})
	return l
}

// Default returns the package-level logger as a bare *logrus.Entry, ready
// for WithField/WithError chaining.
func Default() *logrus.Entry {
	return logrus.NewEntry(base)
}

// SetLevel adjusts the default logger's verbosity, for hosts that want
// quieter or louder output than the default Info level.
func SetLevel(level logrus.Level) {
	base.SetLevel(level)
}
