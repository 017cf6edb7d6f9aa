// Package klog wraps github.com/charmbracelet/log into the small
// factory shape the teacher's own logger package used
// (logger.New(prefix)), so every converter-internal package can accept
// an optional *log.Logger without depending on a process-wide
// singleton directly (SPEC_FULL.md §1).
package klog

import (
	"os"

	"github.com/charmbracelet/log"
)

var def = New("kanaconv")

// New builds a logger prefixed with prefix, writing to stderr, at
// the default charmbracelet/log level (Info).
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
	})
}

// Default returns the package-wide fallback logger. Converter
// internals use this only when the caller passed a nil *log.Logger
// into a constructor.
func Default() *log.Logger {
	return def
}
