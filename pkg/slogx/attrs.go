// Package slogx carries small log/slog attribute helpers shared across the
// module.
package slogx

import (
	"fmt"
	"log/slog"
)

// KeyLoggerName is the attribute key naming the emitting subsystem.
const KeyLoggerName = "logger"

// Error renders err under the "error" key.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// ByteString renders a byte slice as a string attribute.
func ByteString(key string, value []byte) slog.Attr {
	return slog.String(key, string(value))
}

// Stringer renders any fmt.Stringer under the given key.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

// LoggerName tags a record with the emitting subsystem's name.
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}
