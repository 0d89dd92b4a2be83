// Package logger provides diagnostic logging for the FundWise CLI.
// Debug and info messages are only emitted in verbose mode (--verbose);
// warnings and errors are always written. Output goes to stderr by default.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	base              = build(false, os.Stderr)
)

// build creates a console logger writing "[LEVEL] message" lines to w.
func build(v bool, w io.Writer) *zap.Logger {
	level := zapcore.WarnLevel
	if v {
		level = zapcore.DebugLevel
	}

	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "msg",
		LevelKey:   "level",
		EncodeLevel: func(l zapcore.Level, pae zapcore.PrimitiveArrayEncoder) {
			pae.AppendString("[" + l.CapitalString() + "]")
		},
		ConsoleSeparator: " ",
	})

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core)
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	base = build(verbose, output)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = build(verbose, output)
}

// L returns the underlying structured logger for callers that want fields.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	L().Debug(fmt.Sprintf(format, args...))
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	L().Info(fmt.Sprintf("=== %s ===", name))
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	L().Info(fmt.Sprintf(format, args...))
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	L().Warn(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func Error(format string, args ...any) {
	L().Error(fmt.Sprintf(format, args...))
}
