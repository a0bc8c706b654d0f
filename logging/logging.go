// Package logging sets up the process-wide structured logger and a
// recover-to-crash-file hook, grounded on the stack the vibetunnel example
// declares (go.uber.org/zap) rather than the teacher's ad hoc fmt.Println
// calls.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process-wide logger: a human-readable console encoder
// writing to stderr in dev, plus a JSON file encoder writing to
// logDir/oriterm.log, always both active so a release build's file log
// doesn't cost the developer their console output.
func New(logDir string) (*zap.SugaredLogger, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(logDir, "oriterm.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), zapcore.InfoLevel),
		zapcore.NewCore(fileEncoder, zapcore.Lock(logFile), zapcore.DebugLevel),
	)
	return zap.New(core).Sugar(), nil
}

// InstallCrashHook returns a deferred function that, on panic, writes the
// panic value and stack trace to crashDir/crash-<timestamp>.log, logs it
// through log, and re-panics so the process still exits non-zero — the
// fatal-error policy never swallows a panic, it only makes sure it left a
// diagnosable trace first.
func InstallCrashHook(log *zap.SugaredLogger, crashDir string) func() {
	return func() {
		r := recover()
		if r == nil {
			return
		}
		stack := debug.Stack()
		path := filepath.Join(crashDir, fmt.Sprintf("crash-%d.log", time.Now().UnixNano()))
		_ = os.WriteFile(path, []byte(fmt.Sprintf("panic: %v\n\n%s", r, stack)), 0o644)
		if log != nil {
			log.Errorw("fatal panic", "panic", r, "crash_file", path)
			log.Sync()
		}
		panic(r)
	}
}
