// Package logging builds the application logger: timestamped, levelled lines
// written both to an append-mode log file and to the console.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log file and line format
const (
	DefaultLogFile   = "download.log"
	TimeLayout       = "2006-01-02 15:04:05,000"
	FieldSeparator   = " - "
	LogFilePerm      = 0644
	LogFileOpenFlags = os.O_APPEND | os.O_CREATE | os.O_WRONLY
)

// Options configures the logger sinks
type Options struct {
	// FilePath is the log file, opened in append mode. Empty disables the file sink.
	FilePath string
	// Console receives a copy of every line. Defaults to os.Stdout.
	Console io.Writer
	// Level is the minimum enabled level. Defaults to Info.
	Level zapcore.Level
}

// New creates a logger writing to the configured sinks. The returned close
// function flushes the logger and closes the log file.
func New(opts Options) (*zap.Logger, func() error, error) {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	encoder := zapcore.NewConsoleEncoder(EncoderConfig())
	level := zap.NewAtomicLevelAt(opts.Level)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(console)), level),
	}

	var file *os.File
	if opts.FilePath != "" {
		f, err := os.OpenFile(opts.FilePath, LogFileOpenFlags, LogFilePerm)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", opts.FilePath, err)
		}
		file = f
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(file), level))
	}

	logger := zap.New(zapcore.NewTee(cores...))

	closeFn := func() error {
		// Sync on a terminal stdout fails with EINVAL, nothing to report
		_ = logger.Sync()
		if file != nil {
			return file.Close()
		}
		return nil
	}

	return logger, closeFn, nil
}

// EncoderConfig returns the line format shared by both sinks:
// "<time> - <LEVEL> - <message>" followed by structured fields.
func EncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		NameKey:          "logger",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(TimeLayout),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: FieldSeparator,
	}
}

// OrNop returns logger, or a no-op logger when it is nil
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
