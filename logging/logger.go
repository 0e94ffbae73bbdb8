package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides thread-safe leveled logging on top of zap
type Logger struct {
	level     zap.AtomicLevel
	console   io.Writer
	sugar     *zap.SugaredLogger
	component string
	logFile   *os.File
	mu        *sync.Mutex
	fileName  string
}

// NewLogger creates a new logger writing to stderr at INFO level
func NewLogger() *Logger {
	return newLogger(os.Stderr)
}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() *Logger {
	return &Logger{
		level: zap.NewAtomicLevelAt(zapcore.InfoLevel),
		sugar: zap.NewNop().Sugar(),
		mu:    &sync.Mutex{},
	}
}

func newLogger(console io.Writer) *Logger {
	l := &Logger{
		level:   zap.NewAtomicLevelAt(INFO.zapLevel()),
		console: console,
		mu:      &sync.Mutex{},
	}
	l.rebuild()
	return l
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.CallerKey = zapcore.OmitKey
	return cfg
}

// rebuild recreates the zap core from the console writer and the optional log file.
// Caller must hold l.mu or own l exclusively.
func (l *Logger) rebuild() {
	if l.console == nil {
		return
	}

	enc := zapcore.NewConsoleEncoder(encoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(l.console)), l.level),
	}
	if l.logFile != nil {
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.Lock(l.logFile), l.level))
	}

	base := zap.New(zapcore.NewTee(cores...))
	if l.component != "" {
		base = base.With(zap.String("component", l.component))
	}
	l.sugar = base.Sugar()
}

// SetLevel sets the log level from a string
func (l *Logger) SetLevel(levelStr string) {
	level, ok := LogLevelFromString(levelStr)
	if !ok {
		fmt.Fprintf(os.Stderr, "Invalid log level: %s, using INFO\n", levelStr)
	}
	l.level.SetLevel(level.zapLevel())
}

// Level returns the current level
func (l *Logger) Level() LogLevel {
	switch l.level.Level() {
	case zapcore.DebugLevel:
		return DEBUG
	case zapcore.WarnLevel:
		return WARN
	case zapcore.ErrorLevel:
		return ERROR
	default:
		return INFO
	}
}

// SetOutputFile sets the output file for logs. An empty name disables the file sink.
func (l *Logger) SetOutputFile(fileName string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Close existing file if open
	if l.logFile != nil {
		l.logFile.Close()
		l.logFile = nil
		l.fileName = ""
	}

	if fileName != "" {
		file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			l.rebuild()
			return fmt.Errorf("failed to open log file: %w", err)
		}
		l.logFile = file
		l.fileName = fileName
	}

	l.rebuild()
	return nil
}

// Named returns a child logger tagged with the given component.
// The child shares level, sinks and lock with its parent.
func (l *Logger) Named(component string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	child := &Logger{
		level:     l.level,
		console:   l.console,
		component: component,
		logFile:   l.logFile,
		mu:        l.mu,
		fileName:  l.fileName,
	}
	if child.console == nil {
		child.sugar = l.sugar
		return child
	}
	child.rebuild()
	return child
}

// Sync flushes buffered log entries
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

// Close flushes and closes the log file, if any
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_ = l.sugar.Sync()
	if l.logFile == nil {
		return nil
	}
	err := l.logFile.Close()
	l.logFile = nil
	return err
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}
