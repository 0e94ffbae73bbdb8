package logging

import "go.uber.org/zap/zapcore"

// LogLevel defines the severity of log messages
type LogLevel int

const (
	// DEBUG level is used for detailed debugging messages, such as per-probe results
	DEBUG LogLevel = iota
	// INFO level is used for informational messages
	INFO
	// WARN level is used for recoverable problems
	WARN
	// ERROR level is used for error messages
	ERROR
)

// LogLevelFromString converts a string to a LogLevel
func LogLevelFromString(level string) (LogLevel, bool) {
	switch level {
	case "DEBUG":
		return DEBUG, true
	case "INFO":
		return INFO, true
	case "WARN":
		return WARN, true
	case "ERROR":
		return ERROR, true
	default:
		return INFO, false
	}
}

// String returns the string representation of a LogLevel
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
