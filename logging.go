package ackspec

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// LogLevel specifies the severity of a log message.
type LogLevel int

// Various logging levels (or subsystems) which can categorize the message.
// Currently these are ordered in decreasing severity.
const (
	LogError LogLevel = iota
	LogWarn
	LogInfo
	LogDebug
	LogTrace
	LogMaxVerbosity
)

// Logger defines a logging interface. You can either use one of the default loggers
// (DefaultStdioLogger(), VerboseStdioLogger()) or implement your own.
type Logger interface {
	// Outputs logging information:
	// level is the verbosity level
	// offset is the position within the calling stack from which the message
	// originated. This is useful for contextual loggers which retrieve file/line
	// information.
	Log(level LogLevel, offset int, format string, v ...interface{}) error
}

type defaultLogger struct {
	Level    LogLevel
	GoLogger *log.Logger
}

func (l *defaultLogger) Log(level LogLevel, offset int, format string, v ...interface{}) error {
	if level > l.Level {
		return nil
	}
	s := fmt.Sprintf(format, v...)
	return l.GoLogger.Output(offset+2, s)
}

var (
	globalDefaultLogger = defaultLogger{
		GoLogger: log.New(os.Stderr, "ACKSPEC ", log.Lmicroseconds|log.Lshortfile), Level: LogDebug,
	}

	globalVerboseLogger = defaultLogger{
		GoLogger: globalDefaultLogger.GoLogger, Level: LogMaxVerbosity,
	}

	globalLogger atomic.Value
)

type loggerHolder struct {
	logger Logger
}

// DefaultStdioLogger gets the default standard I/O logger.
//
//	ackspec.SetLogger(ackspec.DefaultStdioLogger())
func DefaultStdioLogger() Logger {
	return &globalDefaultLogger
}

// VerboseStdioLogger is a more verbose level of DefaultStdioLogger(). Trace
// messages, such as every registry lookup, will also be emitted.
//
//	ackspec.SetLogger(ackspec.VerboseStdioLogger())
func VerboseStdioLogger() Logger {
	return &globalVerboseLogger
}

// SetLogger sets a logger to be used by the library. A logger can be obtained via
// the DefaultStdioLogger() or VerboseStdioLogger() functions. You can also implement
// your own logger using the Logger interface. Passing nil disables logging.
func SetLogger(logger Logger) {
	globalLogger.Store(loggerHolder{logger: logger})
}

func getLogger() Logger {
	holder, ok := globalLogger.Load().(loggerHolder)
	if !ok {
		return nil
	}
	return holder.logger
}

func logExf(level LogLevel, offset int, format string, v ...interface{}) {
	logger := getLogger()
	if logger != nil {
		err := logger.Log(level, offset+1, format, v...)
		if err != nil {
			log.Printf("Logger error occurred (%s)\n", err)
		}
	}
}

func logWarnf(format string, v ...interface{}) {
	logExf(LogWarn, 1, format, v...)
}

func logTracef(format string, v ...interface{}) {
	logExf(LogTrace, 1, format, v...)
}

func logDebugf(format string, v ...interface{}) {
	logExf(LogDebug, 1, format, v...)
}

func redactUserData(v interface{}) string {
	return fmt.Sprintf("<ud>%v</ud>", v)
}
