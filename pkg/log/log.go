package log

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"time"
)

// Severity of a log message.
type Level string

const (
	FatalLevel    Level = "fatal"
	ErrorLevel    Level = "error"
	WarnLevel     Level = "warn"
	InfoLevel     Level = "info"
	DebugLevel    Level = "debug"
	TraceLevel    Level = "trace"
	DisabledLevel Level = "disabled"
)

// Rank of each level. A message is emitted when its rank is at most
// the rank of the enabled level.
var ranks = map[Level]int{
	TraceLevel:    5,
	DebugLevel:    4,
	InfoLevel:     3,
	WarnLevel:     2,
	ErrorLevel:    1,
	FatalLevel:    0,
	DisabledLevel: -1,
}

// A sink formats messages and hands them to an underlying logger.
type sink struct {
	out   *log.Logger
	level Level
}

func (s *sink) printf(level Level, format string, args ...any) {
	if !enabled(level, s.level) {
		return
	}
	s.println(level, fmt.Sprintf(format, args...))
}

func (s *sink) println(level Level, args ...any) {
	if !enabled(level, s.level) {
		return
	}
	now := time.Now().Local()
	stamp := fmt.Sprintf("%s.%03d", now.Format("2006-01-02 15:04:05"), now.Nanosecond()/1000000)
	line := append([]any{stamp, fmt.Sprintf("- %5s -", level)}, args...)
	s.out.Println(line...)
}

// Messages below warning severity go to stdout, the rest to stderr.
var (
	outSink = &sink{log.New(os.Stdout, "", 0), InfoLevel}
	errSink = &sink{log.New(os.Stderr, "", 0), InfoLevel}
)

// Set the enabled log level for both output streams.
func SetLevel(level Level) error {
	if !Valid(level) {
		return fmt.Errorf("no such log level: %s", level)
	}
	outSink.level = level
	errSink.level = level
	return nil
}

// Check if a level is one of the known severities.
func Valid(level Level) bool {
	_, ok := ranks[level]
	return ok
}

func enabled(level, enabledLevel Level) bool {
	if !Valid(level) || !Valid(enabledLevel) {
		return false
	}
	return ranks[level] <= ranks[enabledLevel]
}

func Trace(args ...any) {
	outSink.println(TraceLevel, args...)
}

func Debug(args ...any) {
	outSink.println(DebugLevel, args...)
}

func Info(args ...any) {
	outSink.println(InfoLevel, args...)
}

func Warn(args ...any) {
	errSink.println(WarnLevel, args...)
}

func Error(args ...any) {
	errSink.println(ErrorLevel, args...)
}

func Fatal(args ...any) {
	errSink.println(FatalLevel, args...)
	debug.PrintStack()
	os.Exit(1)
}

func Tracef(format string, args ...any) {
	outSink.printf(TraceLevel, format, args...)
}

func Debugf(format string, args ...any) {
	outSink.printf(DebugLevel, format, args...)
}

func Infof(format string, args ...any) {
	outSink.printf(InfoLevel, format, args...)
}

func Warnf(format string, args ...any) {
	errSink.printf(WarnLevel, format, args...)
}

func Errorf(format string, args ...any) {
	errSink.printf(ErrorLevel, format, args...)
}

func Fatalf(format string, args ...any) {
	errSink.printf(FatalLevel, format, args...)
	debug.PrintStack()
	os.Exit(1)
}

type writerFunc func([]byte) (int, error)

func (fn writerFunc) Write(data []byte) (int, error) {
	return fn(data)
}

// NewWriter returns an io.Writer that logs every write at the given level.
// Useful for plugging foreign components into the log output.
func NewWriter(level Level) io.Writer {
	return writerFunc(func(data []byte) (int, error) {
		if level == WarnLevel || ranks[level] <= ranks[ErrorLevel] {
			errSink.printf(level, "%s", data)
		} else {
			outSink.printf(level, "%s", data)
		}
		return len(data), nil
	})
}

// DebugError logs an error and each unwrapped cause at debug level.
func DebugError(err error) {
	indent := 1

	Debug(err.Error())

	for {
		if err = errors.Unwrap(err); err == nil {
			break
		}

		Debugf("| %d: %s", indent, err.Error())
		indent += 1
	}
}
