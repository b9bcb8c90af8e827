package observability

import (
	"fmt"
	"io"
	"sync"
)

// ConsoleLogger writes key=value formatted log lines to an io.Writer. It is
// used by the CLI; library code only sees the Logger interface.
type ConsoleLogger struct {
	mu     sync.Mutex
	out    io.Writer
	min    Level
	fields []Field
}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

func NewConsoleLogger(out io.Writer, min Level) *ConsoleLogger {
	return &ConsoleLogger{out: out, min: min}
}

func (l *ConsoleLogger) log(level Level, msg string, fields []Field) {
	if level < l.min {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%-5s %s", level, msg)
	for _, f := range l.fields {
		fmt.Fprintf(l.out, " %s=%v", f.Key(), f.Value())
	}
	for _, f := range fields {
		fmt.Fprintf(l.out, " %s=%v", f.Key(), f.Value())
	}
	fmt.Fprintln(l.out)
}

func (l *ConsoleLogger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *ConsoleLogger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *ConsoleLogger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *ConsoleLogger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

func (l *ConsoleLogger) With(fields ...Field) Logger {
	child := &ConsoleLogger{out: l.out, min: l.min}
	child.fields = append(append([]Field{}, l.fields...), fields...)
	return child
}
