package framework

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the interface for debug logging within the harness. We use our own
// minimal interface, rather than a full logging library, because per-test debug
// output has to be captured and replayed through the TestLogger rather than going
// to a global sink.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards all output.
func NullLogger() Logger { return nullLogger{} }

type prefixedLogger struct {
	base   Logger
	prefix string
}

func (p prefixedLogger) Printf(message string, args ...interface{}) {
	p.base.Printf(p.prefix+message, args...)
}

// LoggerWithPrefix returns a Logger that prepends a fixed prefix to each message
// before delegating to another Logger.
func LoggerWithPrefix(base Logger, prefix string) Logger {
	return prefixedLogger{base: base, prefix: prefix}
}

// CapturedMessage is one timestamped message of captured debug output.
type CapturedMessage struct {
	Time    time.Time
	Message string
}

// CapturedOutput is a chronological list of captured debug messages.
type CapturedOutput []CapturedMessage

// CapturingLogger is a Logger that buffers output in memory so that it can be
// shown after the test, and only for tests where the configuration wants it.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

// Output returns a copy of all messages captured so far.
func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append(CapturedOutput(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Dump writes the captured messages to dest, one line each, with a prefix.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}
