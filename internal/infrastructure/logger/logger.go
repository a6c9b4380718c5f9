package logger

import (
	"log"
	"os"

	usecasecontract "github.com/dcastillo/user-service/internal/usecase/contract"
)

// StdLogger is a leveled logger built on the standard log package.
type StdLogger struct {
	out *log.Logger
}

// NewStdLogger creates a new StdLogger writing to stdout.
func NewStdLogger() usecasecontract.IAppLogger {
	return &StdLogger{out: log.New(os.Stdout, "", log.LstdFlags)}
}

var _ usecasecontract.IAppLogger = (*StdLogger)(nil)

// Debugf logs a debug message.
func (l *StdLogger) Debugf(format string, args ...interface{}) {
	l.out.Printf("[DEBUG] "+format, args...)
}

// Infof logs an info message.
func (l *StdLogger) Infof(format string, args ...interface{}) {
	l.out.Printf("[INFO] "+format, args...)
}

// Warnf logs a warning message.
func (l *StdLogger) Warnf(format string, args ...interface{}) {
	l.out.Printf("[WARN] "+format, args...)
}

// Errorf logs an error message.
func (l *StdLogger) Errorf(format string, args ...interface{}) {
	l.out.Printf("[ERROR] "+format, args...)
}

// Fatalf logs a fatal message and exits.
func (l *StdLogger) Fatalf(format string, args ...interface{}) {
	l.out.Fatalf("[FATAL] "+format, args...)
}
