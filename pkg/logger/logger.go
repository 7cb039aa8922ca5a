package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
}

func New() *Logger {
	return NewWithWriters(os.Stdout, os.Stderr)
}

// NewWithWriters routes info output to out and warnings and errors to errOut.
func NewWithWriters(out, errOut io.Writer) *Logger {
	return &Logger{
		info:  log.New(out, "INFO\t", log.Ldate|log.Ltime),
		warn:  log.New(errOut, "WARN\t", log.Ldate|log.Ltime),
		error: log.New(errOut, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.info.Printf(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.warn.Printf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.error.Output(2, fmt.Sprintf(format, args...))
}

// Writer exposes the info stream, used as gin's access log output.
func (l *Logger) Writer() io.Writer {
	return l.info.Writer()
}
