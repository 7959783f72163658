// Package logger provides leveled logging for the game server.
// Every authoritative decision the server makes should be traceable here.
package logger

import (
	"log"
	"os"
)

// Logger bundles the three leveled writers. The fields are plain *log.Logger
// so call sites keep the full stdlib formatting API.
type Logger struct {
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
}

// NewLogger creates a logger writing info/warn to stdout and errors to
// stderr.
func NewLogger() *Logger {
	return &Logger{
		Info:  log.New(os.Stdout, "[ROT-INFO] ", log.Ldate|log.Ltime),
		Warn:  log.New(os.Stdout, "[ROT-WARN] ", log.Ldate|log.Ltime),
		Error: log.New(os.Stderr, "[ROT-ERROR] ", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// Event logs a tagged game event for audit grepping.
func (l *Logger) Event(eventType, format string, args ...any) {
	l.Info.Printf("[EVENT:"+eventType+"] "+format, args...)
}
