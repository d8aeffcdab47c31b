package main

import (
	"io"
	"log"

	"github.com/tilewm/tilewm/session"
)

type sessionLogger struct {
	*log.Logger
}

func (l *sessionLogger) Infof(format string, args ...interface{}) {
	l.Printf("[info] "+format, args...)
}

func (l *sessionLogger) Errorf(format string, args ...interface{}) {
	l.Printf("[error] "+format, args...)
}

// writes to w and to the session log, so that clients can read it with the `log` command
func newSessionLogger(w io.Writer, s *session.Session) *sessionLogger {
	return &sessionLogger{
		Logger: log.New(io.MultiWriter(w, s.Log()), "", log.Ldate|log.Ltime|log.Lshortfile),
	}
}
