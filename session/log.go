package session

import (
	"strings"
	"sync"
)

// Log keeps the last lines written to it. It is an io.Writer meant to sit behind a log.Logger, so that the
// session can answer the `log` command with its own audit trail.
type Log struct {
	mu    sync.RWMutex
	lines []string
	next  int
	full  bool
	// incomplete last line
	partial string
}

// NewLog keeps up to size lines.
func NewLog(size int) *Log {
	if size <= 0 {
		size = 1
	}
	return &Log{lines: make([]string, size)}
}

func (l *Log) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	text := l.partial + string(p)
	parts := strings.Split(text, "\n")
	l.partial = parts[len(parts)-1]
	for _, line := range parts[:len(parts)-1] {
		l.lines[l.next] = line
		l.next = (l.next + 1) % len(l.lines)
		if l.next == 0 {
			l.full = true
		}
	}
	return len(p), nil
}

// Lines returns every complete line kept, oldest first.
func (l *Log) Lines() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.full {
		return append([]string(nil), l.lines[:l.next]...)
	}
	ret := make([]string, 0, len(l.lines))
	ret = append(ret, l.lines[l.next:]...)
	return append(ret, l.lines[:l.next]...)
}

// Tail returns the last n lines containing match, oldest first. An empty match matches everything.
func (l *Log) Tail(n int, match string) []string {
	ret := make([]string, 0)
	for _, line := range l.Lines() {
		if strings.Contains(line, match) {
			ret = append(ret, line)
		}
	}
	if n < 0 {
		n = 0
	}
	if len(ret) > n {
		ret = ret[len(ret)-n:]
	}
	return ret
}
