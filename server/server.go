package server

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mailru/easyjson"
	"github.com/pkg/errors"
	"golang.org/x/net/netutil"

	"github.com/tilewm/tilewm/command"
)

// Dispatcher evaluates one request, see command.Dispatcher.
type Dispatcher interface {
	Dispatch(req command.Request) command.Response
}

// Server answers requests on a unix socket, one connection and one request at a time.
type Server struct {
	path       string
	listener   net.Listener
	dispatcher Dispatcher
	logger     *log.Logger

	done      chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
	// connection being served, closed on shutdown
	active net.Conn
}

// Listen creates the socket at path, replacing a stale one left by a session that didn't shut down cleanly.
// It refuses to replace anything that is not a socket, or a socket someone still listens on.
func Listen(path string, dispatcher Dispatcher, logger *log.Logger) (*Server, error) {
	if err := removeStale(path); err != nil {
		return nil, err
	}
	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, errors.Wrapf(err, "listening on %s", path)
	}
	if err := os.Chmod(path, 0600); err != nil {
		l.Close()
		return nil, errors.Wrap(err, "restricting socket permissions")
	}
	return &Server{
		path:       path,
		listener:   netutil.LimitListener(l, 1),
		dispatcher: dispatcher,
		logger:     logger,
		done:       make(chan struct{}),
	}, nil
}

func removeStale(path string) error {
	fi, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.WithStack(err)
	}
	if fi.Mode()&os.ModeSocket == 0 {
		return errors.Errorf("%s exists and is not a socket", path)
	}
	if conn, err := net.DialTimeout("unix", path, time.Second); err == nil {
		conn.Close()
		return errors.Errorf("%s is in use by another session", path)
	}
	return errors.Wrap(os.Remove(path), "removing stale socket")
}

// Path is the socket file.
func (s *Server) Path() string {
	return s.path
}

// Serve accepts connections until ctx is done or Close is called, and serves them one after the other.
// Each connection is read one request at a time, every request gets exactly one response before the next one
// is read.
func (s *Server) Serve(ctx context.Context) error {
	conns := make(chan net.Conn)
	errs := make(chan error, 1)
	go func() {
		defer close(conns)
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				errs <- err
				return
			}
			select {
			case conns <- conn:
			case <-s.done:
				conn.Close()
				return
			}
		}
	}()
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()

	for {
		select {
		case <-s.done:
			return nil
		case conn, ok := <-conns:
			if !ok {
				select {
				case <-s.done:
					return nil
				default:
					return errors.Wrap(<-errs, "accepting connections")
				}
			}
			s.serveConn(conn)
		}
	}
}

func (s *Server) serveConn(conn net.Conn) {
	s.mu.Lock()
	s.active = conn
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.active = nil
		s.mu.Unlock()
		conn.Close()
	}()

	id := uuid.New().String()
	s.logger.Printf("connection %s accepted", id)
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			if werr := s.reply(conn, s.eval(line)); werr != nil {
				s.logger.Printf("connection %s: %v", id, werr)
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				s.logger.Printf("connection %s: %v", id, err)
			}
			s.logger.Printf("connection %s closed", id)
			return
		}
	}
}

func (s *Server) eval(line []byte) command.Response {
	var req command.Request
	if err := easyjson.Unmarshal(line, &req); err != nil {
		return command.Response{Status: command.Error, Payload: "Malformed request: " + err.Error()}
	}
	return s.dispatcher.Dispatch(req)
}

func (s *Server) reply(w io.Writer, resp command.Response) error {
	bs, err := easyjson.Marshal(resp)
	if err != nil {
		// payloads come from operations, one that can't be encoded is a bug in the operation
		bs, err = easyjson.Marshal(command.Response{
			Status:  command.Exception,
			Payload: errors.Wrapf(err, "encoding %T", resp.Payload).Error(),
		})
		if err != nil {
			return err
		}
	}
	_, err = w.Write(append(bs, '\n'))
	return errors.Wrap(err, "writing response")
}

// Close stops serving, drops the current connection and removes the socket file.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.listener.Close()
		s.mu.Lock()
		if s.active != nil {
			s.active.Close()
		}
		s.mu.Unlock()
		if rerr := os.Remove(s.path); rerr != nil && !os.IsNotExist(rerr) && err == nil {
			err = rerr
		}
	})
	return errors.WithStack(err)
}
