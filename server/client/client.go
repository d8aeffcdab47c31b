package client

import (
	"bufio"
	"context"
	"net"
	"time"

	"github.com/mailru/easyjson"
	"github.com/pkg/errors"

	"github.com/tilewm/tilewm/command"
)

// Client calls commands on the session listening at Path.
type Client struct {
	Path string
	// per call, zero means no limit
	Timeout time.Duration
}

func New(path string) *Client {
	return &Client{Path: path}
}

// Root returns a command tree whose references run remotely.
func (c *Client) Root() command.Tree[interface{}] {
	return command.NewRoot(c.Call)
}

// Call is a command.CallFunc.
func (c *Client) Call(req command.Request) (interface{}, error) {
	ctx := context.Background()
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	return c.CallContext(ctx, req)
}

// CallContext sends req and waits for its response, or for ctx to be done.
func (c *Client) CallContext(ctx context.Context, req command.Request) (interface{}, error) {
	resp, err := c.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Result()
}

// Send returns the raw response to req.
func (c *Client) Send(ctx context.Context, req command.Request) (command.Response, error) {
	var resp command.Response
	bs, err := easyjson.Marshal(req)
	if err != nil {
		return resp, errors.Wrap(err, "encoding request")
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", c.Path)
	if err != nil {
		return resp, errors.Wrapf(err, "connecting to %s", c.Path)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			// unblocks pending reads and writes
			conn.SetDeadline(time.Now())
		case <-stop:
		}
	}()

	if _, err := conn.Write(append(bs, '\n')); err != nil {
		return resp, errors.Wrap(err, "sending request")
	}
	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return resp, errors.Wrap(err, "reading response")
	}
	if err := easyjson.Unmarshal(line, &resp); err != nil {
		return resp, errors.Wrap(err, "decoding response")
	}
	return resp, nil
}
