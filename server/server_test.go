package server

import (
	"bufio"
	"context"
	"io/ioutil"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/mailru/easyjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilewm/tilewm/command"
	"github.com/tilewm/tilewm/server/client"
	"github.com/tilewm/tilewm/server/tests"
)

func serve(t *testing.T, root command.Object) string {
	path := tests.SocketPath(t)
	srv, err := Listen(path, command.NewDispatcher(root, nil), log.New(ioutil.Discard, "", 0))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})
	return path
}

func TestSocketPermissions(t *testing.T) {
	path := serve(t, tests.Session(t))
	fi, err := os.Lstat(path)
	require.NoError(t, err)
	assert.True(t, fi.Mode()&os.ModeSocket != 0)
	assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())
}

func TestListenRefusesNonSocket(t *testing.T) {
	path := tests.SocketPath(t)
	require.NoError(t, ioutil.WriteFile(path, []byte("precious"), 0600))
	_, err := Listen(path, nil, nil)
	assert.Error(t, err)
	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "precious", string(data))
}

func TestListenRefusesLiveSocket(t *testing.T) {
	path := serve(t, tests.Session(t))
	_, err := Listen(path, nil, nil)
	assert.Error(t, err)

	// the first session is still reachable
	v, err := client.New(path).Root().Command("status").Call()
	require.NoError(t, err)
	assert.Equal(t, "OK", v)
}

func TestListenReplacesStaleSocket(t *testing.T) {
	path := tests.SocketPath(t)
	l, err := net.Listen("unix", path)
	require.NoError(t, err)
	l.(*net.UnixListener).SetUnlinkOnClose(false)
	require.NoError(t, l.Close())
	_, err = os.Lstat(path)
	require.NoError(t, err)

	srv, err := Listen(path, command.NewDispatcher(tests.Session(t), nil), log.New(ioutil.Discard, "", 0))
	require.NoError(t, err)
	require.NoError(t, srv.Close())
}

func TestCloseRemovesSocket(t *testing.T) {
	path := tests.SocketPath(t)
	srv, err := Listen(path, command.NewDispatcher(tests.Session(t), nil), log.New(ioutil.Discard, "", 0))
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(context.Background())
	}()
	require.NoError(t, srv.Close())
	assert.NoError(t, <-done)
	_, err = os.Lstat(path)
	assert.True(t, os.IsNotExist(err))
	// twice is fine
	assert.NoError(t, srv.Close())
}

func roundTrip(t *testing.T, rw *bufio.ReadWriter, line string) command.Response {
	_, err := rw.WriteString(line + "\n")
	require.NoError(t, err)
	require.NoError(t, rw.Flush())
	reply, err := rw.ReadBytes('\n')
	require.NoError(t, err)
	var resp command.Response
	require.NoError(t, easyjson.Unmarshal(reply, &resp))
	return resp
}

func TestMalformedRequests(t *testing.T) {
	path := serve(t, tests.Session(t))
	conn, err := net.Dial("unix", path)
	require.NoError(t, err)
	defer conn.Close()
	rw := bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn))

	for _, line := range []string{"nope", `{"selectors":`, `{"name":1}`} {
		resp := roundTrip(t, rw, line)
		assert.Equal(t, command.Error, resp.Status, line)
		assert.True(t, strings.HasPrefix(resp.Payload.(string), "Malformed request: "), line)
	}

	// blank lines are skipped, and the connection is still usable
	resp := roundTrip(t, rw, "\n"+`{"name":"status"}`)
	assert.Equal(t, command.Response{Status: command.Success, Payload: "OK"}, resp)

	resp = roundTrip(t, rw, `{"selectors":[["group","zzz"]],"name":"info"}`)
	assert.Equal(t, command.Response{Status: command.Error, Payload: command.NoSuchObject}, resp)
}

func TestUnencodablePayload(t *testing.T) {
	path := serve(t, tests.NewProbe())
	_, err := client.New(path).Root().Command("unencodable").Call()
	var exc *command.CommandException
	require.ErrorAs(t, err, &exc)
	assert.Contains(t, exc.Trace, "encoding chan int")
}

func TestOneDispatchAtATime(t *testing.T) {
	probe := tests.NewProbe()
	path := serve(t, probe)

	var wg sync.WaitGroup
	for _, tag := range []string{"x", "y", "z"} {
		wg.Add(1)
		go func(tag string) {
			defer wg.Done()
			v, err := client.New(path).Root().Command("slow").Call(tag)
			assert.NoError(t, err)
			assert.Equal(t, tag, v)
		}(tag)
	}
	wg.Wait()

	events := probe.Events()
	require.Len(t, events, 6)
	for i := 0; i < len(events); i += 2 {
		require.True(t, strings.HasPrefix(events[i], "start "), "%v", events)
		assert.Equal(t, "end "+strings.TrimPrefix(events[i], "start "), events[i+1], "%v", events)
	}
}
