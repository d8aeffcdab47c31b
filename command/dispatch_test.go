package command

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher() (*Dispatcher, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewDispatcher(fixture(), log.New(&buf, "", 0)), &buf
}

func TestDispatchSuccess(t *testing.T) {
	d, _ := newTestDispatcher()
	for _, test := range []struct {
		req  Request
		want interface{}
	}{
		{NewRequest(Path{}, "name", nil, nil), "root"},
		{NewRequest(Path{{Group, nil}}, "name", nil, nil), "a"},
		{NewRequest(Path{{Group, "b"}}, "name", nil, nil), "b"},
		{NewRequest(Path{{Group, "b"}, {Layout, nil}, {Window, 7}}, "name", nil, nil), "win7"},
		{NewRequest(Path{}, "echo", []interface{}{"ab", 2}, nil), "abab"},
		{NewRequest(Path{}, "echo", []interface{}{"ab"}, map[string]interface{}{"times": 3.0}), "ababab"},
		{NewRequest(Path{}, "echo", nil, map[string]interface{}{"text": "x"}), "x"},
	} {
		resp := d.Dispatch(test.req)
		assert.Equal(t, Success, resp.Status, "%v", test.req)
		assert.Equal(t, test.want, resp.Payload, "%v", test.req)
	}
}

func TestDispatchNoSuchObjectAtAnyDepth(t *testing.T) {
	d, _ := newTestDispatcher()
	for _, path := range []Path{
		{{Group, "zzz"}},
		{{Group, "zzz"}, {Layout, nil}},
		{{Group, "a"}, {Layout, nil}},
		{{Group, "b"}, {Layout, 1}},
		{{Group, "b"}, {Layout, nil}, {Window, 8}},
		{{Group, "b"}, {Layout, nil}, {Window, 7}, {Group, nil}},
		// not reachable from group, even if the object graph had it
		{{Group, "b"}, {Bar, nil}},
		{{"desktop", nil}},
	} {
		resp := d.Dispatch(NewRequest(path, "name", nil, nil))
		assert.Equal(t, Response{Status: Error, Payload: NoSuchObject}, resp, path.String())
	}
}

func TestDispatchNoSuchCommand(t *testing.T) {
	d, _ := newTestDispatcher()
	for _, path := range []Path{{}, {{Group, "b"}}, {{Group, "b"}, {Layout, nil}}} {
		resp := d.Dispatch(NewRequest(path, "nosuchcmd", nil, nil))
		assert.Equal(t, Response{Status: Error, Payload: NoSuchCommand}, resp, path.String())
	}
}

func TestDispatchCommandErrorIsVerbatim(t *testing.T) {
	d, _ := newTestDispatcher()
	for _, msg := range []string{"No such widget: x", "", "multi\nline"} {
		resp := d.Dispatch(NewRequest(Path{}, "reject", []interface{}{msg}, nil))
		assert.Equal(t, Response{Status: Error, Payload: msg}, resp)
	}
}

func TestDispatchArgumentErrors(t *testing.T) {
	d, _ := newTestDispatcher()
	for _, test := range []struct {
		args   []interface{}
		kwargs map[string]interface{}
		msg    string
	}{
		{nil, nil, "missing argument: text"},
		{[]interface{}{1}, nil, "argument text must be a string"},
		{[]interface{}{"a", 1.5}, nil, "argument times must be an integer"},
		{[]interface{}{"a", 1, 2}, nil, "expected at most 2 arguments, got 3"},
		{[]interface{}{"a"}, map[string]interface{}{"text": "b"}, "got multiple values for argument: text"},
		{[]interface{}{"a"}, map[string]interface{}{"other": "b"}, "unexpected keyword argument: other"},
	} {
		resp := d.Dispatch(NewRequest(Path{}, "echo", test.args, test.kwargs))
		assert.Equal(t, Response{Status: Error, Payload: test.msg}, resp)
	}
}

func TestDispatchException(t *testing.T) {
	d, _ := newTestDispatcher()
	for _, name := range []string{"fail", "explode"} {
		resp := d.Dispatch(NewRequest(Path{{Group, "b"}}, name, nil, nil))
		assert.Equal(t, Exception, resp.Status, name)
		trace, ok := resp.Payload.(string)
		require.True(t, ok, name)
		assert.NotEmpty(t, trace, name)
	}
	resp := d.Dispatch(NewRequest(Path{}, "fail", nil, nil))
	assert.Contains(t, resp.Payload, "boom")
	// pkg/errors stack
	assert.Contains(t, resp.Payload, "fixtures_test.go")

	resp = d.Dispatch(NewRequest(Path{}, "explode", nil, nil))
	assert.Contains(t, resp.Payload, "panic: kaboom")
}

func TestDispatchLogsBeforeInvocation(t *testing.T) {
	d, buf := newTestDispatcher()
	d.Dispatch(NewRequest(Path{}, "fail", nil, nil))
	d.Dispatch(NewRequest(Path{}, "echo", []interface{}{"x"}, map[string]interface{}{"times": 2}))
	d.Dispatch(NewRequest(Path{}, "nosuchcmd", nil, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Command: fail([], map[])", lines[0])
	assert.Equal(t, "Command: echo([x], map[times:2])", lines[1])
}

func TestDispatcherRoot(t *testing.T) {
	d, _ := newTestDispatcher()
	v, err := d.Root().Into(Group).Select("b").Command("name").Call()
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	_, err = d.Root().Into(Group).Select("zzz").Command("name").Call()
	assert.Equal(t, &CommandError{Msg: NoSuchObject}, err)

	_, err = d.Root().Command("fail").Call()
	var exc *CommandException
	assert.ErrorAs(t, err, &exc)
}

func TestExecuteDoesNotLog(t *testing.T) {
	d, buf := newTestDispatcher()
	resp := Execute(d.root, NewRequest(Path{{Group, "b"}}, "name", nil, nil))
	assert.Equal(t, Response{Status: Success, Payload: "b"}, resp)
	assert.Empty(t, buf.String())
}

func TestIntrospection(t *testing.T) {
	d, _ := newTestDispatcher()
	resp := d.Dispatch(NewRequest(Path{}, "commands", nil, nil))
	assert.Equal(t, []string{"name", "echo", "reject", "fail", "explode", "commands", "doc"}, resp.Payload)

	resp = d.Dispatch(NewRequest(Path{}, "doc", []interface{}{"echo"}, nil))
	assert.Equal(t, "echo(text, times=1)\n\tRepeats text.\n\t\n\ttimes defaults to 1.", resp.Payload)

	resp = d.Dispatch(NewRequest(Path{}, "doc", []interface{}{"fail"}, nil))
	assert.Equal(t, "fail()", resp.Payload)

	resp = d.Dispatch(NewRequest(Path{}, "doc", []interface{}{"nope"}, nil))
	assert.Equal(t, Response{Status: Error, Payload: "No such command: nope"}, resp)

	assert.Equal(t,
		[]string{"name()", "echo(text, times=1)", "reject(msg)", "fail()", "explode()", "commands()", "doc(name)"},
		Describe(fixture().Commands()))
}

func TestNewTablePanicsOnReservedNames(t *testing.T) {
	assert.Panics(t, func() { NewTable(Op[*node]{Name: "doc"}) })
	assert.Panics(t, func() { NewTable(Op[*node]{Name: "x"}, Op[*node]{Name: "x"}) })
}
