package tests

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tilewm/tilewm/config"
	"github.com/tilewm/tilewm/session"
	"github.com/tilewm/tilewm/shell/io"
)

func WithoutColors(s string) string {
	for _, c := range []string{io.Magenta, io.Cyan, io.Red, io.Green, io.Yellow, io.Grey} {
		s = strings.Replace(s, c, "", -1)
	}
	return s
}

// SocketPath returns a path for a unix socket in a new directory removed after the test.
// Temp directories from testing.T can be too long for a socket path.
func SocketPath(t *testing.T) string {
	dir, err := ioutil.TempDir("", "wm")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "sock")
}

// Session returns a session with the default configuration: groups a, b, c and d on one screen, and a bottom
// bar with a text box called "text". windows are managed in the current group.
func Session(t *testing.T, windows ...string) *session.Session {
	s, err := session.New(config.Default())
	require.NoError(t, err)
	for _, w := range windows {
		_, err := s.Manage(w, "")
		require.NoError(t, err)
	}
	return s
}

type MockFileWriter struct {
	name string
	Data string
}

func (mfw *MockFileWriter) WriteToFile(name string, data []byte) error {
	mfw.name = name
	mfw.Data = string(data)
	return nil
}

func (mfw MockFileWriter) HasBeenWritenTo() bool {
	return mfw.name != ""
}
