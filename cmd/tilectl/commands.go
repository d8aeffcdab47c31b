package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tilewm/tilewm/command"
	"github.com/tilewm/tilewm/config"
	"github.com/tilewm/tilewm/server/client"
	"github.com/tilewm/tilewm/shell"
	sio "github.com/tilewm/tilewm/shell/io"
)

type options struct {
	socket     string
	configPath string
	timeout    time.Duration
}

// socket given with --socket, or the one of the session configured by --config/$TILEWM_CONFIG and the
// environment
func (o *options) socketPath() (string, error) {
	if o.socket != "" {
		return o.socket, nil
	}
	path := o.configPath
	if path == "" {
		e, err := config.FromEnv()
		if err != nil {
			return "", err
		}
		path = e.ConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return "", err
	}
	return cfg.SocketPath()
}

func (o *options) root() (command.Tree[interface{}], error) {
	path, err := o.socketPath()
	if err != nil {
		return command.Tree[interface{}]{}, err
	}
	c := client.New(path)
	c.Timeout = o.timeout
	return c.Root(), nil
}

func newRootCommand(w io.Writer) *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:           "tilectl",
		Short:         "Control a running tilewm session",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&o.socket, "socket", "s", "", "session socket, overrides the configuration")
	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "session configuration file, defaults to $TILEWM_CONFIG")
	cmd.PersistentFlags().DurationVar(&o.timeout, "timeout", 10*time.Second, "time to wait for each response, 0 waits forever")

	cmd.AddCommand(
		newCallCommand(w, o),
		newCommandsCommand(w, o),
		newDocCommand(w, o),
		newShellCommand(o),
	)
	return cmd
}

// errors are printed the way the shell does, and make the process exit with 1
func report(w io.Writer, err error) error {
	sio.ReplyEitherNL(w, err)
	return err
}

func newCallCommand(w io.Writer, o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "call <expression> [<args>...]",
		Short: "Call a command, eg. `tilectl call group[b].pull`",
		Long: "Call a command on the session. Arguments are JSON literals or plain words, " +
			"name=value passes a keyword argument.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			root, err := o.root()
			if err != nil {
				return report(w, err)
			}
			v, err := shell.Call(root, args[0], args[1:])
			if err != nil {
				return report(w, err)
			}
			sio.ReplyNL(w, shell.Format(v))
			return nil
		},
	}
}

func newCommandsCommand(w io.Writer, o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "commands [<expression>]",
		Aliases: []string{"ls"},
		Short:   "List the categories and commands reachable from an object",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			root, err := o.root()
			if err != nil {
				return report(w, err)
			}
			expr := ""
			if len(args) > 0 {
				expr = args[0]
			}
			categories, names, err := shell.List(root, expr)
			if err != nil {
				return report(w, err)
			}
			for _, c := range categories {
				sio.ReplyNL(w, c+".")
			}
			for _, name := range names {
				sio.ReplyNL(w, name)
			}
			return nil
		},
	}
}

func newDocCommand(w io.Writer, o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "doc <expression>",
		Short: "Show the signature and documentation of a command",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			root, err := o.root()
			if err != nil {
				return report(w, err)
			}
			doc, err := shell.Doc(root, args[0])
			if err != nil {
				return report(w, err)
			}
			sio.ReplyNL(w, doc)
			return nil
		},
	}
}

func newShellCommand(o *options) *cobra.Command {
	var defsPath string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			root, err := o.root()
			if err != nil {
				return report(os.Stderr, err)
			}
			sh, err := shell.New(root, defsPath, sio.DiskWriter{})
			if err != nil {
				return report(os.Stderr, errors.Wrap(err, "loading definitions"))
			}
			if err := sh.Run(filepath.Join(os.TempDir(), ".tilectl_history")); err != nil {
				return report(os.Stderr, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&defsPath, "defs", sio.DefaultDefsPath(), "file where name definitions are kept")
	return cmd
}
