// tilewm runs a window management session and serves its command tree on a unix socket.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tilewm/tilewm/command"
	"github.com/tilewm/tilewm/config"
	"github.com/tilewm/tilewm/server"
	"github.com/tilewm/tilewm/session"
)

type daemon struct {
	session *session.Session
	server  *server.Server
	logger  *sessionLogger
}

// loads the configuration, builds the session and starts listening
func start(w io.Writer, configPath, socket string) (*daemon, error) {
	if configPath == "" {
		e, err := config.FromEnv()
		if err != nil {
			return nil, err
		}
		configPath = e.ConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if socket != "" {
		cfg.Socket = socket
	}
	path, err := cfg.SocketPath()
	if err != nil {
		return nil, err
	}

	s, err := session.New(cfg)
	if err != nil {
		return nil, err
	}
	logger := newSessionLogger(w, s)
	srv, err := server.Listen(path, command.NewDispatcher(s, logger.Logger), logger.Logger)
	if err != nil {
		return nil, err
	}
	logger.Infof("session with groups %v listening on %s", cfg.Groups, path)
	return &daemon{session: s, server: srv, logger: logger}, nil
}

// serves until ctx is done
func (d *daemon) run(ctx context.Context) error {
	err := d.server.Serve(ctx)
	if err != nil {
		d.logger.Errorf("%v", err)
	} else {
		d.logger.Infof("shutting down")
	}
	return err
}

func newCommand(w io.Writer) *cobra.Command {
	var configPath, socket string
	cmd := &cobra.Command{
		Use:          "tilewm",
		Short:        "Run a tilewm session and serve its control socket",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			d, err := start(w, configPath, socket)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return d.run(ctx)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file, defaults to $TILEWM_CONFIG or built in defaults")
	cmd.Flags().StringVarP(&socket, "socket", "s", "", "socket path, defaults to $TILEWM_SOCKET or ~/.tilewmsocket.$DISPLAY")
	return cmd
}

func main() {
	if err := newCommand(os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
