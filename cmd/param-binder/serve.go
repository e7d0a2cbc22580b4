package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"param-binder/web"
)

func (c *cli) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve /bind/:root over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.HTTP.Addr = addr
			}

			app := fx.New(c.serveOptions())
			if err := app.Err(); err != nil {
				return err
			}

			app.Run()

			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config")

	return cmd
}

func (c *cli) serveOptions() fx.Option {
	return fx.Options(
		fx.Supply(c.cfg, c.logger),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		web.Module,
	)
}
