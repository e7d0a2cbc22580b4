package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"param-binder/internal/config"
)

type cli struct {
	configPath string
	schema     string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:           "param-binder",
		Short:         "Bind request parameters onto schema-described beans",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (yaml, json or toml)")
	cmd.PersistentFlags().StringVarP(&c.schema, "schema", "s", "", "schema file, overrides the config")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level, overrides the config")

	cmd.AddCommand(
		c.checkCommand(),
		c.bindCommand(),
		c.serveCommand(),
	)

	return cmd
}

func (c *cli) load() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	if c.schema != "" {
		cfg.Schema = c.schema
	}

	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.logger = logger

	return nil
}
