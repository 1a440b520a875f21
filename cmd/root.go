// Package cmd implements the perfmap command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/perfmap/app"
	"github.com/kilianp07/perfmap/config"
	"github.com/kilianp07/perfmap/infra/logger"
)

type rootOptions struct {
	cfgPath  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "perfmap",
		Short:         "Load equipment performance documents and query their performance maps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "", "configuration file (.yaml, .yml or .json)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level")
	root.AddCommand(
		newListCmd(opts),
		newDescribeCmd(opts),
		newQueryCmd(opts),
		newServeCmd(opts),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

// newService loads the configuration and builds the service.
func newService(cmd *cobra.Command, opts *rootOptions, extra ...app.Option) (*app.Service, *config.Config, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	svc, err := buildService(cmd, cfg, extra...)
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
		if err := cfg.Logging.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// buildService logs to stderr so command output stays parseable.
func buildService(cmd *cobra.Command, cfg *config.Config, extra ...app.Option) (*app.Service, error) {
	logg := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Component, cfg.Logging.Level)
	return app.New(cfg, append([]app.Option{app.WithLogger(logg)}, extra...)...)
}
