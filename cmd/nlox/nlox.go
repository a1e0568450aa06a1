package main

import (
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/agenthands/nlox/pkg/config"
)

// newNloxCmd builds the root command. Without a subcommand it starts the REPL.
func newNloxCmd(d *driver) *cobra.Command {
	var (
		configPath  string
		color       string
		logToStderr bool
		verbose     int
	)
	cmd := &cobra.Command{
		Use:           "nlox",
		Short:         "nlox runs programs written in a small Lox dialect",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, "getting working directory")
			}
			cfg, err := config.Resolve(configPath, wd)
			if err != nil {
				return err
			}
			if color != "" {
				cfg.Color = config.ColorMode(color)
				if err := cfg.Validate(); err != nil {
					return errors.Wrap(err, "--color")
				}
			}
			d.cfg = cfg

			if verbose == 0 {
				verbose = cfg.Verbosity
			}
			initLogging(logToStderr, verbose)
			if cfg.Path != "" {
				glog.V(3).Infof("using config %s", cfg.Path)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			glog.Flush()
		},
		Run: d.runFunc(func(cmd *cobra.Command, args []string) error {
			return d.repl()
		}),
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a YAML config file (default $"+config.EnvVar+" or ./"+config.DefaultFile+")")
	cmd.PersistentFlags().StringVar(&color, "color", "", "Colorize diagnostics: auto, always or never")
	cmd.PersistentFlags().BoolVar(&logToStderr, "logtostderr", false, "Log to stderr instead of to files")
	cmd.PersistentFlags().IntVarP(&verbose, "verbose", "v", 0,
		"Enable verbose logging (e.g., v=3); anything >3 is very verbose")

	cmd.AddCommand(newRunCmd(d))
	cmd.AddCommand(newReplCmd(d))
	cmd.AddCommand(newTokensCmd(d))
	cmd.AddCommand(newASTCmd(d))
	cmd.AddCommand(newCheckCmd(d))
	cmd.AddCommand(newVersionCmd(d))

	return cmd
}
