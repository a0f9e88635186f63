package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hupe1980/reactmesh/logging"
)

const version = "0.1.0"

type rootFlags struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "reactmesh",
		Short:         "Run workflows of reasoning agents",
		Long:          "reactmesh runs workflows of ReAct agents whose results flow along declared dependencies.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides the workflow file)")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: text or json (overrides the workflow file)")

	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newAskCmd(flags))
	root.AddCommand(newValidateCmd())
	root.AddCommand(newToolsCmd())
	root.AddCommand(newEventsCmd())

	return root
}

// logger builds the CLI logger. Flags win over the file values.
func (f *rootFlags) logger(level, format string) (*logging.StructuredLogger, error) {
	if f.logLevel != "" {
		level = f.logLevel
	}
	if f.logFormat != "" {
		format = f.logFormat
	}
	if format == "" {
		format = "text"
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.NewSlogLogger(lvl, format, false).WithComponent("cli"), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
