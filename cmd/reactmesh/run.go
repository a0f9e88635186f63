package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/reactmesh/config"
	"github.com/hupe1980/reactmesh/core"
	"github.com/hupe1980/reactmesh/workflow"
)

// modelFactory is replaced in tests.
var modelFactory = newModel

type runFlags struct {
	file     string
	audit    string
	maxSteps int
	runID    string
}

func newRunCmd(root *rootFlags) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a workflow file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.file)
			if err != nil {
				return err
			}

			logger, err := root.logger(cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return err
			}

			llm, err := modelFactory(cfg.Model, logger)
			if err != nil {
				return err
			}

			if f.audit != "" {
				cfg.Audit.Path = f.audit
			}
			store, err := openStore(cfg.Audit.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			g, err := workflow.Build(cfg, llm, func(o *workflow.BuildOptions) {
				o.Logger = logger
				o.Sink = store
			})
			if err != nil {
				return err
			}

			maxSteps := cfg.MaxSteps
			if cmd.Flags().Changed("max-steps") {
				maxSteps = f.maxSteps
			}

			ctx := commandContext(cmd)
			if f.runID != "" {
				ctx = core.WithRunID(ctx, f.runID)
			}
			ctx, runID := core.EnsureRunID(ctx)

			start := time.Now()
			result, err := g.Generate(ctx, maxSteps)
			logger.LogAgentRun("workflow", len(g.Members()), time.Since(start), err == nil, err)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "run id: %s\n", runID)
			fmt.Fprintln(cmd.OutOrStdout(), result)

			return nil
		},
	}

	cmd.Flags().StringVarP(&f.file, "file", "f", "workflow.yaml", "Workflow file")
	cmd.Flags().StringVar(&f.audit, "audit", "", "SQLite audit database (overrides audit.path)")
	cmd.Flags().IntVar(&f.maxSteps, "max-steps", 0, "Maximum agent runs, 0 for unlimited (overrides max_steps)")
	cmd.Flags().StringVar(&f.runID, "run-id", "", "Run id to record events under")

	return cmd
}
