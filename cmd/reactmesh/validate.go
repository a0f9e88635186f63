package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/reactmesh/config"
	"github.com/hupe1980/reactmesh/core"
	"github.com/hupe1980/reactmesh/model"
	"github.com/hupe1980/reactmesh/workflow"
)

// offline stands in for the transport when a workflow is only checked.
var offline = model.Func(func(context.Context, []core.Message) (string, error) {
	return "", errors.New("validation does not call the model")
})

func newValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a workflow file without running it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(file)
			if err != nil {
				return err
			}

			g, err := workflow.Build(cfg, offline)
			if err != nil {
				return err
			}

			order, err := g.TopologicalSort()
			if err != nil {
				return err
			}

			names := make([]string, 0, len(order))
			for _, a := range order {
				names = append(names, a.Name())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "workflow ok: %d agents\norder: %s\n", len(order), strings.Join(names, " -> "))

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "workflow.yaml", "Workflow file")

	return cmd
}
