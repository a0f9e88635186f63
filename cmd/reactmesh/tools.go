package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/reactmesh/tool"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the built-in tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range tool.BuiltinNames() {
				t, err := tool.Builtin(name, tool.BuiltinOptions{})
				if err != nil {
					return err
				}
				sig := t.Parameters()
				params := make([]string, 0, len(sig))
				for _, p := range sig.Names() {
					params = append(params, p+": "+string(sig[p]))
				}
				fmt.Fprintf(out, "%s(%s)\n    %s\n", name, strings.Join(params, ", "), t.Description())
			}
			return nil
		},
	}
}
