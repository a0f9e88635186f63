package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "events [run-id]",
		Short: "Show recorded runs or the events of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				return fmt.Errorf("--audit is required")
			}
			store, err := openStore(path)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				runs, err := store.Runs(ctx)
				if err != nil {
					return err
				}
				for _, id := range runs {
					fmt.Fprintln(out, id)
				}
				return nil
			}

			events, err := store.Events(ctx, args[0])
			if err != nil {
				return err
			}
			for _, ev := range events {
				fmt.Fprintf(out, "%s [%s] %s step=%d\n%s\n\n",
					ev.Timestamp.Format("15:04:05"), ev.Agent, ev.Kind, ev.Step, ev.Content)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "audit", "", "SQLite audit database")

	return cmd
}
