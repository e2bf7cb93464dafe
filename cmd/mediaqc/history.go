package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/mediaqc"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past analysis results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newHistoryListCommand(ctx))
	cmd.AddCommand(newHistoryShowCommand(ctx))
	cmd.AddCommand(newHistoryClearCommand(ctx))
	return cmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored results, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runCtx, stop := signalContext()
			defer stop()

			results, err := store.List(runCtx)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println("history is empty")
				return nil
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				errCount, warnCount := r.CountBySeverity()
				rows = append(rows, []string{
					r.ID,
					r.FileName,
					displayDate(r.Timestamp),
					string(r.Status()),
					fmt.Sprintf("%dE / %dW", errCount, warnCount),
				})
			}
			fmt.Println(renderTable([]string{"ID", "File", "Analyzed", "Status", "Issues"}, rows))
			return nil
		},
	}
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <result-id>",
		Short: "Print the full report for a stored result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runCtx, stop := signalContext()
			defer stop()

			result, err := store.Get(runCtx, args[0])
			if err != nil {
				return err
			}

			artifact, err := mediaqc.Export(result, mediaqc.FormatText)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(artifact.Content)
			return err
		},
	}
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runCtx, stop := signalContext()
			defer stop()

			count, err := store.Count(runCtx)
			if err != nil {
				return err
			}
			if err := store.Clear(runCtx); err != nil {
				return err
			}
			fmt.Printf("cleared %d result(s)\n", count)
			return nil
		},
	}
}

func displayDate(ts string) string {
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return parsed.Local().Format("2006-01-02 15:04")
}
