package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/five82/mediaqc"
	"github.com/five82/mediaqc/internal/compare"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var fromHistory bool

	cmd := &cobra.Command{
		Use:   "compare <path>...",
		Short: "Compare media parameters across files",
		Long: `Compare analyzes the given files and renders their general and video
parameters side by side, along with the fixed encode-set summary. Values
that differ between files are highlighted.

With --history the arguments are result IDs resolved from the analysis
history instead of file paths.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				results []*mediaqc.Result
				err     error
			)

			if fromHistory {
				store, storeErr := ctx.openStore()
				if storeErr != nil {
					return storeErr
				}
				defer func() { _ = store.Close() }()

				runCtx, stop := signalContext()
				defer stop()
				for _, id := range args {
					result, getErr := store.Get(runCtx, id)
					if getErr != nil {
						return getErr
					}
					results = append(results, result)
				}
			} else {
				client, clientErr := ctx.newClient()
				if clientErr != nil {
					return clientErr
				}
				files, findErr := mediaqc.FindMedia(args)
				if findErr != nil {
					return findErr
				}

				runCtx, stop := signalContext()
				defer stop()
				results, err = client.AnalyzeBatch(runCtx, files, ctx.reporter())
				if err != nil {
					return err
				}
			}

			report, err := mediaqc.Compare(results)
			if err != nil {
				return err
			}
			renderComparison(report, mediaqc.BuildEncodeSet(results))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromHistory, "history", false, "Treat arguments as history result IDs")
	return cmd
}

func renderComparison(report *compare.Report, set *compare.EncodeSet) {
	bold := color.New(color.Bold)
	divergent := color.New(color.FgYellow)

	fmt.Println()
	_, _ = bold.Printf("File Comparison (%d files)\n", len(report.FileNames))

	fmt.Println()
	_, _ = bold.Println("EncodeSet Summary")
	fmt.Println(renderTable(set.Labels, set.Rows))
	if set.MissingStreams {
		fmt.Println("Note: Some files may be audio-only or missing streams, resulting in 'N/A' values.")
	}

	for _, section := range report.Sections {
		if len(section.Rows) == 0 {
			continue
		}

		headers := append([]string{section.Title}, report.FileNames...)
		rows := make([][]string, 0, len(section.Rows))
		for _, row := range section.Rows {
			cells := []string{row.Label}
			for _, value := range row.Values {
				if row.Divergent {
					value = divergent.Sprint(value)
				}
				cells = append(cells, value)
			}
			rows = append(rows, cells)
		}

		fmt.Println()
		fmt.Println(renderTable(headers, rows))
	}
}
