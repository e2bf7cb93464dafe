package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/mediaqc"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		exportFormats []string
		noHistory     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <path>...",
		Short: "Analyze media files and run QC checks",
		Long: `Analyze extracts metadata from each media file, evaluates the QC rules
against it, and records the results in the analysis history. Directory
arguments are scanned for supported media files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			client, err := ctx.newClient()
			if err != nil {
				return err
			}

			files, err := mediaqc.FindMedia(args)
			if err != nil {
				return err
			}

			rep := ctx.reporter()
			runCtx, stop := signalContext()
			defer stop()

			results, err := client.AnalyzeBatch(runCtx, files, rep)
			if err != nil {
				return err
			}

			if !noHistory {
				store, err := ctx.openStore()
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
				if err := store.AppendAll(runCtx, results); err != nil {
					return err
				}
			}

			for _, name := range exportFormats {
				format, err := mediaqc.ParseFormat(name)
				if err != nil {
					return err
				}
				for _, result := range results {
					artifact, err := mediaqc.Export(result, format)
					if err != nil {
						return err
					}
					path, err := mediaqc.WriteArtifact(artifact, cfg.Paths.ExportDir)
					if err != nil {
						return err
					}
					rep.OperationComplete(fmt.Sprintf("wrote %s", path))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&exportFormats, "export", nil, "Export each result in the given formats (json, xml, csv, txt, pdf)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Skip recording results in the history database")
	return cmd
}
