package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/mediaqc"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		formatFlag string
		outputDir  string
		latest     bool
	)

	cmd := &cobra.Command{
		Use:   "export [result-id]",
		Short: "Export a stored analysis result as a report",
		Long: `Export renders a result from the analysis history into a report file.
Pass a result ID (see 'mediaqc history list'), or use --latest for the
most recent result.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !latest {
				return fmt.Errorf("a result ID or --latest is required")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			format, err := mediaqc.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runCtx, stop := signalContext()
			defer stop()

			var result *mediaqc.Result
			if latest {
				results, listErr := store.List(runCtx)
				if listErr != nil {
					return listErr
				}
				if len(results) == 0 {
					return fmt.Errorf("history is empty")
				}
				result = results[0]
			} else {
				result, err = store.Get(runCtx, args[0])
				if err != nil {
					return err
				}
			}

			artifact, err := mediaqc.Export(result, format)
			if err != nil {
				return err
			}

			dir := cfg.Paths.ExportDir
			if outputDir != "" {
				dir = outputDir
			}
			path, err := mediaqc.WriteArtifact(artifact, dir)
			if err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "json", "Export format (json, xml, csv, txt, pdf)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to the configured export directory)")
	cmd.Flags().BoolVar(&latest, "latest", false, "Export the most recent result")
	return cmd
}
