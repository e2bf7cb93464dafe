package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/mediaqc"
	"github.com/five82/mediaqc/internal/config"
	"github.com/five82/mediaqc/internal/history"
	"github.com/five82/mediaqc/internal/logging"
	"github.com/five82/mediaqc/internal/reporter"
)

const (
	appName    = "mediaqc"
	appVersion = "0.1.0"
)

// commandContext carries shared flag state and the lazily loaded config.
type commandContext struct {
	configFlag  *string
	verboseFlag *bool
	jsonFlag    *bool

	cfg       *config.Config
	cfgPath   string
	cfgExists bool
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	cfg, path, exists, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	if *c.verboseFlag {
		level = logging.LevelDebug
	}
	logging.Init(level, os.Stderr)

	c.cfg = cfg
	c.cfgPath = path
	c.cfgExists = exists
	return cfg, nil
}

func (c *commandContext) newClient() (*mediaqc.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	opts := []mediaqc.Option{
		mediaqc.WithLogger(logging.Global()),
	}
	if cfg.Summary.Endpoint != "" {
		opts = append(opts, mediaqc.WithSummaryService(
			cfg.Summary.Endpoint,
			cfg.Summary.Token,
			cfg.SummaryTimeout(),
			cfg.Summary.Retries,
		))
	}
	if cfg.QC.ThresholdsFile != "" {
		opts = append(opts, mediaqc.WithThresholdsFile(cfg.QC.ThresholdsFile))
	}
	return mediaqc.New(opts...)
}

func (c *commandContext) openStore() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg.Paths.DataDir, logging.Global())
}

func (c *commandContext) reporter() reporter.Reporter {
	if *c.jsonFlag {
		return reporter.NewJSONReporter()
	}
	return reporter.NewTerminalReporter(*c.verboseFlag)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newRootCommand() *cobra.Command {
	var (
		configFlag  string
		verboseFlag bool
		jsonFlag    bool
	)

	ctx := &commandContext{
		configFlag:  &configFlag,
		verboseFlag: &verboseFlag,
		jsonFlag:    &jsonFlag,
	}

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Media quality-control analyzer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Emit NDJSON progress events instead of terminal output")

	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newCompareCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, appVersion)
		},
	}
}
