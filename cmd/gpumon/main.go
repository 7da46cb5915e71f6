package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gpumon/constants"
	"gpumon/internal/config"
	"gpumon/internal/export"
	"gpumon/internal/recorder"
	"gpumon/internal/source"
	"gpumon/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	sourcePath string
	interval   time.Duration
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "gpumon",
		Short:         "High-frequency GPU load sampler for devfreq sysfs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, constants.FlagConfig, "", constants.FlagUsageConfig)
	root.PersistentFlags().StringVar(&flags.sourcePath, constants.FlagPath, "", constants.FlagUsagePath)
	root.PersistentFlags().DurationVar(&flags.interval, constants.FlagInterval, 0, constants.FlagUsageInterval)

	root.AddCommand(newRecordCmd(&flags))
	root.AddCommand(newCurrentCmd(&flags))
	root.AddCommand(newWatchCmd(&flags))
	return root
}

// loadRecorder resolves config file and flags (flags win) into a recorder.
func loadRecorder(flags *rootFlags, logger *zap.Logger) (*recorder.Recorder, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	path := cfg.SourcePath
	if flags.sourcePath != "" {
		path = flags.sourcePath
	}

	interval := flags.interval
	if interval == 0 {
		if interval, err = cfg.SamplingInterval(); err != nil {
			return nil, err
		}
	}

	return recorder.New(recorder.Config{
		Source:   source.DevfreqLoad{Path: path},
		Interval: interval,
		Logger:   logger,
	}), nil
}

func newRecordCmd(flags *rootFlags) *cobra.Command {
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a sampling session and print it as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			rec, err := loadRecorder(flags, logger)
			if err != nil {
				return err
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			startedAt := time.Now()
			rec.Start()

			var timeout <-chan time.Time
			if duration > 0 {
				t := time.NewTimer(duration)
				defer t.Stop()
				timeout = t.C
			}
			select {
			case <-sigCh:
			case <-timeout:
			}

			rec.Stop()

			exp := export.ConsoleExporter{Out: cmd.OutOrStdout()}
			return exp.Export(export.Recording{
				RecordedAt: startedAt.UTC(),
				Interval:   rec.Interval(),
				Samples:    rec.Data(),
				Stats:      rec.Stats(),
			})
		},
	}
	cmd.Flags().DurationVar(&duration, constants.FlagDuration, constants.DefaultRecordDuration, constants.FlagUsageDuration)
	return cmd
}

func newCurrentCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the current GPU load as a percentage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := loadRecorder(flags, zap.NewNop())
			if err != nil {
				return err
			}
			v, err := rec.Current()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.1f%%\n", source.Percent(v))
			return err
		},
	}
}

func newWatchCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Record while showing a live load view",
		RunE: func(_ *cobra.Command, _ []string) error {
			rec, err := loadRecorder(flags, zap.NewNop())
			if err != nil {
				return err
			}
			rec.Start()
			defer rec.Stop()
			return tui.Run(rec)
		},
	}
}
