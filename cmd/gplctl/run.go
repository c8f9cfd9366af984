package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ericosh007/generativeperception/internal/logger"
	"github.com/ericosh007/generativeperception/internal/pid"
)

func newRunCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		maxFrames  uint64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process frames continuously with telemetry-adaptive enhancement",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := pid.Write(); err != nil {
				return err
			}
			defer func() {
				if err := pid.Remove(); err != nil {
					logger.Error().Err(err).Msg("Failed to remove PID file")
				}
			}()

			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.close()

			var source frameSource
			if inputPath != "" {
				source, err = newRawFileSource(inputPath, cfg.Width, cfg.Height)
				if err != nil {
					return err
				}
			} else {
				source = newSyntheticSource(cfg.Width, cfg.Height)
			}
			defer source.Close()

			var sink frameSink
			if outputPath != "" {
				sink, err = newRawFileSink(outputPath)
				if err != nil {
					return err
				}
				defer sink.Close()
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go handleSignals(cancel)

			logger.Info().
				Str("preset", cfg.Preset).
				Int("width", cfg.Width).
				Int("height", cfg.Height).
				Int("fps", cfg.FPS).
				Msg("Processing started")

			if err := a.processLoop(ctx, source, sink, maxFrames); err != nil {
				return err
			}

			frames, avg := a.processor.Metrics()
			logger.Info().
				Uint64("frames", frames).
				Float64("avg_time_ms", avg).
				Msg("Processing finished")

			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Raw BGR24 frame file (default: synthetic frames)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Write processed raw BGR24 frames to file")
	cmd.Flags().Uint64Var(&maxFrames, "frames", 0, "Stop after N frames (0 = unlimited)")

	return cmd
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
