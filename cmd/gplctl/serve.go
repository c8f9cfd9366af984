package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ericosh007/generativeperception/internal/logger"
	"github.com/ericosh007/generativeperception/internal/pid"
	"github.com/ericosh007/generativeperception/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		listenAddr string
		inputPath  string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Process frames and expose the status API and telemetry WebSocket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := pid.Write(); err != nil {
				return err
			}
			defer func() {
				if err := pid.Remove(); err != nil {
					logger.Error().Err(err).Msg("Failed to remove PID file")
				}
			}()

			if listenAddr != "" {
				cfg.ListenAddr = listenAddr
			}

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

			srv, err := server.New(cfg.ListenAddr, a)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go handleSignals(cancel)

			// A server failure (e.g. the port is taken) cancels the
			// context so the processing loop does not run headless.
			serverErr := make(chan error, 1)
			go func() {
				err := srv.Start(ctx)
				if err != nil {
					cancel()
				}
				serverErr <- err
			}()

			loopErr := a.processLoop(ctx, source, sink, 0)
			cancel()

			if err := <-serverErr; err != nil {
				return err
			}
			return loopErr
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "Status server listen address (default from config)")
	cmd.Flags().StringVar(&inputPath, "input", "", "Raw BGR24 frame file (default: synthetic frames)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Write processed raw BGR24 frames to file")

	return cmd
}
