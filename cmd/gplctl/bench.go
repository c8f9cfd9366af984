package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericosh007/generativeperception/internal/hdr"
	"github.com/ericosh007/generativeperception/internal/telemetry"
)

func newBenchCmd() *cobra.Command {
	var (
		frames int
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure pipeline throughput on synthetic frames",
		RunE: func(_ *cobra.Command, _ []string) error {
			processor := hdr.NewProcessor(cfg.Preset, cfg.Presets,
				hdr.WithMappings(cfg.Mappings),
				hdr.WithKnee(cfg.Knee),
			)
			source := newSyntheticSource(width, height)

			// A fixed mid-range snapshot so the bench exercises the
			// interpolator too.
			now := time.Now()
			snapshot := telemetry.Snapshot{
				telemetry.KindAmbientLight: {
					Kind: telemetry.KindAmbientLight, Value: 750, Unit: "lux", CapturedAt: now,
				},
				telemetry.KindColorTemperature: {
					Kind: telemetry.KindColorTemperature, Value: 4200, Unit: "kelvin", CapturedAt: now,
				},
				telemetry.KindMotion: {
					Kind: telemetry.KindMotion, Value: 0.4, Unit: "normalized", CapturedAt: now,
				},
			}

			start := time.Now()
			for i := 0; i < frames; i++ {
				frame, err := source.Next()
				if err != nil {
					return err
				}
				if _, _, err := processor.Process(frame, snapshot); err != nil {
					return err
				}
			}
			elapsed := time.Since(start)

			count, avg := processor.Metrics()
			fmt.Printf("frames:        %d (%dx%d, preset %s)\n", count, width, height, cfg.Preset)
			fmt.Printf("total:         %s\n", elapsed.Round(time.Millisecond))
			fmt.Printf("avg per frame: %.2f ms\n", avg)
			fmt.Printf("throughput:    %.1f fps\n", float64(count)/elapsed.Seconds())

			return nil
		},
	}

	cmd.Flags().IntVar(&frames, "frames", 100, "Number of frames to process")
	cmd.Flags().IntVar(&width, "width", 1280, "Frame width")
	cmd.Flags().IntVar(&height, "height", 720, "Frame height")

	return cmd
}
