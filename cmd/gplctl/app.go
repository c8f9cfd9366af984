package main

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/ericosh007/generativeperception/internal/config"
	"github.com/ericosh007/generativeperception/internal/errors"
	"github.com/ericosh007/generativeperception/internal/hdr"
	"github.com/ericosh007/generativeperception/internal/logger"
	"github.com/ericosh007/generativeperception/internal/metrics"
	"github.com/ericosh007/generativeperception/internal/server"
	"github.com/ericosh007/generativeperception/internal/telemetry"
)

// app wires the processor, the telemetry collector and the metrics sink
// together and tracks the state the status server reports.
type app struct {
	cfg       *config.Config
	processor *hdr.Processor
	collector *telemetry.Collector
	sink      metrics.Collector

	mu          sync.RWMutex
	processing  bool
	frames      uint64
	lastMetrics hdr.FrameMetrics
	haveMetrics bool
}

func newApp(cfg *config.Config) (*app, error) {
	errFactory := errors.New()

	processor := hdr.NewProcessor(cfg.Preset, cfg.Presets,
		hdr.WithMappings(cfg.Mappings),
		hdr.WithKnee(cfg.Knee),
	)

	collector, err := telemetry.NewCollector(telemetry.Config{
		SampleInterval: cfg.SampleInterval(),
		DBPath:         cfg.TelemetryDB,
	}, telemetry.SimulatedSensors(rand.New(rand.NewSource(time.Now().UnixNano()))))
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrStartTelem, err)
	}

	sink, err := metrics.NewService(metrics.Config{
		DBPath:       cfg.MetricsDB,
		BatchSize:    metrics.DefaultConfig().BatchSize,
		BatchTimeout: metrics.DefaultConfig().BatchTimeout,
		Enabled:      cfg.Metrics,
	})
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrInitApp, err)
	}

	return &app{
		cfg:       cfg,
		processor: processor,
		collector: collector,
		sink:      sink,
	}, nil
}

// processLoop runs capture -> collect -> process -> record until the
// context is canceled, the source is exhausted, or limit frames have
// been processed (0 means unlimited).
func (a *app) processLoop(ctx context.Context, source frameSource, sink frameSink, limit uint64) error {
	errFactory := errors.New()

	if err := a.collector.Start(ctx); err != nil {
		return errFactory.Wrap(errors.ErrStartTelem, err)
	}
	defer func() {
		if err := a.collector.Stop(); err != nil {
			logger.Error().Err(err).Msg("Failed to stop telemetry collector")
		}
	}()

	a.setProcessing(true)
	defer a.setProcessing(false)

	interval := time.Second / time.Duration(a.cfg.FPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			frame, err := source.Next()
			if err != nil {
				return err
			}
			if frame == nil {
				logger.Info().Msg("Frame source exhausted")
				return nil
			}

			out, frameMetrics, err := a.processor.Process(frame, a.collector.Latest())
			if err != nil {
				return errFactory.Wrap(errors.ErrProcessFrame, err)
			}

			if sink != nil {
				if err := sink.Write(out); err != nil {
					return errFactory.Wrap(errors.ErrWriteSink, err)
				}
			}

			a.recordFrame(ctx, frameMetrics)
			a.logFrame(frameMetrics)

			if limit > 0 && a.frameCount() >= limit {
				return nil
			}
		}
	}
}

func (a *app) recordFrame(ctx context.Context, m hdr.FrameMetrics) {
	a.mu.Lock()
	a.frames++
	a.lastMetrics = m
	a.haveMetrics = true
	a.mu.Unlock()

	record := &metrics.FrameRecord{
		Timestamp:       time.Now(),
		Preset:          a.processor.Preset(),
		ProcessTimeMs:   m.ProcessTimeMs,
		AverageTimeMs:   m.AverageTimeMs,
		Exposure:        m.Exposure,
		Contrast:        m.Contrast,
		Saturation:      m.Saturation,
		SharpenStrength: m.SharpenStrength,
	}
	if err := a.sink.Record(ctx, record); err != nil {
		logger.Error().Err(err).Msg("Failed to record frame metrics")
	}
}

func (a *app) logFrame(m hdr.FrameMetrics) {
	logger.Debug().
		Float64("process_time_ms", m.ProcessTimeMs).
		Float64("avg_time_ms", m.AverageTimeMs).
		Float64("exposure", m.Exposure).
		Float64("contrast", m.Contrast).
		Float64("saturation", m.Saturation).
		Float64("sharpening", m.SharpenStrength).
		Msg("Frame processed")
}

func (a *app) setProcessing(v bool) {
	a.mu.Lock()
	a.processing = v
	a.mu.Unlock()
}

func (a *app) frameCount() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frames
}

func (a *app) close() {
	if err := a.sink.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close metrics sink")
	}
}

// server.Source implementation

func (a *app) Status() server.Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return server.Status{
		Processing:      a.processing,
		Preset:          a.processor.Preset(),
		FramesProcessed: a.frames,
		AverageTimeMs:   a.lastMetrics.AverageTimeMs,
	}
}

func (a *app) LatestTelemetry() telemetry.Snapshot {
	return a.collector.Latest()
}

func (a *app) LatestMetrics() map[string]float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.haveMetrics {
		return nil
	}
	return a.lastMetrics.Readout()
}

func (a *app) Presets() []string {
	names := make([]string, 0, len(a.cfg.Presets))
	for name := range a.cfg.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
