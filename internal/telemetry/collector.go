package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/ericosh007/generativeperception/internal/errors"
	"github.com/ericosh007/generativeperception/internal/logger"
)

const defaultSampleInterval = 100 * time.Millisecond // 10 Hz

// Config holds collector settings.
type Config struct {
	SampleInterval time.Duration
	DBPath         string // empty disables history recording
}

func DefaultConfig() Config {
	return Config{
		SampleInterval: defaultSampleInterval,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()
	if c.SampleInterval <= 0 {
		return errFactory.New(ErrInvalidInterval)
	}
	return nil
}

// Collector samples all sensors on a fixed interval, builds a fresh
// snapshot per tick and keeps the latest one available to the engine.
type Collector struct {
	cfg     Config
	sensors []Sensor
	repo    Repository

	mu     sync.RWMutex
	latest Snapshot

	stop chan struct{}
	done chan struct{}
}

// NewCollector builds a collector over the given sensors. A non-empty
// DBPath attaches a sqlite history repository.
func NewCollector(cfg Config, sensors []Sensor) (*Collector, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}
	if len(sensors) == 0 {
		return nil, errFactory.New(ErrNoSensors)
	}

	c := &Collector{
		cfg:     cfg,
		sensors: sensors,
	}

	if cfg.DBPath != "" {
		repo, err := NewRepository(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		c.repo = repo
	}

	return c, nil
}

// Start launches the sampling goroutine. It runs until the context is
// canceled or Stop is called.
func (c *Collector) Start(ctx context.Context) error {
	errFactory := errors.New()

	c.mu.Lock()
	if c.stop != nil {
		c.mu.Unlock()
		return errFactory.New(ErrAlreadyStarted)
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	c.mu.Unlock()

	logger.Debug().
		Int("sensors", len(c.sensors)).
		Dur("interval", c.cfg.SampleInterval).
		Msg("Telemetry collection started")

	go c.loop(ctx)

	return nil
}

func (c *Collector) loop(ctx context.Context) {
	defer close(c.done)

	ticker := time.NewTicker(c.cfg.SampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.sample(ctx, now)
		}
	}
}

func (c *Collector) sample(ctx context.Context, now time.Time) {
	snapshot := make(Snapshot, len(c.sensors))
	for _, sensor := range c.sensors {
		reading, ok := sensor.Read(now)
		if !ok {
			logger.Debug().Str("sensor", sensor.Name()).Msg("Sensor returned no reading")
			continue
		}
		snapshot[reading.Kind] = reading
	}

	c.mu.Lock()
	c.latest = snapshot
	c.mu.Unlock()

	if c.repo != nil {
		if err := c.repo.Store(ctx, now, snapshot); err != nil {
			logger.Error().Err(err).Msg("Failed to store telemetry snapshot")
		}
	}
}

// Latest returns the most recent snapshot, or nil before the first tick.
// The returned snapshot is never mutated after publication.
func (c *Collector) Latest() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest
}

// Stop halts sampling and closes the history repository.
func (c *Collector) Stop() error {
	c.mu.Lock()
	if c.stop != nil {
		select {
		case <-c.stop:
		default:
			close(c.stop)
		}
	}
	done := c.done
	c.mu.Unlock()

	if done != nil {
		<-done
	}

	if c.repo != nil {
		errFactory := errors.New()
		if err := c.repo.Close(); err != nil {
			return errFactory.Wrap(ErrServiceShutdown, err)
		}
	}
	return nil
}
