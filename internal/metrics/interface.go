package metrics

import (
	"context"
	"time"
)

// Collector defines the core domain interface
type Collector interface {
	Record(ctx context.Context, record *FrameRecord) error
	Close() error
}

// Repository defines the interface for metrics data storage
type Repository interface {
	Record(record *FrameRecord) error
	Close() error
}

// FrameRecord is one frame's processing outcome as persisted for
// observability: latency plus the headline parameters actually used.
type FrameRecord struct {
	Timestamp       time.Time
	Preset          string
	ProcessTimeMs   float64
	AverageTimeMs   float64
	Exposure        float64
	Contrast        float64
	Saturation      float64
	SharpenStrength float64
}
