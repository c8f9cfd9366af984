// Package telemetry provides environmental readings (ambient light, color
// temperature, motion) sampled independently of the frame pipeline, plus
// the collector that assembles them into per-tick snapshots.
package telemetry

import "time"

// Kind identifies a telemetry channel.
type Kind string

const (
	KindAmbientLight     Kind = "ambient_light"
	KindColorTemperature Kind = "color_temperature"
	KindMotion           Kind = "motion"
)

// Reading is a single sensor measurement. Immutable once created.
type Reading struct {
	Kind       Kind
	Value      float64
	Unit       string
	CapturedAt time.Time
}

// Snapshot holds the latest reading per kind for one sampling instant.
// The engine only reads snapshots; the collector builds a fresh one each
// tick and never mutates a published snapshot afterwards.
type Snapshot map[Kind]Reading

// Value returns the reading value for kind, or def when absent.
func (s Snapshot) Value(kind Kind, def float64) float64 {
	if r, ok := s[kind]; ok {
		return r.Value
	}
	return def
}

// Values returns the full kind-to-value mapping.
func (s Snapshot) Values() map[Kind]float64 {
	out := make(map[Kind]float64, len(s))
	for k, r := range s {
		out[k] = r.Value
	}
	return out
}
