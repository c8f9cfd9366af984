package hdr

import (
	"github.com/ericosh007/generativeperception/internal/errors"
	"github.com/ericosh007/generativeperception/internal/telemetry"
)

// Target names a single parameter field a mapping table may adjust.
// Identifiers match the configuration file keys.
type Target string

const (
	TargetExposure Target = "exposure"
	TargetContrast Target = "contrast"
	TargetSharpen  Target = "sharpening"
	TargetRedGain  Target = "r_gain"
	TargetBlueGain Target = "b_gain"
)

// Effect is a partial parameter adjustment: only the fields a breakpoint
// defines. Fields it omits are left at the preset baseline.
type Effect map[Target]float64

func (e Effect) clone() Effect {
	out := make(Effect, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Policy selects how values between breakpoints are resolved.
type Policy int

const (
	// PolicyLinear interpolates linearly between bracketing breakpoints.
	PolicyLinear Policy = iota
	// PolicyNearest snaps to the closest breakpoint. Ties resolve to the
	// higher breakpoint.
	PolicyNearest
)

// Breakpoint pairs a telemetry value with the effect it pins.
type Breakpoint struct {
	Value  float64
	Effect Effect
}

// MappingTable is the ordered breakpoint list for one telemetry kind.
// Static after load; values below the first breakpoint or above the last
// clamp to the boundary effect.
type MappingTable struct {
	Kind   telemetry.Kind
	Policy Policy
	Points []Breakpoint
}

// Validate checks the table is usable: at least one breakpoint, sorted
// strictly ascending. Malformed tables fail at load time, not frame time.
func (t MappingTable) Validate() error {
	errFactory := errors.New()

	if len(t.Points) == 0 {
		return errFactory.WithData(ErrEmptyMappingTable, string(t.Kind))
	}
	for i := 1; i < len(t.Points); i++ {
		if t.Points[i].Value <= t.Points[i-1].Value {
			return errFactory.WithData(ErrUnsortedMappingTable, struct {
				Kind  string
				Index int
				Value float64
			}{string(t.Kind), i, t.Points[i].Value})
		}
	}
	return nil
}

// resolve produces the effect for a reading value under the table's policy.
func (t MappingTable) resolve(value float64) Effect {
	switch t.Policy {
	case PolicyNearest:
		return t.nearest(value)
	default:
		return t.lerp(value)
	}
}

// lerp clamps outside the breakpoint range and blends linearly inside it.
// Only fields present in both bracketing effects are interpolated.
func (t MappingTable) lerp(value float64) Effect {
	pts := t.Points
	if value <= pts[0].Value {
		return pts[0].Effect.clone()
	}
	last := len(pts) - 1
	if value >= pts[last].Value {
		return pts[last].Effect.clone()
	}

	for i := 0; i < last; i++ {
		lo, hi := pts[i], pts[i+1]
		if value < lo.Value || value > hi.Value {
			continue
		}
		frac := (value - lo.Value) / (hi.Value - lo.Value)
		out := make(Effect, len(lo.Effect))
		for field, a := range lo.Effect {
			b, ok := hi.Effect[field]
			if !ok {
				continue
			}
			out[field] = a*(1-frac) + b*frac
		}
		return out
	}

	return pts[last].Effect.clone()
}

// nearest copies the effect of the closest breakpoint verbatim. Scanning
// ascending with a non-strict comparison makes an exact midpoint resolve
// to the higher breakpoint.
func (t MappingTable) nearest(value float64) Effect {
	best := t.Points[0]
	bestDist := absFloat(value - best.Value)
	for _, pt := range t.Points[1:] {
		if d := absFloat(value - pt.Value); d <= bestDist {
			best = pt
			bestDist = d
		}
	}
	return best.Effect.clone()
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// MappingSet holds one table per telemetry kind.
type MappingSet map[telemetry.Kind]MappingTable

// Validate checks every table in the set.
func (s MappingSet) Validate() error {
	for _, table := range s {
		if err := table.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DefaultMappings returns the shipped telemetry-to-parameter tables.
func DefaultMappings() MappingSet {
	return MappingSet{
		telemetry.KindAmbientLight: {
			Kind:   telemetry.KindAmbientLight,
			Policy: PolicyLinear,
			Points: []Breakpoint{
				{Value: 0, Effect: Effect{TargetExposure: 1.8, TargetContrast: 1.2}},
				{Value: 100, Effect: Effect{TargetExposure: 1.4, TargetContrast: 1.1}},
				{Value: 500, Effect: Effect{TargetExposure: 1.2, TargetContrast: 1.0}},
				{Value: 1000, Effect: Effect{TargetExposure: 1.0, TargetContrast: 0.95}},
				{Value: 10000, Effect: Effect{TargetExposure: 0.8, TargetContrast: 0.9}},
			},
		},
		telemetry.KindMotion: {
			Kind:   telemetry.KindMotion,
			Policy: PolicyNearest,
			Points: []Breakpoint{
				{Value: 0.0, Effect: Effect{TargetSharpen: 0.8}},
				{Value: 0.3, Effect: Effect{TargetSharpen: 0.6}},
				{Value: 0.6, Effect: Effect{TargetSharpen: 0.4}},
				{Value: 1.0, Effect: Effect{TargetSharpen: 0.2}},
			},
		},
		telemetry.KindColorTemperature: {
			Kind:   telemetry.KindColorTemperature,
			Policy: PolicyLinear,
			Points: []Breakpoint{
				{Value: 2000, Effect: Effect{TargetRedGain: 1.3, TargetBlueGain: 0.7}},
				{Value: 3000, Effect: Effect{TargetRedGain: 1.1, TargetBlueGain: 0.85}},
				{Value: 5000, Effect: Effect{TargetRedGain: 1.0, TargetBlueGain: 1.0}},
				{Value: 7000, Effect: Effect{TargetRedGain: 0.9, TargetBlueGain: 1.15}},
			},
		},
	}
}
