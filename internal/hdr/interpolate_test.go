package hdr_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericosh007/generativeperception/internal/hdr"
	"github.com/ericosh007/generativeperception/internal/telemetry"
)

func snapshot(values map[telemetry.Kind]float64) telemetry.Snapshot {
	now := time.Now()
	snap := telemetry.Snapshot{}
	for kind, value := range values {
		snap[kind] = telemetry.Reading{Kind: kind, Value: value, CapturedAt: now}
	}
	return snap
}

func TestInterpolateEmptySnapshot(t *testing.T) {
	baseline := hdr.DefaultParams()
	out := hdr.Interpolate(baseline, hdr.DefaultMappings(), telemetry.Snapshot{})
	assert.Equal(t, baseline, out, "empty snapshot must leave baseline unchanged")
}

func TestInterpolateClampsOutOfRange(t *testing.T) {
	mappings := hdr.DefaultMappings()
	baseline := hdr.DefaultParams()

	tests := []struct {
		name         string
		lux          float64
		wantExposure float64
		wantContrast float64
	}{
		{"negative lux pins to lowest breakpoint", -50, 1.8, 1.2},
		{"at lowest breakpoint", 0, 1.8, 1.2},
		{"beyond highest breakpoint", 50000, 0.8, 0.9},
		{"at highest breakpoint", 10000, 0.8, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := hdr.Interpolate(baseline, mappings, snapshot(map[telemetry.Kind]float64{
				telemetry.KindAmbientLight: tt.lux,
			}))
			assert.InDelta(t, tt.wantExposure, out.Exposure, 1e-9)
			assert.InDelta(t, tt.wantContrast, out.Contrast, 1e-9)
		})
	}
}

func TestInterpolateAnchorIdentity(t *testing.T) {
	out := hdr.Interpolate(hdr.DefaultParams(), hdr.DefaultMappings(), snapshot(map[telemetry.Kind]float64{
		telemetry.KindAmbientLight: 500,
	}))
	assert.InDelta(t, 1.2, out.Exposure, 1e-9, "exact breakpoint must return its effect")
	assert.InDelta(t, 1.0, out.Contrast, 1e-9)
}

func TestInterpolateMidpointLinearity(t *testing.T) {
	// Halfway between 500 -> 1.2 and 1000 -> 1.0 must give (1.2+1.0)/2.
	out := hdr.Interpolate(hdr.DefaultParams(), hdr.DefaultMappings(), snapshot(map[telemetry.Kind]float64{
		telemetry.KindAmbientLight: 750,
	}))
	assert.InDelta(t, 1.1, out.Exposure, 1e-9)
	assert.InDelta(t, 0.975, out.Contrast, 1e-9)
}

func TestInterpolateMotionNearest(t *testing.T) {
	mappings := hdr.DefaultMappings()
	baseline := hdr.DefaultParams()

	tests := []struct {
		name        string
		motion      float64
		wantSharpen float64
	}{
		{"closer to lower breakpoint", 0.41, 0.6},
		{"closer to higher breakpoint", 0.55, 0.4},
		{"exact midpoint tie-breaks to higher breakpoint", 0.45, 0.4},
		{"below all breakpoints", -0.2, 0.8},
		{"above all breakpoints", 1.5, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := hdr.Interpolate(baseline, mappings, snapshot(map[telemetry.Kind]float64{
				telemetry.KindMotion: tt.motion,
			}))
			assert.InDelta(t, tt.wantSharpen, out.SharpenStrength, 1e-9,
				"motion snaps to nearest breakpoint, never blends")
		})
	}
}

func TestInterpolateWhiteBalance(t *testing.T) {
	mappings := hdr.DefaultMappings()
	baseline := hdr.DefaultParams()

	out := hdr.Interpolate(baseline, mappings, snapshot(map[telemetry.Kind]float64{
		telemetry.KindColorTemperature: 2000,
	}))
	assert.InDelta(t, 1.3, out.WhiteBalance.Red, 1e-9)
	assert.InDelta(t, 0.7, out.WhiteBalance.Blue, 1e-9)
	assert.Equal(t, 1.0, out.WhiteBalance.Green, "green gain is always fixed at 1.0")

	// Interpolated between 3000 (1.1/0.85) and 5000 (1.0/1.0).
	out = hdr.Interpolate(baseline, mappings, snapshot(map[telemetry.Kind]float64{
		telemetry.KindColorTemperature: 4000,
	}))
	assert.InDelta(t, 1.05, out.WhiteBalance.Red, 1e-9)
	assert.InDelta(t, 0.925, out.WhiteBalance.Blue, 1e-9)
	assert.Equal(t, 1.0, out.WhiteBalance.Green)
}

func TestInterpolateSinglePointTable(t *testing.T) {
	mappings := hdr.MappingSet{
		telemetry.KindAmbientLight: {
			Kind:   telemetry.KindAmbientLight,
			Policy: hdr.PolicyLinear,
			Points: []hdr.Breakpoint{
				{Value: 300, Effect: hdr.Effect{hdr.TargetExposure: 1.5}},
			},
		},
	}

	for _, lux := range []float64{0, 300, 9000} {
		out := hdr.Interpolate(hdr.DefaultParams(), mappings, snapshot(map[telemetry.Kind]float64{
			telemetry.KindAmbientLight: lux,
		}))
		assert.InDelta(t, 1.5, out.Exposure, 1e-9, "single breakpoint always applies")
	}
}

func TestInterpolateMissingTableDegradesToBaseline(t *testing.T) {
	mappings := hdr.MappingSet{} // no tables at all
	baseline := hdr.DefaultParams()

	out := hdr.Interpolate(baseline, mappings, snapshot(map[telemetry.Kind]float64{
		telemetry.KindAmbientLight: 42,
		telemetry.KindMotion:       0.9,
	}))
	assert.Equal(t, baseline, out)
}

func TestInterpolateClampsDerivedGains(t *testing.T) {
	mappings := hdr.MappingSet{
		telemetry.KindAmbientLight: {
			Kind:   telemetry.KindAmbientLight,
			Policy: hdr.PolicyLinear,
			Points: []hdr.Breakpoint{
				{Value: 0, Effect: hdr.Effect{hdr.TargetExposure: 9.0}},
			},
		},
	}

	out := hdr.Interpolate(hdr.DefaultParams(), mappings, snapshot(map[telemetry.Kind]float64{
		telemetry.KindAmbientLight: 0,
	}))
	assert.Equal(t, 3.0, out.Exposure, "gains clamp to the physically sane range")
}

func TestInterpolateIsPureAndRepeatable(t *testing.T) {
	mappings := hdr.DefaultMappings()
	baseline := hdr.DefaultParams()
	snap := snapshot(map[telemetry.Kind]float64{
		telemetry.KindAmbientLight:     650,
		telemetry.KindColorTemperature: 3500,
		telemetry.KindMotion:           0.2,
	})

	first := hdr.Interpolate(baseline, mappings, snap)
	second := hdr.Interpolate(baseline, mappings, snap)
	require.Equal(t, first, second, "same inputs must produce identical parameters")

	// The snapshot itself is untouched.
	assert.InDelta(t, 650.0, snap.Value(telemetry.KindAmbientLight, 0), 1e-9)
}

func TestMappingTableValidate(t *testing.T) {
	valid := hdr.MappingTable{
		Kind:   telemetry.KindAmbientLight,
		Points: []hdr.Breakpoint{{Value: 0}, {Value: 10}},
	}
	require.NoError(t, valid.Validate())

	empty := hdr.MappingTable{Kind: telemetry.KindAmbientLight}
	assert.Error(t, empty.Validate())

	unsorted := hdr.MappingTable{
		Kind:   telemetry.KindAmbientLight,
		Points: []hdr.Breakpoint{{Value: 10}, {Value: 0}},
	}
	assert.Error(t, unsorted.Validate())
}
