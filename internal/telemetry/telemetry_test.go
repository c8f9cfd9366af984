package telemetry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ericosh007/generativeperception/internal/telemetry"
)

func TestSnapshotValue(t *testing.T) {
	snap := telemetry.Snapshot{
		telemetry.KindAmbientLight: {
			Kind:       telemetry.KindAmbientLight,
			Value:      750,
			Unit:       "lux",
			CapturedAt: time.Now(),
		},
	}

	assert.Equal(t, 750.0, snap.Value(telemetry.KindAmbientLight, 500))
	assert.Equal(t, 5000.0, snap.Value(telemetry.KindColorTemperature, 5000),
		"absent kind falls back to the default")
}

func TestSnapshotValueNil(t *testing.T) {
	var snap telemetry.Snapshot
	assert.Equal(t, 0.3, snap.Value(telemetry.KindMotion, 0.3))
}

func TestSnapshotValues(t *testing.T) {
	snap := telemetry.Snapshot{
		telemetry.KindAmbientLight: {Kind: telemetry.KindAmbientLight, Value: 120},
		telemetry.KindMotion:       {Kind: telemetry.KindMotion, Value: 0.6},
	}

	values := snap.Values()
	assert.Equal(t, map[telemetry.Kind]float64{
		telemetry.KindAmbientLight: 120,
		telemetry.KindMotion:       0.6,
	}, values)
}
