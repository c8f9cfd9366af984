package telemetry_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericosh007/generativeperception/internal/telemetry"
)

func TestSimulatedLightSensorRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sensor := telemetry.NewSimulatedLightSensor(rng)

	now := time.Now()
	for i := 0; i < 500; i++ {
		reading, ok := sensor.Read(now.Add(time.Duration(i) * 500 * time.Millisecond))
		require.True(t, ok)
		assert.Equal(t, telemetry.KindAmbientLight, reading.Kind)
		assert.Equal(t, "lux", reading.Unit)
		assert.GreaterOrEqual(t, reading.Value, 50.0)
		assert.LessOrEqual(t, reading.Value, 5000.0)
	}
}

func TestSimulatedColorTempSensorRange(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	sensor := telemetry.NewSimulatedColorTempSensor(rng)

	now := time.Now()
	for i := 0; i < 500; i++ {
		reading, ok := sensor.Read(now.Add(time.Duration(i) * 500 * time.Millisecond))
		require.True(t, ok)
		assert.Equal(t, telemetry.KindColorTemperature, reading.Kind)
		assert.GreaterOrEqual(t, reading.Value, 2700.0)
		assert.LessOrEqual(t, reading.Value, 6500.0)
	}
}

func TestSimulatedMotionSensorRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	sensor := telemetry.NewSimulatedMotionSensor(rng)

	now := time.Now()
	for i := 0; i < 1000; i++ {
		reading, ok := sensor.Read(now.Add(time.Duration(i) * time.Second))
		require.True(t, ok)
		assert.Equal(t, telemetry.KindMotion, reading.Kind)
		assert.GreaterOrEqual(t, reading.Value, 0.0)
		assert.LessOrEqual(t, reading.Value, 1.0)
	}
}

func TestSimulatedMotionSensorVaries(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	sensor := telemetry.NewSimulatedMotionSensor(rng)

	// Over several retarget windows the level must actually move.
	now := time.Now()
	min, max := 1.0, 0.0
	for i := 0; i < 300; i++ {
		reading, _ := sensor.Read(now.Add(time.Duration(i) * time.Second))
		if reading.Value < min {
			min = reading.Value
		}
		if reading.Value > max {
			max = reading.Value
		}
	}

	assert.Greater(t, max-min, 0.2, "motion level should wander between targets")
}

func TestSimulatedSensorsCoversAllKinds(t *testing.T) {
	sensors := telemetry.SimulatedSensors(rand.New(rand.NewSource(5)))
	require.Len(t, sensors, 3)

	seen := make(map[telemetry.Kind]bool)
	now := time.Now()
	for _, s := range sensors {
		reading, ok := s.Read(now)
		require.True(t, ok, "sensor %s", s.Name())
		seen[reading.Kind] = true
	}

	assert.True(t, seen[telemetry.KindAmbientLight])
	assert.True(t, seen[telemetry.KindColorTemperature])
	assert.True(t, seen[telemetry.KindMotion])
}
