package telemetry_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericosh007/generativeperception/internal/errors"
	"github.com/ericosh007/generativeperception/internal/telemetry"
)

func TestNewCollectorNoSensors(t *testing.T) {
	_, err := telemetry.NewCollector(telemetry.DefaultConfig(), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, telemetry.ErrNoSensors))
}

func TestNewCollectorInvalidInterval(t *testing.T) {
	cfg := telemetry.Config{SampleInterval: 0}
	sensors := telemetry.SimulatedSensors(rand.New(rand.NewSource(1)))

	_, err := telemetry.NewCollector(cfg, sensors)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, telemetry.ErrInvalidConfig))
}

func TestCollectorLifecycle(t *testing.T) {
	cfg := telemetry.Config{SampleInterval: 10 * time.Millisecond}
	sensors := telemetry.SimulatedSensors(rand.New(rand.NewSource(2)))

	collector, err := telemetry.NewCollector(cfg, sensors)
	require.NoError(t, err)

	assert.Nil(t, collector.Latest(), "no snapshot before the first tick")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, collector.Start(ctx))

	assert.Eventually(t, func() bool {
		snap := collector.Latest()
		if snap == nil {
			return false
		}
		_, hasLight := snap[telemetry.KindAmbientLight]
		_, hasTemp := snap[telemetry.KindColorTemperature]
		_, hasMotion := snap[telemetry.KindMotion]
		return hasLight && hasTemp && hasMotion
	}, 2*time.Second, 5*time.Millisecond, "snapshot should cover all sensor kinds")

	require.NoError(t, collector.Stop())
}

func TestCollectorDoubleStart(t *testing.T) {
	cfg := telemetry.Config{SampleInterval: 10 * time.Millisecond}
	sensors := telemetry.SimulatedSensors(rand.New(rand.NewSource(3)))

	collector, err := telemetry.NewCollector(cfg, sensors)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, collector.Start(ctx))
	defer collector.Stop() //nolint:errcheck

	err = collector.Start(ctx)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, telemetry.ErrAlreadyStarted))
}

func TestCollectorStoresHistory(t *testing.T) {
	dbPath := t.TempDir() + "/telemetry.db"
	cfg := telemetry.Config{
		SampleInterval: 10 * time.Millisecond,
		DBPath:         dbPath,
	}
	sensors := telemetry.SimulatedSensors(rand.New(rand.NewSource(4)))

	collector, err := telemetry.NewCollector(cfg, sensors)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, collector.Start(ctx))

	assert.Eventually(t, func() bool {
		return collector.Latest() != nil
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, collector.Stop())
	assert.FileExists(t, dbPath)
}
