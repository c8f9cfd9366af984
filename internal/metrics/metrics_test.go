package metrics_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericosh007/generativeperception/internal/metrics"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     metrics.Config
		wantErr bool
	}{
		{
			name: "disabled skips storage checks",
			cfg:  metrics.Config{Enabled: false},
		},
		{
			name: "enabled with valid settings",
			cfg: metrics.Config{
				Enabled:      true,
				DBPath:       "/tmp/metrics.db",
				BatchSize:    60,
				BatchTimeout: 5,
			},
		},
		{
			name:    "enabled without db path",
			cfg:     metrics.Config{Enabled: true, BatchSize: 60, BatchTimeout: 5},
			wantErr: true,
		},
		{
			name: "enabled with zero batch size",
			cfg: metrics.Config{
				Enabled:      true,
				DBPath:       "/tmp/metrics.db",
				BatchTimeout: 5,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewServiceDisabled(t *testing.T) {
	collector, err := metrics.NewService(metrics.Config{Enabled: false})
	require.NoError(t, err)

	// No-op collector accepts anything, including nil records.
	assert.NoError(t, collector.Record(context.Background(), nil))
	assert.NoError(t, collector.Record(context.Background(), &metrics.FrameRecord{}))
	assert.NoError(t, collector.Close())
}

func TestServiceRejectsNilRecord(t *testing.T) {
	cfg := metrics.Config{
		Enabled:      true,
		DBPath:       filepath.Join(t.TempDir(), "metrics.db"),
		BatchSize:    100,
		BatchTimeout: 60,
	}

	collector, err := metrics.NewService(cfg)
	require.NoError(t, err)
	defer collector.Close() //nolint:errcheck

	assert.Error(t, collector.Record(context.Background(), nil))
}

func TestRepositoryFlushOnClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "metrics.db")
	cfg := metrics.Config{
		Enabled:      true,
		DBPath:       dbPath,
		BatchSize:    100, // large enough that only Close triggers the flush
		BatchTimeout: 60,
	}

	collector, err := metrics.NewService(cfg)
	require.NoError(t, err)

	now := time.Now()
	for i := 0; i < 3; i++ {
		record := &metrics.FrameRecord{
			Timestamp:       now.Add(time.Duration(i) * time.Second),
			Preset:          "balanced",
			ProcessTimeMs:   12.5,
			AverageTimeMs:   13.0,
			Exposure:        1.1,
			Contrast:        1.0,
			Saturation:      1.1,
			SharpenStrength: 0.6,
		}
		require.NoError(t, collector.Record(context.Background(), record))
	}
	require.NoError(t, collector.Close())

	assert.Equal(t, 3, countRecords(t, dbPath))
}

func TestRepositoryFlushOnBatchSize(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "metrics.db")
	cfg := metrics.Config{
		Enabled:      true,
		DBPath:       dbPath,
		BatchSize:    2,
		BatchTimeout: 60,
	}

	collector, err := metrics.NewService(cfg)
	require.NoError(t, err)

	now := time.Now()
	for i := 0; i < 2; i++ {
		record := &metrics.FrameRecord{
			Timestamp: now.Add(time.Duration(i) * time.Second),
			Preset:    "quality",
		}
		require.NoError(t, collector.Record(context.Background(), record))
	}

	// Batch threshold reached: rows are visible before Close.
	assert.Equal(t, 2, countRecords(t, dbPath))

	require.NoError(t, collector.Close())
}

func countRecords(t *testing.T, dbPath string) int {
	t.Helper()

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM frame_metrics").Scan(&count))
	return count
}
