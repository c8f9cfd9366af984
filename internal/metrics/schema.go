package metrics

import "database/sql"

// SchemaVersion tracks the frame-metrics table layout.
const SchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS frame_metrics (
            timestamp INTEGER NOT NULL,
            preset TEXT NOT NULL,
            process_time_ms REAL NOT NULL,
            avg_time_ms REAL NOT NULL,
            exposure REAL NOT NULL,
            contrast REAL NOT NULL,
            saturation REAL NOT NULL,
            sharpening REAL NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_frame_metrics_timestamp
            ON frame_metrics (timestamp);
    `)
	return err
}

func insertRecordSQL() string {
	return `
        INSERT INTO frame_metrics (
            timestamp, preset, process_time_ms, avg_time_ms,
            exposure, contrast, saturation, sharpening
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
}
