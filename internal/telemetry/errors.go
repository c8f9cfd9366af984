package telemetry

import "github.com/ericosh007/generativeperception/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig   = errors.ErrorCode("telemetry_invalid_config")
	ErrInvalidDBPath   = errors.ErrorCode("telemetry_invalid_db_path")
	ErrInvalidInterval = errors.ErrorCode("telemetry_invalid_interval")
	ErrNoSensors       = errors.ErrorCode("telemetry_no_sensors")

	// Collection Errors
	ErrAlreadyStarted = errors.ErrorCode("telemetry_already_started")
	ErrSensorRead     = errors.ErrorCode("telemetry_sensor_read_failed")

	// Storage Errors
	ErrStorageAccess = errors.ErrorCode("telemetry_storage_access_failed")
	ErrStorageInit   = errors.ErrorCode("telemetry_storage_init_failed")
	ErrStorageClose  = errors.ErrorCode("telemetry_storage_close_failed")

	// Operation Errors
	ErrOperationTimeout = errors.ErrorCode("telemetry_operation_timeout")
	ErrServiceShutdown  = errors.ErrorCode("telemetry_service_shutdown_failed")
)
