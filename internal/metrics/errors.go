package metrics

import "github.com/ericosh007/generativeperception/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig   = errors.ErrorCode("metrics_invalid_config")
	ErrInvalidDBPath   = errors.ErrorCode("metrics_invalid_db_path")
	ErrInvalidBatching = errors.ErrorCode("metrics_invalid_batching")

	// Collection Errors
	ErrMetricsCollection = errors.ErrorCode("metrics_collection_failed")
	ErrInvalidMetrics    = errors.ErrorCode("metrics_invalid_record")

	// Storage Errors
	ErrStorageInit       = errors.ErrorCode("metrics_storage_init_failed")
	ErrStorageClose      = errors.ErrorCode("metrics_storage_close_failed")
	ErrTransactionFailed = errors.ErrorCode("metrics_transaction_failed")

	// Operation Errors
	ErrOperationTimeout = errors.ErrorCode("metrics_operation_timeout")
	ErrServiceShutdown  = errors.ErrorCode("metrics_service_shutdown_failed")
)
