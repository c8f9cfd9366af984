package server

import "github.com/ericosh007/generativeperception/internal/errors"

const (
	ErrInvalidListenAddr = errors.ErrorCode("server_invalid_listen_addr")
	ErrListenFailed      = errors.ErrorCode("server_listen_failed")
	ErrUpgradeFailed     = errors.ErrorCode("server_ws_upgrade_failed")
	ErrShutdownFailed    = errors.ErrorCode("server_shutdown_failed")
)
