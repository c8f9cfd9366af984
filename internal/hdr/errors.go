package hdr

import "github.com/ericosh007/generativeperception/internal/errors"

const (
	// Frame errors
	ErrInvalidFrameFormat = errors.ErrorCode("hdr_invalid_frame_format")

	// Mapping table errors
	ErrEmptyMappingTable    = errors.ErrorCode("hdr_empty_mapping_table")
	ErrUnsortedMappingTable = errors.ErrorCode("hdr_unsorted_mapping_table")

	// Preset errors
	ErrInvalidPreset = errors.ErrorCode("hdr_invalid_preset")
)
