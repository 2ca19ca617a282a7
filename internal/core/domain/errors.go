package domain

import "errors"

var (
	ErrFormNotFound       = errors.New("form not found")
	ErrUnknownTimeFrame   = errors.New("unknown time frame (must be day, week, month, or year)")
	ErrUnknownVitalField  = errors.New("unknown vital field")
	ErrUnknownBodyField   = errors.New("unknown body metrics field")
	ErrUnknownSleepStage  = errors.New("unknown sleep stage")
	ErrNegativeStageHours = errors.New("stage hours cannot be negative")
	ErrSampleOutOfRange   = errors.New("sample index out of range for time frame")

	ErrNoFilesSelected     = errors.New("no files selected for upload")
	ErrUpstreamRejected    = errors.New("upstream rejected the request")
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
)
