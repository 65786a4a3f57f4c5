package service

import (
	"errors"
)

// Sentinel kinds for service errors. The API adapter maps ErrValidation to
// client errors and ErrAnalysis to server errors.
var (
	ErrValidation = errors.New("validation failed")
	ErrAnalysis   = errors.New("sentiment analysis failed")
	ErrNotStarted = errors.New("service not started")
)
