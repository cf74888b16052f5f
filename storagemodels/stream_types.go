package storagemodels

import (
	"time"
)

// ScanOptions configures how a backend pages through a scan
type ScanOptions struct {
	PageSize     int32         // Items per page, 0 lets the store decide
	MaxRetries   int           // Retry attempts for transient errors (default: 3)
	RetryBackoff time.Duration // Backoff between retries (default: 200ms)
	// ProgressHandler is called after each page
	ProgressHandler func(ScanProgress)
}

// ScanProgress tracks how far a scan has gone
type ScanProgress struct {
	ItemsMatched  int64     // Items that passed the filter so far
	PagesRead     int       // Pages read so far
	Retries       int       // Transient failures retried
	StartTime     time.Time // When the scan started
	LastPageEmpty bool      // Whether the last page matched nothing
}

// ScanOption is a functional option for configuring scans
type ScanOption func(*ScanOptions)

// DefaultScanOptions returns default scan options
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		MaxRetries:   3,
		RetryBackoff: 200 * time.Millisecond,
	}
}

// WithPageSize sets the page size
func WithPageSize(size int32) ScanOption {
	return func(opts *ScanOptions) {
		opts.PageSize = size
	}
}

// WithMaxRetries sets the maximum retry attempts. Negative values mean no retries.
func WithMaxRetries(retries int) ScanOption {
	if retries < 0 {
		retries = 0
	}
	return func(opts *ScanOptions) {
		opts.MaxRetries = retries
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) ScanOption {
	return func(opts *ScanOptions) {
		opts.RetryBackoff = backoff
	}
}

// WithProgressHandler sets a progress callback
func WithProgressHandler(handler func(ScanProgress)) ScanOption {
	return func(opts *ScanOptions) {
		opts.ProgressHandler = handler
	}
}
