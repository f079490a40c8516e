package cloud

import "time"

// RetryConfig defines the parameters for the exponential backoff and retry mechanism.
// It allows fine-tuning of how aggressive the system should be when handling transient errors.
type RetryConfig struct {
	// MaxRetries is the maximum number of additional attempts after the initial failure.
	// For example, if MaxRetries is 3, the operation runs at most 4 times (1 initial + 3 retries).
	MaxRetries int

	// BaseDelay is the initial wait time before the first retry.
	// This duration increases exponentially with each attempt (BaseDelay * 2^attempt).
	BaseDelay time.Duration

	// MaxDelay is the hard limit for the sleep duration between retries.
	// Even if the exponential calculation exceeds this value, the wait time will be capped here.
	MaxDelay time.Duration

	// OperationTimeout is the total time limit for the entire operation, including all retries.
	// Zero means the operation is only bounded by the caller's context.
	OperationTimeout time.Duration

	// IsRetryable classifies errors returned by the operation.
	// A nil classifier treats every error as transient.
	IsRetryable func(err error) bool
}

// DefaultRetryConfig is used by the discovery and expiry workflows.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:       3,
		BaseDelay:        2 * time.Second,
		MaxDelay:         10 * time.Second,
		OperationTimeout: 2 * time.Minute,
	}
}

// Tag is a single raw key/value pair as returned by a cloud API.
type Tag struct {
	Key   string
	Value string
}

// RawVolume is a block-storage volume exactly as listed by a provider.
type RawVolume struct {
	VolumeID string
	Tags     []Tag
}

// RawSnapshot is a volume snapshot exactly as listed by a provider.
type RawSnapshot struct {
	SnapshotID string
	VolumeID   string
	StartTime  time.Time
	Tags       []Tag
}
