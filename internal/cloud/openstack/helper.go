package openstack

import (
	"context"
	"errors"
	"net/http"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud"
	"github.com/gophercloud/gophercloud/v2"
)

// isRetryable determines if an error is transient and warrants a retry.
// It specifically checks for standard HTTP 429/5xx codes from Gophercloud
// and assumes other unknown network errors are also retryable.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var gopherErrors gophercloud.ErrUnexpectedResponseCode

	// Unwrap the error to see if it's a specific Gophercloud HTTP response error
	if errors.As(err, &gopherErrors) {
		switch gopherErrors.Actual {
		case http.StatusTooManyRequests, // 429 - Rate Limiting
			http.StatusRequestTimeout,      // 408 - Client Timeout
			http.StatusInternalServerError, // 500 - Server Error
			http.StatusServiceUnavailable,  // 503 - Maintenance/Overload
			http.StatusGatewayTimeout:      // 504 - Upstream Timeout
			return true
		default:
			// Client errors (400, 401, 404, etc.) are generally not retryable
			// as the request itself is invalid.
			return false
		}
	}
	// Fallback: If it's not a specific HTTP error code (e.g., DNS failure, connection reset),
	// we assume it's a transient network issue and safe to retry.
	return true
}

// metadataToTags exposes Cinder metadata as provider-neutral tags. The resource
// name is added as a "Name" tag unless the metadata already defines one.
func metadataToTags(name string, metadata map[string]string) []cloud.Tag {
	tags := cloud.TagsFromMap(metadata)
	if _, ok := metadata[nameTag]; !ok && name != "" {
		tags = append(tags, cloud.Tag{Key: nameTag, Value: name})
	}
	return tags
}
