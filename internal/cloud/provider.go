package cloud

import "context"

// Provider is the boundary to a cloud block-storage API.
// Implementations handle authentication, pagination and retries themselves;
// list calls return fully resolved results or an error.
type Provider interface {
	// GetCloudProviderName returns the identifier for this provider (e.g. "aws").
	GetCloudProviderName() string

	// ListVolumes returns every volume visible to the configured credentials.
	ListVolumes(ctx context.Context) ([]RawVolume, error)

	// ListSnapshots returns every snapshot owned by the configured account or project.
	ListSnapshots(ctx context.Context) ([]RawSnapshot, error)

	// DeleteSnapshot removes a snapshot and returns the provider's request ID for tracing.
	DeleteSnapshot(ctx context.Context, snapshotID string) (RequestID string, Error error)
}
