package openstack

import (
	"context"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud"
	"github.com/gophercloud/gophercloud/v2/openstack/blockstorage/v3/snapshots"
)

// ListSnapshots returns all snapshots of the project, with metadata exposed as tags.
func (c *Client) ListSnapshots(ctx context.Context) ([]cloud.RawSnapshot, error) {
	var result []cloud.RawSnapshot

	listOperation := func(innerCtx context.Context) error {
		pages, err := snapshots.List(c.BlockStorageClient, snapshots.ListOpts{}).AllPages(innerCtx)
		if err != nil {
			return err
		}

		snaps, err := snapshots.ExtractSnapshots(pages)
		if err != nil {
			return err
		}

		result = make([]cloud.RawSnapshot, 0, len(snaps))
		for _, snap := range snaps {
			result = append(result, toRawSnapshot(snap))
		}
		return nil
	}

	if err := c.executeWithRetry(ctx, "ListSnapshots", listOperation); err != nil {
		return nil, err
	}
	return result, nil
}

func toRawSnapshot(snap snapshots.Snapshot) cloud.RawSnapshot {
	return cloud.RawSnapshot{
		SnapshotID: snap.ID,
		VolumeID:   snap.VolumeID,
		StartTime:  snap.CreatedAt,
		Tags:       metadataToTags(snap.Name, snap.Metadata),
	}
}

// DeleteSnapshot removes a snapshot from the backend storage.
//
// Behavior:
//   - Force Delete: This method explicitly triggers a "Force Delete" operation.
//     This ensures the snapshot is removed even if the storage backend indicates
//     it is busy or in a stuck state, preventing "zombie" snapshots from accumulating.
//   - Asynchronous: This method returns success once the delete request is accepted
//     by the API, but does not wait for the resource to disappear completely.
//
// Returns:
//   - RequestID: The OpenStack tracing ID for the delete operation.
//   - Error: Returns an error if the delete request fails (e.g., 404 Not Found or 403 Forbidden).
func (c *Client) DeleteSnapshot(ctx context.Context, snapshotID string) (RequestID string, Error error) {
	var requestID string
	deleteOperation := func(innerCtx context.Context) error {
		result := snapshots.ForceDelete(innerCtx, c.BlockStorageClient, snapshotID)
		requestID = result.Header.Get("X-Openstack-Request-Id")

		if result.Err != nil {
			return result.Err
		}
		return nil
	}

	if err := c.executeWithRetry(ctx, "DeleteVolumeSnapshot", deleteOperation); err != nil {
		return requestID, err
	}

	return requestID, nil
}
