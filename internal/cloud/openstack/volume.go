package openstack

import (
	"context"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud"
	"github.com/gophercloud/gophercloud/v2/openstack/blockstorage/v3/volumes"
)

const nameTag = "Name"

// ListVolumes returns all volumes of the project, with metadata exposed as tags.
// Gophercloud follows the pagination links; a failing page restarts the listing.
func (c *Client) ListVolumes(ctx context.Context) ([]cloud.RawVolume, error) {
	var result []cloud.RawVolume

	listOperation := func(innerCtx context.Context) error {
		pages, err := volumes.List(c.BlockStorageClient, volumes.ListOpts{}).AllPages(innerCtx)
		if err != nil {
			return err
		}

		vols, err := volumes.ExtractVolumes(pages)
		if err != nil {
			return err
		}

		result = make([]cloud.RawVolume, 0, len(vols))
		for _, vol := range vols {
			result = append(result, toRawVolume(vol))
		}
		return nil
	}

	if err := c.executeWithRetry(ctx, "ListVolumes", listOperation); err != nil {
		return nil, err
	}
	return result, nil
}

func toRawVolume(vol volumes.Volume) cloud.RawVolume {
	return cloud.RawVolume{
		VolumeID: vol.ID,
		Tags:     metadataToTags(vol.Name, vol.Metadata),
	}
}
