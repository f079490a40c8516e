package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/inventory"
)

// Inventory is the normalized state of one discovery cycle.
type Inventory struct {
	Provider     string
	DiscoveredAt time.Time
	// Volumes carry their matched snapshot buckets.
	Volumes []inventory.Volume
	// Snapshots is every discovered snapshot, matched or not, in listing order.
	Snapshots []inventory.Snapshot
	Orphaned  []inventory.Snapshot
}

// Discover runs one discovery cycle: it lists volumes and snapshots, normalizes
// them and associates snapshots with their volumes. A failure of either listing
// fails the whole cycle.
func Discover(ctx context.Context, provider cloud.Provider, key inventory.KeySelector, now time.Time, logger *slog.Logger) (*Inventory, error) {
	// 1. Fetch raw state. Listing is sequential to stay within API rate limits.
	logger.Debug("Listing volumes")
	rawVolumes, err := provider.ListVolumes(ctx)
	if err != nil {
		logger.Error("Volume discovery failed", "error", err)
		return nil, fmt.Errorf("listing volumes failed: %w", err)
	}

	logger.Debug("Listing snapshots")
	rawSnapshots, err := provider.ListSnapshots(ctx)
	if err != nil {
		logger.Error("Snapshot discovery failed", "error", err)
		return nil, fmt.Errorf("listing snapshots failed: %w", err)
	}

	// 2. Normalize
	volumes := inventory.NormalizeVolumes(rawVolumes)
	snapshots := inventory.NormalizeSnapshots(rawSnapshots, volumes)

	for _, vol := range volumes {
		if vol.HasPolicy() && vol.BackupConfig.IsEmpty() {
			logger.Warn("Volume policy tag present but contains no valid backup types",
				"volume_id", vol.VolumeID,
				"volume_name", vol.Name)
		}
	}
	for _, snap := range snapshots {
		if snap.ExpiryDate == nil {
			logger.Debug("Snapshot has no readable expiry date; treated as not expired",
				"snapshot_id", snap.SnapshotID,
				"volume_id", snap.FromVolumeID)
		}
	}

	// 3. Match
	matched := inventory.MatchSnapsToVolumesBy(volumes, snapshots, key)

	for _, orphan := range matched.OrphanedSnaps {
		logger.Debug("Orphaned snapshot detected",
			"snapshot_id", orphan.SnapshotID,
			"from_volume_id", orphan.FromVolumeID,
			"from_volume_name", orphan.FromVolumeName)
	}

	logger.Info("Discovery cycle completed",
		"volume_count", len(volumes),
		"snapshot_count", len(snapshots),
		"orphaned_count", len(matched.OrphanedSnaps))

	return &Inventory{
		Provider:     provider.GetCloudProviderName(),
		DiscoveredAt: now,
		Volumes:      matched.MatchedVolumes,
		Snapshots:    snapshots,
		Orphaned:     matched.OrphanedSnaps,
	}, nil
}
