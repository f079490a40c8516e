package inventory

import (
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/policy"
)

const (
	// NameTag holds the human readable name of a volume or snapshot.
	NameTag = "Name"

	// VolumeNameTag records the source volume's name on a snapshot, so the
	// snapshot stays attributable after the volume itself is gone.
	VolumeNameTag = "VolumeName"
)

// NormalizeVolumes converts raw provider volumes into Volume entities,
// decoding the policy tag when present.
func NormalizeVolumes(raw []cloud.RawVolume) []Volume {
	volumes := make([]Volume, 0, len(raw))

	for _, rv := range raw {
		tags := cloud.TagsMap(rv.Tags)

		vol := Volume{
			VolumeID: rv.VolumeID,
			Name:     tags[NameTag],
			Tags:     tags,
		}

		if value, ok := tags[policy.ConfigTag]; ok {
			config := policy.ParseBackupConfig(value)
			vol.BackupConfig = &config
		}

		volumes = append(volumes, vol)
	}

	return volumes
}

// NormalizeSnapshots converts raw provider snapshots into Snapshot entities.
//
// FromVolumeName is taken from the live volume with the snapshot's VolumeID
// when one exists, otherwise from the snapshot's VolumeName tag.
func NormalizeSnapshots(raw []cloud.RawSnapshot, volumes []Volume) []Snapshot {
	namesByID := make(map[string]string, len(volumes))
	for _, v := range volumes {
		if _, seen := namesByID[v.VolumeID]; !seen {
			namesByID[v.VolumeID] = v.Name
		}
	}

	snapshots := make([]Snapshot, 0, len(raw))

	for _, rs := range raw {
		tags := cloud.TagsMap(rs.Tags)
		meta := policy.ParseSnapshotMeta(tags[policy.ConfigTag])

		volumeName, ok := namesByID[rs.VolumeID]
		if !ok || volumeName == "" {
			volumeName = tags[VolumeNameTag]
		}

		snapshots = append(snapshots, Snapshot{
			SnapshotID:     rs.SnapshotID,
			Name:           tags[NameTag],
			FromVolumeID:   rs.VolumeID,
			FromVolumeName: volumeName,
			StartTime:      rs.StartTime,
			ExpiryDate:     meta.ExpiryDate,
			BackupType:     meta.BackupType,
			Tags:           tags,
		})
	}

	return snapshots
}
