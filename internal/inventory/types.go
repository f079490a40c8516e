package inventory

import (
	"time"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/policy"
)

// Volume is a normalized block-storage volume.
//
// BackupConfig is nil when the volume carries no policy tag at all, and non-nil
// (possibly with zero backup types) when the tag is present. Snapshots is only
// populated by MatchSnapsToVolumes and stays nil for volumes that received none.
type Volume struct {
	VolumeID     string
	Name         string
	BackupConfig *policy.BackupConfig
	Tags         map[string]string
	Snapshots    map[string][]Snapshot
}

// HasPolicy reports whether the volume declares a backup policy tag.
func (v Volume) HasPolicy() bool {
	return v.BackupConfig != nil
}

// SnapshotCount returns the number of snapshots bucketed on the volume.
func (v Volume) SnapshotCount() int {
	n := 0
	for _, snaps := range v.Snapshots {
		n += len(snaps)
	}
	return n
}

// Snapshot is a normalized volume snapshot.
// ExpiryDate is nil when the snapshot's metadata tag is absent or malformed.
type Snapshot struct {
	SnapshotID     string
	Name           string
	FromVolumeID   string
	FromVolumeName string
	StartTime      time.Time
	ExpiryDate     *time.Time
	BackupType     string
	Tags           map[string]string
}

// IsExpired reports whether the snapshot's expiry instant is strictly before now.
// Snapshots without a known expiry are never expired.
func (s Snapshot) IsExpired(now time.Time) bool {
	return s.ExpiryDate != nil && s.ExpiryDate.Before(now)
}
