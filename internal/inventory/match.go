package inventory

// KeySelector extracts the join key used to associate snapshots with volumes.
// An empty key never matches.
type KeySelector struct {
	Volume   func(Volume) string
	Snapshot func(Snapshot) string
}

// ByName joins a snapshot's FromVolumeName to a volume's Name.
var ByName = KeySelector{
	Volume:   func(v Volume) string { return v.Name },
	Snapshot: func(s Snapshot) string { return s.FromVolumeName },
}

// ByID joins a snapshot's FromVolumeID to a volume's VolumeID.
var ByID = KeySelector{
	Volume:   func(v Volume) string { return v.VolumeID },
	Snapshot: func(s Snapshot) string { return s.FromVolumeID },
}

// MatchResult is the output of a matching pass.
type MatchResult struct {
	MatchedVolumes []Volume
	OrphanedSnaps  []Snapshot
}

// MatchSnapsToVolumes associates snapshots with volumes by name.
func MatchSnapsToVolumes(volumes []Volume, snapshots []Snapshot) MatchResult {
	return MatchSnapsToVolumesBy(volumes, snapshots, ByName)
}

// MatchSnapsToVolumesBy buckets every snapshot under Snapshots[snapshot.BackupType]
// of the first volume whose key equals the snapshot's key. Snapshots without a
// matching volume are returned as orphans. Input order is preserved within each
// bucket and in the orphan list.
//
// The input slices are not modified: MatchedVolumes holds copies of the input
// volumes whose Snapshots maps are rebuilt from scratch.
func MatchSnapsToVolumesBy(volumes []Volume, snapshots []Snapshot, key KeySelector) MatchResult {
	result := MatchResult{
		MatchedVolumes: make([]Volume, len(volumes)),
		OrphanedSnaps:  []Snapshot{},
	}

	index := make(map[string]int, len(volumes))
	for i, v := range volumes {
		v.Snapshots = nil
		result.MatchedVolumes[i] = v

		k := key.Volume(v)
		if k == "" {
			continue
		}
		// First volume with a given key wins.
		if _, exists := index[k]; !exists {
			index[k] = i
		}
	}

	for _, snap := range snapshots {
		k := key.Snapshot(snap)
		i, ok := index[k]
		if k == "" || !ok {
			result.OrphanedSnaps = append(result.OrphanedSnaps, snap)
			continue
		}

		vol := &result.MatchedVolumes[i]
		if vol.Snapshots == nil {
			vol.Snapshots = make(map[string][]Snapshot)
		}
		vol.Snapshots[snap.BackupType] = append(vol.Snapshots[snap.BackupType], snap)
	}

	return result
}
