package inventory

import "slices"

// SortSnapsByMostRecent returns a new slice ordered by StartTime, newest first.
// Equal start times keep their input order and the input is left untouched.
func SortSnapsByMostRecent(snapshots []Snapshot) []Snapshot {
	sorted := slices.Clone(snapshots)
	slices.SortStableFunc(sorted, func(a, b Snapshot) int {
		return b.StartTime.Compare(a.StartTime)
	})
	return sorted
}

// LatestSnapshot returns the most recently started snapshot, if any.
func LatestSnapshot(snapshots []Snapshot) (Snapshot, bool) {
	if len(snapshots) == 0 {
		return Snapshot{}, false
	}
	latest := snapshots[0]
	for _, s := range snapshots[1:] {
		if s.StartTime.After(latest.StartTime) {
			latest = s
		}
	}
	return latest, true
}
