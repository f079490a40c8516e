package inventory

import "time"

// FindDeadSnapshots returns the snapshots whose expiry is strictly before now,
// in their input order. Snapshots with an unknown expiry are never dead.
func FindDeadSnapshots(snapshots []Snapshot, now time.Time) []Snapshot {
	dead := []Snapshot{}
	for _, snap := range snapshots {
		if snap.IsExpired(now) {
			dead = append(dead, snap)
		}
	}
	return dead
}
