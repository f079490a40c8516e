package inventory

import (
	"time"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/policy"
)

// OverdueBackup describes a backup type whose latest capture is older than its frequency.
type OverdueBackup struct {
	BackupType policy.BackupType
	// LastSnapshot is nil when no snapshot was ever bucketed for the type.
	LastSnapshot *Snapshot
	// DueSince is when the next capture became due; zero when there never was one.
	DueSince time.Time
}

// FindOverdueBackups checks every backup type declared on a matched volume.
// A type is overdue when it has no bucketed snapshot, or when its most recent
// snapshot started more than Frequency hours before now. Types declared more
// than once are reported once.
func FindOverdueBackups(vol Volume, now time.Time) []OverdueBackup {
	overdue := []OverdueBackup{}
	if vol.BackupConfig == nil {
		return overdue
	}

	seen := map[string]bool{}
	for _, bt := range vol.BackupConfig.BackupTypes {
		key := bt.Key()
		if seen[key] {
			continue
		}
		seen[key] = true

		bound, _ := vol.BackupConfig.Bind(key)

		latest, ok := LatestSnapshot(vol.Snapshots[key])
		if !ok {
			overdue = append(overdue, OverdueBackup{BackupType: bound})
			continue
		}

		due := latest.StartTime.Add(time.Duration(bt.Frequency) * time.Hour)
		if now.After(due) {
			overdue = append(overdue, OverdueBackup{
				BackupType:   bound,
				LastSnapshot: &latest,
				DueSince:     due,
			})
		}
	}

	return overdue
}
