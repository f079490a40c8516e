package notifications

import "time"

type Webhook struct {
	URL      string
	Username string
	Password string
}

// Enabled reports whether a webhook endpoint is configured.
func (w *Webhook) Enabled() bool {
	return w != nil && w.URL != ""
}

// SnapshotExpiryFailure is sent when a dead snapshot could not be deleted.
type SnapshotExpiryFailure struct {
	Event      string    `json:"event"`
	Service    string    `json:"service"`
	Provider   string    `json:"cloud_provider"`
	SnapshotID string    `json:"snapshot_id"`
	VolumeID   string    `json:"volume_id"`
	VolumeName string    `json:"volume_name"`
	BackupType string    `json:"backup_type"`
	ExpiryDate time.Time `json:"expiry_date"`
	RequestID  string    `json:"request_id,omitempty"`
	Message    string    `json:"message"`
}

// OrphanedSnapshot is one entry of an OrphanReport.
type OrphanedSnapshot struct {
	SnapshotID     string     `json:"snapshot_id"`
	FromVolumeID   string     `json:"from_volume_id"`
	FromVolumeName string     `json:"from_volume_name"`
	StartTime      time.Time  `json:"start_time"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
}

// OrphanReport summarises snapshots that could not be associated with any volume.
type OrphanReport struct {
	Event     string             `json:"event"`
	Service   string             `json:"service"`
	Provider  string             `json:"cloud_provider"`
	RunID     string             `json:"run_id"`
	Snapshots []OrphanedSnapshot `json:"snapshots"`
}
