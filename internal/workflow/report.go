package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/config"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/inventory"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/notifications"
)

// VolumeReport is the per-volume view of a discovery cycle.
type VolumeReport struct {
	Volume    inventory.Volume
	Latest    *inventory.Snapshot
	Overdue   []inventory.OverdueBackup
	DeadCount int
}

// Report is the outcome of the report workflow.
type Report struct {
	Provider      string
	RunID         string
	GeneratedAt   time.Time
	Volumes       []VolumeReport
	SnapshotCount int
	// Orphaned and Dead are ordered most recent first.
	Orphaned []inventory.Snapshot
	Dead     []inventory.Snapshot
}

// BuildReport derives the per-volume and fleet-wide views from an inventory.
func BuildReport(inv *Inventory, now time.Time) *Report {
	report := &Report{
		Provider:      inv.Provider,
		GeneratedAt:   now,
		Volumes:       make([]VolumeReport, 0, len(inv.Volumes)),
		SnapshotCount: len(inv.Snapshots),
		Orphaned:      inventory.SortSnapsByMostRecent(inv.Orphaned),
		Dead:          inventory.SortSnapsByMostRecent(inventory.FindDeadSnapshots(inv.Snapshots, now)),
	}

	for _, vol := range inv.Volumes {
		vr := VolumeReport{
			Volume:  vol,
			Overdue: inventory.FindOverdueBackups(vol, now),
		}

		var all []inventory.Snapshot
		for _, bucket := range vol.Snapshots {
			all = append(all, bucket...)
		}
		if latest, ok := inventory.LatestSnapshot(all); ok {
			vr.Latest = &latest
		}
		vr.DeadCount = len(inventory.FindDeadSnapshots(all, now))

		report.Volumes = append(report.Volumes, vr)
	}

	return report
}

// RunReportWorkflow executes one discovery cycle and builds the fleet report.
//
// Responsibilities:
//  1. Discovery: Lists volumes and snapshots and associates them.
//  2. Analysis: Finds dead snapshots, overdue backup types and orphans.
//  3. Alerting: Sends an orphan summary to the webhook when one is configured.
func RunReportWorkflow(ctx context.Context, settings config.Settings, provider cloud.Provider, now time.Time) (*Report, error) {
	runID := newRunID()
	logger := SetupLogger(settings.LogLevel, provider.GetCloudProviderName()).
		With("workflow", "report", "snapsentry_id", runID)

	logger.Info("Initializing snapshot report workflow")

	ctx, cancel := withTimeout(ctx, settings.TimeoutDuration())
	defer cancel()

	inv, err := Discover(ctx, provider, settings.KeySelector(), now, logger)
	if err != nil {
		return nil, err
	}

	report := BuildReport(inv, now)
	report.RunID = runID

	for _, vr := range report.Volumes {
		for _, o := range vr.Overdue {
			logger.Warn("Backup type overdue",
				"volume_id", vr.Volume.VolumeID,
				"volume_name", vr.Volume.Name,
				"backup_type", o.BackupType.Key(),
				"due_since", o.DueSince)
		}
	}

	if len(report.Orphaned) > 0 {
		logger.Warn("Snapshots without a matching volume", "orphaned_count", len(report.Orphaned))
		notifyOrphans(ctx, settings, report, logger)
	}

	recordReport(report)
	recordRun("report", now)

	logger.Info("Snapshot report summary",
		"volumes", len(report.Volumes),
		"snapshots", report.SnapshotCount,
		"dead", len(report.Dead),
		"orphaned", len(report.Orphaned))

	return report, nil
}

func notifyOrphans(ctx context.Context, settings config.Settings, report *Report, logger *slog.Logger) {
	hook := webhookFromSettings(settings)
	if !hook.Enabled() {
		return
	}

	payload := notifications.OrphanReport{
		Event:    "orphaned_snapshots",
		Service:  "snapsentry",
		Provider: report.Provider,
		RunID:    report.RunID,
	}
	for _, s := range report.Orphaned {
		payload.Snapshots = append(payload.Snapshots, notifications.OrphanedSnapshot{
			SnapshotID:     s.SnapshotID,
			FromVolumeID:   s.FromVolumeID,
			FromVolumeName: s.FromVolumeName,
			StartTime:      s.StartTime,
			ExpiryDate:     s.ExpiryDate,
		})
	}

	if err := hook.Notify(ctx, payload); err != nil {
		logger.Error("Failed to send orphan notification", "error", err)
	}
}

func webhookFromSettings(settings config.Settings) *notifications.Webhook {
	return &notifications.Webhook{
		URL:      settings.WebhookURL,
		Username: settings.WebhookUsername,
		Password: settings.WebhookPassword,
	}
}
