package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/config"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/inventory"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/notifications"
)

// ExpiryResult is the outcome of the expiry workflow.
type ExpiryResult struct {
	RunID  string
	DryRun bool
	// Dead is ordered most recent first.
	Dead    []inventory.Snapshot
	Deleted []string
	Failed  []string
}

// RunExpiryWorkflow executes the retention enforcement process.
//
// Responsibilities:
//  1. Discovery: Retrieves all snapshots, independent of whether their source volume still exists.
//  2. Evaluation: Compares each snapshot's ExpiryDate against the reference time.
//     Snapshots without a readable expiry are never considered expired.
//  3. Cleanup: Deletes expired snapshots unless the run is a dry run.
//
// Parameters:
//   - now: The reference time for expiry (usually time.Now().UTC(), injected for deterministic testing).
func RunExpiryWorkflow(ctx context.Context, settings config.Settings, provider cloud.Provider, now time.Time) (*ExpiryResult, error) {
	runID := newRunID()
	logger := SetupLogger(settings.LogLevel, provider.GetCloudProviderName()).
		With("workflow", "expiry", "validation_time", now, "snapsentry_id", runID, "dry_run", settings.DryRun)

	logger.Info("Initializing snapshot lifecycle workflow - expiry")

	ctx, cancel := withTimeout(ctx, settings.TimeoutDuration())
	defer cancel()

	inv, err := Discover(ctx, provider, settings.KeySelector(), now, logger)
	if err != nil {
		return nil, err
	}

	result := &ExpiryResult{
		RunID:  runID,
		DryRun: settings.DryRun,
		Dead:   inventory.SortSnapsByMostRecent(inventory.FindDeadSnapshots(inv.Snapshots, now)),
	}
	logger.Info("Found expired snapshots", "count", len(result.Dead))

	if settings.DryRun {
		for _, snap := range result.Dead {
			logger.Info("Snapshot has expired; deletion skipped in dry run",
				"snapshot_id", snap.SnapshotID,
				"expires_at", *snap.ExpiryDate)
		}
		recordRun("expiry", now)
		return result, nil
	}

	hook := webhookFromSettings(settings)

	// Process snapshots sequentially
	for _, snap := range result.Dead {
		if ctx.Err() != nil {
			logger.Warn("Workflow timed out, stopping early")
			return result, ctx.Err()
		}

		if err := deleteExpiredSnapshot(ctx, provider, hook, snap, logger); err != nil {
			result.Failed = append(result.Failed, snap.SnapshotID)
			recordDeletion(provider.GetCloudProviderName(), "failed")
			continue
		}
		result.Deleted = append(result.Deleted, snap.SnapshotID)
		recordDeletion(provider.GetCloudProviderName(), "deleted")
	}

	recordRun("expiry", now)
	logger.Info("Expiry workflow completed",
		"deleted_count", len(result.Deleted),
		"failed_count", len(result.Failed))

	return result, nil
}

// deleteExpiredSnapshot handles the deletion of a single snapshot.
func deleteExpiredSnapshot(ctx context.Context, provider cloud.Provider, hook *notifications.Webhook, snap inventory.Snapshot, logger *slog.Logger) error {
	snapLog := logger.With("snapshot_id", snap.SnapshotID, "volume_id", snap.FromVolumeID, "expires_at", *snap.ExpiryDate)
	snapLog.Info("Snapshot has expired")

	reqID, err := provider.DeleteSnapshot(ctx, snap.SnapshotID)
	if err != nil {
		snapLog.Error("Failed to delete snapshot", "error", err, "request_id", reqID)

		if hook.Enabled() {
			failure := notifications.SnapshotExpiryFailure{
				Event:      "snapshot_expiry_failed",
				Service:    "snapsentry",
				Provider:   provider.GetCloudProviderName(),
				SnapshotID: snap.SnapshotID,
				VolumeID:   snap.FromVolumeID,
				VolumeName: snap.FromVolumeName,
				BackupType: snap.BackupType,
				ExpiryDate: *snap.ExpiryDate,
				RequestID:  reqID,
				Message:    err.Error(),
			}
			if notifyErr := hook.Notify(ctx, failure); notifyErr != nil {
				snapLog.Error("Failed to send expiry failure notification", "error", notifyErr)
			}
		}
		return fmt.Errorf("delete %s: %w", snap.SnapshotID, err)
	}

	snapLog.Info("Snapshot deleted successfully", "request_id", reqID)
	return nil
}
