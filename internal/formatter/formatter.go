package formatter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/inventory"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/policy"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/workflow"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// maxNameWidth caps the NAME column.
const maxNameWidth = 24

var titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
}

func title(out io.Writer, text string) {
	fmt.Fprintln(out, titleStyle.Render(text))
}

// displayName truncates long names and substitutes N/A for empty ones.
func displayName(name string) string {
	if name == "" {
		return "N/A"
	}
	runes := []rune(name)
	if len(runes) > maxNameWidth {
		return string(runes[:maxNameWidth-2]) + ".."
	}
	return name
}

func relative(t time.Time, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

func expiryColumn(s inventory.Snapshot, now time.Time) string {
	if s.ExpiryDate == nil {
		return "never"
	}
	return fmt.Sprintf("%s (%s)", s.ExpiryDate.Format(time.RFC3339), relative(*s.ExpiryDate, now))
}

func policyColumn(v inventory.Volume) string {
	switch {
	case !v.HasPolicy():
		return "-"
	case v.BackupConfig.IsEmpty():
		return "(invalid)"
	default:
		return policy.FormatBackupConfig(*v.BackupConfig)
	}
}

// PrintReport writes the volume, overdue, dead and orphan tables of a report.
func PrintReport(out io.Writer, r *workflow.Report) {
	now := r.GeneratedAt

	title(out, fmt.Sprintf("Volumes (%d)", len(r.Volumes)))
	if len(r.Volumes) == 0 {
		fmt.Fprintln(out, "No volumes found.")
	} else {
		w := newTable(out)
		fmt.Fprintln(w, "NAME\tVOLUME ID\tPOLICY\tSNAPSHOTS\tLATEST\tDEAD\tOVERDUE")
		for _, vr := range r.Volumes {
			latest := "-"
			if vr.Latest != nil {
				latest = relative(vr.Latest.StartTime, now)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\t%d\n",
				displayName(vr.Volume.Name),
				vr.Volume.VolumeID,
				policyColumn(vr.Volume),
				vr.Volume.SnapshotCount(),
				latest,
				vr.DeadCount,
				len(vr.Overdue),
			)
		}
		fmt.Fprintf(w, "Total:\t\t\t%d\t\t%d\t\n", r.SnapshotCount, len(r.Dead))
		w.Flush()
	}

	printOverdue(out, r)

	fmt.Fprintln(out)
	title(out, fmt.Sprintf("Expired Snapshots (%d)", len(r.Dead)))
	PrintSnapshots(out, r.Dead, now)

	fmt.Fprintln(out)
	title(out, fmt.Sprintf("Orphaned Snapshots (%d)", len(r.Orphaned)))
	PrintSnapshots(out, r.Orphaned, now)
}

func printOverdue(out io.Writer, r *workflow.Report) {
	var rows []string
	for _, vr := range r.Volumes {
		for _, o := range vr.Overdue {
			last, due := "never", "-"
			if o.LastSnapshot != nil {
				last = relative(o.LastSnapshot.StartTime, r.GeneratedAt)
				due = relative(o.DueSince, r.GeneratedAt)
			}
			rows = append(rows, strings.Join([]string{
				displayName(vr.Volume.Name),
				vr.Volume.VolumeID,
				o.BackupType.Key(),
				fmt.Sprintf("%dh", o.BackupType.Frequency),
				last,
				due,
			}, "\t"))
		}
	}
	if len(rows) == 0 {
		return
	}

	fmt.Fprintln(out)
	title(out, fmt.Sprintf("Overdue Backups (%d)", len(rows)))
	w := newTable(out)
	fmt.Fprintln(w, "NAME\tVOLUME ID\tBACKUP TYPE\tFREQUENCY\tLAST SNAPSHOT\tDUE")
	for _, row := range rows {
		fmt.Fprintln(w, row)
	}
	w.Flush()
}

// PrintSnapshots writes one row per snapshot in the given order.
func PrintSnapshots(out io.Writer, snaps []inventory.Snapshot, now time.Time) {
	if len(snaps) == 0 {
		fmt.Fprintln(out, "None.")
		return
	}

	w := newTable(out)
	fmt.Fprintln(w, "SNAPSHOT ID\tVOLUME\tVOLUME ID\tBACKUP TYPE\tSTARTED\tEXPIRES")
	for _, s := range snaps {
		backupType := s.BackupType
		if backupType == "" {
			backupType = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.SnapshotID,
			displayName(s.FromVolumeName),
			s.FromVolumeID,
			backupType,
			relative(s.StartTime, now),
			expiryColumn(s, now),
		)
	}
	w.Flush()
}

// PrintExpiryResult writes the expired snapshots and the outcome of the run.
func PrintExpiryResult(out io.Writer, r *workflow.ExpiryResult, now time.Time) {
	title(out, fmt.Sprintf("Expired Snapshots (%d)", len(r.Dead)))
	PrintSnapshots(out, r.Dead, now)
	fmt.Fprintln(out)

	if r.DryRun {
		fmt.Fprintln(out, "Dry run: no snapshots were deleted. Re-run with --dry-run=false to delete them.")
		return
	}

	fmt.Fprintf(out, "Deleted: %d  Failed: %d\n", len(r.Deleted), len(r.Failed))
	for _, id := range r.Failed {
		fmt.Fprintf(out, "  failed: %s\n", id)
	}
}
