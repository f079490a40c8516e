package workflow

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	inventoryVolumes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "snapsentry",
			Subsystem: "inventory",
			Name:      "volumes",
			Help:      "Number of volumes seen in the last discovery cycle",
		},
		[]string{"provider", "policy"},
	)

	inventorySnapshots = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "snapsentry",
			Subsystem: "inventory",
			Name:      "snapshots",
			Help:      "Number of snapshots seen in the last discovery cycle, by state",
		},
		[]string{"provider", "state"},
	)

	overdueBackups = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "snapsentry",
			Subsystem: "inventory",
			Name:      "overdue_backups",
			Help:      "Number of backup types whose latest snapshot is older than their frequency",
		},
		[]string{"provider"},
	)

	expiryDeletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snapsentry",
			Subsystem: "expiry",
			Name:      "deletions_total",
			Help:      "Total number of expired snapshot deletions, by outcome",
		},
		[]string{"provider", "outcome"},
	)

	lastRun = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "snapsentry",
			Subsystem: "workflow",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed workflow run",
		},
		[]string{"workflow"},
	)
)

// recordReport publishes the gauges derived from a report.
func recordReport(r *Report) {
	managed, unmanaged := 0, 0
	overdue := 0
	for _, vr := range r.Volumes {
		if vr.Volume.HasPolicy() {
			managed++
		} else {
			unmanaged++
		}
		overdue += len(vr.Overdue)
	}

	inventoryVolumes.WithLabelValues(r.Provider, "configured").Set(float64(managed))
	inventoryVolumes.WithLabelValues(r.Provider, "none").Set(float64(unmanaged))
	inventorySnapshots.WithLabelValues(r.Provider, "total").Set(float64(r.SnapshotCount))
	inventorySnapshots.WithLabelValues(r.Provider, "orphaned").Set(float64(len(r.Orphaned)))
	inventorySnapshots.WithLabelValues(r.Provider, "dead").Set(float64(len(r.Dead)))
	overdueBackups.WithLabelValues(r.Provider).Set(float64(overdue))
}

func recordDeletion(provider string, outcome string) {
	expiryDeletions.WithLabelValues(provider, outcome).Inc()
}

func recordRun(workflow string, at time.Time) {
	lastRun.WithLabelValues(workflow).Set(float64(at.Unix()))
}
