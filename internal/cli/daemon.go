package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/workflow"
	"github.com/go-co-op/gocron-ui/server"
	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var daemonCommand = &cobra.Command{
	Use:     "daemon",
	Short:   "Run Snapsentry in daemon mode",
	GroupID: "snapsentry",
	Long: `Starts Snapsentry as a background service that periodically audits snapshots and
enforces their expiry. The scheduler dashboard and Prometheus metrics (/metrics)
are served on --bind-address.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		banner := fmt.Sprintf("Snapsentry - Daemon Mode \n\nVersion: %s\nBuild Date: %s", SnapsentryVersion, SnapsentryDate)
		fmt.Println(headerStyle.Render(banner))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		dlog := workflow.SetupLogger(settings.LogLevel, settings.Provider).With("component", "daemon")

		provider, err := workflow.NewProvider(ctx, settings)
		if err != nil {
			return err
		}

		s, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		s.Start()
		dlog.Info("Scheduler started", "provider", provider.GetCloudProviderName(), "dry_run", settings.DryRun)

		if err := scheduleWorkflow(s, dlog, "Snapshot Report Workflow", settings.ReportSchedule, func() {
			if _, err := workflow.RunReportWorkflow(ctx, settings, provider, time.Now().UTC()); err != nil {
				dlog.Error("Report workflow failed", "error", err)
			}
		}); err != nil {
			return errors.Join(err, s.Shutdown())
		}

		if err := scheduleWorkflow(s, dlog, "Snapshot Expiry Workflow", settings.ExpireSchedule, func() {
			if _, err := workflow.RunExpiryWorkflow(ctx, settings, provider, time.Now().UTC()); err != nil {
				dlog.Error("Expiry workflow failed", "error", err)
			}
		}); err != nil {
			return errors.Join(err, s.Shutdown())
		}

		httpServer, err := newDaemonServer(s, settings.BindAddress)
		if err != nil {
			return errors.Join(err, s.Shutdown())
		}

		serveErr := make(chan error, 1)
		go func() {
			dlog.Info("Snapsentry Scheduler UI started", "address", settings.BindAddress)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
		}()

		// Block until signal or server failure
		select {
		case <-ctx.Done():
			dlog.Warn("Shutting down scheduler due to system signal...")
		case err := <-serveErr:
			dlog.Error("Failed to start UI server", "error", err)
			return errors.Join(err, s.Shutdown())
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return errors.Join(httpServer.Shutdown(shutdownCtx), s.Shutdown())
	},
}

// scheduleWorkflow registers a cron job and logs its next run before and after each execution.
func scheduleWorkflow(s gocron.Scheduler, dlog *slog.Logger, name, schedule string, run func()) error {
	// Declare the job first so it can be used inside the task closure
	var job gocron.Job

	job, err := s.NewJob(
		gocron.CronJob(schedule, false),
		gocron.NewTask(func() {
			run()

			if job != nil {
				if nextRun, err := job.NextRun(); err == nil {
					dlog.Info("Workflow completed",
						"job_name", name,
						"next_run", nextRun.Format(time.RFC3339),
						"job_id", job.ID())
				}
			}
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %s (%q): %w", name, schedule, err)
	}

	if nextRun, err := job.NextRun(); err == nil {
		dlog.Info("Job Scheduled",
			"job_name", job.Name(),
			"job_id", job.ID(),
			"schedule", schedule,
			"next_run", nextRun.Format(time.RFC3339))
	}
	return nil
}

// newDaemonServer serves Prometheus metrics on /metrics and the scheduler dashboard on every other path.
func newDaemonServer(s gocron.Scheduler, bindAddress string) (*http.Server, error) {
	_, portStr, err := net.SplitHostPort(bindAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid bind address %q: %w", bindAddress, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid bind port %q: %w", portStr, err)
	}

	ui := server.NewServer(s, port, server.WithTitle("Snapsentry - Dashboard"))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", ui.Router)

	return &http.Server{
		Addr:              bindAddress,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

func init() {
	rootCommand.AddCommand(daemonCommand)

	flags := daemonCommand.Flags()
	flags.String("report-schedule", "0 * * * *", "Cron schedule for the report workflow")
	flags.String("expire-schedule", "0 */6 * * *", "Cron schedule for snapshot expiration")
	flags.String("bind-address", "0.0.0.0:8080", "Address to bind the UI and metrics server")
	for _, name := range []string{"report-schedule", "expire-schedule", "bind-address"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
}
