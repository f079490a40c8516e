package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/formatter"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/workflow"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var reportCommand = &cobra.Command{
	Use:     "report",
	GroupID: "snapsentry",
	Short:   "Audit volumes and snapshots against their backup policies",
	Long: `Lists every volume and snapshot, associates snapshots with their source volume and
backup type, and prints the volumes, overdue backup types, expired snapshots and
orphaned snapshots. Nothing is modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(headerStyle.Render("Snapsentry - Report"))

		ctx := cmd.Context()
		provider, err := workflow.NewProvider(ctx, settings)
		if err != nil {
			return err
		}

		s := startSpinner(fmt.Sprintf(" Scanning %s volumes and snapshots ...", provider.GetCloudProviderName()))
		now := time.Now().UTC()
		report, err := workflow.RunReportWorkflow(ctx, settings, provider, now)
		s.Stop()
		if err != nil {
			return err
		}

		formatter.PrintReport(os.Stdout, report)
		return nil
	},
}

// startSpinner writes progress to stderr so stdout stays clean for the tables.
func startSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = suffix
	s.Start()
	return s
}

func init() {
	rootCommand.AddCommand(reportCommand)
}
