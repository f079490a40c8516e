package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/formatter"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/workflow"
	"github.com/spf13/cobra"
)

var expireSnapshotCommand = &cobra.Command{
	Use:     "expire-snapshots",
	GroupID: "snapsentry",
	Short:   "Execute the snapshot expiry workflow",
	Long: `Scans all snapshots in the account or project, compares their stored expiry dates against
the current UTC time, and lists those that have exceeded their retention period.
With --dry-run=false the expired snapshots are permanently deleted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(headerStyle.Render("Snapsentry - Expiry Workflow"))

		ctx := cmd.Context()
		provider, err := workflow.NewProvider(ctx, settings)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		result, err := workflow.RunExpiryWorkflow(ctx, settings, provider, now)
		if err != nil {
			return err
		}

		formatter.PrintExpiryResult(os.Stdout, result, now)
		if len(result.Failed) > 0 {
			return fmt.Errorf("%d expired snapshots could not be deleted", len(result.Failed))
		}
		return nil
	},
}

func init() {
	rootCommand.AddCommand(expireSnapshotCommand)
}
