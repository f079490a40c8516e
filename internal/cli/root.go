package cli

import (
	"errors"
	"io/fs"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	envFile    string

	// v holds flag bindings, SNAPSENTRY_* environment variables and defaults.
	v = config.New()

	// settings is resolved once per invocation in PersistentPreRunE.
	settings config.Settings
)

var rootCommand = &cobra.Command{
	Use:     "snapsentry-ebs",
	Aliases: []string{"snapsentry"},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 'version' and 'help' run without provider configuration
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		s, err := config.Load(v, configFile)
		if err != nil {
			return err
		}
		settings = s
		return nil
	},
	SilenceUsage: true,
	Short:        "SnapSentry: Block Storage Snapshot Lifecycle Auditor",
	Long: `SnapSentry audits block-storage snapshots against the backup policies
declared on their source volumes. Policies are written as a volume tag
(backups:config-v0, e.g. "Daily,Weekly,[6|48]") and every snapshot records its
own expiry (ExpiryDate:YYYYMMDDhhmmss) in the same tag key.

SnapSentry reports which snapshots belong to which volume and backup type,
which are past their expiry, which have lost their volume and which backup
types are overdue, and can delete expired snapshots.

Author: Aravindh Murugesan`,
}

func Execute() error {
	return rootCommand.Execute()
}

func init() {
	rootCommand.AddGroup(&cobra.Group{ID: "snapsentry", Title: "Snapsentry"})

	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to a config file (yaml, json or toml)")
	flags.StringVar(&envFile, "env-file", ".env", "Dotenv file loaded into the environment when present")

	// Global Peristent Flags with env vars support
	flags.String("provider", "aws", "Cloud provider (aws, openstack)")
	flags.String("region", "", "Cloud region; defaults to the SDK's resolution chain")
	flags.String("profile", "", "Named credential profile (AWS shared config or clouds.yaml cloud)")
	flags.Int("timeout", 0, "Global execution timeout in seconds (0 = run indefinitely)")
	flags.String("log-level", "info", "Logging level (debug, info, warn, error)")
	flags.String("match-key", "name", "Snapshot-to-volume join key (name, id)")
	flags.String("webhook-url", "", "Webhook URL for alerting")
	flags.String("webhook-username", "", "Webhook username for alerting")
	flags.String("webhook-password", "", "Webhook password for alerting")
	flags.Bool("dry-run", true, "Only report expired snapshots; set to false to delete them")

	// Bind to env vars
	for _, name := range []string{
		"provider", "region", "profile", "timeout", "log-level",
		"match-key", "webhook-url", "webhook-username", "webhook-password", "dry-run",
	} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
}
