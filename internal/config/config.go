package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/inventory"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. SNAPSENTRY_LOG_LEVEL.
const EnvPrefix = "SNAPSENTRY"

// Settings holds the resolved runtime configuration.
// Values come from flags, SNAPSENTRY_* environment variables, an optional
// config file and the defaults below, in that order of precedence.
type Settings struct {
	Provider string `mapstructure:"provider"`
	Region   string `mapstructure:"region"`
	Profile  string `mapstructure:"profile"`

	AccessKeyID     string `mapstructure:"access-key-id"`
	SecretAccessKey string `mapstructure:"secret-access-key"`

	Timeout  int    `mapstructure:"timeout"`
	LogLevel string `mapstructure:"log-level"`
	MatchKey string `mapstructure:"match-key"`

	WebhookURL      string `mapstructure:"webhook-url"`
	WebhookUsername string `mapstructure:"webhook-username"`
	WebhookPassword string `mapstructure:"webhook-password"`

	DryRun         bool   `mapstructure:"dry-run"`
	ReportSchedule string `mapstructure:"report-schedule"`
	ExpireSchedule string `mapstructure:"expire-schedule"`
	BindAddress    string `mapstructure:"bind-address"`
}

var defaults = map[string]any{
	"provider":          "aws",
	"region":            "",
	"profile":           "",
	"access-key-id":     "",
	"secret-access-key": "",
	"timeout":           0,
	"log-level":         "info",
	"match-key":         "name",
	"webhook-url":       "",
	"webhook-username":  "",
	"webhook-password":  "",
	"dry-run":           true,
	"report-schedule":   "0 * * * *",
	"expire-schedule":   "0 */6 * * *",
	"bind-address":      "0.0.0.0:8080",
}

// New returns a viper instance with defaults registered and environment lookup enabled.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file and unmarshals the settings.
func Load(v *viper.Viper, configFile string) (Settings, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks enumerated values and provider-specific requirements.
func (s Settings) Validate() error {
	switch s.Provider {
	case "aws":
	case "openstack":
		if s.Profile == "" {
			return fmt.Errorf("provider openstack requires a clouds.yaml profile (--profile)")
		}
	default:
		return fmt.Errorf("unsupported provider %q; must be aws or openstack", s.Provider)
	}

	switch s.MatchKey {
	case "name", "id":
	default:
		return fmt.Errorf("unsupported match key %q; must be name or id", s.MatchKey)
	}

	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level %q", s.LogLevel)
	}

	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %d", s.Timeout)
	}
	return nil
}

// KeySelector returns the snapshot-to-volume join key configured by MatchKey.
func (s Settings) KeySelector() inventory.KeySelector {
	if s.MatchKey == "id" {
		return inventory.ByID
	}
	return inventory.ByName
}

// TimeoutDuration converts Timeout seconds to a duration; zero means no timeout.
func (s Settings) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}
