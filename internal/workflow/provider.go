package workflow

import (
	"context"
	"fmt"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud/aws"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud/openstack"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/config"
)

// NewProvider builds and authenticates the cloud provider selected in the settings.
func NewProvider(ctx context.Context, settings config.Settings) (cloud.Provider, error) {
	switch settings.Provider {
	case "aws":
		client := &aws.Client{
			Region:          settings.Region,
			Profile:         settings.Profile,
			AccessKeyID:     settings.AccessKeyID,
			SecretAccessKey: settings.SecretAccessKey,
			RetryConfig:     cloud.DefaultRetryConfig(),
		}
		if err := client.NewClient(ctx); err != nil {
			return nil, fmt.Errorf("client initialization failed: %w", err)
		}
		return client, nil

	case "openstack":
		client := &openstack.Client{
			ProfileName: settings.Profile,
			RetryConfig: cloud.DefaultRetryConfig(),
		}
		if err := client.NewClient(ctx); err != nil {
			return nil, fmt.Errorf("client initialization failed: %w", err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported provider %q", settings.Provider)
	}
}
