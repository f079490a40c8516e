package openstack

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud"
	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack"
	"github.com/gophercloud/utils/v2/openstack/clientconfig"
)

// Client manages the connection to the OpenStack Block Storage (Cinder) service.
// It wraps the gophercloud client with retry logic and profile management.
type Client struct {
	// ProfileName corresponds to the entry in clouds.yaml
	ProfileName string
	// RetryConfig defines the behavior for transient error handling
	RetryConfig cloud.RetryConfig

	BlockStorageClient *gophercloud.ServiceClient
}

// executeWithRetry is a helper to run any operation using the client's retry configuration.
func (c *Client) executeWithRetry(ctx context.Context, opName string, operation func(ctx context.Context) error) error {
	cfg := c.RetryConfig
	cfg.IsRetryable = isRetryable
	return cloud.ExecuteAction(ctx, cfg, opName, operation)
}

// GetCloudProviderName returns the identifier for this provider.
func (c *Client) GetCloudProviderName() string {
	return "openstack"
}

// NewClient initializes the OpenStack provider and the Block Storage v3 client.
// It attempts to authenticate using the configured ProfileName with retry logic.
func (c *Client) NewClient(ctx context.Context) error {
	slog.Debug("Initializing OpenStack client", "profile", c.ProfileName)

	var provider *gophercloud.ProviderClient

	opts := &clientconfig.ClientOpts{
		Cloud: c.ProfileName,
	}

	// authenticateOperation encapsulates the authentication logic to allow
	// the retry helper to re-run it in case of transient network issues.
	authenticateOperation := func(innerCtx context.Context) error {
		p, err := clientconfig.AuthenticatedClient(innerCtx, opts)
		if err != nil {
			return err
		}

		provider = p
		return nil
	}

	// 1. Establish Connection & Authentication
	if err := c.executeWithRetry(ctx, "OpenStack Authentication", authenticateOperation); err != nil {
		return fmt.Errorf("authentication failed for profile '%s': %w", c.ProfileName, err)
	}

	// 2. Resolve endpoint selection from clouds.yaml
	cloudConfig, err := clientconfig.GetCloudFromYAML(opts)
	if err != nil {
		return fmt.Errorf("failed to parse cloud config: %w", err)
	}

	var availability gophercloud.Availability
	switch cloudConfig.EndpointType {
	case "internal":
		availability = gophercloud.AvailabilityInternal
	case "admin":
		availability = gophercloud.AvailabilityAdmin
	default:
		availability = gophercloud.AvailabilityPublic
	}

	endpointOpts := gophercloud.EndpointOpts{
		Availability: availability,
		Region:       cloudConfig.RegionName,
	}

	// 3. Initialize Block Storage (Cinder) Client
	blockStorage, err := openstack.NewBlockStorageV3(provider, endpointOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize Block Storage v3 client: %w", err)
	}

	c.BlockStorageClient = blockStorage
	return nil
}
