package aws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud"
	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// EC2API is the subset of the EC2 client used by the provider.
type EC2API interface {
	ec2.DescribeVolumesAPIClient
	ec2.DescribeSnapshotsAPIClient
	DeleteSnapshot(ctx context.Context, params *ec2.DeleteSnapshotInput, optFns ...func(*ec2.Options)) (*ec2.DeleteSnapshotOutput, error)
}

// Client lists and deletes EBS volumes and snapshots in a single region.
type Client struct {
	// Region is the AWS region to operate in. Empty falls back to the SDK's default chain.
	Region string
	// Profile selects a shared-config profile (~/.aws/config).
	Profile string
	// AccessKeyID and SecretAccessKey, when both set, override the default credential chain.
	AccessKeyID     string
	SecretAccessKey string
	// RetryConfig defines the behavior for transient error handling
	RetryConfig cloud.RetryConfig

	EC2 EC2API
}

// GetCloudProviderName returns the identifier for this provider.
func (c *Client) GetCloudProviderName() string {
	return "aws"
}

// executeWithRetry is a helper to run any operation using the client's retry configuration.
func (c *Client) executeWithRetry(ctx context.Context, opName string, operation func(ctx context.Context) error) error {
	cfg := c.RetryConfig
	cfg.IsRetryable = isRetryable
	return cloud.ExecuteAction(ctx, cfg, opName, operation)
}

// NewClient loads the AWS configuration and initializes the EC2 client.
// SDK-level retries are disabled; retries are handled by executeWithRetry.
func (c *Client) NewClient(ctx context.Context) error {
	slog.Debug("Initializing AWS client", "region", c.Region, "profile", c.Profile)

	opts := []func(*config.LoadOptions) error{
		config.WithRetryMaxAttempts(1),
	}
	if c.Region != "" {
		opts = append(opts, config.WithRegion(c.Region))
	}
	if c.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(c.Profile))
	}
	if c.AccessKeyID != "" && c.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("error loading AWS config: %w", err)
	}
	if cfg.Region == "" {
		return errors.New("no AWS region configured")
	}

	c.Region = cfg.Region
	c.EC2 = ec2.NewFromConfig(cfg)
	return nil
}

// isRetryable determines if an error is transient and warrants a retry.
// HTTP 408/429/500/503/504 are retried, other HTTP errors fail fast, and
// errors without an HTTP response (DNS, connection reset) are assumed transient.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.HTTPStatusCode() {
		case http.StatusTooManyRequests,
			http.StatusRequestTimeout,
			http.StatusInternalServerError,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	return true
}

// requestIDFromError extracts the AWS request ID from a failed call, if any.
func requestIDFromError(err error) string {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.ServiceRequestID()
	}
	return ""
}

// convertTags maps EC2 tags onto provider-neutral tags, skipping nil keys.
func convertTags(tags []types.Tag) []cloud.Tag {
	result := make([]cloud.Tag, 0, len(tags))
	for _, tag := range tags {
		if tag.Key == nil {
			continue
		}
		result = append(result, cloud.Tag{Key: *tag.Key, Value: aws.ToString(tag.Value)})
	}
	return result
}
