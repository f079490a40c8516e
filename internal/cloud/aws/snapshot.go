package aws

import (
	"context"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// ListSnapshots returns every EBS snapshot owned by the calling account.
func (c *Client) ListSnapshots(ctx context.Context) ([]cloud.RawSnapshot, error) {
	var result []cloud.RawSnapshot

	listOperation := func(innerCtx context.Context) error {
		result = nil
		paginator := ec2.NewDescribeSnapshotsPaginator(c.EC2, &ec2.DescribeSnapshotsInput{
			OwnerIds: []string{"self"},
		})

		for paginator.HasMorePages() {
			page, err := paginator.NextPage(innerCtx)
			if err != nil {
				return err
			}
			for _, snap := range page.Snapshots {
				result = append(result, cloud.RawSnapshot{
					SnapshotID: aws.ToString(snap.SnapshotId),
					VolumeID:   aws.ToString(snap.VolumeId),
					StartTime:  aws.ToTime(snap.StartTime),
					Tags:       convertTags(snap.Tags),
				})
			}
		}
		return nil
	}

	if err := c.executeWithRetry(ctx, "DescribeSnapshots", listOperation); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteSnapshot removes an EBS snapshot.
//
// Returns:
//   - RequestID: The AWS request ID for tracing, when the API returned one.
//   - Error: Returns an error if the delete request fails (e.g., InvalidSnapshot.InUse).
func (c *Client) DeleteSnapshot(ctx context.Context, snapshotID string) (RequestID string, Error error) {
	var requestID string

	deleteOperation := func(innerCtx context.Context) error {
		out, err := c.EC2.DeleteSnapshot(innerCtx, &ec2.DeleteSnapshotInput{
			SnapshotId: aws.String(snapshotID),
		})
		if err != nil {
			requestID = requestIDFromError(err)
			return err
		}
		if id, ok := awsmiddleware.GetRequestIDMetadata(out.ResultMetadata); ok {
			requestID = id
		}
		return nil
	}

	if err := c.executeWithRetry(ctx, "DeleteSnapshot", deleteOperation); err != nil {
		return requestID, err
	}
	return requestID, nil
}
