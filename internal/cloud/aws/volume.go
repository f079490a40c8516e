package aws

import (
	"context"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// ListVolumes returns every EBS volume in the region, following pagination.
// A failure on any page restarts the listing under the retry policy.
func (c *Client) ListVolumes(ctx context.Context) ([]cloud.RawVolume, error) {
	var result []cloud.RawVolume

	listOperation := func(innerCtx context.Context) error {
		result = nil
		paginator := ec2.NewDescribeVolumesPaginator(c.EC2, &ec2.DescribeVolumesInput{})

		for paginator.HasMorePages() {
			page, err := paginator.NextPage(innerCtx)
			if err != nil {
				return err
			}
			for _, vol := range page.Volumes {
				result = append(result, cloud.RawVolume{
					VolumeID: aws.ToString(vol.VolumeId),
					Tags:     convertTags(vol.Tags),
				})
			}
		}
		return nil
	}

	if err := c.executeWithRetry(ctx, "DescribeVolumes", listOperation); err != nil {
		return nil, err
	}
	return result, nil
}
