package aws

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud"
	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

type fakeEC2 struct {
	volumePages   [][]types.Volume
	snapshotPages [][]types.Snapshot
	deleteErr     error

	snapshotOwners []string
	deleted        []string
}

func pageToken(i int) *string {
	return aws.String(string(rune('a' + i)))
}

func pageIndex(token *string) int {
	if token == nil {
		return 0
	}
	return int((*token)[0] - 'a')
}

func (f *fakeEC2) DescribeVolumes(ctx context.Context, in *ec2.DescribeVolumesInput, _ ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
	i := pageIndex(in.NextToken)
	out := &ec2.DescribeVolumesOutput{Volumes: f.volumePages[i]}
	if i+1 < len(f.volumePages) {
		out.NextToken = pageToken(i + 1)
	}
	return out, nil
}

func (f *fakeEC2) DescribeSnapshots(ctx context.Context, in *ec2.DescribeSnapshotsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error) {
	f.snapshotOwners = in.OwnerIds
	i := pageIndex(in.NextToken)
	out := &ec2.DescribeSnapshotsOutput{Snapshots: f.snapshotPages[i]}
	if i+1 < len(f.snapshotPages) {
		out.NextToken = pageToken(i + 1)
	}
	return out, nil
}

func (f *fakeEC2) DeleteSnapshot(ctx context.Context, in *ec2.DeleteSnapshotInput, _ ...func(*ec2.Options)) (*ec2.DeleteSnapshotOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, aws.ToString(in.SnapshotId))
	return &ec2.DeleteSnapshotOutput{}, nil
}

func testClient(api EC2API) *Client {
	return &Client{
		Region: "eu-west-1",
		RetryConfig: cloud.RetryConfig{
			MaxRetries:       1,
			BaseDelay:        time.Millisecond,
			MaxDelay:         time.Millisecond,
			OperationTimeout: time.Second,
		},
		EC2: api,
	}
}

func TestClient_ListVolumes(t *testing.T) {
	api := &fakeEC2{
		volumePages: [][]types.Volume{
			{
				{
					VolumeId: aws.String("vol-1"),
					Tags: []types.Tag{
						{Key: aws.String("Name"), Value: aws.String("db")},
						{Key: aws.String("backups:config-v0"), Value: aws.String("Daily")},
					},
				},
			},
			{
				{VolumeId: aws.String("vol-2"), Tags: []types.Tag{{Key: nil, Value: aws.String("dropped")}}},
			},
		},
	}

	got, err := testClient(api).ListVolumes(context.Background())
	if err != nil {
		t.Fatalf("ListVolumes() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("len(volumes) = %d, want 2 (both pages)", len(got))
	}
	if got[0].VolumeID != "vol-1" || len(got[0].Tags) != 2 {
		t.Errorf("volumes[0] = %+v", got[0])
	}
	if v, _ := cloud.TagValue(got[0].Tags, "backups:config-v0"); v != "Daily" {
		t.Errorf("policy tag = %q, want Daily", v)
	}
	if got[1].VolumeID != "vol-2" || len(got[1].Tags) != 0 {
		t.Errorf("volumes[1] = %+v, want nil-key tag skipped", got[1])
	}
}

func TestClient_ListSnapshots(t *testing.T) {
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	api := &fakeEC2{
		snapshotPages: [][]types.Snapshot{
			{
				{SnapshotId: aws.String("snap-1"), VolumeId: aws.String("vol-1"), StartTime: aws.Time(start)},
			},
		},
	}

	got, err := testClient(api).ListSnapshots(context.Background())
	if err != nil {
		t.Fatalf("ListSnapshots() error = %v", err)
	}

	if len(api.snapshotOwners) != 1 || api.snapshotOwners[0] != "self" {
		t.Errorf("OwnerIds = %v, want [self]", api.snapshotOwners)
	}
	if len(got) != 1 || got[0].SnapshotID != "snap-1" || got[0].VolumeID != "vol-1" || !got[0].StartTime.Equal(start) {
		t.Errorf("snapshots = %+v", got)
	}
}

func TestClient_DeleteSnapshot(t *testing.T) {
	api := &fakeEC2{}
	if _, err := testClient(api).DeleteSnapshot(context.Background(), "snap-9"); err != nil {
		t.Fatalf("DeleteSnapshot() error = %v", err)
	}
	if len(api.deleted) != 1 || api.deleted[0] != "snap-9" {
		t.Errorf("deleted = %v, want [snap-9]", api.deleted)
	}

	failing := &fakeEC2{deleteErr: errors.New("boom")}
	if _, err := testClient(failing).DeleteSnapshot(context.Background(), "snap-9"); err == nil {
		t.Error("DeleteSnapshot() error = nil, want error")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "Network Error", err: errors.New("connection reset by peer"), want: true},
		{name: "Context Cancelled", err: context.Canceled, want: false},
		{name: "Deadline", err: context.DeadlineExceeded, want: false},
		{name: "Throttled", err: responseError(http.StatusTooManyRequests), want: true},
		{name: "Service Unavailable", err: responseError(http.StatusServiceUnavailable), want: true},
		{name: "Forbidden", err: responseError(http.StatusForbidden), want: false},
		{name: "Bad Request", err: responseError(http.StatusBadRequest), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryable(tt.err); got != tt.want {
				t.Errorf("isRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func responseError(status int) error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: status}},
			Err:      errors.New("api error"),
		},
		RequestID: "req-123",
	}
}

func TestRequestIDFromError(t *testing.T) {
	if got := requestIDFromError(responseError(http.StatusBadRequest)); got != "req-123" {
		t.Errorf("requestIDFromError() = %q, want req-123", got)
	}
	if got := requestIDFromError(errors.New("plain")); got != "" {
		t.Errorf("requestIDFromError(plain) = %q, want empty", got)
	}
}
