package inventory

import (
	"testing"
	"time"

	"github.com/aravindh-murugesan/snapsentry-ebs/internal/cloud"
	"github.com/aravindh-murugesan/snapsentry-ebs/internal/policy"
)

func TestNormalizeVolumes(t *testing.T) {
	raw := []cloud.RawVolume{
		{
			VolumeID: "vol-1",
			Tags: []cloud.Tag{
				{Key: "Name", Value: "db"},
				{Key: policy.ConfigTag, Value: "Daily,[1|12]"},
			},
		},
		{
			VolumeID: "vol-2",
			Tags:     []cloud.Tag{{Key: policy.ConfigTag, Value: "Nightly"}},
		},
		{
			VolumeID: "vol-3",
			Tags:     []cloud.Tag{{Key: "Name", Value: "scratch"}},
		},
	}

	volumes := NormalizeVolumes(raw)

	if len(volumes) != 3 {
		t.Fatalf("len(volumes) = %d, want 3", len(volumes))
	}

	tests := []struct {
		name       string
		vol        Volume
		wantID     string
		wantName   string
		wantPolicy bool
		wantTypes  int
	}{
		{name: "Valid Policy", vol: volumes[0], wantID: "vol-1", wantName: "db", wantPolicy: true, wantTypes: 2},
		{name: "Policy Present But Empty", vol: volumes[1], wantID: "vol-2", wantName: "", wantPolicy: true, wantTypes: 0},
		{name: "No Policy Tag", vol: volumes[2], wantID: "vol-3", wantName: "scratch", wantPolicy: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.vol.VolumeID != tt.wantID {
				t.Errorf("VolumeID = %s, want %s", tt.vol.VolumeID, tt.wantID)
			}
			if tt.vol.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", tt.vol.Name, tt.wantName)
			}
			if tt.vol.HasPolicy() != tt.wantPolicy {
				t.Fatalf("HasPolicy() = %v, want %v", tt.vol.HasPolicy(), tt.wantPolicy)
			}
			if tt.wantPolicy && len(tt.vol.BackupConfig.BackupTypes) != tt.wantTypes {
				t.Errorf("len(BackupTypes) = %d, want %d", len(tt.vol.BackupConfig.BackupTypes), tt.wantTypes)
			}
			if tt.vol.Snapshots != nil {
				t.Errorf("Snapshots = %v, want nil before matching", tt.vol.Snapshots)
			}
		})
	}
}

func TestNormalizeSnapshots(t *testing.T) {
	start := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	volumes := []Volume{{VolumeID: "vol-1", Name: "db"}}

	raw := []cloud.RawSnapshot{
		{
			SnapshotID: "snap-1",
			VolumeID:   "vol-1",
			StartTime:  start,
			Tags: []cloud.Tag{
				{Key: "Name", Value: "db-daily"},
				{Key: policy.ConfigTag, Value: "ExpiryDate:20251208100000,BackupType:Daily"},
			},
		},
		{
			SnapshotID: "snap-2",
			VolumeID:   "vol-deleted",
			StartTime:  start,
			Tags: []cloud.Tag{
				{Key: VolumeNameTag, Value: "legacy"},
				{Key: policy.ConfigTag, Value: "ExpiryDate:20251308100000"},
			},
		},
		{
			SnapshotID: "snap-3",
			VolumeID:   "vol-unknown",
			StartTime:  start,
		},
	}

	snaps := NormalizeSnapshots(raw, volumes)
	if len(snaps) != 3 {
		t.Fatalf("len(snaps) = %d, want 3", len(snaps))
	}

	first := snaps[0]
	wantExpiry := time.Date(2025, 12, 8, 10, 0, 0, 0, time.UTC)
	if first.FromVolumeName != "db" || first.FromVolumeID != "vol-1" || first.Name != "db-daily" {
		t.Errorf("first = %+v", first)
	}
	if first.ExpiryDate == nil || !first.ExpiryDate.Equal(wantExpiry) {
		t.Errorf("first ExpiryDate = %v, want %v", first.ExpiryDate, wantExpiry)
	}
	if first.BackupType != "Daily" {
		t.Errorf("first BackupType = %q, want Daily", first.BackupType)
	}
	if !first.StartTime.Equal(start) {
		t.Errorf("first StartTime = %v, want %v", first.StartTime, start)
	}

	second := snaps[1]
	if second.FromVolumeName != "legacy" {
		t.Errorf("second FromVolumeName = %q, want legacy (tag fallback)", second.FromVolumeName)
	}
	if second.ExpiryDate != nil {
		t.Errorf("second ExpiryDate = %v, want nil for month 13", *second.ExpiryDate)
	}

	third := snaps[2]
	if third.FromVolumeName != "" || third.ExpiryDate != nil || third.BackupType != "" {
		t.Errorf("third = %+v, want empty derived fields", third)
	}
}
