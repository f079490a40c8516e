package policy

import (
	"testing"
	"time"
)

func TestParseSnapshotMeta(t *testing.T) {
	expiry := time.Date(2025, 12, 21, 14, 30, 5, 0, time.UTC)

	tests := []struct {
		name           string
		input          string
		wantExpiry     *time.Time
		wantBackupType string
	}{
		{
			name:       "Expiry Only",
			input:      "ExpiryDate:20251221143005",
			wantExpiry: &expiry,
		},
		{
			name:           "Expiry With Unknown Keys",
			input:          "Owner:ops,ExpiryDate:20251221143005,BackupType:Daily,Source:lambda",
			wantExpiry:     &expiry,
			wantBackupType: "Daily",
		},
		{
			name:  "Missing Key",
			input: "Owner:ops,BackupType:Weekly",
			// BackupType still decoded when expiry is absent.
			wantBackupType: "Weekly",
		},
		{
			name:  "Key Is Case Sensitive",
			input: "expirydate:20251221143005",
		},
		{
			name:  "Too Short",
			input: "ExpiryDate:2025122114300",
		},
		{
			name:  "Too Long",
			input: "ExpiryDate:202512211430055",
		},
		{
			name:  "Month 13",
			input: "ExpiryDate:20251321143005",
		},
		{
			name:  "February 30th",
			input: "ExpiryDate:20250230000000",
		},
		{
			name:  "Hour 24",
			input: "ExpiryDate:20251221240000",
		},
		{
			name:  "Non Digit",
			input: "ExpiryDate:2025-12-21T14:30",
		},
		{
			name:  "Empty Value",
			input: "ExpiryDate:",
		},
		{
			name:  "Empty String",
			input: "",
		},
		{
			name:  "Garbage",
			input: ",,:,::,ExpiryDate",
		},
		{
			name:           "Bracket Backup Type Value",
			input:          "BackupType:[1|12],ExpiryDate:20251221143005",
			wantExpiry:     &expiry,
			wantBackupType: "[1|12]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSnapshotMeta(tt.input)

			switch {
			case tt.wantExpiry == nil && got.ExpiryDate != nil:
				t.Errorf("ExpiryDate = %v, want nil", *got.ExpiryDate)
			case tt.wantExpiry != nil && got.ExpiryDate == nil:
				t.Errorf("ExpiryDate = nil, want %v", *tt.wantExpiry)
			case tt.wantExpiry != nil && !got.ExpiryDate.Equal(*tt.wantExpiry):
				t.Errorf("ExpiryDate = %v, want %v", *got.ExpiryDate, *tt.wantExpiry)
			}

			if got.BackupType != tt.wantBackupType {
				t.Errorf("BackupType = %q, want %q", got.BackupType, tt.wantBackupType)
			}
		})
	}
}

func TestParseExpiryDate_FormattedDates(t *testing.T) {
	dates := []time.Time{
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
		time.Date(2031, 7, 15, 8, 5, 9, 0, time.UTC),
		time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	for _, d := range dates {
		formatted := FormatExpiryDate(d)
		got := ParseExpiryDate(formatted)
		if got == nil {
			t.Fatalf("ParseExpiryDate(%q) = nil, want %v", formatted, d)
		}
		if !got.Equal(d) {
			t.Errorf("ParseExpiryDate(%q) = %v, want %v", formatted, *got, d)
		}
	}
}

func TestFormatSnapshotMeta(t *testing.T) {
	expiry := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	meta := SnapshotMeta{ExpiryDate: &expiry, BackupType: "Weekly"}

	raw := FormatSnapshotMeta(meta)
	if raw != "BackupType:Weekly,ExpiryDate:20260102030405" {
		t.Errorf("FormatSnapshotMeta() = %q", raw)
	}

	back := ParseSnapshotMeta(raw)
	if back.ExpiryDate == nil || !back.ExpiryDate.Equal(expiry) || back.BackupType != "Weekly" {
		t.Errorf("ParseSnapshotMeta(%q) = %+v", raw, back)
	}
}

func TestParseTagFields(t *testing.T) {
	got := ParseTagFields(" A : 1 ,B:2:3,A:ignored,noseparator,:empty")

	want := map[string]string{"A": "1", "B": "2:3"}
	if len(got) != len(want) {
		t.Fatalf("ParseTagFields() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("field %q = %q, want %q", k, got[k], v)
		}
	}
}
