package policy

import (
	"sort"
	"strings"
	"time"
)

// ExpiryDateLayout is the 14-digit YYYYMMDDHHMMSS form used for snapshot expiry timestamps (UTC).
const ExpiryDateLayout = "20060102150405"

// SnapshotMeta is the decoded lifecycle metadata of a snapshot.
//
// ExpiryDate is nil when the tag is missing or unreadable. That is an expected
// state: such snapshots cannot be proven expired.
type SnapshotMeta struct {
	ExpiryDate *time.Time
	BackupType string
}

// snapshotMetaFields maps the recognised keys of the snapshot tag. Any other key is ignored.
type snapshotMetaFields struct {
	ExpiryDate string `json:"ExpiryDate"`
	BackupType string `json:"BackupType"`
}

// ParseSnapshotMeta decodes a snapshot's tag value ("Key:Value,Key:Value").
// It never fails; malformed input degrades to empty fields.
func ParseSnapshotMeta(raw string) SnapshotMeta {
	fields, err := DecodeTagFields[snapshotMetaFields](ParseTagFields(raw))
	if err != nil {
		return SnapshotMeta{}
	}

	return SnapshotMeta{
		ExpiryDate: ParseExpiryDate(fields.ExpiryDate),
		BackupType: fields.BackupType,
	}
}

// ParseExpiryDate reads a YYYYMMDDHHMMSS timestamp. Anything that is not exactly
// 14 digits forming a real calendar instant returns nil.
func ParseExpiryDate(value string) *time.Time {
	if len(value) != len(ExpiryDateLayout) {
		return nil
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return nil
		}
	}

	t, err := time.ParseInLocation(ExpiryDateLayout, value, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// FormatExpiryDate renders t in the 14-digit UTC form read by ParseExpiryDate.
func FormatExpiryDate(t time.Time) string {
	return t.UTC().Format(ExpiryDateLayout)
}

// FormatSnapshotMeta renders metadata into the snapshot tag grammar.
// Empty fields are omitted.
func FormatSnapshotMeta(meta SnapshotMeta) string {
	fields := map[string]string{}
	if meta.ExpiryDate != nil {
		fields["ExpiryDate"] = FormatExpiryDate(*meta.ExpiryDate)
	}
	if meta.BackupType != "" {
		fields["BackupType"] = meta.BackupType
	}
	return FormatTagFields(fields)
}

// ParseTagFields splits "Key:Value" pairs separated by commas.
// Pairs without a separator or with an empty key are skipped; the first
// occurrence of a key wins. Values may themselves contain ':'.
func ParseTagFields(raw string) map[string]string {
	fields := map[string]string{}

	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, seen := fields[key]; seen {
			continue
		}
		fields[key] = strings.TrimSpace(value)
	}

	return fields
}

// FormatTagFields is the inverse of ParseTagFields. Keys are sorted for stable output.
func FormatTagFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+":"+fields[k])
	}
	return strings.Join(pairs, ",")
}
