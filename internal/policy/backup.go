package policy

import (
	"fmt"
	"strconv"
	"strings"
)

// ConfigTag is the tag key carrying the backup configuration. Volumes store their
// backup policy under it, snapshots store their lifecycle metadata under it.
const ConfigTag = "backups:config-v0"

// BackupType is one recurring capture cadence, e.g. "every 24h, keep 168h".
//
// Fields:
//   - Name: Set when the type is bound to a snapshot's declared backup type (see BackupConfig.Bind).
//   - Frequency: Hours between two captures.
//   - Expiry: Hours a capture is retained.
//   - Alias: Set when the entry was one of the well-known aliases (Daily, Weekly, Hourly).
type BackupType struct {
	Name      string `json:"name,omitempty"`
	Frequency int    `json:"frequency"`
	Expiry    int    `json:"expiry"`
	Alias     string `json:"alias,omitempty"`
}

// Key returns the identifier snapshots use to reference this backup type.
// It prefers the bound Name, then the Alias, then the bracketed "[f|e]" form.
func (b BackupType) Key() string {
	if b.Name != "" {
		return b.Name
	}
	if b.Alias != "" {
		return b.Alias
	}
	return fmt.Sprintf("[%d|%d]", b.Frequency, b.Expiry)
}

// String renders the entry back into the tag grammar.
func (b BackupType) String() string {
	if b.Alias != "" {
		return b.Alias
	}
	return fmt.Sprintf("[%d|%d]", b.Frequency, b.Expiry)
}

// BackupConfig is the ordered list of backup types declared on a volume.
// Duplicates are kept as declared.
type BackupConfig struct {
	BackupTypes []BackupType `json:"backup_types"`
}

// Bind looks up the backup type referenced by name and returns a copy with Name populated.
func (c BackupConfig) Bind(name string) (BackupType, bool) {
	for _, bt := range c.BackupTypes {
		if bt.Key() == name {
			bt.Name = name
			return bt, true
		}
	}
	return BackupType{}, false
}

// IsEmpty reports whether the config declares no backup types.
func (c BackupConfig) IsEmpty() bool {
	return len(c.BackupTypes) == 0
}

// aliases holds the well-known backup types. Lookups are case-sensitive.
var aliases = map[string]BackupType{
	"Hourly": {Frequency: 1, Expiry: 24, Alias: "Hourly"},
	"Daily":  {Frequency: 24, Expiry: 168, Alias: "Daily"},
	"Weekly": {Frequency: 168, Expiry: 672, Alias: "Weekly"},
}

// LookupAlias returns the predefined backup type for a well-known alias name.
func LookupAlias(name string) (BackupType, bool) {
	bt, ok := aliases[name]
	return bt, ok
}

// ParseBackupConfig decodes a volume's policy tag value.
//
// The grammar is a comma separated list of entries, each either an alias
// (Daily, Weekly, Hourly) or a bracketed "[frequency|expiry]" pair in hours.
// Invalid entries are dropped and never abort the rest of the list, so an
// empty or fully invalid value yields an empty config.
func ParseBackupConfig(raw string) BackupConfig {
	config := BackupConfig{BackupTypes: []BackupType{}}

	for _, entry := range strings.Split(raw, ",") {
		if bt, ok := parseBackupEntry(strings.TrimSpace(entry)); ok {
			config.BackupTypes = append(config.BackupTypes, bt)
		}
	}

	return config
}

// FormatBackupConfig renders a config into the tag grammar accepted by ParseBackupConfig.
func FormatBackupConfig(config BackupConfig) string {
	entries := make([]string, 0, len(config.BackupTypes))
	for _, bt := range config.BackupTypes {
		entries = append(entries, bt.String())
	}
	return strings.Join(entries, ",")
}

func parseBackupEntry(entry string) (BackupType, bool) {
	if entry == "" {
		return BackupType{}, false
	}

	if bt, ok := LookupAlias(entry); ok {
		return bt, true
	}

	body, ok := strings.CutPrefix(entry, "[")
	if !ok {
		return BackupType{}, false
	}
	body, ok = strings.CutSuffix(body, "]")
	if !ok {
		return BackupType{}, false
	}

	freqStr, expiryStr, ok := strings.Cut(body, "|")
	if !ok {
		return BackupType{}, false
	}

	frequency, ok := parseHours(freqStr)
	if !ok {
		return BackupType{}, false
	}
	expiry, ok := parseHours(expiryStr)
	if !ok {
		return BackupType{}, false
	}

	return BackupType{Frequency: frequency, Expiry: expiry}, true
}

// parseHours accepts a strictly positive, unsigned decimal number.
func parseHours(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
