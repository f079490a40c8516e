package inventory

import (
	"testing"
	"time"
)

func startedSnapshot(id string, start time.Time) Snapshot {
	return Snapshot{SnapshotID: id, StartTime: start}
}

func ids(snaps []Snapshot) []string {
	out := make([]string, len(snaps))
	for i, s := range snaps {
		out[i] = s.SnapshotID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortSnapsByMostRecent(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	a := startedSnapshot("a", base)
	b := startedSnapshot("b", base.Add(time.Hour))
	c := startedSnapshot("c", base.Add(2*time.Hour))
	d := startedSnapshot("d", base.Add(48*time.Hour))

	want := []string{"d", "c", "b", "a"}

	permutations := [][]Snapshot{
		{a, b, c, d},
		{d, c, b, a},
		{b, d, a, c},
		{c, a, d, b},
	}

	for _, input := range permutations {
		before := ids(input)
		got := SortSnapsByMostRecent(input)

		if !equalIDs(ids(got), want) {
			t.Errorf("SortSnapsByMostRecent(%v) = %v, want %v", before, ids(got), want)
		}
		if !equalIDs(ids(input), before) {
			t.Errorf("input mutated: %v, was %v", ids(input), before)
		}

		again := SortSnapsByMostRecent(got)
		if !equalIDs(ids(again), ids(got)) {
			t.Errorf("sorting is not idempotent: %v then %v", ids(got), ids(again))
		}
	}
}

func TestSortSnapsByMostRecent_StableTies(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	input := []Snapshot{
		startedSnapshot("tie-1", base),
		startedSnapshot("newest", base.Add(time.Minute)),
		startedSnapshot("tie-2", base),
		startedSnapshot("tie-3", base),
	}

	got := ids(SortSnapsByMostRecent(input))
	want := []string{"newest", "tie-1", "tie-2", "tie-3"}
	if !equalIDs(got, want) {
		t.Errorf("SortSnapsByMostRecent() = %v, want %v", got, want)
	}
}

func TestLatestSnapshot(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if _, ok := LatestSnapshot(nil); ok {
		t.Error("LatestSnapshot(nil) ok = true, want false")
	}

	got, ok := LatestSnapshot([]Snapshot{
		startedSnapshot("old", base),
		startedSnapshot("new", base.Add(time.Hour)),
		startedSnapshot("mid", base.Add(time.Minute)),
	})
	if !ok || got.SnapshotID != "new" {
		t.Errorf("LatestSnapshot() = %s, %v, want new, true", got.SnapshotID, ok)
	}
}
