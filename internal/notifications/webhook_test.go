package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWebhook_Notify(t *testing.T) {
	var (
		gotBody     SnapshotExpiryFailure
		gotUser     string
		gotPassword string
		gotType     string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		gotUser, gotPassword, _ = r.BasicAuth()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	hook := Webhook{URL: server.URL, Username: "ops", Password: "secret"}
	failure := SnapshotExpiryFailure{
		Event:      "snapshot_expiry_failed",
		Service:    "snapsentry",
		Provider:   "aws",
		SnapshotID: "snap-1",
		ExpiryDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Message:    "InvalidSnapshot.InUse",
	}

	if err := hook.Notify(context.Background(), failure); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	if gotType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotType)
	}
	if gotUser != "ops" || gotPassword != "secret" {
		t.Errorf("basic auth = %q/%q, want ops/secret", gotUser, gotPassword)
	}
	if gotBody.SnapshotID != "snap-1" || !gotBody.ExpiryDate.Equal(failure.ExpiryDate) {
		t.Errorf("body = %+v", gotBody)
	}
}

func TestWebhook_NotifyErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	hook := Webhook{URL: server.URL}
	if err := hook.Notify(context.Background(), OrphanReport{Event: "orphaned_snapshots"}); err == nil {
		t.Error("Notify() error = nil, want error for 500 response")
	}
}

func TestWebhook_Enabled(t *testing.T) {
	var nilHook *Webhook
	tests := []struct {
		name string
		hook *Webhook
		want bool
	}{
		{name: "Nil", hook: nilHook, want: false},
		{name: "No URL", hook: &Webhook{Username: "ops"}, want: false},
		{name: "Configured", hook: &Webhook{URL: "https://hooks.example.com/x"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hook.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
