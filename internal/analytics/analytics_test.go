package analytics

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInsertQuery(t *testing.T) {
	cases := []struct {
		driver  string
		withKey bool
		want    []string
	}{
		{"postgres", false, []string{"$9::jsonb)", "VALUES ($1, "}},
		{"postgres", true, []string{"source_event_key, properties", "$10::jsonb)", "ON CONFLICT (source_event_key) DO NOTHING"}},
		{"mysql", false, []string{"INSERT INTO analytics_events", "?, ?, ?, ?, ?, ?, ?, ?, ?)"}},
		{"mysql", true, []string{"INSERT IGNORE INTO", "?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"}},
	}
	for _, c := range cases {
		q := insertQuery(c.driver, c.withKey)
		for _, w := range c.want {
			if !strings.Contains(q, w) {
				t.Errorf("insertQuery(%s, %v) = %q, missing %q", c.driver, c.withKey, q, w)
			}
		}
		if c.driver == "mysql" && strings.Contains(q, "$") {
			t.Errorf("mysql query uses $ placeholders: %q", q)
		}
	}
}

func TestSchemaQueryPerDriver(t *testing.T) {
	if !strings.Contains(schemaQuery("postgres"), "JSONB") {
		t.Errorf("postgres schema lacks JSONB")
	}
	if !strings.Contains(schemaQuery("mysql"), "AUTO_INCREMENT") {
		t.Errorf("mysql schema lacks AUTO_INCREMENT")
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/tasks", nil)
	r.Header.Set("X-Platform", "CLI")
	r.Header.Set("X-App-Version", " 1.2.0 ")
	r.Header.Set("X-Device-Locale", "en-NG")
	r.Header.Set("X-Session-Id", "s-1")
	r = r.WithContext(WithActor(r.Context(), "user-7"))

	env := FromRequest(r)
	want := Envelope{Actor: "user-7", SessionID: "s-1", Platform: "cli", AppVersion: "1.2.0", DeviceLocale: "en-NG"}
	if env != want {
		t.Errorf("FromRequest = %+v, want %+v", env, want)
	}

	r2 := httptest.NewRequest("GET", "/", nil)
	r2.Header.Set("X-Platform", "fridge")
	if got := FromRequest(r2).Platform; got != "unknown" {
		t.Errorf("platform = %q, want unknown", got)
	}
}

func TestSourceEventKeyPrefersIdempotencyKey(t *testing.T) {
	r := httptest.NewRequest("POST", "/", nil)
	r.Header.Set("X-Source-Event-Key", "b")
	if got := SourceEventKeyFromRequest(r); got != "b" {
		t.Errorf("key = %q, want b", got)
	}
	r.Header.Set("Idempotency-Key", "a")
	if got := SourceEventKeyFromRequest(r); got != "a" {
		t.Errorf("key = %q, want a", got)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var rec *Recorder
	if rec.Enabled() {
		t.Fatalf("nil recorder enabled")
	}
	if err := rec.Log(context.Background(), Envelope{Actor: "x"}, "task_applied", nil, ""); err != nil {
		t.Errorf("Log on nil recorder: %v", err)
	}
	if err := NewRecorder(nil, "postgres").EnsureSchema(context.Background()); err != nil {
		t.Errorf("EnsureSchema without db: %v", err)
	}
}

func TestRewardTier(t *testing.T) {
	for xp, want := range map[int]string{500: "R1", 400: "R1", 399: "R2", 200: "R2", 150: "R3", 0: "R3"} {
		if got := RewardTier(xp); got != want {
			t.Errorf("RewardTier(%d) = %s, want %s", xp, got, want)
		}
	}
}
