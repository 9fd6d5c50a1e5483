package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type CtxKey string

const (
	ctxActorKey CtxKey = "analytics_actor"
)

// Envelope is what we store with every event.
type Envelope struct {
	Actor        string
	SessionID    string
	Platform     string
	AppVersion   string
	DeviceLocale string
	IPCountry    string
}

// FromRequest extracts event envelope fields from request.
// Backend-trustable fields only.
func FromRequest(r *http.Request) Envelope {
	platform := strings.TrimSpace(r.Header.Get("X-Platform"))
	if platform == "" {
		platform = "unknown"
	} else {
		platform = strings.ToLower(platform)
		if platform != "ios" && platform != "android" && platform != "web" && platform != "cli" {
			platform = "unknown"
		}
	}

	appVer := strings.TrimSpace(r.Header.Get("X-App-Version"))
	locale := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if locale == "" {
		locale = strings.TrimSpace(r.Header.Get("X-Device-Locale"))
	}

	env := Envelope{
		SessionID:    strings.TrimSpace(r.Header.Get("X-Session-Id")),
		Platform:     platform,
		AppVersion:   appVer,
		DeviceLocale: locale,
	}
	if actor, ok := ActorFromContext(r.Context()); ok {
		env.Actor = actor
	}
	return env
}

func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ctxActorKey, actor)
}

func ActorFromContext(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(ctxActorKey).(string)
	if !ok || actor == "" {
		return "", false
	}
	return actor, true
}

// Client-provided idempotency key (optional)
// If present and duplicates, insert is ignored.
func SourceEventKeyFromRequest(r *http.Request) string {
	k := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if k != "" {
		return k
	}
	return strings.TrimSpace(r.Header.Get("X-Source-Event-Key"))
}

// Recorder writes events to the analytics_events table. A nil Recorder, or
// one without a database, drops events.
type Recorder struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

func NewRecorder(db *sql.DB, driver string) *Recorder {
	return &Recorder{db: db, driver: driver, now: time.Now}
}

func (rec *Recorder) Enabled() bool {
	return rec != nil && rec.db != nil
}

// Log inserts one analytics event.
// Never logs sensitive raw text; caller passes sanitized props.
func (rec *Recorder) Log(ctx context.Context, env Envelope, eventName string, props any, sourceEventKey string) error {
	if eventName == "" || !rec.Enabled() {
		return nil
	}

	actor := env.Actor
	if actor == "" {
		if a, ok := ActorFromContext(ctx); ok {
			actor = a
		} else {
			return nil
		}
	}

	b, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("analytics: marshal %s props: %w", eventName, err)
	}

	args := []any{
		eventName, rec.now().UTC(),
		actor, nullIfEmpty(env.SessionID),
		env.Platform, env.AppVersion, nullIfEmpty(env.DeviceLocale), nullIfEmpty(env.IPCountry),
	}
	if sourceEventKey != "" {
		args = append(args, sourceEventKey)
	}
	args = append(args, string(b))

	if _, err := rec.db.ExecContext(ctx, insertQuery(rec.driver, sourceEventKey != ""), args...); err != nil {
		return fmt.Errorf("analytics: insert %s: %w", eventName, err)
	}
	return nil
}

// EnsureSchema creates the events table when it is missing.
func (rec *Recorder) EnsureSchema(ctx context.Context) error {
	if !rec.Enabled() {
		return nil
	}
	_, err := rec.db.ExecContext(ctx, schemaQuery(rec.driver))
	return err
}

func insertQuery(driver string, withKey bool) string {
	cols := "event_name, event_time, actor, session_id, platform, app_version, device_locale, ip_country"
	n := 8
	if withKey {
		cols += ", source_event_key"
		n++
	}
	cols += ", properties"
	n++

	ph := make([]string, n)
	for i := range ph {
		if driver == "mysql" {
			ph[i] = "?"
		} else {
			ph[i] = fmt.Sprintf("$%d", i+1)
		}
	}
	if driver != "mysql" {
		ph[n-1] += "::jsonb"
	}

	q := "INSERT INTO analytics_events (" + cols + ") VALUES (" + strings.Join(ph, ", ") + ")"
	if withKey {
		if driver == "mysql" {
			q = strings.Replace(q, "INSERT INTO", "INSERT IGNORE INTO", 1)
		} else {
			q += " ON CONFLICT (source_event_key) DO NOTHING"
		}
	}
	return q
}

func schemaQuery(driver string) string {
	if driver == "mysql" {
		return `CREATE TABLE IF NOT EXISTS analytics_events (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    event_name VARCHAR(64) NOT NULL,
    event_time TIMESTAMP(3) NOT NULL,
    actor VARCHAR(64) NOT NULL,
    session_id VARCHAR(128) NULL,
    platform VARCHAR(16) NOT NULL,
    app_version VARCHAR(32) NOT NULL,
    device_locale VARCHAR(64) NULL,
    ip_country VARCHAR(8) NULL,
    source_event_key VARCHAR(128) NULL UNIQUE,
    properties JSON NOT NULL
)`
	}
	return `CREATE TABLE IF NOT EXISTS analytics_events (
    id BIGSERIAL PRIMARY KEY,
    event_name TEXT NOT NULL,
    event_time TIMESTAMPTZ NOT NULL,
    actor TEXT NOT NULL,
    session_id TEXT NULL,
    platform TEXT NOT NULL,
    app_version TEXT NOT NULL,
    device_locale TEXT NULL,
    ip_country TEXT NULL,
    source_event_key TEXT NULL UNIQUE,
    properties JSONB NOT NULL
)`
}

func nullIfEmpty(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// RewardTier buckets a mission's XP for reporting.
func RewardTier(xp int) string {
	switch {
	case xp >= 400:
		return "R1"
	case xp >= 200:
		return "R2"
	default:
		return "R3"
	}
}
