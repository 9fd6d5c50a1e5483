package notifications

import (
	"strings"
	"sync"
	"time"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// ParseSeverity falls back to info for empty or unknown values.
func ParseSeverity(s string) Severity {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case SeverityInfo, SeveritySuccess, SeverityWarning:
		return sev
	default:
		return SeverityInfo
	}
}

// Notification is an ephemeral message surfaced to the user.
type Notification struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Type      Severity  `json:"type"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"created_at"`
}

// Feed is an append-only, newest-first list of notifications.
type Feed struct {
	mu     sync.RWMutex
	items  []Notification
	lastID int64
	now    func() time.Time
}

func NewFeed() *Feed {
	return &Feed{now: time.Now}
}

// Add prepends a notification. IDs derive from the creation time in
// milliseconds and are bumped when two arrive within the same millisecond.
func (f *Feed) Add(text string, sev Severity) Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	id := now.UnixMilli()
	if id <= f.lastID {
		id = f.lastID + 1
	}
	f.lastID = id

	n := Notification{
		ID:        id,
		Text:      text,
		Type:      ParseSeverity(string(sev)),
		Time:      "Just now",
		CreatedAt: now,
	}
	f.items = append([]Notification{n}, f.items...)
	return n
}

// List returns a snapshot, newest first.
func (f *Feed) List() []Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Notification, len(f.items))
	copy(out, f.items)
	return out
}
