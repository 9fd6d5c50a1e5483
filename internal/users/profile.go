package users

import "sync"

// Profile is the acting volunteer.
type Profile struct {
	Name       string  `json:"name" yaml:"name"`
	Level      int     `json:"level" yaml:"level"`
	CurrentXP  int     `json:"current_xp" yaml:"current_xp"`
	TargetXP   int     `json:"target_xp" yaml:"target_xp"`
	Streak     int     `json:"streak" yaml:"streak"`
	TotalXP    int     `json:"total_xp" yaml:"total_xp"`
	TotalHours float64 `json:"total_hours" yaml:"total_hours"`
	Avatar     string  `json:"avatar" yaml:"avatar"`
}

// Achievement is a badge shown on the impact page.
type Achievement struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Type        string `json:"type" yaml:"type"`
	Icon        string `json:"icon" yaml:"icon"`
	Color       string `json:"color" yaml:"color"`
	Description string `json:"description" yaml:"description"`
}

// Ledger guards the volunteer profile and earned achievements.
type Ledger struct {
	mu           sync.RWMutex
	profile      Profile
	achievements []Achievement
}

func NewLedger(p Profile, earned ...Achievement) *Ledger {
	return &Ledger{profile: p, achievements: append([]Achievement(nil), earned...)}
}

// Achievements returns the earned badges in award order. Never nil.
func (l *Ledger) Achievements() []Achievement {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Achievement, len(l.achievements))
	copy(out, l.achievements)
	return out
}

func (l *Ledger) Profile() Profile {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.profile
}

// Credit adds a verified mission's reward. Level progression is left alone:
// CurrentXP may exceed TargetXP until a level rule exists.
func (l *Ledger) Credit(xp int, hours float64) Profile {
	if xp < 0 {
		xp = 0
	}
	if hours < 0 {
		hours = 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.profile.TotalXP += xp
	l.profile.CurrentXP += xp
	l.profile.TotalHours += hours
	return l.profile
}

// Progress is CurrentXP/TargetXP clamped to [0, 1].
func (p Profile) Progress() float64 {
	if p.TargetXP <= 0 {
		return 0
	}
	r := float64(p.CurrentXP) / float64(p.TargetXP)
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
