// Package app owns the in-memory state shared by every request.
package app

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"rippl-backend/internal/logging"
	"rippl-backend/internal/notifications"
	"rippl-backend/internal/seed"
	"rippl-backend/internal/tasks"
	"rippl-backend/internal/users"
)

type State struct {
	Tasks *tasks.Store
	Users *users.Ledger
	Feed  *notifications.Feed

	xpAwarded metric.Float64Counter
}

// New builds the state from seed data and wires verification rewards:
// every completed mission credits the volunteer and posts a notification.
func New(d seed.Data) *State {
	s := &State{
		Tasks: tasks.NewStore(d.Tasks),
		Users: users.NewLedger(d.User, d.Achievements...),
		Feed:  notifications.NewFeed(),
	}

	if c, err := logging.InitializeFloatCounter("rippl_xp_awarded_total", "XP credited for verified missions", "{xp}"); err == nil {
		s.xpAwarded = c
	}

	s.Tasks.OnTransition(func(from, to tasks.Status) {
		logging.RecordTransition(context.Background(), string(from), string(to))
	})
	s.Tasks.OnCompleted(s.reward)
	return s
}

func (s *State) reward(t tasks.Task) {
	ctx := context.Background()

	p := s.Users.Credit(t.XP, t.Hours)
	s.Feed.Add(fmt.Sprintf("Mission verified: %q, +%d XP", t.Title, t.XP), notifications.SeveritySuccess)

	if s.xpAwarded != nil {
		s.xpAwarded.Add(ctx, float64(t.XP), metric.WithAttributes(attribute.String("category", t.Category)))
	}
	logging.Info(ctx, "mission verified", "task_id", t.ID, "xp", t.XP, "hours", t.Hours, "total_xp", p.TotalXP)
}
