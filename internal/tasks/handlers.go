package tasks

import (
	"errors"
	"net/http"
	"time"

	"rippl-backend/internal/analytics"
	"rippl-backend/internal/httpx"
	"rippl-backend/internal/logging"
	"rippl-backend/internal/notifications"
	"rippl-backend/internal/users"
)

// Handler serves the lifecycle endpoints. Every successful step leaves a
// notification and an analytics event behind.
type Handler struct {
	Store  *Store
	Users  *users.Ledger
	Feed   *notifications.Feed
	Events *analytics.Recorder

	now func() time.Time
}

func NewHandler(store *Store, ledger *users.Ledger, feed *notifications.Feed, events *analytics.Recorder) *Handler {
	return &Handler{
		Store:  store,
		Users:  ledger,
		Feed:   feed,
		Events: events,
		now:    time.Now,
	}
}

type outcome struct {
	event    string
	note     string
	severity notifications.Severity
	props    map[string]any
}

func (h *Handler) record(r *http.Request, t Task, o outcome) {
	if h.Feed != nil && o.note != "" {
		h.Feed.Add(o.note, o.severity)
	}

	props := map[string]any{
		"task_id":     t.ID,
		"status":      string(t.Status),
		"category":    t.Category,
		"reward_tier": analytics.RewardTier(t.XP),
	}
	for k, v := range o.props {
		props[k] = v
	}

	env := analytics.FromRequest(r)
	if err := h.Events.Log(r.Context(), env, o.event, props, analytics.SourceEventKeyFromRequest(r)); err != nil {
		logging.Warn(r.Context(), "analytics event dropped", "event", o.event, "task_id", t.ID, "err", err)
	}
}

func writeLifecycleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTaskNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrIllegalTransition):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidApplication), errors.Is(err, ErrInvalidTask):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
