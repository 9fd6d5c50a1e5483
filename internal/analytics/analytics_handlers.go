package analytics

import (
	"encoding/json"
	"net/http"
	"strings"

	"rippl-backend/internal/httpx"
	"rippl-backend/internal/logging"
)

// app_opened: client reports a launch
func AppOpenedHandler(rec *Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !httpx.Methods(w, r, http.MethodPost) {
			return
		}
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var body struct {
			ColdStart bool   `json:"cold_start"`
			From      string `json:"from"` // push/deeplink/icon/unknown
		}
		// body is optional
		_ = json.NewDecoder(r.Body).Decode(&body)

		env := FromRequest(r)
		env.Actor = actor

		props := map[string]any{
			"cold_start": body.ColdStart,
			"from":       body.From,
		}

		if err := rec.Log(r.Context(), env, "app_opened", props, SourceEventKeyFromRequest(r)); err != nil {
			logging.Warn(r.Context(), "analytics event dropped", "event", "app_opened", "err", err)
		}

		httpx.WriteJSON(w, map[string]any{"ok": true})
	}
}

// mission_viewed: a mission detail page was shown
func MissionViewedHandler(rec *Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !httpx.Methods(w, r, http.MethodPost) {
			return
		}
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var body struct {
			TaskID string `json:"task_id"`
			Source string `json:"source"` // discovery/dashboard/partner/unknown
		}
		if !httpx.DecodeJSON(w, r, &body) {
			return
		}
		if strings.TrimSpace(body.TaskID) == "" {
			httpx.WriteError(w, http.StatusBadRequest, "task_id required")
			return
		}

		env := FromRequest(r)
		env.Actor = actor

		props := map[string]any{
			"task_id": body.TaskID,
			"source":  body.Source,
		}

		if err := rec.Log(r.Context(), env, "mission_viewed", props, SourceEventKeyFromRequest(r)); err != nil {
			logging.Warn(r.Context(), "analytics event dropped", "event", "mission_viewed", "err", err)
		}

		httpx.WriteJSON(w, map[string]any{"ok": true})
	}
}
