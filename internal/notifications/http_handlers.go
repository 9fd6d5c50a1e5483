package notifications

import (
	"net/http"
	"strings"

	"rippl-backend/internal/httpx"
)

// Handler serves GET (list) and POST (add) on the feed.
func Handler(feed *Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !httpx.Methods(w, r, http.MethodGet, http.MethodPost) {
			return
		}

		if r.Method == http.MethodGet {
			httpx.WriteJSON(w, feed.List())
			return
		}

		var body struct {
			Text string `json:"text"`
			Type string `json:"type"`
		}
		if !httpx.DecodeJSON(w, r, &body) {
			return
		}
		text := strings.TrimSpace(body.Text)
		if text == "" {
			httpx.WriteError(w, http.StatusBadRequest, "text required")
			return
		}

		httpx.WriteJSONStatus(w, http.StatusCreated, feed.Add(text, ParseSeverity(body.Type)))
	}
}
