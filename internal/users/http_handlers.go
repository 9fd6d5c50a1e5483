package users

import (
	"net/http"

	"rippl-backend/internal/httpx"
)

func MeHandler(ledger *Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !httpx.Methods(w, r, http.MethodGet) {
			return
		}

		p := ledger.Profile()
		httpx.WriteJSON(w, map[string]any{
			"profile":      p,
			"progress":     p.Progress(),
			"achievements": ledger.Achievements(),
		})
	}
}
