package orgs

import (
	"errors"
	"net/http"

	"rippl-backend/internal/httpx"
	"rippl-backend/internal/tasks"
)

func ListHandler(store *tasks.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !httpx.Methods(w, r, http.MethodGet) {
			return
		}
		httpx.WriteJSON(w, Directory(store.List()))
	}
}

// GetHandler serves ?name= (name or slug).
func GetHandler(store *tasks.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !httpx.Methods(w, r, http.MethodGet) {
			return
		}

		d, err := Find(store.List(), r.URL.Query().Get("name"))
		if errors.Is(err, ErrOrgNotFound) {
			httpx.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		httpx.WriteJSON(w, d)
	}
}
