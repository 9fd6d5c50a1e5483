package report

import (
	"net/http"

	"rippl-backend/internal/httpx"
	"rippl-backend/internal/logging"
)

// ExportHandler serves ?format=json|csv|pdf (json by default).
func ExportHandler(ex *Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !httpx.Methods(w, r, http.MethodGet) {
			return
		}

		f, err := ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		b, err := ex.Export(f)
		if err != nil {
			logging.Error(r.Context(), "impact export failed", "format", string(f), "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "export failed")
			return
		}

		w.Header().Set("Content-Type", f.ContentType())
		w.Header().Set("Content-Disposition", `attachment; filename="impact.`+string(f)+`"`)
		_, _ = w.Write(b)
	}
}
