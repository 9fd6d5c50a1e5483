package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func decodeStatus(t *testing.T, body string) (int, map[string]string) {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(body))
	w := httptest.NewRecorder()

	var v map[string]any
	DecodeJSON(w, r, &v)

	var out map[string]string
	if w.Code != http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("error body: %v", err)
		}
	}
	return w.Code, out
}

func TestDecodeJSON(t *testing.T) {
	if code, _ := decodeStatus(t, `{"title":"Gala"}`); code != http.StatusOK {
		t.Errorf("valid body: code = %d", code)
	}

	code, body := decodeStatus(t, `{"title":`)
	if code != http.StatusBadRequest || body["error"] != "invalid json" {
		t.Errorf("truncated body: %d %v", code, body)
	}
}

func TestDecodeJSONRejectsOversizeBody(t *testing.T) {
	big := `{"pitch":"` + strings.Repeat("a", MaxBodyBytes) + `"}`

	code, body := decodeStatus(t, big)
	if code != http.StatusRequestEntityTooLarge {
		t.Fatalf("code = %d, want 413", code)
	}
	if body["error"] != "request body too large" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestMethods(t *testing.T) {
	w := httptest.NewRecorder()
	if Methods(w, httptest.NewRequest(http.MethodOptions, "/tasks", nil), http.MethodGet) {
		t.Errorf("OPTIONS passed through")
	}
	if w.Code != http.StatusOK {
		t.Errorf("OPTIONS code = %d", w.Code)
	}

	w = httptest.NewRecorder()
	if Methods(w, httptest.NewRequest(http.MethodDelete, "/tasks", nil), http.MethodGet) {
		t.Errorf("DELETE allowed")
	}
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE code = %d", w.Code)
	}
}
