package tasks

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"rippl-backend/internal/httpx"
	"rippl-backend/internal/logging"
	"rippl-backend/internal/notifications"
)

// -------------------------------
// READ SIDE
// -------------------------------

// ListHandler serves the discovery list: ?category=&q=&status=&sort=
func ListHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !httpx.Methods(w, r, http.MethodGet) {
			return
		}

		q, err := queryFromRequest(r)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		httpx.WriteJSON(w, Filter(store.List(), q))
	}
}

func queryFromRequest(r *http.Request) (Query, error) {
	v := r.URL.Query()

	sortBy, ok := ParseSortOrder(v.Get("sort"))
	if !ok {
		return Query{}, fmt.Errorf("sort must be one of xp, newest, match")
	}

	q := Query{
		Category: strings.TrimSpace(v.Get("category")),
		Search:   v.Get("q"),
		Sort:     sortBy,
	}
	for _, raw := range v["status"] {
		st, err := ParseStatus(raw)
		if err != nil {
			return Query{}, err
		}
		q.Statuses = append(q.Statuses, st)
	}
	return q, nil
}

// GetHandler serves one mission: ?id=
func GetHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !httpx.Methods(w, r, http.MethodGet) {
			return
		}

		id := strings.TrimSpace(r.URL.Query().Get("id"))
		if id == "" {
			httpx.WriteError(w, http.StatusBadRequest, "id required")
			return
		}

		t, err := store.Get(id)
		if err != nil {
			writeLifecycleError(w, err)
			return
		}
		httpx.WriteJSON(w, t)
	}
}

// CategoriesHandler lists the categories present in the catalog.
func CategoriesHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !httpx.Methods(w, r, http.MethodGet) {
			return
		}
		httpx.WriteJSON(w, append([]string{"All"}, Categories(store.List())...))
	}
}

// QueueHandler serves the vetting queues: ?kind=applicants|review
func QueueHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !httpx.Methods(w, r, http.MethodGet) {
			return
		}

		var st Status
		switch kind := r.URL.Query().Get("kind"); kind {
		case "", "applicants":
			st = StatusPending
		case "review":
			st = StatusInReview
		default:
			httpx.WriteError(w, http.StatusBadRequest, "kind must be applicants or review")
			return
		}

		httpx.WriteJSON(w, ByStatus(store.List(), st))
	}
}

func (h *Handler) VolunteerDashboard(w http.ResponseWriter, r *http.Request) {
	if !httpx.Methods(w, r, http.MethodGet) {
		return
	}

	httpx.WriteJSON(w, map[string]any{
		"user":    h.Users.Profile(),
		"summary": SummarizeVolunteer(h.Store.List()),
	})
}

func (h *Handler) OrgDashboard(w http.ResponseWriter, r *http.Request) {
	if !httpx.Methods(w, r, http.MethodGet) {
		return
	}

	all := h.Store.List()
	httpx.WriteJSON(w, map[string]any{
		"summary":        SummarizeOrg(all),
		"pending_review": ByStatus(all, StatusInReview),
		"applicants":     ByStatus(all, StatusPending),
	})
}

// -------------------------------
// LIFECYCLE
// -------------------------------

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !httpx.Methods(w, r, http.MethodPost) {
		return
	}

	var body CreateRequest
	if !httpx.DecodeJSON(w, r, &body) {
		return
	}

	t, err := body.Task(NewID(), h.now())
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Store.Create(t)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	logging.Info(r.Context(), "mission posted", "task_id", created.ID, "category", created.Category)

	h.record(r, created, outcome{
		event:    "task_created",
		note:     fmt.Sprintf("Mission %q published", created.Title),
		severity: notifications.SeveritySuccess,
		props: map[string]any{
			"xp":            created.XP,
			"hours":         created.Hours,
			"location_type": string(created.LocationType),
		},
	})

	httpx.WriteJSONStatus(w, http.StatusCreated, created)
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	if !httpx.Methods(w, r, http.MethodPost) {
		return
	}

	var body ApplyRequest
	if !httpx.DecodeJSON(w, r, &body) {
		return
	}
	if body.TaskID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "task_id required")
		return
	}

	app := body.Application(h.now())
	if err := app.Validate(); err != nil {
		writeLifecycleError(w, err)
		return
	}

	t, err := h.Store.Apply(body.TaskID, app)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	h.record(r, t, outcome{
		event:    "task_applied",
		note:     fmt.Sprintf("Application sent for %q", t.Title),
		severity: notifications.SeverityInfo,
		props: map[string]any{
			"pitch_len":     len(app.Pitch),
			"has_resume":    app.ResumeName != "",
			"has_portfolio": app.PortfolioURL != "",
		},
	})

	httpx.WriteJSON(w, t)
}

func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	if !httpx.Methods(w, r, http.MethodPost) {
		return
	}

	var body ReviewRequest
	if !httpx.DecodeJSON(w, r, &body) {
		return
	}
	if body.TaskID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "task_id required")
		return
	}
	if body.Approved == nil {
		httpx.WriteError(w, http.StatusBadRequest, "approved required")
		return
	}

	t, err := h.Store.Review(body.TaskID, *body.Approved)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	o := outcome{
		event:    "application_reviewed",
		note:     fmt.Sprintf("Application for %q accepted", t.Title),
		severity: notifications.SeveritySuccess,
		props:    map[string]any{"approved": *body.Approved},
	}
	if !*body.Approved {
		o.note = fmt.Sprintf("Application for %q declined", t.Title)
		o.severity = notifications.SeverityWarning
	}
	h.record(r, t, o)

	httpx.WriteJSON(w, t)
}

func (h *Handler) SubmitEvidence(w http.ResponseWriter, r *http.Request) {
	if !httpx.Methods(w, r, http.MethodPost) {
		return
	}

	var body EvidenceRequest
	if !httpx.DecodeJSON(w, r, &body) {
		return
	}
	if body.TaskID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "task_id required")
		return
	}

	files := make([]EvidenceFile, 0, len(body.Files))
	for _, f := range body.Files {
		if strings.TrimSpace(f.Name) == "" {
			httpx.WriteError(w, http.StatusBadRequest, "file name required")
			return
		}
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		files = append(files, f)
	}

	ev := Evidence{
		Summary: strings.TrimSpace(body.Summary),
		Link:    strings.TrimSpace(body.Link),
		Files:   files,
	}

	t, err := h.Store.SubmitEvidence(body.TaskID, ev)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	h.record(r, t, outcome{
		event:    "evidence_submitted",
		note:     fmt.Sprintf("Evidence for %q is under audit", t.Title),
		severity: notifications.SeverityInfo,
		props: map[string]any{
			"summary_len": len(ev.Summary),
			"has_link":    ev.Link != "",
			"files":       len(ev.Files),
		},
	})

	httpx.WriteJSON(w, t)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	if !httpx.Methods(w, r, http.MethodPost) {
		return
	}

	var body TaskRef
	if !httpx.DecodeJSON(w, r, &body) {
		return
	}
	if body.TaskID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "task_id required")
		return
	}

	t, err := h.Store.Verify(body.TaskID)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	h.record(r, t, outcome{
		event: "task_completed",
		props: map[string]any{
			"xp":    t.XP,
			"hours": t.Hours,
		},
	})

	httpx.WriteJSON(w, t)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	if !httpx.Methods(w, r, http.MethodPost) {
		return
	}

	var body TaskRef
	if !httpx.DecodeJSON(w, r, &body) {
		return
	}
	if body.TaskID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "task_id required")
		return
	}

	t, err := h.Store.Reject(body.TaskID)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	h.record(r, t, outcome{
		event:    "submission_rejected",
		note:     fmt.Sprintf("Submission for %q needs rework", t.Title),
		severity: notifications.SeverityWarning,
	})

	httpx.WriteJSON(w, t)
}
