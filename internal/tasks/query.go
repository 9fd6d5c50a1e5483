package tasks

import (
	"sort"
	"strconv"
	"strings"
)

type SortOrder string

const (
	SortNone   SortOrder = ""
	SortXP     SortOrder = "xp"
	SortNewest SortOrder = "newest"
	SortMatch  SortOrder = "match"
)

func ParseSortOrder(s string) (SortOrder, bool) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortNone, SortXP, SortNewest, SortMatch:
		return o, true
	default:
		return SortNone, false
	}
}

// Query narrows the discovery list. Zero value matches everything.
type Query struct {
	Category string // "" or "All" match any category
	Search   string // case-insensitive, title or organization
	Statuses []Status
	Sort     SortOrder
}

// Filter returns the tasks matching q in the requested order. The input slice
// is not modified.
func Filter(tasks []Task, q Query) []Task {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Category != "" && q.Category != "All" && t.Category != q.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Organization), search) {
			continue
		}
		if len(q.Statuses) > 0 && !hasStatus(q.Statuses, t.Status) {
			continue
		}
		out = append(out, t)
	}

	switch q.Sort {
	case SortXP:
		sort.SliceStable(out, func(i, j int) bool { return out[i].XP > out[j].XP })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	case SortMatch:
		sort.SliceStable(out, func(i, j int) bool { return matchRank(out[i].ID) < matchRank(out[j].ID) })
	case SortNone:
	}
	return out
}

// matchRank buckets numeric IDs by id mod 3; anything else sorts last.
func matchRank(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil {
		return 3
	}
	if n < 0 {
		n = -n
	}
	return n % 3
}

// ByStatus keeps the tasks whose status is one of statuses, preserving order.
func ByStatus(tasks []Task, statuses ...Status) []Task {
	return Filter(tasks, Query{Statuses: statuses})
}

func hasStatus(list []Status, s Status) bool {
	for _, st := range list {
		if st == s {
			return true
		}
	}
	return false
}

// Categories returns the distinct categories in first-seen order.
func Categories(tasks []Task) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tasks {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}

// VolunteerSummary is the volunteer dashboard view of the collection.
type VolunteerSummary struct {
	Active          []Task `json:"active"`
	CompletedCount  int    `json:"completed_count"`
	RecentCompleted []Task `json:"recent_completed"`
}

func SummarizeVolunteer(tasks []Task) VolunteerSummary {
	completed := ByStatus(tasks, StatusCompleted)
	recent := completed
	if len(recent) > 3 {
		recent = recent[:3]
	}
	return VolunteerSummary{
		Active:          ByStatus(tasks, StatusInProgress, StatusInReview),
		CompletedCount:  len(completed),
		RecentCompleted: recent,
	}
}

// OrgSummary is the organization console view of the collection.
type OrgSummary struct {
	PendingReview int `json:"pending_review"`
	Applicants    int `json:"applicants"`
	Active        int `json:"active"`
	Completed     int `json:"completed"`
	Open          int `json:"open"`
	Declined      int `json:"declined"`
}

func SummarizeOrg(tasks []Task) OrgSummary {
	var s OrgSummary
	for _, t := range tasks {
		switch t.Status {
		case StatusNew, StatusUrgent, StatusActive:
			s.Open++
		case StatusPending:
			s.Applicants++
		case StatusInProgress:
			s.Active++
		case StatusInReview:
			s.PendingReview++
		case StatusCompleted:
			s.Completed++
		case StatusDeclined:
			s.Declined++
		}
	}
	return s
}
