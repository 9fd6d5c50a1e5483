package orgs

import "rippl-backend/internal/tasks"

// Organization is a partner as seen from its missions.
type Organization struct {
	Slug       string   `json:"slug"`
	Name       string   `json:"name"`
	Logo       string   `json:"logo,omitempty"`
	Categories []string `json:"categories"`

	Missions  int     `json:"missions"`
	Open      int     `json:"open"`
	Completed int     `json:"completed"`
	Hours     float64 `json:"hours_delivered"`
	XPOffered int     `json:"xp_offered"`
}

// Detail is one organization with its missions, in catalog order.
type Detail struct {
	Organization
	Tasks []tasks.Task `json:"tasks"`
}
