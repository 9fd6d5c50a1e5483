package tasks

import (
	"fmt"
	"strings"
	"time"
)

const deadlineLayout = "Jan 2, 2006"

type CreateRequest struct {
	Title        string       `json:"title"`
	Organization string       `json:"organization"`
	OrgLogo      string       `json:"org_logo"`
	Category     string       `json:"category"`
	Description  string       `json:"description"`
	XP           int          `json:"xp"`
	Hours        float64      `json:"hours"`
	Deadline     string       `json:"deadline"`
	LocationType LocationType `json:"location_type"`
	LocationName string       `json:"location_name"`
	Urgent       bool         `json:"urgent"`
}

// Task builds the new mission. It fills the defaults the posting form used
// and rejects values no mission can have.
func (r CreateRequest) Task(id string, now time.Time) (Task, error) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return Task{}, fmt.Errorf("title is required")
	}
	if r.XP < 0 {
		return Task{}, fmt.Errorf("xp must not be negative")
	}
	if r.Hours < 0 {
		return Task{}, fmt.Errorf("hours must not be negative")
	}

	loc := r.LocationType
	switch loc {
	case "":
		loc = LocationRemote
	case LocationRemote, LocationPhysical:
	default:
		return Task{}, fmt.Errorf("location_type must be Remote or Physical")
	}
	locName := strings.TrimSpace(r.LocationName)
	if locName == "" {
		if loc == LocationPhysical {
			return Task{}, fmt.Errorf("location_name is required for physical missions")
		}
		locName = "Online"
	}

	category := strings.TrimSpace(r.Category)
	if category == "" {
		category = "Design & Creative"
	}
	org := strings.TrimSpace(r.Organization)
	if org == "" {
		org = "Partner Org"
	}
	deadline := strings.TrimSpace(r.Deadline)
	if deadline == "" {
		deadline = now.AddDate(0, 0, 30).Format(deadlineLayout)
	}

	status := StatusNew
	if r.Urgent {
		status = StatusUrgent
	}

	return Task{
		ID:           id,
		Title:        title,
		Organization: org,
		OrgLogo:      r.OrgLogo,
		Category:     category,
		Description:  strings.TrimSpace(r.Description),
		XP:           r.XP,
		Hours:        r.Hours,
		Deadline:     deadline,
		LocationType: loc,
		LocationName: locName,
		Status:       status,
		Tags:         []string{category, string(loc)},
	}, nil
}

type ApplyRequest struct {
	TaskID       string `json:"task_id"`
	Pitch        string `json:"pitch"`
	Motivation   string `json:"motivation"`
	ResumeName   string `json:"resume_name"`
	PortfolioURL string `json:"portfolio_url"`
}

func (r ApplyRequest) Application(now time.Time) Application {
	return Application{
		Pitch:        strings.TrimSpace(r.Pitch),
		Motivation:   strings.TrimSpace(r.Motivation),
		ResumeName:   strings.TrimSpace(r.ResumeName),
		PortfolioURL: strings.TrimSpace(r.PortfolioURL),
		SubmittedAt:  now.UTC(),
	}
}

type ReviewRequest struct {
	TaskID   string `json:"task_id"`
	Approved *bool  `json:"approved"`
}

type EvidenceRequest struct {
	TaskID  string         `json:"task_id"`
	Summary string         `json:"summary"`
	Link    string         `json:"link"`
	Files   []EvidenceFile `json:"files"`
}

type TaskRef struct {
	TaskID string `json:"task_id"`
}
