package tasks

import (
	"fmt"
	"strings"
	"time"
)

type LocationType string

const (
	LocationRemote   LocationType = "Remote"
	LocationPhysical LocationType = "Physical"
)

// Task is one unit of volunteer work offered by an organization.
type Task struct {
	ID           string       `json:"id" yaml:"id"`
	Title        string       `json:"title" yaml:"title"`
	Organization string       `json:"organization" yaml:"organization"`
	OrgLogo      string       `json:"org_logo,omitempty" yaml:"org_logo"`
	Category     string       `json:"category" yaml:"category"`
	Description  string       `json:"description" yaml:"description"`
	XP           int          `json:"xp" yaml:"xp"`
	Hours        float64      `json:"hours" yaml:"hours"`
	Deadline     string       `json:"deadline" yaml:"deadline"`
	LocationType LocationType `json:"location_type" yaml:"location_type"`
	LocationName string       `json:"location_name" yaml:"location_name"`
	Status       Status       `json:"status" yaml:"status"`
	Tags         []string     `json:"tags" yaml:"tags"`

	Application *Application `json:"application_details,omitempty" yaml:"-"`
	Evidence    *Evidence    `json:"evidence,omitempty" yaml:"-"`
}

// Application is what a volunteer sends when applying to a mission.
type Application struct {
	Pitch        string    `json:"pitch"`
	Motivation   string    `json:"motivation"`
	ResumeName   string    `json:"resume_name,omitempty"`
	PortfolioURL string    `json:"portfolio_url,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// Validate applies the application form's completeness rule: a pitch, a
// motivation, and either a resume or a portfolio link.
func (a Application) Validate() error {
	var missing []string
	if strings.TrimSpace(a.Pitch) == "" {
		missing = append(missing, "pitch")
	}
	if strings.TrimSpace(a.Motivation) == "" {
		missing = append(missing, "motivation")
	}
	if strings.TrimSpace(a.ResumeName) == "" && strings.TrimSpace(a.PortfolioURL) == "" {
		missing = append(missing, "resume_name or portfolio_url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrInvalidApplication, strings.Join(missing, ", "))
	}
	return nil
}

// Evidence is the proof of work submitted for review.
type Evidence struct {
	Summary string         `json:"summary"`
	Link    string         `json:"link,omitempty"`
	Files   []EvidenceFile `json:"files"`
}

// EvidenceFile describes an uploaded file. Contents are never stored.
type EvidenceFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// clone returns a copy that shares no mutable state with t.
func (t Task) clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.Application != nil {
		app := *t.Application
		c.Application = &app
	}
	if t.Evidence != nil {
		c.Evidence = t.Evidence.clone()
	}
	return c
}

func (e *Evidence) clone() *Evidence {
	if e == nil {
		return nil
	}
	c := *e
	if e.Files != nil {
		c.Files = append([]EvidenceFile(nil), e.Files...)
	}
	return &c
}
