package tasks

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle state of a mission.
type Status string

const (
	StatusNew        Status = "New"
	StatusUrgent     Status = "Urgent"
	StatusActive     Status = "Active"
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusInReview   Status = "In Review"
	StatusCompleted  Status = "Completed"
	StatusDeclined   Status = "Declined"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []Status{
	StatusNew,
	StatusUrgent,
	StatusActive,
	StatusPending,
	StatusInProgress,
	StatusInReview,
	StatusCompleted,
	StatusDeclined,
}

// ParseStatus maps a wire value onto a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("unknown task status %q", s)
	}
	return st, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusUrgent, StatusActive,
		StatusPending, StatusInProgress, StatusInReview,
		StatusCompleted, StatusDeclined:
		return true
	default:
		return false
	}
}

// IsOpen reports whether volunteers can still apply. New, Urgent and Active
// differ only in how loudly they are displayed.
func (s Status) IsOpen() bool {
	switch s {
	case StatusNew, StatusUrgent, StatusActive:
		return true
	case StatusPending, StatusInProgress, StatusInReview, StatusCompleted, StatusDeclined:
		return false
	default:
		panic(fmt.Sprintf("tasks: unhandled status %q", string(s)))
	}
}

// IsTerminal reports whether no further transition leaves s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusDeclined:
		return true
	case StatusNew, StatusUrgent, StatusActive, StatusPending, StatusInProgress, StatusInReview:
		return false
	default:
		panic(fmt.Sprintf("tasks: unhandled status %q", string(s)))
	}
}

func (s Status) String() string { return string(s) }

func (s Status) MarshalJSON() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("unknown task status %q", string(s))
	}
	return json.Marshal(string(s))
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	st, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

func (s Status) MarshalYAML() (any, error) {
	return string(s), nil
}

func (s *Status) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	st, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}
