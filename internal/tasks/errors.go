package tasks

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrInvalidApplication = errors.New("invalid application")
	ErrInvalidTask        = errors.New("invalid task")
)

// Event names a lifecycle step.
type Event string

const (
	EventApply   Event = "apply"
	EventApprove Event = "approve"
	EventDecline Event = "decline"
	EventSubmit  Event = "submit_evidence"
	EventVerify  Event = "verify"
	EventReject  Event = "reject"
)

// TransitionError is returned when an event is not allowed from the task's
// current status.
type TransitionError struct {
	TaskID string
	From   Status
	Event  Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("task %s: cannot %s from status %q", e.TaskID, e.Event, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }
