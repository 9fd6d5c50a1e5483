package tasks

import "fmt"

// The functions in this file are pure: they never modify their input slice.
// Each returns a new slice in which only the task matching id is replaced.
// On error the input slice is returned as is.

// next is the lifecycle table.
//
//	New/Urgent/Active --apply--> Pending
//	Pending --approve--> In Progress | --decline--> Declined
//	In Progress --submit_evidence--> In Review
//	In Review --verify--> Completed | --reject--> In Progress
func next(from Status, ev Event) (Status, bool) {
	switch from {
	case StatusNew, StatusUrgent, StatusActive:
		if ev == EventApply {
			return StatusPending, true
		}
	case StatusPending:
		switch ev {
		case EventApprove:
			return StatusInProgress, true
		case EventDecline:
			return StatusDeclined, true
		}
	case StatusInProgress:
		if ev == EventSubmit {
			return StatusInReview, true
		}
	case StatusInReview:
		switch ev {
		case EventVerify:
			return StatusCompleted, true
		case EventReject:
			return StatusInProgress, true
		}
	case StatusCompleted, StatusDeclined:
	}
	return from, false
}

// CanTransition reports whether ev is allowed from status s.
func CanTransition(s Status, ev Event) bool {
	_, ok := next(s, ev)
	return ok
}

// Apply moves an open task to Pending and attaches the application.
// Completeness of app is the caller's concern, see Application.Validate.
func Apply(tasks []Task, id string, app Application) ([]Task, error) {
	return transition(tasks, id, EventApply, func(t *Task) {
		a := app
		t.Application = &a
	})
}

// Create prepends a fully formed task. IDs are not checked for uniqueness.
func Create(tasks []Task, t Task) []Task {
	out := make([]Task, 0, len(tasks)+1)
	out = append(out, t.clone())
	return append(out, tasks...)
}

// Review decides a pending application.
func Review(tasks []Task, id string, approved bool) ([]Task, error) {
	ev := EventDecline
	if approved {
		ev = EventApprove
	}
	return transition(tasks, id, ev, nil)
}

// SubmitEvidence moves an in-progress task to In Review. Evidence from an
// earlier, rejected attempt is replaced.
func SubmitEvidence(tasks []Task, id string, evidence Evidence) ([]Task, error) {
	return transition(tasks, id, EventSubmit, func(t *Task) {
		t.Evidence = evidence.clone()
	})
}

// Verify accepts the submitted work.
func Verify(tasks []Task, id string) ([]Task, error) {
	return transition(tasks, id, EventVerify, nil)
}

// Reject sends the work back for rework. The rejected evidence stays attached
// until the next submission.
func Reject(tasks []Task, id string) ([]Task, error) {
	return transition(tasks, id, EventReject, nil)
}

func transition(tasks []Task, id string, ev Event, mutate func(*Task)) ([]Task, error) {
	idx := indexOf(tasks, id)
	if idx < 0 {
		return tasks, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	to, ok := next(tasks[idx].Status, ev)
	if !ok {
		return tasks, &TransitionError{TaskID: id, From: tasks[idx].Status, Event: ev}
	}

	t := tasks[idx].clone()
	t.Status = to
	if mutate != nil {
		mutate(&t)
	}

	out := make([]Task, len(tasks))
	copy(out, tasks)
	out[idx] = t
	return out, nil
}

func indexOf(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
