package tasks

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func fixture() []Task {
	return []Task{
		{ID: "1", Title: "Annual Gala Branding", Organization: "Malete Tech Forum", Category: "Graphic Design", XP: 200, Hours: 5, Status: StatusInProgress, Tags: []string{"Graphic Design", "Remote"}},
		{ID: "2", Title: "Voice AI Localization", Organization: "Oratora", Category: "Translation", XP: 450, Hours: 6, Status: StatusUrgent, Tags: []string{"Translation", "AI"}},
		{ID: "3", Title: "Beach Cleanup Logistics", Organization: "Ocean Guardians", Category: "Environment", XP: 500, Hours: 8, Status: StatusActive, Tags: []string{"Environment", "Physical"}},
		{ID: "4", Title: "Social Media Strategy", Organization: "Health Bridge", Category: "Marketing", XP: 300, Hours: 4, Status: StatusNew, Tags: []string{"Marketing", "Strategy"}},
	}
}

func sampleApplication() Application {
	return Application{
		Pitch:       "I design for nonprofits",
		Motivation:  "Local impact",
		ResumeName:  "cv.pdf",
		SubmittedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func sampleEvidence() Evidence {
	return Evidence{
		Summary: "Delivered 5 posters",
		Link:    "https://example.org/gala",
		Files:   []EvidenceFile{{ID: "f1", Name: "poster.png", Type: "image/png", Size: 2048}},
	}
}

func find(t *testing.T, ts []Task, id string) Task {
	t.Helper()
	for _, task := range ts {
		if task.ID == id {
			return task
		}
	}
	t.Fatalf("task %s not in collection", id)
	return Task{}
}

// assertOthersUnchanged checks every task except id against before.
func assertOthersUnchanged(t *testing.T, before, after []Task, id string) {
	t.Helper()
	if len(before) != len(after) {
		t.Fatalf("len changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].ID == id {
			continue
		}
		if !reflect.DeepEqual(before[i], after[i]) {
			t.Errorf("task %s changed:\n before %+v\n after  %+v", before[i].ID, before[i], after[i])
		}
	}
}

func TestApplyOpenTaskBecomesPending(t *testing.T) {
	for _, id := range []string{"2", "3", "4"} {
		in := fixture()
		app := sampleApplication()

		out, err := Apply(in, id, app)
		if err != nil {
			t.Fatalf("Apply(%s): %v", id, err)
		}

		got := find(t, out, id)
		if got.Status != StatusPending {
			t.Errorf("Apply(%s) status = %q, want Pending", id, got.Status)
		}
		if got.Application == nil || !reflect.DeepEqual(*got.Application, app) {
			t.Errorf("Apply(%s) application = %+v, want %+v", id, got.Application, app)
		}
		assertOthersUnchanged(t, in, out, id)

		if !reflect.DeepEqual(in, fixture()) {
			t.Errorf("Apply(%s) modified its input", id)
		}
	}
}

func TestFullLifecycleRetainsEvidence(t *testing.T) {
	ts := fixture()
	ev := sampleEvidence()

	steps := []struct {
		name string
		run  func([]Task) ([]Task, error)
		want Status
	}{
		{"apply", func(ts []Task) ([]Task, error) { return Apply(ts, "4", sampleApplication()) }, StatusPending},
		{"approve", func(ts []Task) ([]Task, error) { return Review(ts, "4", true) }, StatusInProgress},
		{"submit", func(ts []Task) ([]Task, error) { return SubmitEvidence(ts, "4", ev) }, StatusInReview},
		{"verify", func(ts []Task) ([]Task, error) { return Verify(ts, "4") }, StatusCompleted},
	}

	for _, s := range steps {
		next, err := s.run(ts)
		if err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
		assertOthersUnchanged(t, ts, next, "4")
		ts = next

		if got := find(t, ts, "4").Status; got != s.want {
			t.Fatalf("after %s: status = %q, want %q", s.name, got, s.want)
		}
	}

	got := find(t, ts, "4")
	if got.Evidence == nil || !reflect.DeepEqual(*got.Evidence, ev) {
		t.Errorf("evidence = %+v, want %+v", got.Evidence, ev)
	}
	if got.Application == nil {
		t.Errorf("application dropped after completion")
	}
}

func TestRejectThenResubmitOverwritesEvidence(t *testing.T) {
	first := sampleEvidence()
	second := Evidence{Summary: "Reworked posters", Files: []EvidenceFile{{ID: "f2", Name: "v2.png"}}}

	ts, err := SubmitEvidence(fixture(), "1", first)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	ts, err = Reject(ts, "1")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got := find(t, ts, "1"); got.Status != StatusInProgress {
		t.Fatalf("after reject: status = %q, want In Progress", got.Status)
	}

	ts, err = SubmitEvidence(ts, "1", second)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	got := find(t, ts, "1")
	if got.Status != StatusInReview {
		t.Errorf("after resubmit: status = %q, want In Review", got.Status)
	}
	if !reflect.DeepEqual(*got.Evidence, second) {
		t.Errorf("evidence = %+v, want %+v", *got.Evidence, second)
	}
}

func TestDeclinedIsTerminal(t *testing.T) {
	ts, err := Apply(fixture(), "2", sampleApplication())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	ts, err = Review(ts, "2", false)
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if got := find(t, ts, "2").Status; got != StatusDeclined {
		t.Fatalf("status = %q, want Declined", got)
	}

	mutators := map[string]func([]Task) ([]Task, error){
		"apply":   func(ts []Task) ([]Task, error) { return Apply(ts, "2", sampleApplication()) },
		"approve": func(ts []Task) ([]Task, error) { return Review(ts, "2", true) },
		"decline": func(ts []Task) ([]Task, error) { return Review(ts, "2", false) },
		"submit":  func(ts []Task) ([]Task, error) { return SubmitEvidence(ts, "2", sampleEvidence()) },
		"verify":  func(ts []Task) ([]Task, error) { return Verify(ts, "2") },
		"reject":  func(ts []Task) ([]Task, error) { return Reject(ts, "2") },
	}
	for name, m := range mutators {
		out, err := m(ts)
		if !errors.Is(err, ErrIllegalTransition) {
			t.Errorf("%s on Declined: err = %v, want ErrIllegalTransition", name, err)
		}
		if !reflect.DeepEqual(out, ts) {
			t.Errorf("%s on Declined changed the collection", name)
		}
	}
}

func TestIllegalTransitionError(t *testing.T) {
	in := fixture()
	out, err := Verify(in, "4")

	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want *TransitionError", err)
	}
	if te.TaskID != "4" || te.From != StatusNew || te.Event != EventVerify {
		t.Errorf("TransitionError = %+v", te)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("collection changed on illegal transition")
	}
}

func TestUnknownIDLeavesCollectionUnchanged(t *testing.T) {
	in := fixture()
	out, err := Review(in, "nonexistent", true)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
	if !reflect.DeepEqual(out, fixture()) {
		t.Errorf("collection changed for unknown id")
	}
}

func TestCreatePrepends(t *testing.T) {
	in := fixture()
	out := Create(in, Task{ID: "new1", Title: "Mural", Status: StatusNew})

	if len(out) != 5 {
		t.Fatalf("len = %d, want 5", len(out))
	}
	if out[0].ID != "new1" {
		t.Errorf("first id = %q, want new1", out[0].ID)
	}
	if !reflect.DeepEqual(out[1:], in) {
		t.Errorf("existing tasks changed")
	}
	if len(in) != 4 {
		t.Errorf("input grew to %d", len(in))
	}
}

func TestMutatorsDoNotAlias(t *testing.T) {
	ev := sampleEvidence()
	out, err := SubmitEvidence(fixture(), "1", ev)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	ev.Files[0].Name = "changed.png"

	if got := find(t, out, "1").Evidence.Files[0].Name; got != "poster.png" {
		t.Errorf("stored evidence follows caller's slice: %q", got)
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from Status
		ev   Event
		want bool
	}{
		{StatusNew, EventApply, true},
		{StatusUrgent, EventApply, true},
		{StatusActive, EventApply, true},
		{StatusPending, EventApply, false},
		{StatusPending, EventApprove, true},
		{StatusPending, EventDecline, true},
		{StatusInProgress, EventSubmit, true},
		{StatusInProgress, EventVerify, false},
		{StatusInReview, EventVerify, true},
		{StatusInReview, EventReject, true},
		{StatusInReview, EventSubmit, false},
		{StatusCompleted, EventReject, false},
		{StatusDeclined, EventApply, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.ev); got != c.want {
			t.Errorf("CanTransition(%q, %s) = %v, want %v", c.from, c.ev, got, c.want)
		}
	}
}
