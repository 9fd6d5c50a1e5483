package tasks

import (
	"errors"
	"sync"
	"testing"
)

func TestStoreCompletedHookFiresOnce(t *testing.T) {
	s := NewStore(fixture())

	var completed []Task
	s.OnCompleted(func(task Task) { completed = append(completed, task) })

	var changes [][2]Status
	s.OnTransition(func(from, to Status) { changes = append(changes, [2]Status{from, to}) })

	if _, err := s.SubmitEvidence("1", sampleEvidence()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(completed) != 0 {
		t.Fatalf("completed hook fired before verification")
	}
	if _, err := s.Verify("1"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if _, err := s.Verify("1"); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("second verify: err = %v, want ErrIllegalTransition", err)
	}

	if len(completed) != 1 || completed[0].ID != "1" {
		t.Fatalf("completed hook calls = %+v, want one call for task 1", completed)
	}
	want := [][2]Status{
		{StatusInProgress, StatusInReview},
		{StatusInReview, StatusCompleted},
	}
	if len(changes) != len(want) {
		t.Fatalf("transitions = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, changes[i], want[i])
		}
	}
}

func TestStoreGetReturnsCopy(t *testing.T) {
	s := NewStore(fixture())

	got, err := s.Get("2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Tags[0] = "mutated"
	got.Title = "mutated"

	again, _ := s.Get("2")
	if again.Title != "Voice AI Localization" || again.Tags[0] != "Translation" {
		t.Errorf("store shares state with callers: %+v", again)
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("get missing: err = %v, want ErrTaskNotFound", err)
	}
}

func TestStoreCreateAndList(t *testing.T) {
	s := NewStore(fixture())
	created, err := s.Create(Task{ID: "new1", Title: "Mural", Status: StatusNew})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list := s.List()
	if len(list) != 5 || list[0].ID != created.ID {
		t.Fatalf("list after create = %d tasks, first %q", len(list), list[0].ID)
	}
}

func TestStoreFailedMutationFiresNoHooks(t *testing.T) {
	s := NewStore(fixture())
	fired := false
	s.OnTransition(func(Status, Status) { fired = true })

	if _, err := s.Reject("4"); err == nil {
		t.Fatalf("reject on New succeeded")
	}
	if _, err := s.Apply("missing", sampleApplication()); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("apply missing: err = %v", err)
	}
	if fired {
		t.Errorf("transition hook fired for failed mutations")
	}
}

func TestStoreConcurrentApplyOnlyOneWins(t *testing.T) {
	s := NewStore(fixture())

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Apply("3", sampleApplication()); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("successful applies = %d, want 1", wins)
	}
}

func TestStoreCreateRefusesUnclassifiableTasks(t *testing.T) {
	s := NewStore(fixture())

	for name, task := range map[string]Task{
		"zero status": {ID: "x", Organization: "Acme"},
		"bad status":  {ID: "y", Status: "Done"},
		"no id":       {Status: StatusNew},
	} {
		if _, err := s.Create(task); !errors.Is(err, ErrInvalidTask) {
			t.Errorf("%s: err = %v, want ErrInvalidTask", name, err)
		}
	}
	if n := len(s.List()); n != 4 {
		t.Errorf("store grew to %d tasks", n)
	}
}
