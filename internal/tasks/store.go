package tasks

import (
	"fmt"
	"sync"
)

// Store holds the mission collection for the lifetime of the process.
// Every mutation goes through one of the lifecycle functions.
type Store struct {
	mu          sync.RWMutex
	tasks       []Task
	onCompleted []func(Task)
	onChange    []func(from, to Status)
}

func NewStore(seed []Task) *Store {
	s := &Store{tasks: make([]Task, 0, len(seed))}
	for _, t := range seed {
		s.tasks = append(s.tasks, t.clone())
	}
	return s
}

// OnCompleted registers fn to run after a task is verified. Hooks run outside
// the store lock, in registration order.
func (s *Store) OnCompleted(fn func(Task)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onCompleted = append(s.onCompleted, fn)
}

// OnTransition registers fn to run after any successful status change.
func (s *Store) OnTransition(fn func(from, to Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// List returns a snapshot of the collection.
func (s *Store) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, len(s.tasks))
	for i := range s.tasks {
		out[i] = s.tasks[i].clone()
	}
	return out
}

func (s *Store) Get(id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexOf(s.tasks, id)
	if idx < 0 {
		return Task{}, ErrTaskNotFound
	}
	return s.tasks[idx].clone(), nil
}

// Create prepends t. Tasks without an id or a known status are refused so
// every stored task can be classified.
func (s *Store) Create(t Task) (Task, error) {
	if t.ID == "" {
		return Task{}, fmt.Errorf("%w: missing id", ErrInvalidTask)
	}
	if !t.Status.IsValid() {
		return Task{}, fmt.Errorf("%w: unknown status %q", ErrInvalidTask, string(t.Status))
	}

	s.mu.Lock()
	s.tasks = Create(s.tasks, t)
	created := s.tasks[0].clone()
	s.mu.Unlock()
	return created, nil
}

func (s *Store) Apply(id string, app Application) (Task, error) {
	return s.mutate(id, func(ts []Task) ([]Task, error) { return Apply(ts, id, app) })
}

func (s *Store) Review(id string, approved bool) (Task, error) {
	return s.mutate(id, func(ts []Task) ([]Task, error) { return Review(ts, id, approved) })
}

func (s *Store) SubmitEvidence(id string, ev Evidence) (Task, error) {
	return s.mutate(id, func(ts []Task) ([]Task, error) { return SubmitEvidence(ts, id, ev) })
}

func (s *Store) Verify(id string) (Task, error) {
	return s.mutate(id, func(ts []Task) ([]Task, error) { return Verify(ts, id) })
}

func (s *Store) Reject(id string) (Task, error) {
	return s.mutate(id, func(ts []Task) ([]Task, error) { return Reject(ts, id) })
}

func (s *Store) mutate(id string, op func([]Task) ([]Task, error)) (Task, error) {
	s.mu.Lock()
	prev := indexOf(s.tasks, id)
	var from Status
	if prev >= 0 {
		from = s.tasks[prev].Status
	}

	updated, err := op(s.tasks)
	if err != nil {
		s.mu.Unlock()
		return Task{}, err
	}
	s.tasks = updated
	t := s.tasks[prev].clone()
	changeHooks := append(([]func(from, to Status))(nil), s.onChange...)
	doneHooks := append(([]func(Task))(nil), s.onCompleted...)
	s.mu.Unlock()

	for _, fn := range changeHooks {
		fn(from, t.Status)
	}
	if t.Status == StatusCompleted {
		for _, fn := range doneHooks {
			fn(t.clone())
		}
	}
	return t, nil
}
