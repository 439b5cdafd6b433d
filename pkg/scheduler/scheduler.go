// file: pkg/scheduler/scheduler.go

package scheduler

import "sync"

// SwitchFunc performs the actual context exchange between old and next once
// the scheduler has decided next should run. The original's assembly
// stack-swap has no equivalent in a green-thread-free host language; this
// callback stands in for it. The scheduler's own correctness depends only
// on ready-queue discipline, never on how the switch itself is carried out.
type SwitchFunc func(old, next *Thread)

// Scheduler holds three FIFO-within-tier ready queues (low, mid, high) and
// dispatches a chosen thread onto the CPU via Run.
type Scheduler struct {
	mu        sync.Mutex
	ready     [3][]*Thread
	current   *Thread
	toDestroy *Thread
}

// New returns an empty scheduler with no current thread.
func New() *Scheduler {
	return &Scheduler{}
}

// ReadyToRun marks t ready and inserts it into its tier's queue, sorted by
// descending priority with ties broken by arrival order (a stable insert:
// t is placed after every already-queued thread of equal priority).
func (s *Scheduler) ReadyToRun(t *Thread) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.Status = StatusReady
	tr := tier(t.Priority)
	q := s.ready[tr]

	i := 0
	for i < len(q) && q[i].Priority >= t.Priority {
		i++
	}
	q = append(q, nil)
	copy(q[i+1:], q[i:])
	q[i] = t
	s.ready[tr] = q
}

// FindNextToRun pops and returns the head of the first non-empty tier,
// scanning high to low, or nil if every tier is empty.
func (s *Scheduler) FindNextToRun() *Thread {
	s.mu.Lock()
	defer s.mu.Unlock()

	for tr := 2; tr >= 0; tr-- {
		q := s.ready[tr]
		if len(q) > 0 {
			t := q[0]
			s.ready[tr] = q[1:]
			return t
		}
	}
	return nil
}

// Current returns the thread currently dispatched onto the CPU, or nil
// before the first Run.
func (s *Scheduler) Current() *Thread {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Run dispatches next onto the CPU. It saves the outgoing thread's user
// state if it is a user program, swaps the current thread, marks next
// running, invokes sw to perform the actual switch, and once sw returns
// destroys any thread that called Finish while running (a thread cannot
// be torn down while still executing on its own stack) before restoring
// next's user state.
func (s *Scheduler) Run(next *Thread, sw SwitchFunc) {
	if next == nil {
		panic("scheduler: Run called with nil thread")
	}

	s.mu.Lock()
	old := s.current
	s.mu.Unlock()

	if old != nil && old.IsUserProgram && old.UserState != nil {
		old.UserState.SaveUserState()
	}

	s.mu.Lock()
	s.current = next
	next.Status = StatusRunning
	s.mu.Unlock()

	if sw != nil {
		sw(old, next)
	}

	s.mu.Lock()
	s.toDestroy = nil
	s.mu.Unlock()

	if next.IsUserProgram && next.UserState != nil {
		next.UserState.RestoreUserState()
	}
}

// Finish marks t finished and defers its destruction to the next Run call,
// mirroring threadToBeDestroyed: a thread cannot free its own stack while
// still running on it.
func (s *Scheduler) Finish(t *Thread) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.Status = StatusFinished
	s.toDestroy = t
}
