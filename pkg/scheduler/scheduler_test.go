// file: pkg/scheduler/scheduler_test.go

package scheduler

import "testing"

func TestFindNextToRunPriorityOrder(t *testing.T) {
	s := New()
	low := NewThread("low", 5)
	mid := NewThread("mid", 20)
	high := NewThread("high", 25)

	s.ReadyToRun(low)
	s.ReadyToRun(mid)
	s.ReadyToRun(high)

	want := []*Thread{high, mid, low}
	for i, wt := range want {
		got := s.FindNextToRun()
		if got != wt {
			t.Fatalf("pop %d: got %q, want %q", i, got.Name, wt.Name)
		}
	}
	if got := s.FindNextToRun(); got != nil {
		t.Errorf("expected nil on empty scheduler, got %q", got.Name)
	}
}

func TestFindNextToRunFIFOWithinTier(t *testing.T) {
	s := New()
	t1 := NewThread("t1", 20)
	t2 := NewThread("t2", 20)

	s.ReadyToRun(t1)
	s.ReadyToRun(t2)

	if got := s.FindNextToRun(); got != t1 {
		t.Fatalf("first pop: got %q, want t1", got.Name)
	}
	if got := s.FindNextToRun(); got != t2 {
		t.Fatalf("second pop: got %q, want t2", got.Name)
	}
}

func TestFindNextToRunMixedTiersAndPriorities(t *testing.T) {
	s := New()
	a := NewThread("a", 5)
	b := NewThread("b", 20)
	c := NewThread("c", 20)
	d := NewThread("d", 30)

	for _, th := range []*Thread{a, b, c, d} {
		s.ReadyToRun(th)
	}

	want := []*Thread{d, b, c, a}
	for i, wt := range want {
		got := s.FindNextToRun()
		if got != wt {
			t.Fatalf("pop %d: got %q, want %q", i, got.Name, wt.Name)
		}
	}
}

type fakeUserState struct {
	saved, restored bool
}

func (f *fakeUserState) SaveUserState()    { f.saved = true }
func (f *fakeUserState) RestoreUserState() { f.restored = true }

func TestRunSwitchesCurrentAndUserState(t *testing.T) {
	s := New()

	oldState := &fakeUserState{}
	old := NewThread("old", 10)
	old.IsUserProgram = true
	old.UserState = oldState
	s.Run(old, nil)

	newState := &fakeUserState{}
	next := NewThread("next", 10)
	next.IsUserProgram = true
	next.UserState = newState

	var switched bool
	s.Run(next, func(o, n *Thread) {
		switched = true
		if o != old {
			t.Errorf("switch callback saw old=%q, want %q", o.Name, old.Name)
		}
		if n != next {
			t.Errorf("switch callback saw next=%q, want %q", n.Name, next.Name)
		}
	})

	if !switched {
		t.Fatal("switch callback never invoked")
	}
	if !oldState.saved {
		t.Error("outgoing user program's state was never saved")
	}
	if !newState.restored {
		t.Error("incoming user program's state was never restored")
	}
	if s.Current() != next {
		t.Errorf("Current() = %q, want %q", s.Current().Name, next.Name)
	}
	if next.Status != StatusRunning {
		t.Errorf("next.Status = %v, want running", next.Status)
	}
}

func TestFinishDefersDestructionToNextRun(t *testing.T) {
	s := New()
	a := NewThread("a", 10)
	s.Run(a, nil)

	s.Finish(a)
	if a.Status != StatusFinished {
		t.Fatalf("a.Status = %v, want finished", a.Status)
	}
	if s.toDestroy != a {
		t.Fatalf("Finish did not register a for deferred destruction")
	}

	b := NewThread("b", 10)
	s.Run(b, nil)
	if s.toDestroy != nil {
		t.Errorf("toDestroy should be cleared after the next Run, got %v", s.toDestroy)
	}
}
