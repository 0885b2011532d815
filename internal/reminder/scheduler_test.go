package reminder

import (
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSetFutureArms(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewWithClock(fixedClock(now))

	fireAt := now.Add(5 * time.Second)
	cmd := s.Set(fireAt)
	if cmd == nil {
		t.Fatal("Set(future) returned nil cmd")
	}
	if s.State() != Armed {
		t.Fatalf("state = %v, want Armed", s.State())
	}
	if !s.FireAt().Equal(fireAt) {
		t.Errorf("FireAt = %v, want %v", s.FireAt(), fireAt)
	}
}

func TestSetPastOrZeroStaysIdle(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
	}{
		{"zero", time.Time{}},
		{"past", now.Add(-time.Hour)},
		{"exactly now", now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewWithClock(fixedClock(now))
			if cmd := s.Set(tt.t); cmd != nil {
				t.Error("Set returned a cmd, want nil")
			}
			if s.State() != Idle {
				t.Errorf("state = %v, want Idle", s.State())
			}
		})
	}
}

func TestResolveFiresExactlyOnce(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewWithClock(fixedClock(now))
	s.Set(now.Add(5 * time.Second))

	msg := FiredMsg{Gen: 1, At: now.Add(5 * time.Second)}
	if !s.Resolve(msg) {
		t.Fatal("first Resolve rejected live episode")
	}
	if s.State() != Fired {
		t.Fatalf("state = %v, want Fired", s.State())
	}
	if s.Resolve(msg) {
		t.Error("second Resolve accepted an already-fired episode")
	}
}

func TestRescheduleInvalidatesOldGeneration(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewWithClock(fixedClock(now))

	s.Set(now.Add(5 * time.Second))  // gen 1
	s.Set(now.Add(10 * time.Second)) // gen 2, cancels gen 1

	if s.Resolve(FiredMsg{Gen: 1}) {
		t.Error("stale tick from superseded arm was accepted")
	}
	if s.State() != Armed {
		t.Fatalf("state = %v, want Armed after rejected stale tick", s.State())
	}
	if !s.Resolve(FiredMsg{Gen: 2}) {
		t.Error("live tick for the last reminder time was rejected")
	}
}

func TestClearWhileArmedDisarms(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewWithClock(fixedClock(now))

	s.Set(now.Add(5 * time.Second))
	s.Set(time.Time{})
	if s.State() != Idle {
		t.Fatalf("state = %v, want Idle after clear", s.State())
	}
	if s.Resolve(FiredMsg{Gen: 1}) {
		t.Error("tick accepted after reminder was cleared")
	}
}

func TestRescheduleToPastDisarms(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewWithClock(fixedClock(now))

	s.Set(now.Add(5 * time.Second))
	s.Set(now.Add(-time.Minute))
	if s.State() != Idle {
		t.Fatalf("state = %v, want Idle", s.State())
	}
}

func TestCloseWhileArmedNeverFires(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewWithClock(fixedClock(now))

	s.Set(now.Add(time.Millisecond))
	s.Close()

	// The tick command was already issued and may still deliver; the
	// generation check must reject it even though it raced teardown.
	if s.Resolve(FiredMsg{Gen: 1}) {
		t.Error("tick accepted after Close")
	}
	if s.State() != Idle {
		t.Fatalf("state = %v, want Idle", s.State())
	}
}

func TestFiredReentersArmedOnNewFutureTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewWithClock(fixedClock(now))

	s.Set(now.Add(time.Second))
	if !s.Resolve(FiredMsg{Gen: 1}) {
		t.Fatal("live episode rejected")
	}

	cmd := s.Set(now.Add(time.Minute))
	if cmd == nil || s.State() != Armed {
		t.Fatalf("re-arm after Fired: cmd=%v state=%v, want cmd and Armed", cmd, s.State())
	}
	if !s.Resolve(FiredMsg{Gen: 2}) {
		t.Error("re-armed episode rejected")
	}
}

func TestRapidRescheduleFiresAtMostOnceForLastTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewWithClock(fixedClock(now))

	var lastGen uint64
	for i := 1; i <= 50; i++ {
		s.Set(now.Add(time.Duration(i) * time.Second))
		lastGen = uint64(i)
	}

	fired := 0
	for g := uint64(1); g <= lastGen; g++ {
		if s.Resolve(FiredMsg{Gen: g}) {
			fired++
			if g != lastGen {
				t.Errorf("fired for gen %d, want only last gen %d", g, lastGen)
			}
		}
	}
	if fired != 1 {
		t.Errorf("fired %d times, want exactly 1", fired)
	}
}
