package testing

import (
	"testing"
	"time"
)

func TestFakeClockAdvance(t *testing.T) {
	c := NewFakeClock()
	start := c.Now()
	c.Advance(90 * time.Second)
	if got := c.Now().Sub(start); got != 90*time.Second {
		t.Errorf("advanced %v, want 90s", got)
	}
}

func TestFakeClockSet(t *testing.T) {
	c := NewFakeClock()
	want := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c.Set(want)
	if !c.Now().Equal(want) {
		t.Errorf("Now() = %v, want %v", c.Now(), want)
	}
}

func TestFakeSchedulerCounts(t *testing.T) {
	s := NewFakeScheduler()
	ran := 0
	id := s.RequestFrame(func(time.Time) { ran++ })
	s.RequestFrame(func(time.Time) { ran++ })
	s.CancelFrame(id)

	if s.Active() != 1 {
		t.Fatalf("Active() = %d, want 1", s.Active())
	}
	if n := s.Pump(NewFakeClock()); n != 1 {
		t.Errorf("Pump ran %d callbacks, want 1", n)
	}
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
	if s.Requests() != 2 || s.Cancels() != 1 {
		t.Errorf("requests=%d cancels=%d, want 2 and 1", s.Requests(), s.Cancels())
	}
}
