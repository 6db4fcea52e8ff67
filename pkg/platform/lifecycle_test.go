package platform

import "testing"

func TestParseLifecycleState(t *testing.T) {
	tests := []struct {
		in      string
		want    LifecycleState
		wantErr bool
	}{
		{"resumed", LifecycleStateResumed, false},
		{"inactive", LifecycleStateInactive, false},
		{"paused", LifecycleStatePaused, false},
		{"detached", LifecycleStateDetached, false},
		{"hidden", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLifecycleState(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLifecycleState(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLifecycleState(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLifecycleStateHidden(t *testing.T) {
	hidden := map[LifecycleState]bool{
		LifecycleStateResumed:  false,
		LifecycleStateInactive: false,
		LifecycleStatePaused:   true,
		LifecycleStateDetached: true,
	}
	for state, want := range hidden {
		if got := state.Hidden(); got != want {
			t.Errorf("%s.Hidden() = %v, want %v", state, got, want)
		}
	}
}

func TestLifecycleHandlersFireOnChangeOnly(t *testing.T) {
	l := NewLifecycleService()
	var got []LifecycleState
	l.AddHandler(func(s LifecycleState) { got = append(got, s) })

	l.SetState(LifecycleStateResumed)
	l.SetState(LifecycleStatePaused)
	l.SetState(LifecycleStatePaused)
	l.SetState(LifecycleStateResumed)

	if len(got) != 2 || got[0] != LifecycleStatePaused || got[1] != LifecycleStateResumed {
		t.Errorf("handler saw %v, want [paused resumed]", got)
	}
	if !l.IsResumed() {
		t.Error("expected resumed state")
	}
}

func TestLifecycleRemoveHandler(t *testing.T) {
	l := NewLifecycleService()
	first, second := 0, 0
	removeFirst := l.AddHandler(func(LifecycleState) { first++ })
	l.AddHandler(func(LifecycleState) { second++ })

	removeFirst()
	removeFirst()
	l.SetState(LifecycleStatePaused)

	if first != 0 {
		t.Errorf("removed handler ran %d times", first)
	}
	if second != 1 {
		t.Errorf("remaining handler ran %d times, want 1", second)
	}
}

func TestVisibilityHandlerSkipsVisibleTransitions(t *testing.T) {
	l := NewLifecycleService()
	var got []bool
	l.AddVisibilityHandler(func(hidden bool) { got = append(got, hidden) })

	l.SetState(LifecycleStateInactive)
	l.SetState(LifecycleStatePaused)
	l.SetState(LifecycleStateDetached)
	l.SetState(LifecycleStateResumed)

	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Errorf("visibility handler saw %v, want [true false]", got)
	}
	if l.Hidden() {
		t.Error("resumed view should be visible")
	}
}
