package playback

import "testing"

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStopped, "Stopped"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{State(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestStateIsActive(t *testing.T) {
	if StateStopped.IsActive() {
		t.Error("Stopped should not be active")
	}
	if !StatePlaying.IsActive() {
		t.Error("Playing should be active")
	}
	if !StatePaused.IsActive() {
		t.Error("Paused should be active")
	}
}

func TestSubscription_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	// Overfill the buffer; sends must never block.
	for range eventBufferSize + 5 {
		sub.sendState(StateChange{Previous: StateStopped, Current: StatePlaying})
	}

	if len(sub.stateCh) != eventBufferSize {
		t.Errorf("buffered %d events, want %d", len(sub.stateCh), eventBufferSize)
	}
}
