package player

import (
	"time"

	"github.com/cassette-player/cassette/internal/playlist"
)

// Mock is a test double for Player.
type Mock struct {
	state       State
	position    time.Duration
	duration    time.Duration
	volumeLevel float64
	muted       bool
	playErr     error
	playCalls   []playlist.Track
	finishedCh  chan struct{}
	bins        []float64
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		state:       Stopped,
		volumeLevel: 1,
		finishedCh:  make(chan struct{}, 1),
	}
}

func (m *Mock) Play(track playlist.Track) error {
	m.playCalls = append(m.playCalls, track)
	if m.playErr != nil {
		return m.playErr
	}
	m.state = Playing
	return nil
}

func (m *Mock) Stop() { m.state = Stopped }

func (m *Mock) Pause() {
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	if m.state == Paused {
		m.state = Playing
	}
}

func (m *Mock) Toggle() {
	switch m.state {
	case Playing:
		m.Pause()
	case Paused:
		m.Resume()
	case Stopped:
		// Nothing to toggle when stopped
	}
}

func (m *Mock) State() State { return m.state }

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) SetVolume(level float64) { m.volumeLevel = level }

func (m *Mock) Volume() float64 { return m.volumeLevel }

func (m *Mock) SetMuted(muted bool) { m.muted = muted }

func (m *Mock) Muted() bool { return m.muted }

func (m *Mock) FinishedChan() <-chan struct{} {
	return m.finishedCh
}

func (m *Mock) FrequencyBins(_ int) []float64 { return m.bins }

// Test helpers

func (m *Mock) SetState(s State) { m.state = s }

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) PlayCalls() []playlist.Track { return m.playCalls }

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

func (m *Mock) SetPosition(d time.Duration) { m.position = d }

func (m *Mock) SetBins(bins []float64) { m.bins = bins }

// SimulateFinished simulates a track finishing.
func (m *Mock) SimulateFinished() {
	select {
	case m.finishedCh <- struct{}{}:
	default:
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
