package player

import (
	"time"

	"github.com/cassette-player/cassette/internal/playlist"
)

// Interface defines the player contract for dependency injection and testing.
type Interface interface {
	Play(track playlist.Track) error
	Stop()
	Pause()
	Resume()
	Toggle()
	State() State
	Position() time.Duration
	Duration() time.Duration
	SetVolume(level float64)
	Volume() float64
	SetMuted(muted bool)
	Muted() bool
	FinishedChan() <-chan struct{}
	FrequencyBins(n int) []float64
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
