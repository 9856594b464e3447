// Package playback coordinates the playing queue and the player: it
// loads a queue from the library or a playlist, advances it when
// tracks finish, wrapping at both ends, and broadcasts events to
// subscribers.
package playback

import (
	"errors"
	"time"

	"github.com/cassette-player/cassette/internal/player"
	"github.com/cassette-player/cassette/internal/playlist"
)

// ErrIndexOutOfRange is returned by PlayFrom when the start index does
// not point into the given tracks.
var ErrIndexOutOfRange = errors.New("start index out of range")

// Service defines the playback service contract.
type Service interface {
	// Playback control
	PlayFrom(source Source, tracks []playlist.Track, startIndex int) error
	Pause() error
	Resume() error
	Toggle() error
	Stop() error
	Next() error
	Previous() error

	// StopIfPlaying halts playback when the given track is the one
	// playing. Called by the library before deleting a track.
	StopIfPlaying(trackID int64)

	// State queries
	State() State
	IsPlaying() bool
	IsStopped() bool
	Position() time.Duration
	Duration() time.Duration
	CurrentTrack() *playlist.Track
	CurrentIndex() int
	Source() Source
	Player() player.Interface // Direct player access (for UI rendering)

	// Queue queries
	QueueTracks() []playlist.Track
	QueueLen() int
	QueueIsEmpty() bool

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
