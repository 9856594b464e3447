package playback

import "github.com/cassette-player/cassette/internal/playlist"

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when playback starts on a different track,
// whether by explicit navigation or by a track finishing and the queue
// advancing on its own.
type TrackChange struct {
	Previous *playlist.Track
	Current  *playlist.Track
	Index    int
}

// QueueChange is emitted when the queue contents are replaced.
type QueueChange struct {
	Source Source
	Tracks []playlist.Track
	Index  int
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string // e.g. "play", "next"
	TrackID   int64  // track id if applicable
	Err       error
}
