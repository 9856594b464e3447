package ui

import (
	"time"

	"github.com/cassette-player/cassette/internal/playlist"
	"github.com/cassette-player/cassette/internal/store"
)

// tickMsg drives progress and visualizer refresh.
type tickMsg time.Time

// libraryLoadedMsg carries a fresh library listing.
type libraryLoadedMsg []store.Track

// playlistsLoadedMsg carries a fresh playlist listing.
type playlistsLoadedMsg []store.Playlist

// detailLoadedMsg carries the resolved tracks of one playlist.
type detailLoadedMsg struct {
	id     int64
	tracks []playlist.Track
}

// statusMsg sets the transient status line.
type statusMsg string

// playbackEventMsg signals that the playback service emitted an event
// and the view should refresh.
type playbackEventMsg struct{}
