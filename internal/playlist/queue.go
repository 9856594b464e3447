package playlist

// PlayingQueue wraps a Playlist with a playback cursor. Next and
// Previous wrap around both ends, so a non-empty queue always has a
// next and a previous track.
type PlayingQueue struct {
	playlist     *Playlist
	currentIndex int // -1 if nothing playing
}

// NewQueue creates a new empty playing queue.
func NewQueue() *PlayingQueue {
	return &PlayingQueue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
	}
}

// Current returns the currently playing track, or nil if none.
func (q *PlayingQueue) Current() *Track {
	if q.currentIndex < 0 || q.currentIndex >= q.playlist.Len() {
		return nil
	}
	return q.playlist.Track(q.currentIndex)
}

// CurrentIndex returns the index of the currently playing track (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// Next advances the cursor, wrapping from the last track back to the
// first, and returns the new current track. Returns nil on an empty
// queue or when no track is current.
func (q *PlayingQueue) Next() *Track {
	if q.currentIndex < 0 || q.playlist.Len() == 0 {
		return nil
	}
	q.currentIndex = (q.currentIndex + 1) % q.playlist.Len()
	return q.Current()
}

// Previous moves the cursor back, wrapping from the first track to the
// last, and returns the new current track. Returns nil on an empty
// queue or when no track is current.
func (q *PlayingQueue) Previous() *Track {
	if q.currentIndex < 0 || q.playlist.Len() == 0 {
		return nil
	}
	q.currentIndex = (q.currentIndex - 1 + q.playlist.Len()) % q.playlist.Len()
	return q.Current()
}

// PeekNext returns the track Next would land on without moving the cursor.
func (q *PlayingQueue) PeekNext() *Track {
	if q.currentIndex < 0 || q.playlist.Len() == 0 {
		return nil
	}
	return q.playlist.Track((q.currentIndex + 1) % q.playlist.Len())
}

// JumpTo sets the current index to the specified position.
// Returns the track at that position, or nil if invalid.
func (q *PlayingQueue) JumpTo(index int) *Track {
	if index < 0 || index >= q.playlist.Len() {
		return nil
	}
	q.currentIndex = index
	return q.Current()
}

// Replace clears the queue, adds tracks, and positions the cursor at
// startIndex. Returns the track to play, or nil if startIndex is out
// of range (the queue is left cleared in that case).
func (q *PlayingQueue) Replace(tracks []Track, startIndex int) *Track {
	q.playlist.Clear()
	q.currentIndex = -1
	if len(tracks) == 0 {
		return nil
	}
	q.playlist.Add(tracks...)
	return q.JumpTo(startIndex)
}

// Clear removes all tracks and resets playback.
func (q *PlayingQueue) Clear() {
	q.playlist.Clear()
	q.currentIndex = -1
}

// Tracks returns all tracks in the queue.
func (q *PlayingQueue) Tracks() []Track {
	return q.playlist.Tracks()
}

// Len returns the number of tracks in the queue.
func (q *PlayingQueue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *PlayingQueue) IsEmpty() bool {
	return q.playlist.Len() == 0
}
