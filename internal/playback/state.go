package playback

// State represents the playback state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// Source labels where the playing queue was loaded from. It shows up
// as the album field of the media session metadata.
type Source string

const (
	SourceNone     Source = ""
	SourceLibrary  Source = "Library"
	SourcePlaylist Source = "Playlist"
)
