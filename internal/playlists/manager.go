// Package playlists manages named track collections on top of the
// store. Playlists hold id references only; resolving them to playable
// tracks skips references whose track has since been deleted.
package playlists

import (
	"errors"
	"time"

	"github.com/cassette-player/cassette/internal/playlist"
	"github.com/cassette-player/cassette/internal/store"
)

var (
	// ErrEmptyName is returned by Create and Rename for a blank name.
	ErrEmptyName = errors.New("playlist name cannot be empty")

	// ErrAlreadyInPlaylist is returned by AddTrack when the playlist
	// already references the track.
	ErrAlreadyInPlaylist = errors.New("track already in playlist")
)

// Manager provides playlist operations backed by the store.
type Manager struct {
	store *store.Store
}

// New creates a new playlist manager.
func New(s *store.Store) *Manager {
	return &Manager{store: s}
}

// Create creates a new empty playlist and returns it.
func (m *Manager) Create(name string) (*store.Playlist, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	p := store.Playlist{
		Name:      name,
		CreatedAt: time.Now().UnixMilli(),
		TrackIDs:  []int64{},
	}
	id, err := m.store.AddPlaylist(p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return &p, nil
}

// Rename changes a playlist's name.
func (m *Manager) Rename(id int64, name string) error {
	if name == "" {
		return ErrEmptyName
	}
	p, err := m.store.GetPlaylist(id)
	if err != nil {
		return err
	}
	p.Name = name
	return m.store.PutPlaylist(*p)
}

// Delete removes a playlist. Tracks it references are untouched.
// Deleting a non-existent playlist is not an error.
func (m *Manager) Delete(id int64) error {
	return m.store.DeletePlaylist(id)
}

// Get returns the playlist with the given id.
func (m *Manager) Get(id int64) (*store.Playlist, error) {
	return m.store.GetPlaylist(id)
}

// List returns all playlists in creation order.
func (m *Manager) List() ([]store.Playlist, error) {
	return m.store.AllPlaylists()
}

// AddTrack appends a track reference to the end of a playlist.
// Returns ErrAlreadyInPlaylist if the playlist already holds the id.
// The track itself is not checked for existence; a reference added
// just before its track is deleted is handled at resolution time.
func (m *Manager) AddTrack(playlistID, trackID int64) error {
	p, err := m.store.GetPlaylist(playlistID)
	if err != nil {
		return err
	}
	if p.Contains(trackID) {
		return ErrAlreadyInPlaylist
	}
	p.TrackIDs = append(p.TrackIDs, trackID)
	return m.store.PutPlaylist(*p)
}

// RemoveTrack removes a track reference from a playlist. Removing an
// id the playlist does not hold is not an error.
func (m *Manager) RemoveTrack(playlistID, trackID int64) error {
	p, err := m.store.GetPlaylist(playlistID)
	if err != nil {
		return err
	}
	kept := p.TrackIDs[:0]
	for _, id := range p.TrackIDs {
		if id != trackID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(p.TrackIDs) {
		return nil
	}
	p.TrackIDs = kept
	return m.store.PutPlaylist(*p)
}

// ResolveTracks loads the playable tracks of a playlist in playlist
// order. References to deleted tracks are silently skipped, so the
// result may be shorter than the reference list.
func (m *Manager) ResolveTracks(playlistID int64) ([]playlist.Track, error) {
	p, err := m.store.GetPlaylist(playlistID)
	if err != nil {
		return nil, err
	}

	tracks := make([]playlist.Track, 0, len(p.TrackIDs))
	for _, id := range p.TrackIDs {
		t, err := m.store.GetTrack(id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, playlist.Track{
			ID:     t.ID,
			Name:   t.Name,
			Artist: t.Artist,
			MIME:   t.MIMEType,
			Data:   t.Data,
		})
	}
	return tracks, nil
}
