// Package library manages the track collection: batch import with
// metadata extraction, listing, and deletion with referential cleanup
// across playlists.
package library

import (
	"errors"
	"sync"
	"time"

	"github.com/cassette-player/cassette/internal/store"
)

// Stopper is notified before a track is deleted so playback backed by
// that track can be halted. Implemented by the playback service.
type Stopper interface {
	StopIfPlaying(trackID int64)
}

// Manager provides library operations backed by the store.
type Manager struct {
	store        *store.Store
	fallbackMIME string

	mu      sync.Mutex
	stopper Stopper
}

// New creates a library manager. fallbackMIME is used for files whose
// source reports no type.
func New(s *store.Store, fallbackMIME string) *Manager {
	return &Manager{store: s, fallbackMIME: fallbackMIME}
}

// SetStopper wires the playback service in after construction. The
// library and the playback service reference each other, so one side
// has to be attached late.
func (m *Manager) SetStopper(st Stopper) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopper = st
}

func (m *Manager) deriveTrack(f File) store.Track {
	mime := f.Type
	if mime == "" {
		mime = m.fallbackMIME
	}
	_, artist := readMetadata(f.Data)
	return store.Track{
		Name:     baseName(f.Name),
		Artist:   artist,
		MIMEType: mime,
		Size:     int64(len(f.Data)),
		Data:     f.Data,
		AddedAt:  time.Now().UnixMilli(),
	}
}

// AddTracks imports a batch of files concurrently. Each file succeeds
// or fails on its own; there is no batch rollback. The returned slice
// holds the stored tracks in input order with failed entries omitted,
// and the error joins every per-file failure.
func (m *Manager) AddTracks(files []File) ([]store.Track, error) {
	results := make([]*store.Track, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t := m.deriveTrack(f)
			id, err := m.store.AddTrack(t)
			if err != nil {
				errs[i] = err
				return
			}
			t.ID = id
			results[i] = &t
		}()
	}
	wg.Wait()

	tracks := make([]store.Track, 0, len(files))
	for _, t := range results {
		if t != nil {
			tracks = append(tracks, *t)
		}
	}
	return tracks, errors.Join(errs...)
}

// ListTracks returns every stored track in insertion order.
func (m *Manager) ListTracks() ([]store.Track, error) {
	return m.store.AllTracks()
}

// GetTrack returns a single track by id.
func (m *Manager) GetTrack(id int64) (*store.Track, error) {
	return m.store.GetTrack(id)
}

// DeleteTrack removes a track and prunes its id from every playlist.
// Playback is stopped first if the track is the one playing. The prune
// pass is best effort: a failure on one playlist does not stop the
// scan, and the joined errors are returned at the end. The track
// record itself is gone either way, so a missed prune only leaves a
// dangling reference that resolution filters out.
func (m *Manager) DeleteTrack(id int64) error {
	m.mu.Lock()
	st := m.stopper
	m.mu.Unlock()
	if st != nil {
		st.StopIfPlaying(id)
	}

	if err := m.store.DeleteTrack(id); err != nil {
		return err
	}

	var errs []error
	for p, err := range m.store.IteratePlaylists() {
		if err != nil {
			errs = append(errs, err)
			break
		}
		if !p.Contains(id) {
			continue
		}
		kept := make([]int64, 0, len(p.TrackIDs)-1)
		for _, tid := range p.TrackIDs {
			if tid != id {
				kept = append(kept, tid)
			}
		}
		p.TrackIDs = kept
		if err := m.store.PutPlaylist(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
