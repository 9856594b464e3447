package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"iter"
	"slices"
)

// Playlist is a named, ordered collection of track id references.
// The order of TrackIDs is the playback order. Ids are references, not
// ownership: deleting a playlist never touches track records, and an id
// may dangle until the library manager prunes it.
type Playlist struct {
	ID        int64
	Name      string
	CreatedAt int64 // epoch milliseconds
	TrackIDs  []int64
}

func marshalTrackIDs(ids []int64) (string, error) {
	if ids == nil {
		ids = []int64{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// AddPlaylist inserts a playlist and returns its assigned id.
func (s *Store) AddPlaylist(p Playlist) (int64, error) {
	ids, err := marshalTrackIDs(p.TrackIDs)
	if err != nil {
		return 0, storeErr("add playlist", err)
	}
	result, err := s.db.Exec(`
		INSERT INTO playlists (name, created_at, track_ids)
		VALUES (?, ?, ?)
	`, p.Name, p.CreatedAt, ids)
	if err != nil {
		return 0, storeErr("add playlist", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, storeErr("add playlist", err)
	}
	return id, nil
}

func scanPlaylist(scan func(dest ...any) error) (Playlist, error) {
	var p Playlist
	var raw string
	if err := scan(&p.ID, &p.Name, &p.CreatedAt, &raw); err != nil {
		return Playlist{}, err
	}
	if err := json.Unmarshal([]byte(raw), &p.TrackIDs); err != nil {
		return Playlist{}, err
	}
	return p, nil
}

// GetPlaylist returns the playlist with the given id, or ErrNotFound.
func (s *Store) GetPlaylist(id int64) (*Playlist, error) {
	row := s.db.QueryRow(`
		SELECT id, name, created_at, track_ids
		FROM playlists
		WHERE id = ?
	`, id)

	p, err := scanPlaylist(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr("get playlist", err)
	}
	return &p, nil
}

// AllPlaylists returns a snapshot of every playlist in insertion order.
func (s *Store) AllPlaylists() ([]Playlist, error) {
	rows, err := s.db.Query(`
		SELECT id, name, created_at, track_ids
		FROM playlists
		ORDER BY id
	`)
	if err != nil {
		return nil, storeErr("list playlists", err)
	}
	defer rows.Close()

	var playlists []Playlist
	for rows.Next() {
		p, err := scanPlaylist(rows.Scan)
		if err != nil {
			return nil, storeErr("list playlists", err)
		}
		playlists = append(playlists, p)
	}
	return playlists, storeErr("list playlists", rows.Err())
}

// PutPlaylist overwrites the playlist record with the same id.
// Returns ErrNotFound if the id is absent.
func (s *Store) PutPlaylist(p Playlist) error {
	ids, err := marshalTrackIDs(p.TrackIDs)
	if err != nil {
		return storeErr("put playlist", err)
	}
	result, err := s.db.Exec(`
		UPDATE playlists
		SET name = ?, created_at = ?, track_ids = ?
		WHERE id = ?
	`, p.Name, p.CreatedAt, ids, p.ID)
	if err != nil {
		return storeErr("put playlist", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return storeErr("put playlist", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePlaylist removes the playlist with the given id.
// Deleting a non-existent id is not an error.
func (s *Store) DeletePlaylist(id int64) error {
	_, err := s.db.Exec(`DELETE FROM playlists WHERE id = ?`, id)
	return storeErr("delete playlist", err)
}

// IteratePlaylists returns a forward scan over all playlists in insertion
// order, used for bulk operations such as the delete-prune pass.
func (s *Store) IteratePlaylists() iter.Seq2[Playlist, error] {
	return func(yield func(Playlist, error) bool) {
		rows, err := s.db.Query(`
			SELECT id, name, created_at, track_ids
			FROM playlists
			ORDER BY id
		`)
		if err != nil {
			yield(Playlist{}, storeErr("iterate playlists", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanPlaylist(rows.Scan)
			if err != nil {
				yield(Playlist{}, storeErr("iterate playlists", err))
				return
			}
			if !yield(p, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(Playlist{}, storeErr("iterate playlists", err))
		}
	}
}

// Contains reports whether the playlist references the given track id.
func (p *Playlist) Contains(trackID int64) bool {
	return slices.Contains(p.TrackIDs, trackID)
}
