package store

import (
	"database/sql"
	"errors"
	"iter"
)

// Track is a stored audio file: metadata plus the binary payload.
// The id is store-assigned, immutable and never reused; Data is owned by
// the record and never mutated in place.
type Track struct {
	ID       int64
	Name     string
	Artist   string
	MIMEType string
	Size     int64
	Data     []byte
	AddedAt  int64 // epoch milliseconds
}

// AddTrack inserts a track and returns its assigned id.
func (s *Store) AddTrack(t Track) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO tracks (name, artist, mime_type, size, data, added_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.Name, t.Artist, t.MIMEType, t.Size, t.Data, t.AddedAt)
	if err != nil {
		return 0, storeErr("add track", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, storeErr("add track", err)
	}
	return id, nil
}

// GetTrack returns the track with the given id, or ErrNotFound.
func (s *Store) GetTrack(id int64) (*Track, error) {
	row := s.db.QueryRow(`
		SELECT id, name, artist, mime_type, size, data, added_at
		FROM tracks
		WHERE id = ?
	`, id)

	var t Track
	err := row.Scan(&t.ID, &t.Name, &t.Artist, &t.MIMEType, &t.Size, &t.Data, &t.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr("get track", err)
	}
	return &t, nil
}

// AllTracks returns a snapshot of every track in insertion order.
func (s *Store) AllTracks() ([]Track, error) {
	rows, err := s.db.Query(`
		SELECT id, name, artist, mime_type, size, data, added_at
		FROM tracks
		ORDER BY id
	`)
	if err != nil {
		return nil, storeErr("list tracks", err)
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		var t Track
		if err := rows.Scan(&t.ID, &t.Name, &t.Artist, &t.MIMEType, &t.Size, &t.Data, &t.AddedAt); err != nil {
			return nil, storeErr("list tracks", err)
		}
		tracks = append(tracks, t)
	}
	return tracks, storeErr("list tracks", rows.Err())
}

// PutTrack overwrites the track record with the same id.
// Returns ErrNotFound if the id is absent; callers are expected to
// fetch-modify-put.
func (s *Store) PutTrack(t Track) error {
	result, err := s.db.Exec(`
		UPDATE tracks
		SET name = ?, artist = ?, mime_type = ?, size = ?, data = ?, added_at = ?
		WHERE id = ?
	`, t.Name, t.Artist, t.MIMEType, t.Size, t.Data, t.AddedAt, t.ID)
	if err != nil {
		return storeErr("put track", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return storeErr("put track", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTrack removes the track with the given id.
// Deleting a non-existent id is not an error.
func (s *Store) DeleteTrack(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tracks WHERE id = ?`, id)
	return storeErr("delete track", err)
}

// IterateTracks returns a forward scan over all tracks in insertion order.
// The scan stops at the first yield returning false; a scan error is
// yielded as the final pair with a zero Track.
func (s *Store) IterateTracks() iter.Seq2[Track, error] {
	return func(yield func(Track, error) bool) {
		rows, err := s.db.Query(`
			SELECT id, name, artist, mime_type, size, data, added_at
			FROM tracks
			ORDER BY id
		`)
		if err != nil {
			yield(Track{}, storeErr("iterate tracks", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var t Track
			if err := rows.Scan(&t.ID, &t.Name, &t.Artist, &t.MIMEType, &t.Size, &t.Data, &t.AddedAt); err != nil {
				yield(Track{}, storeErr("iterate tracks", err))
				return
			}
			if !yield(t, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(Track{}, storeErr("iterate tracks", err))
		}
	}
}
