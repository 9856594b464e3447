package library

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"

	"github.com/cassette-player/cassette/internal/store"
)

func newTestManager(t *testing.T) (*Manager, *store.Store) {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return New(s, "audio/mp3"), s
}

// mp3WithTags builds an in-memory ID3v2 payload with the given frames.
func mp3WithTags(t *testing.T, title, artist string) []byte {
	t.Helper()

	tag := id3v2.NewEmptyTag()
	tag.SetTitle(title)
	tag.SetArtist(artist)

	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		t.Fatalf("failed to build tag: %v", err)
	}
	// A few bytes of fake audio after the tag block.
	buf.Write([]byte{0xFF, 0xFB, 0x90, 0x00})
	return buf.Bytes()
}

type recordingStopper struct {
	stopped []int64
}

func (r *recordingStopper) StopIfPlaying(trackID int64) {
	r.stopped = append(r.stopped, trackID)
}

func TestAddTracks_NameFromFilename(t *testing.T) {
	m, _ := newTestManager(t)

	tracks, err := m.AddTracks([]File{
		{Name: "Morning Dew.mp3", Type: "audio/mpeg", Data: []byte{0, 1, 2}},
	})
	if err != nil {
		t.Fatalf("AddTracks failed: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}
	if tracks[0].Name != "Morning Dew" {
		t.Errorf("Name = %q, want %q", tracks[0].Name, "Morning Dew")
	}
	if tracks[0].MIMEType != "audio/mpeg" {
		t.Errorf("MIMEType = %q, want audio/mpeg", tracks[0].MIMEType)
	}
	if tracks[0].Size != 3 {
		t.Errorf("Size = %d, want 3", tracks[0].Size)
	}
	if tracks[0].AddedAt == 0 {
		t.Error("AddedAt should be set")
	}
}

func TestAddTracks_MIMEFallback(t *testing.T) {
	m, _ := newTestManager(t)

	tracks, err := m.AddTracks([]File{
		{Name: "untyped.mp3", Data: []byte{0}},
	})
	if err != nil {
		t.Fatalf("AddTracks failed: %v", err)
	}
	if tracks[0].MIMEType != "audio/mp3" {
		t.Errorf("MIMEType = %q, want fallback audio/mp3", tracks[0].MIMEType)
	}
}

func TestAddTracks_ArtistFromTags(t *testing.T) {
	m, _ := newTestManager(t)

	data := mp3WithTags(t, "Some Title", "The Band")
	tracks, err := m.AddTracks([]File{
		{Name: "tagged.mp3", Type: "audio/mpeg", Data: data},
	})
	if err != nil {
		t.Fatalf("AddTracks failed: %v", err)
	}
	if tracks[0].Artist != "The Band" {
		t.Errorf("Artist = %q, want The Band", tracks[0].Artist)
	}
	// The display name comes from the filename, not the embedded title.
	if tracks[0].Name != "tagged" {
		t.Errorf("Name = %q, want tagged", tracks[0].Name)
	}
}

func TestAddTracks_Batch(t *testing.T) {
	m, s := newTestManager(t)

	files := []File{
		{Name: "a.mp3", Data: []byte{1}},
		{Name: "b.mp3", Data: []byte{2}},
		{Name: "c.mp3", Data: []byte{3}},
	}
	tracks, err := m.AddTracks(files)
	if err != nil {
		t.Fatalf("AddTracks failed: %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("got %d tracks, want 3", len(tracks))
	}
	// Results come back in input order even though inserts run
	// concurrently.
	if tracks[0].Name != "a" || tracks[1].Name != "b" || tracks[2].Name != "c" {
		t.Errorf("order = [%s %s %s], want [a b c]", tracks[0].Name, tracks[1].Name, tracks[2].Name)
	}

	all, err := s.AllTracks()
	if err != nil {
		t.Fatalf("AllTracks failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("stored %d tracks, want 3", len(all))
	}
}

func TestDeleteTrack_PrunesPlaylists(t *testing.T) {
	m, s := newTestManager(t)

	tracks, err := m.AddTracks([]File{
		{Name: "keep.mp3", Data: []byte{1}},
		{Name: "drop.mp3", Data: []byte{2}},
	})
	if err != nil {
		t.Fatalf("AddTracks failed: %v", err)
	}
	keep, drop := tracks[0].ID, tracks[1].ID

	p1, err := s.AddPlaylist(store.Playlist{Name: "Both", CreatedAt: 1, TrackIDs: []int64{keep, drop}})
	if err != nil {
		t.Fatalf("AddPlaylist failed: %v", err)
	}
	p2, err := s.AddPlaylist(store.Playlist{Name: "Unaffected", CreatedAt: 1, TrackIDs: []int64{keep}})
	if err != nil {
		t.Fatalf("AddPlaylist failed: %v", err)
	}

	if err := m.DeleteTrack(drop); err != nil {
		t.Fatalf("DeleteTrack failed: %v", err)
	}

	got1, err := s.GetPlaylist(p1)
	if err != nil {
		t.Fatalf("GetPlaylist failed: %v", err)
	}
	if got1.Contains(drop) {
		t.Errorf("playlist still references deleted track: %v", got1.TrackIDs)
	}
	if !got1.Contains(keep) {
		t.Errorf("playlist lost an unrelated track: %v", got1.TrackIDs)
	}

	got2, err := s.GetPlaylist(p2)
	if err != nil {
		t.Fatalf("GetPlaylist failed: %v", err)
	}
	if len(got2.TrackIDs) != 1 || got2.TrackIDs[0] != keep {
		t.Errorf("unrelated playlist changed: %v", got2.TrackIDs)
	}
}

func TestDeleteTrack_StopsPlayback(t *testing.T) {
	m, _ := newTestManager(t)

	tracks, err := m.AddTracks([]File{{Name: "live.mp3", Data: []byte{1}}})
	if err != nil {
		t.Fatalf("AddTracks failed: %v", err)
	}

	st := &recordingStopper{}
	m.SetStopper(st)

	if err := m.DeleteTrack(tracks[0].ID); err != nil {
		t.Fatalf("DeleteTrack failed: %v", err)
	}
	if len(st.stopped) != 1 || st.stopped[0] != tracks[0].ID {
		t.Errorf("stopper calls = %v, want [%d]", st.stopped, tracks[0].ID)
	}
}

func TestDeleteTrack_Missing(t *testing.T) {
	m, _ := newTestManager(t)

	// Deleting an id that was never stored is a no-op.
	if err := m.DeleteTrack(42); err != nil {
		t.Errorf("DeleteTrack = %v, want nil", err)
	}
}

func TestListTracks(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.AddTracks([]File{
		{Name: "one.mp3", Data: []byte{1}},
		{Name: "two.mp3", Data: []byte{2}},
	}); err != nil {
		t.Fatalf("AddTracks failed: %v", err)
	}

	all, err := m.ListTracks()
	if err != nil {
		t.Fatalf("ListTracks failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d tracks, want 2", len(all))
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"song.mp3", "song"},
		{"some song.flac", "some song"},
		{"no-extension", "no-extension"},
		{"dots.in.name.ogg", "dots.in.name"},
	}
	for _, tt := range tests {
		if got := baseName(tt.in); got != tt.want {
			t.Errorf("baseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
