package playlists

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cassette-player/cassette/internal/store"
)

func newTestManager(t *testing.T) (*Manager, *store.Store) {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return New(s), s
}

func addTrack(t *testing.T, s *store.Store, name string) int64 {
	t.Helper()

	id, err := s.AddTrack(store.Track{
		Name:     name,
		MIMEType: "audio/mp3",
		Size:     3,
		Data:     []byte{1, 2, 3},
		AddedAt:  time.Now().UnixMilli(),
	})
	if err != nil {
		t.Fatalf("failed to add track: %v", err)
	}
	return id
}

func TestCreate(t *testing.T) {
	m, _ := newTestManager(t)

	p, err := m.Create("Morning")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.ID <= 0 {
		t.Errorf("ID = %d, want positive", p.ID)
	}
	if p.Name != "Morning" {
		t.Errorf("Name = %q, want Morning", p.Name)
	}
	if len(p.TrackIDs) != 0 {
		t.Errorf("TrackIDs = %v, want empty", p.TrackIDs)
	}
}

func TestCreate_EmptyName(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.Create(""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Create error = %v, want ErrEmptyName", err)
	}
}

func TestRename(t *testing.T) {
	m, _ := newTestManager(t)

	p, err := m.Create("Old")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := m.Rename(p.ID, "New"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	got, err := m.Get(p.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "New" {
		t.Errorf("Name = %q, want New", got.Name)
	}
}

func TestRename_Missing(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.Rename(42, "x"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Rename error = %v, want ErrNotFound", err)
	}
}

func TestRename_EmptyName(t *testing.T) {
	m, _ := newTestManager(t)

	p, err := m.Create("Keep")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := m.Rename(p.ID, ""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Rename error = %v, want ErrEmptyName", err)
	}
}

func TestDelete_LeavesTracks(t *testing.T) {
	m, s := newTestManager(t)

	trackID := addTrack(t, s, "keeper")
	p, err := m.Create("Doomed")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := m.AddTrack(p.ID, trackID); err != nil {
		t.Fatalf("AddTrack failed: %v", err)
	}

	if err := m.Delete(p.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := m.Get(p.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	// The referenced track must survive playlist deletion.
	if _, err := s.GetTrack(trackID); err != nil {
		t.Errorf("GetTrack after playlist delete = %v, want nil", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.Delete(99); err != nil {
		t.Errorf("Delete of missing playlist = %v, want nil", err)
	}
}

func TestAddTrack(t *testing.T) {
	m, s := newTestManager(t)

	t1 := addTrack(t, s, "one")
	t2 := addTrack(t, s, "two")
	p, err := m.Create("Mix")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := m.AddTrack(p.ID, t1); err != nil {
		t.Fatalf("AddTrack failed: %v", err)
	}
	if err := m.AddTrack(p.ID, t2); err != nil {
		t.Fatalf("AddTrack failed: %v", err)
	}

	got, err := m.Get(p.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.TrackIDs) != 2 || got.TrackIDs[0] != t1 || got.TrackIDs[1] != t2 {
		t.Errorf("TrackIDs = %v, want [%d %d]", got.TrackIDs, t1, t2)
	}
}

func TestAddTrack_Duplicate(t *testing.T) {
	m, s := newTestManager(t)

	trackID := addTrack(t, s, "once")
	p, err := m.Create("Mix")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := m.AddTrack(p.ID, trackID); err != nil {
		t.Fatalf("AddTrack failed: %v", err)
	}

	err = m.AddTrack(p.ID, trackID)
	if !errors.Is(err, ErrAlreadyInPlaylist) {
		t.Errorf("AddTrack error = %v, want ErrAlreadyInPlaylist", err)
	}

	got, _ := m.Get(p.ID)
	if len(got.TrackIDs) != 1 {
		t.Errorf("TrackIDs = %v, want single entry", got.TrackIDs)
	}
}

func TestAddTrack_MissingPlaylist(t *testing.T) {
	m, s := newTestManager(t)

	trackID := addTrack(t, s, "orphan")
	if err := m.AddTrack(42, trackID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("AddTrack error = %v, want ErrNotFound", err)
	}
}

func TestRemoveTrack(t *testing.T) {
	m, s := newTestManager(t)

	t1 := addTrack(t, s, "one")
	t2 := addTrack(t, s, "two")
	t3 := addTrack(t, s, "three")
	p, _ := m.Create("Mix")
	for _, id := range []int64{t1, t2, t3} {
		if err := m.AddTrack(p.ID, id); err != nil {
			t.Fatalf("AddTrack failed: %v", err)
		}
	}

	if err := m.RemoveTrack(p.ID, t2); err != nil {
		t.Fatalf("RemoveTrack failed: %v", err)
	}

	got, _ := m.Get(p.ID)
	if len(got.TrackIDs) != 2 || got.TrackIDs[0] != t1 || got.TrackIDs[1] != t3 {
		t.Errorf("TrackIDs = %v, want [%d %d]", got.TrackIDs, t1, t3)
	}

	// Removing again is a no-op.
	if err := m.RemoveTrack(p.ID, t2); err != nil {
		t.Errorf("second RemoveTrack = %v, want nil", err)
	}
}

func TestResolveTracks_Order(t *testing.T) {
	m, s := newTestManager(t)

	t1 := addTrack(t, s, "first")
	t2 := addTrack(t, s, "second")
	p, _ := m.Create("Ordered")
	// Add in reverse to prove playlist order wins over id order.
	if err := m.AddTrack(p.ID, t2); err != nil {
		t.Fatalf("AddTrack failed: %v", err)
	}
	if err := m.AddTrack(p.ID, t1); err != nil {
		t.Fatalf("AddTrack failed: %v", err)
	}

	tracks, err := m.ResolveTracks(p.ID)
	if err != nil {
		t.Fatalf("ResolveTracks failed: %v", err)
	}
	if len(tracks) != 2 || tracks[0].Name != "second" || tracks[1].Name != "first" {
		t.Errorf("resolved order = %v", tracks)
	}
}

func TestResolveTracks_SkipsDangling(t *testing.T) {
	m, s := newTestManager(t)

	t1 := addTrack(t, s, "alive")
	t2 := addTrack(t, s, "doomed")
	p, _ := m.Create("Stale")
	if err := m.AddTrack(p.ID, t1); err != nil {
		t.Fatalf("AddTrack failed: %v", err)
	}
	if err := m.AddTrack(p.ID, t2); err != nil {
		t.Fatalf("AddTrack failed: %v", err)
	}

	// Delete the track directly, bypassing the library's prune pass, so
	// the playlist is left holding a dangling reference.
	if err := s.DeleteTrack(t2); err != nil {
		t.Fatalf("DeleteTrack failed: %v", err)
	}

	tracks, err := m.ResolveTracks(p.ID)
	if err != nil {
		t.Fatalf("ResolveTracks failed: %v", err)
	}
	if len(tracks) != 1 || tracks[0].ID != t1 {
		t.Errorf("resolved = %v, want only track %d", tracks, t1)
	}
}

// Scenario: build a playlist, play through it mentally, delete a track
// and confirm the playlist heals at resolution time.
func TestScenario_ChillPlaylist(t *testing.T) {
	m, s := newTestManager(t)

	a := addTrack(t, s, "Song A")
	b := addTrack(t, s, "Song B")
	c := addTrack(t, s, "Song C")

	chill, err := m.Create("Chill")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, id := range []int64{a, b, c} {
		if err := m.AddTrack(chill.ID, id); err != nil {
			t.Fatalf("AddTrack failed: %v", err)
		}
	}

	tracks, err := m.ResolveTracks(chill.ID)
	if err != nil {
		t.Fatalf("ResolveTracks failed: %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("resolved %d tracks, want 3", len(tracks))
	}

	if err := s.DeleteTrack(b); err != nil {
		t.Fatalf("DeleteTrack failed: %v", err)
	}

	tracks, err = m.ResolveTracks(chill.ID)
	if err != nil {
		t.Fatalf("ResolveTracks failed: %v", err)
	}
	if len(tracks) != 2 || tracks[0].Name != "Song A" || tracks[1].Name != "Song C" {
		t.Errorf("resolved = %v, want [Song A, Song C]", tracks)
	}
}

func TestList(t *testing.T) {
	m, _ := newTestManager(t)

	for _, name := range []string{"One", "Two", "Three"} {
		if _, err := m.Create(name); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d playlists, want 3", len(all))
	}
	if all[0].Name != "One" || all[2].Name != "Three" {
		t.Errorf("order = %v", all)
	}
}
