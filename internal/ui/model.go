package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cassette-player/cassette/internal/config"
	"github.com/cassette-player/cassette/internal/library"
	"github.com/cassette-player/cassette/internal/playback"
	"github.com/cassette-player/cassette/internal/playlist"
	"github.com/cassette-player/cassette/internal/playlists"
	"github.com/cassette-player/cassette/internal/store"
	"github.com/cassette-player/cassette/internal/ui/confirm"
)

type pane int

const (
	paneLibrary pane = iota
	panePlaylists
	paneDetail
)

type inputMode int

const (
	inputNone inputMode = iota
	inputNewPlaylist
	inputRenamePlaylist
	inputImportPath
)

// Confirmation contexts

type deleteTrackContext struct {
	id   int64
	name string
}

type deletePlaylistContext struct {
	id   int64
	name string
}

type addToPlaylistContext struct {
	trackID int64
	options []store.Playlist
}

// Model is the root bubbletea model.
type Model struct {
	lib *library.Manager
	pls *playlists.Manager
	svc playback.Service
	cfg *config.Config

	width, height int

	focus        pane
	libCursor    int
	plCursor     int
	detailCursor int

	tracks []store.Track
	lists  []store.Playlist

	detailID     int64 // 0 when no playlist is open
	detailTracks []playlist.Track

	input textinput.Model
	mode  inputMode
	conf  confirm.Model

	status string
	bins   []float64

	sub *playback.Subscription
}

// New creates the root model.
func New(lib *library.Manager, pls *playlists.Manager, svc playback.Service, cfg *config.Config) Model {
	input := textinput.New()
	input.CharLimit = 120

	return Model{
		lib:   lib,
		pls:   pls,
		svc:   svc,
		cfg:   cfg,
		input: input,
		conf:  confirm.New(),
		sub:   svc.Subscribe(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadLibrary(),
		m.loadPlaylists(),
		tickCmd(),
		waitForPlayback(m.sub),
	)
}

func (m *Model) selectedTrack() *store.Track {
	if m.libCursor < 0 || m.libCursor >= len(m.tracks) {
		return nil
	}
	return &m.tracks[m.libCursor]
}

func (m *Model) selectedPlaylist() *store.Playlist {
	if m.plCursor < 0 || m.plCursor >= len(m.lists) {
		return nil
	}
	return &m.lists[m.plCursor]
}

func (m *Model) selectedDetailTrack() *playlist.Track {
	if m.detailCursor < 0 || m.detailCursor >= len(m.detailTracks) {
		return nil
	}
	return &m.detailTracks[m.detailCursor]
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}
