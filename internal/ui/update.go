package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cassette-player/cassette/internal/errmsg"
	"github.com/cassette-player/cassette/internal/playback"
	"github.com/cassette-player/cassette/internal/store"
	"github.com/cassette-player/cassette/internal/ui/confirm"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.svc.IsPlaying() {
			m.bins = m.svc.Player().FrequencyBins(m.cfg.Visualizer.Bins)
		} else {
			m.bins = nil
		}
		return m, tickCmd()

	case playbackEventMsg:
		// A track may have been stopped or advanced elsewhere, so the
		// open playlist view could be stale.
		var cmd tea.Cmd
		if m.detailID != 0 {
			cmd = m.loadDetail(m.detailID)
		}
		return m, tea.Batch(waitForPlayback(m.sub), cmd)

	case libraryLoadedMsg:
		m.tracks = msg
		m.libCursor = clampCursor(m.libCursor, len(m.tracks))
		return m, nil

	case playlistsLoadedMsg:
		m.lists = msg
		m.plCursor = clampCursor(m.plCursor, len(m.lists))
		if m.detailID != 0 && !m.playlistExists(m.detailID) {
			m.detailID = 0
			m.detailTracks = nil
			if m.focus == paneDetail {
				m.focus = panePlaylists
			}
		}
		return m, nil

	case detailLoadedMsg:
		if msg.id != m.detailID {
			return m, nil
		}
		m.detailTracks = msg.tracks
		m.detailCursor = clampCursor(m.detailCursor, len(m.detailTracks))
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, tea.Batch(m.loadLibrary(), m.loadPlaylists(), m.reloadDetail())

	case confirm.ActionMsg:
		return m.handleConfirmAction(confirm.Result(msg))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) playlistExists(id int64) bool {
	for _, p := range m.lists {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (m Model) reloadDetail() tea.Cmd {
	if m.detailID == 0 {
		return nil
	}
	return m.loadDetail(m.detailID)
}

func (m Model) handleConfirmAction(res confirm.Result) (tea.Model, tea.Cmd) {
	switch ctx := res.Context.(type) {
	case deleteTrackContext:
		if !res.Confirmed {
			return m, nil
		}
		return m, m.deleteTrack(ctx.id, ctx.name)

	case deletePlaylistContext:
		if !res.Confirmed {
			return m, nil
		}
		if ctx.id == m.detailID {
			m.detailID = 0
			m.detailTracks = nil
			if m.focus == paneDetail {
				m.focus = panePlaylists
			}
		}
		return m, m.deletePlaylist(ctx.id)

	case addToPlaylistContext:
		if !res.Confirmed || res.SelectedOption >= len(ctx.options) {
			return m, nil
		}
		target := ctx.options[res.SelectedOption]
		return m, m.addTrackToPlaylist(target.ID, ctx.trackID)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.conf.Active() {
		return m, m.conf.Update(msg)
	}
	if m.mode != inputNone {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.focus = m.nextPane()
		return m, nil

	case "shift+tab":
		m.focus = m.prevPane()
		return m, nil

	case "j", "down":
		m.moveCursor(1)
		return m, nil

	case "k", "up":
		m.moveCursor(-1)
		return m, nil

	case "g":
		m.setCursor(0)
		return m, nil

	case "G":
		m.setCursor(1 << 30)
		return m, nil

	case "enter":
		return m.handleEnter()

	case " ":
		m.svc.Toggle()
		return m, nil

	case "x":
		m.svc.Stop()
		return m, nil

	case "n":
		if err := m.svc.Next(); err != nil {
			m.status = errmsg.Format(errmsg.OpPlaybackNext, err)
		}
		return m, nil

	case "p":
		if err := m.svc.Previous(); err != nil {
			m.status = errmsg.Format(errmsg.OpPlaybackPrev, err)
		}
		return m, nil

	case "+", "=":
		m.adjustVolume(0.05)
		return m, nil

	case "-":
		m.adjustVolume(-0.05)
		return m, nil

	case "m":
		p := m.svc.Player()
		p.SetMuted(!p.Muted())
		return m, nil

	case "c":
		return m.startInput(inputNewPlaylist, "New playlist name", "")

	case "r":
		if m.focus == panePlaylists {
			if p := m.selectedPlaylist(); p != nil {
				return m.startInput(inputRenamePlaylist, "Rename playlist", p.Name)
			}
		}
		return m, nil

	case "i":
		if m.focus == paneLibrary {
			return m.startInput(inputImportPath, "Import path", "")
		}
		return m, nil

	case "a":
		return m.handleAddToPlaylist()

	case "d":
		return m.handleDelete()
	}

	return m, nil
}

func (m Model) nextPane() pane {
	switch m.focus {
	case paneLibrary:
		return panePlaylists
	case panePlaylists:
		if m.detailID != 0 {
			return paneDetail
		}
		return paneLibrary
	default:
		return paneLibrary
	}
}

func (m Model) prevPane() pane {
	switch m.focus {
	case paneLibrary:
		if m.detailID != 0 {
			return paneDetail
		}
		return panePlaylists
	case panePlaylists:
		return paneLibrary
	default:
		return panePlaylists
	}
}

func (m *Model) moveCursor(delta int) {
	switch m.focus {
	case paneLibrary:
		m.libCursor = clampCursor(m.libCursor+delta, len(m.tracks))
	case panePlaylists:
		m.plCursor = clampCursor(m.plCursor+delta, len(m.lists))
	case paneDetail:
		m.detailCursor = clampCursor(m.detailCursor+delta, len(m.detailTracks))
	}
}

func (m *Model) setCursor(pos int) {
	switch m.focus {
	case paneLibrary:
		m.libCursor = clampCursor(pos, len(m.tracks))
	case panePlaylists:
		m.plCursor = clampCursor(pos, len(m.lists))
	case paneDetail:
		m.detailCursor = clampCursor(pos, len(m.detailTracks))
	}
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.focus {
	case paneLibrary:
		if len(m.tracks) == 0 {
			return m, nil
		}
		return m, m.playTracks(playback.SourceLibrary, toQueueTracks(m.tracks), m.libCursor)

	case panePlaylists:
		p := m.selectedPlaylist()
		if p == nil {
			return m, nil
		}
		m.detailID = p.ID
		m.detailCursor = 0
		m.focus = paneDetail
		return m, m.loadDetail(p.ID)

	case paneDetail:
		if len(m.detailTracks) == 0 {
			return m, nil
		}
		return m, m.playTracks(playback.SourcePlaylist, m.detailTracks, m.detailCursor)
	}

	return m, nil
}

func (m Model) handleAddToPlaylist() (tea.Model, tea.Cmd) {
	if m.focus != paneLibrary {
		return m, nil
	}
	t := m.selectedTrack()
	if t == nil {
		return m, nil
	}
	if len(m.lists) == 0 {
		m.status = "No playlists yet, press c to create one"
		return m, nil
	}

	options := make([]string, 0, len(m.lists)+1)
	for _, p := range m.lists {
		options = append(options, p.Name)
	}
	options = append(options, "Cancel")

	m.conf.ShowWithOptions(
		"Add to playlist",
		fmt.Sprintf("Add '%s' to:", t.Name),
		options,
		addToPlaylistContext{trackID: t.ID, options: append([]store.Playlist(nil), m.lists...)},
	)
	return m, nil
}

func (m Model) handleDelete() (tea.Model, tea.Cmd) {
	switch m.focus {
	case paneLibrary:
		t := m.selectedTrack()
		if t == nil {
			return m, nil
		}
		m.conf.Show(
			"Delete track",
			fmt.Sprintf("Delete '%s' from the library? It will also be removed from playlists.", t.Name),
			deleteTrackContext{id: t.ID, name: t.Name},
		)
		return m, nil

	case panePlaylists:
		p := m.selectedPlaylist()
		if p == nil {
			return m, nil
		}
		m.conf.Show(
			"Delete playlist",
			fmt.Sprintf("Delete playlist '%s'? Tracks stay in the library.", p.Name),
			deletePlaylistContext{id: p.ID, name: p.Name},
		)
		return m, nil

	case paneDetail:
		t := m.selectedDetailTrack()
		if t == nil || m.detailID == 0 {
			return m, nil
		}
		return m, m.removeTrackFromPlaylist(m.detailID, t.ID)
	}

	return m, nil
}

func (m *Model) adjustVolume(delta float64) {
	p := m.svc.Player()
	p.SetVolume(p.Volume() + delta)
}

func (m Model) startInput(mode inputMode, prompt, initial string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.Prompt = prompt + ": "
	m.input.SetValue(initial)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = inputNone
		m.input.Blur()
		m.input.SetValue("")
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = inputNone
		m.input.Blur()
		m.input.SetValue("")
		return m, m.commitInput(mode, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) commitInput(mode inputMode, value string) tea.Cmd {
	if value == "" {
		return nil
	}

	switch mode {
	case inputNewPlaylist:
		return m.createPlaylist(value)
	case inputRenamePlaylist:
		if p := m.selectedPlaylist(); p != nil {
			return m.renamePlaylist(p.ID, value)
		}
	case inputImportPath:
		return m.importPath(value)
	}
	return nil
}
