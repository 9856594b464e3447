package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/cassette-player/cassette/internal/playback"
	"github.com/cassette-player/cassette/internal/ui/playerbar"
	"github.com/cassette-player/cassette/internal/ui/render"
	"github.com/cassette-player/cassette/internal/ui/styles"
)

const minListHeight = 3

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	header := m.renderHeader()
	bar := playerbar.Render(m.playerState(), m.width)
	status := m.renderStatus()

	bodyHeight := m.height - lipgloss.Height(header) - playerbar.Height() - 1
	if bodyHeight < minListHeight {
		bodyHeight = minListHeight
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	left := m.renderLibrary(leftWidth, bodyHeight)
	right := m.renderRightColumn(rightWidth, bodyHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	if m.mode != inputNone {
		status = " " + m.input.View()
	}

	view := lipgloss.JoinVertical(lipgloss.Left, header, body, bar, status)

	if m.conf.Active() {
		return m.overlay(m.conf.View())
	}
	return view
}

func (m Model) renderHeader() string {
	title := styles.ApplyBoldGradient("cassette", styles.T().Primary, styles.T().Secondary)
	hints := styles.T().S().Subtle.Render("tab: switch · enter: play/open · space: pause · d: delete · q: quit")
	return " " + render.Row(title, hints+" ", m.width-2)
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	style := styles.T().S().Muted
	if strings.HasPrefix(m.status, "Failed") {
		style = styles.T().S().Error
	}
	return " " + style.Render(render.Truncate(m.status, m.width-2))
}

func (m Model) renderLibrary(width, height int) string {
	innerWidth := max(width-4, 1)
	innerHeight := max(height-3, 1)

	title := m.paneTitle("Library", fmt.Sprintf("%d tracks", len(m.tracks)), m.focus == paneLibrary, innerWidth)

	var lines []string
	if len(m.tracks) == 0 {
		lines = append(lines, styles.T().S().Subtle.Render("library is empty, press i to import"))
	} else {
		playingID := m.playingTrackID(playback.SourceLibrary)
		start := listWindow(m.libCursor, len(m.tracks), innerHeight)
		for i := start; i < len(m.tracks) && i-start < innerHeight; i++ {
			t := m.tracks[i]
			label := t.Name
			if t.Artist != "" {
				label += " · " + t.Artist
			}
			size := humanize.Bytes(uint64(t.Size))
			lines = append(lines, m.listRow(label, size, i == m.libCursor && m.focus == paneLibrary, t.ID == playingID, innerWidth))
		}
	}

	content := title + "\n" + strings.Join(lines, "\n")
	return styles.PanelStyle(m.focus == paneLibrary).
		Width(innerWidth + 2).
		Height(height - 2).
		Render(content)
}

func (m Model) renderRightColumn(width, height int) string {
	if m.detailID == 0 {
		return m.renderPlaylists(width, height)
	}

	topHeight := height / 2
	if topHeight < minListHeight {
		topHeight = minListHeight
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderPlaylists(width, topHeight),
		m.renderDetail(width, height-topHeight),
	)
}

func (m Model) renderPlaylists(width, height int) string {
	innerWidth := max(width-4, 1)
	innerHeight := max(height-3, 1)

	title := m.paneTitle("Playlists", fmt.Sprintf("%d", len(m.lists)), m.focus == panePlaylists, innerWidth)

	var lines []string
	if len(m.lists) == 0 {
		lines = append(lines, styles.T().S().Subtle.Render("no playlists, press c to create"))
	} else {
		start := listWindow(m.plCursor, len(m.lists), innerHeight)
		for i := start; i < len(m.lists) && i-start < innerHeight; i++ {
			p := m.lists[i]
			count := fmt.Sprintf("%d tracks", len(p.TrackIDs))
			lines = append(lines, m.listRow(p.Name, count, i == m.plCursor && m.focus == panePlaylists, false, innerWidth))
		}
	}

	content := title + "\n" + strings.Join(lines, "\n")
	return styles.PanelStyle(m.focus == panePlaylists).
		Width(innerWidth + 2).
		Height(height - 2).
		Render(content)
}

func (m Model) renderDetail(width, height int) string {
	innerWidth := max(width-4, 1)
	innerHeight := max(height-3, 1)

	name := "Playlist"
	for _, p := range m.lists {
		if p.ID == m.detailID {
			name = p.Name
			break
		}
	}
	title := m.paneTitle(name, fmt.Sprintf("%d tracks", len(m.detailTracks)), m.focus == paneDetail, innerWidth)

	var lines []string
	if len(m.detailTracks) == 0 {
		lines = append(lines, styles.T().S().Subtle.Render("empty playlist, press a in the library to add tracks"))
	} else {
		playingID := m.playingTrackID(playback.SourcePlaylist)
		start := listWindow(m.detailCursor, len(m.detailTracks), innerHeight)
		for i := start; i < len(m.detailTracks) && i-start < innerHeight; i++ {
			t := m.detailTracks[i]
			label := t.Name
			if t.Artist != "" {
				label += " · " + t.Artist
			}
			lines = append(lines, m.listRow(label, "", i == m.detailCursor && m.focus == paneDetail, t.ID == playingID, innerWidth))
		}
	}

	content := title + "\n" + strings.Join(lines, "\n")
	return styles.PanelStyle(m.focus == paneDetail).
		Width(innerWidth + 2).
		Height(height - 2).
		Render(content)
}

func (m Model) paneTitle(name, count string, focused bool, width int) string {
	style := styles.T().S().Muted
	if focused {
		style = styles.T().S().Title
	}
	return render.Row(style.Render(name), styles.T().S().Subtle.Render(count), width)
}

// listRow renders one list entry, highlighting the cursor and marking
// the currently playing track.
func (m Model) listRow(label, right string, selected, playing bool, width int) string {
	style := styles.T().S().Base
	prefix := "  "
	if playing {
		style = styles.T().S().Playing
		prefix = "▶ "
	}

	rightStyle := styles.T().S().Subtle
	if selected {
		style = style.Background(styles.T().BgCursor)
		rightStyle = rightStyle.Background(styles.T().BgCursor)
	}

	rightWidth := lipgloss.Width(right)
	labelWidth := max(width-rightWidth-lipgloss.Width(prefix), 1)
	left := style.Render(prefix + render.TruncateAndPad(label, labelWidth))
	if right == "" {
		return left
	}
	return left + rightStyle.Render(right)
}

// listWindow returns the first visible index so the cursor stays in view.
func listWindow(cursor, length, height int) int {
	if length <= height {
		return 0
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start > length-height {
		start = length - height
	}
	return start
}

// playingTrackID returns the id of the current track when it came from
// the given source, or 0.
func (m Model) playingTrackID(source playback.Source) int64 {
	if !m.svc.State().IsActive() || m.svc.Source() != source {
		return 0
	}
	if t := m.svc.CurrentTrack(); t != nil {
		return t.ID
	}
	return 0
}

func (m Model) playerState() playerbar.State {
	state := m.svc.State()
	s := playerbar.State{
		Playing: state == playback.StatePlaying,
		Paused:  state == playback.StatePaused,
		Source:  string(m.svc.Source()),
		Bins:    m.bins,
	}

	if t := m.svc.CurrentTrack(); t != nil {
		s.Title = t.Name
		s.Artist = t.Artist
	}

	s.Position = m.svc.Position()
	s.Duration = m.svc.Duration()

	p := m.svc.Player()
	s.Volume = p.Volume()
	s.Muted = p.Muted()
	return s
}

func (m Model) overlay(content string) string {
	box := styles.PanelStyle(true).Padding(1, 2).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
