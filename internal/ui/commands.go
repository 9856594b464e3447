package ui

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cassette-player/cassette/internal/errmsg"
	"github.com/cassette-player/cassette/internal/library"
	"github.com/cassette-player/cassette/internal/playback"
	"github.com/cassette-player/cassette/internal/playlist"
	"github.com/cassette-player/cassette/internal/store"
)

const tickInterval = 200 * time.Millisecond

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForPlayback blocks on the subscription until any event arrives.
// Re-armed after each delivery; stops when the subscription closes.
func waitForPlayback(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-sub.StateChanged:
			return playbackEventMsg{}
		case <-sub.TrackChanged:
			return playbackEventMsg{}
		case <-sub.QueueChanged:
			return playbackEventMsg{}
		case e := <-sub.Error:
			return statusMsg(errmsg.Format(errmsg.Op(e.Operation), e.Err))
		case <-sub.Done:
			return nil
		}
	}
}

func (m Model) loadLibrary() tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.lib.ListTracks()
		if err != nil {
			return statusMsg(errmsg.Format(errmsg.OpLibraryLoad, err))
		}
		return libraryLoadedMsg(tracks)
	}
}

func (m Model) loadPlaylists() tea.Cmd {
	return func() tea.Msg {
		lists, err := m.pls.List()
		if err != nil {
			return statusMsg(errmsg.Format(errmsg.OpPlaylistLoad, err))
		}
		return playlistsLoadedMsg(lists)
	}
}

func (m Model) loadDetail(id int64) tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.pls.ResolveTracks(id)
		if err != nil {
			return statusMsg(errmsg.Format(errmsg.OpPlaylistLoad, err))
		}
		return detailLoadedMsg{id: id, tracks: tracks}
	}
}

func (m Model) createPlaylist(name string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.pls.Create(name); err != nil {
			return statusMsg(errmsg.FormatWith(errmsg.OpPlaylistCreate, name, err))
		}
		return statusMsg("Created playlist '" + name + "'")
	}
}

func (m Model) renamePlaylist(id int64, name string) tea.Cmd {
	return func() tea.Msg {
		if err := m.pls.Rename(id, name); err != nil {
			return statusMsg(errmsg.FormatWith(errmsg.OpPlaylistRename, name, err))
		}
		return statusMsg("Renamed playlist to '" + name + "'")
	}
}

func (m Model) deletePlaylist(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.pls.Delete(id); err != nil {
			return statusMsg(errmsg.Format(errmsg.OpPlaylistDelete, err))
		}
		return statusMsg("Playlist deleted")
	}
}

func (m Model) deleteTrack(id int64, name string) tea.Cmd {
	return func() tea.Msg {
		if err := m.lib.DeleteTrack(id); err != nil {
			return statusMsg(errmsg.FormatWith(errmsg.OpTrackDelete, name, err))
		}
		return statusMsg("Deleted '" + name + "'")
	}
}

func (m Model) addTrackToPlaylist(playlistID, trackID int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.pls.AddTrack(playlistID, trackID); err != nil {
			return statusMsg(errmsg.Format(errmsg.OpPlaylistAddTrack, err))
		}
		return statusMsg("Track added to playlist")
	}
}

func (m Model) removeTrackFromPlaylist(playlistID, trackID int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.pls.RemoveTrack(playlistID, trackID); err != nil {
			return statusMsg(errmsg.Format(errmsg.OpPlaylistRemove, err))
		}
		return statusMsg("Track removed from playlist")
	}
}

func (m Model) playTracks(source playback.Source, tracks []playlist.Track, index int) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.PlayFrom(source, tracks, index); err != nil {
			return statusMsg(errmsg.Format(errmsg.OpPlaybackStart, err))
		}
		return playbackEventMsg{}
	}
}

// audioExtensions lists the file types accepted by the import prompt.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".wav":  true,
}

// importPath imports a single audio file or every audio file directly
// inside a directory.
func (m Model) importPath(path string) tea.Cmd {
	return func() tea.Msg {
		files, err := collectAudioFiles(path)
		if err != nil {
			return statusMsg(errmsg.FormatWith(errmsg.OpTrackImport, path, err))
		}
		if len(files) == 0 {
			return statusMsg("No audio files found at " + path)
		}

		added, err := m.lib.AddTracks(files)
		if err != nil {
			return statusMsg(errmsg.Format(errmsg.OpTrackImport, err))
		}
		if len(added) == 1 {
			return statusMsg("Imported '" + added[0].Name + "'")
		}
		return statusMsg(fmt.Sprintf("Imported %d tracks", len(added)))
	}
}

func collectAudioFiles(path string) ([]library.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if audioExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
				paths = append(paths, filepath.Join(path, e.Name()))
			}
		}
	} else {
		paths = []string{path}
	}

	files := make([]library.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, library.File{
			Name: filepath.Base(p),
			Type: mime.TypeByExtension(filepath.Ext(p)),
			Data: data,
		})
	}
	return files, nil
}

// toQueueTracks converts stored tracks into playable queue entries.
func toQueueTracks(tracks []store.Track) []playlist.Track {
	out := make([]playlist.Track, len(tracks))
	for i, t := range tracks {
		out[i] = playlist.Track{
			ID:     t.ID,
			Name:   t.Name,
			Artist: t.Artist,
			MIME:   t.MIMEType,
			Data:   t.Data,
		}
	}
	return out
}
