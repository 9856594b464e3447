package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cassette-player/cassette/internal/config"
	"github.com/cassette-player/cassette/internal/errmsg"
	"github.com/cassette-player/cassette/internal/library"
	"github.com/cassette-player/cassette/internal/mediasession"
	"github.com/cassette-player/cassette/internal/playback"
	"github.com/cassette-player/cassette/internal/player"
	"github.com/cassette-player/cassette/internal/playlists"
	"github.com/cassette-player/cassette/internal/store"
	"github.com/cassette-player/cassette/internal/ui"
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var s *store.Store
	if cfg.DataPath != "" {
		s, err = store.Open(cfg.DataPath)
	} else {
		s, err = store.OpenDefault()
	}
	if err != nil {
		return err
	}
	defer s.Close()

	lib := library.New(s, cfg.FallbackMIME)
	pls := playlists.New(s)

	svc := playback.New(player.New())
	defer svc.Close()

	// The library stops playback before deleting a track; the service
	// needs the player first, so the stopper is wired late.
	lib.SetStopper(svc)

	// Desktop media controls are optional; the player works without them.
	if session, err := mediasession.New(svc, cfg.ArtistPlaceholder); err == nil {
		defer session.Close()
	}

	m := ui.New(lib, pls, svc, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}
}
