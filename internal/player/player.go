// Package player turns stored track payloads into sound. It decodes
// in-memory audio, owns the speaker, and exposes transport controls
// plus a frequency tap for the visualizer.
package player

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/cassette-player/cassette/internal/playlist"
)

// The speaker is initialized once, lazily, at the sample rate of the
// first track played. Later tracks with a different rate are resampled
// onto the running mixer.
var (
	speakerReady      bool
	speakerSampleRate beep.SampleRate
)

func ensureSpeaker(rate beep.SampleRate) error {
	if speakerReady {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	speakerReady = true
	speakerSampleRate = rate
	return nil
}

type Player struct {
	state    State
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	tap      *tap
	streamer beep.StreamSeekCloser
	format   beep.Format

	volumeLevel float64
	muted       bool

	finishedCh chan struct{}
}

func New() *Player {
	return &Player{
		state:       Stopped,
		volumeLevel: 1,
		finishedCh:  make(chan struct{}, 1),
	}
}

// Play replaces whatever is playing with the given track.
func (p *Player) Play(track playlist.Track) error {
	p.Stop()

	streamer, format, err := decode(track.MIME, track.Data)
	if err != nil {
		return err
	}

	if err := ensureSpeaker(format.SampleRate); err != nil {
		streamer.Close()
		return err
	}

	var source beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		source = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}

	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: source, Paused: false}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volumeLevel),
		Silent:   p.muted,
	}
	p.tap = newTap(p.volume)
	p.state = Playing

	speaker.Play(beep.Seq(p.tap, beep.Callback(func() {
		select {
		case p.finishedCh <- struct{}{}:
		default:
		}
	})))

	return nil
}

func (p *Player) Stop() {
	if p.state == Stopped {
		return
	}

	speaker.Clear()

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	p.ctrl = nil
	p.volume = nil
	p.tap = nil
	p.state = Stopped
}

func (p *Player) Pause() {
	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

func (p *Player) Resume() {
	if p.state != Paused || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

func (p *Player) Toggle() {
	switch p.state {
	case Playing:
		p.Pause()
	case Paused:
		p.Resume()
	case Stopped:
		// Nothing to toggle when stopped.
	}
}

func (p *Player) State() State { return p.state }

func (p *Player) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}

func (p *Player) Duration() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// SetVolume sets the volume level (0.0 to 1.0).
func (p *Player) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	p.volumeLevel = level

	if !p.muted && p.volume != nil {
		speaker.Lock()
		p.volume.Volume = levelToVolume(level)
		speaker.Unlock()
	}
}

// Volume returns the current volume level (0.0 to 1.0).
func (p *Player) Volume() float64 {
	return p.volumeLevel
}

// SetMuted sets the muted state without losing the volume level.
func (p *Player) SetMuted(muted bool) {
	p.muted = muted

	if p.volume != nil {
		speaker.Lock()
		p.volume.Silent = muted
		speaker.Unlock()
	}
}

// Muted returns true if audio is muted.
func (p *Player) Muted() bool {
	return p.muted
}

// FinishedChan delivers a signal each time a track plays to its end.
// Stop does not signal; only natural completion does.
func (p *Player) FinishedChan() <-chan struct{} {
	return p.finishedCh
}

// FrequencyBins returns n spectrum magnitudes over the most recently
// played samples. Returns nil when nothing is playing.
func (p *Player) FrequencyBins(n int) []float64 {
	if p.tap == nil {
		return nil
	}
	return p.tap.bins(n)
}

// levelToVolume converts a 0.0-1.0 level to beep's logarithmic Volume
// value: 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10 (effectively silent).
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
