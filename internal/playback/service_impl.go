package playback

import (
	"sync"
	"time"

	"github.com/cassette-player/cassette/internal/player"
	"github.com/cassette-player/cassette/internal/playlist"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.RWMutex

	player player.Interface
	queue  *playlist.PlayingQueue
	source Source

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// New creates a new playback service and starts watching for track
// completion.
func New(p player.Interface) Service {
	s := &serviceImpl{
		player: p,
		queue:  playlist.NewQueue(),
		done:   make(chan struct{}),
	}
	go s.watchFinished()
	return s
}

// watchFinished advances the queue whenever the player reports a track
// played to its end.
func (s *serviceImpl) watchFinished() {
	for {
		select {
		case <-s.player.FinishedChan():
			s.handleTrackFinished()
		case <-s.done:
			return
		}
	}
}

func (s *serviceImpl) handleTrackFinished() {
	s.mu.Lock()
	prev := s.queue.Current()
	next := s.queue.Next()
	if next == nil {
		s.mu.Unlock()
		return
	}
	err := s.playLocked(*next)
	index := s.queue.CurrentIndex()
	s.mu.Unlock()

	if err != nil {
		s.emitError(ErrorEvent{Operation: "advance", TrackID: next.ID, Err: err})
		return
	}
	s.emitTrack(TrackChange{Previous: prev, Current: next, Index: index})
}

// playLocked starts the player on a track. Callers hold s.mu.
func (s *serviceImpl) playLocked(t playlist.Track) error {
	return s.player.Play(t)
}

// PlayFrom replaces the queue with the given tracks and starts playback
// at startIndex. source labels the origin for media metadata.
func (s *serviceImpl) PlayFrom(source Source, tracks []playlist.Track, startIndex int) error {
	if startIndex < 0 || startIndex >= len(tracks) {
		return ErrIndexOutOfRange
	}

	s.mu.Lock()
	prevState := s.stateLocked()
	prev := s.queue.Current()
	start := s.queue.Replace(tracks, startIndex)
	s.source = source
	err := s.playLocked(*start)
	index := s.queue.CurrentIndex()
	queueCopy := s.queue.Tracks()
	curState := s.stateLocked()
	s.mu.Unlock()

	if err != nil {
		s.emitError(ErrorEvent{Operation: "play", TrackID: start.ID, Err: err})
		return err
	}

	s.emitQueue(QueueChange{Source: source, Tracks: queueCopy, Index: index})
	s.emitTrack(TrackChange{Previous: prev, Current: start, Index: index})
	s.emitStateIfChanged(prevState, curState)
	return nil
}

// Next moves to the following track, wrapping from the last back to
// the first. No-op when nothing is queued.
func (s *serviceImpl) Next() error {
	return s.step((*playlist.PlayingQueue).Next, "next")
}

// Previous moves to the preceding track, wrapping from the first to
// the last. No-op when nothing is queued.
func (s *serviceImpl) Previous() error {
	return s.step((*playlist.PlayingQueue).Previous, "previous")
}

func (s *serviceImpl) step(move func(*playlist.PlayingQueue) *playlist.Track, op string) error {
	s.mu.Lock()
	prev := s.queue.Current()
	next := move(s.queue)
	if next == nil {
		s.mu.Unlock()
		return nil
	}
	err := s.playLocked(*next)
	index := s.queue.CurrentIndex()
	s.mu.Unlock()

	if err != nil {
		s.emitError(ErrorEvent{Operation: op, TrackID: next.ID, Err: err})
		return err
	}
	s.emitTrack(TrackChange{Previous: prev, Current: next, Index: index})
	return nil
}

// Pause pauses playback if playing.
func (s *serviceImpl) Pause() error {
	s.withStateChange(func() { s.player.Pause() })
	return nil
}

// Resume resumes playback if paused.
func (s *serviceImpl) Resume() error {
	s.withStateChange(func() { s.player.Resume() })
	return nil
}

// Toggle flips between playing and paused. No-op when stopped.
func (s *serviceImpl) Toggle() error {
	s.withStateChange(func() { s.player.Toggle() })
	return nil
}

// Stop halts playback. The queue and cursor are kept so playback can
// be restarted.
func (s *serviceImpl) Stop() error {
	s.withStateChange(func() { s.player.Stop() })
	return nil
}

func (s *serviceImpl) withStateChange(fn func()) {
	s.mu.Lock()
	prev := s.stateLocked()
	fn()
	cur := s.stateLocked()
	s.mu.Unlock()
	s.emitStateIfChanged(prev, cur)
}

// StopIfPlaying halts playback when trackID is the current track.
func (s *serviceImpl) StopIfPlaying(trackID int64) {
	s.mu.Lock()
	cur := s.queue.Current()
	if cur == nil || cur.ID != trackID || !s.stateLocked().IsActive() {
		s.mu.Unlock()
		return
	}
	prev := s.stateLocked()
	s.player.Stop()
	curState := s.stateLocked()
	s.mu.Unlock()
	s.emitStateIfChanged(prev, curState)
}

// State returns the current playback state.
func (s *serviceImpl) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *serviceImpl) stateLocked() State {
	switch s.player.State() {
	case player.Playing:
		return StatePlaying
	case player.Paused:
		return StatePaused
	default:
		return StateStopped
	}
}

func (s *serviceImpl) IsPlaying() bool { return s.State() == StatePlaying }

func (s *serviceImpl) IsStopped() bool { return s.State() == StateStopped }

// Position returns the current playback position.
func (s *serviceImpl) Position() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Position()
}

// Duration returns the current track duration.
func (s *serviceImpl) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Duration()
}

// CurrentTrack returns a copy of the current track, or nil if none.
func (s *serviceImpl) CurrentTrack() *playlist.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := s.queue.Current()
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}

// CurrentIndex returns the current queue index (-1 if none).
func (s *serviceImpl) CurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.CurrentIndex()
}

// Source returns the label of where the queue was loaded from.
func (s *serviceImpl) Source() Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Player exposes the underlying player for UI rendering.
func (s *serviceImpl) Player() player.Interface {
	return s.player
}

// QueueTracks returns a copy of all tracks in the queue.
func (s *serviceImpl) QueueTracks() []playlist.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Tracks()
}

// QueueLen returns the number of queued tracks.
func (s *serviceImpl) QueueLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Len()
}

// QueueIsEmpty returns true if nothing is queued.
func (s *serviceImpl) QueueIsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.IsEmpty()
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close shuts down the service and stops playback.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.player.Stop()
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

// Event fan-out

func (s *serviceImpl) emitStateIfChanged(prev, cur State) {
	if prev == cur {
		return
	}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendState(StateChange{Previous: prev, Current: cur})
	}
}

func (s *serviceImpl) emitTrack(e TrackChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendTrack(e)
	}
}

func (s *serviceImpl) emitQueue(e QueueChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendQueue(e)
	}
}

func (s *serviceImpl) emitError(e ErrorEvent) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendError(e)
	}
}
