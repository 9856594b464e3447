package player

import (
	"math"
	"sync"

	"github.com/gopxl/beep/v2"
)

const tapWindow = 1024

// tap passes samples through unchanged while keeping the most recent
// window for the frequency analyser. Stream runs on the speaker
// goroutine, window reads come from the UI, hence the mutex.
type tap struct {
	src beep.Streamer

	mu   sync.Mutex
	ring [tapWindow]float64
	pos  int
}

func newTap(src beep.Streamer) *tap {
	return &tap{src: src}
}

func (t *tap) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = t.src.Stream(samples)
	t.mu.Lock()
	for i := range n {
		t.ring[t.pos] = (samples[i][0] + samples[i][1]) / 2
		t.pos = (t.pos + 1) % tapWindow
	}
	t.mu.Unlock()
	return n, ok
}

func (t *tap) Err() error {
	return t.src.Err()
}

// window returns the buffered samples oldest-first.
func (t *tap) window() []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]float64, tapWindow)
	n := copy(out, t.ring[t.pos:])
	copy(out[n:], t.ring[:t.pos])
	return out
}

// bins computes n magnitude bins over the buffered window with a
// direct transform. n is a visualizer bar per bin and stays small, so
// the naive cost is negligible next to decoding.
func (t *tap) bins(n int) []float64 {
	if n <= 0 {
		return nil
	}
	w := t.window()
	out := make([]float64, n)
	for b := range n {
		// Spread the bins over the lower quarter of the spectrum,
		// where most musical content sits.
		k := (b + 1) * (tapWindow / 4) / n
		var re, im float64
		for i, s := range w {
			angle := 2 * math.Pi * float64(k) * float64(i) / tapWindow
			re += s * math.Cos(angle)
			im -= s * math.Sin(angle)
		}
		out[b] = 2 * math.Hypot(re, im) / tapWindow
	}
	return out
}
