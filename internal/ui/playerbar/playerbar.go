// Package playerbar renders the now-playing strip: transport state,
// track metadata, progress, volume and the spectrum visualizer.
package playerbar

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cassette-player/cassette/internal/ui/render"
	"github.com/cassette-player/cassette/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
)

// State holds everything needed to render the player bar.
type State struct {
	Playing  bool
	Paused   bool
	Title    string
	Artist   string
	Source   string // "Library" or "Playlist"
	Position time.Duration
	Duration time.Duration
	Volume   float64
	Muted    bool
	Bins     []float64 // spectrum magnitudes, may be nil
}

// Height returns the total height of the player bar including borders.
func Height() int {
	return 4 // two content rows + border rows
}

// Render returns the player bar for the given width, or an idle strip
// when nothing is playing.
func Render(s State, width int) string {
	innerWidth := max(width-4, 0)

	var top, bottom string
	if !s.Playing && !s.Paused {
		top = styles.T().S().Muted.Render("nothing playing")
		bottom = styles.T().S().Subtle.Render("enter: play · q: quit")
	} else {
		top = renderTrackLine(s, innerWidth)
		bottom = renderProgressLine(s, innerWidth)
	}

	content := render.TruncateAndPad(top, innerWidth) + "\n" + render.TruncateAndPad(bottom, innerWidth)
	return styles.PanelStyle(false).Width(innerWidth + 2).Render(content)
}

func renderTrackLine(s State, width int) string {
	status := playSymbol
	if s.Paused {
		status = pauseSymbol
	}

	title := s.Title
	if title == "" {
		title = "Unknown Track"
	}

	left := status + "  " + styles.T().S().Title.Render(render.Truncate(title, width/2))
	if s.Artist != "" {
		left += styles.T().S().Muted.Render(" · " + render.Truncate(s.Artist, width/4))
	}

	right := renderVisualizer(s.Bins)
	if s.Source != "" {
		right += styles.T().S().Subtle.Render(" " + s.Source)
	}

	return render.Row(left, right, width)
}

func renderProgressLine(s State, width int) string {
	vol := fmt.Sprintf("vol %d%%", int(s.Volume*100))
	if s.Muted {
		vol = "muted"
	}
	volWidth := lipgloss.Width(vol) + 2

	bar := RenderProgressBar(s.Position, s.Duration, max(width-volWidth, 0), s.Playing)
	return render.Row(bar, styles.T().S().Subtle.Render(vol), width)
}

// renderVisualizer draws the spectrum bins as block bars with a
// gradient from primary to secondary.
func renderVisualizer(bins []float64) string {
	if len(bins) == 0 {
		return ""
	}

	blocks := []rune(" ▁▂▃▄▅▆▇█")
	colors := styles.BlendColors(len(bins), styles.T().Primary, styles.T().Secondary)

	out := ""
	for i, v := range bins {
		if v > 1 {
			v = 1
		}
		idx := int(v * float64(len(blocks)-1))
		style := lipgloss.NewStyle().Foreground(styles.Hex(colors[i]))
		out += style.Render(string(blocks[idx]))
	}
	return out
}
