package game

import (
	"fmt"
	"path/filepath"
	"time"
)

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// inside reports whether (x, y) lies on a w×h surface.
func inside(x, y, w, h float64) bool {
	return x >= 0 && y >= 0 && x < w && y < h
}

// track is the part of the audio player shown in the HUD.
type track interface {
	Path() string
	Paused() bool
	Ended() bool
	Position() time.Duration
	Duration() time.Duration
}

// trackStatus describes the loaded track, e.g. "song.mp3 playing 00:12 / 03:40".
func trackStatus(t track) string {
	state := "playing"
	switch {
	case t.Ended():
		state = "ended"
	case t.Paused():
		state = "paused"
	}
	return fmt.Sprintf("%s %s %s / %s", filepath.Base(t.Path()), state, formatDuration(t.Position()), formatDuration(t.Duration()))
}
