package game

import (
	"testing"
	"time"

	"github.com/iburimskiy/wavebg/internal/audio"
)

var _ track = (*audio.Player)(nil)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{12*time.Minute + 5*time.Second, "12:05"},
		{-time.Second, "00:00"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInside(t *testing.T) {
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{99.5, 49.5, true},
		{100, 10, false},
		{10, 50, false},
		{-1, 10, false},
	}

	for _, tt := range tests {
		if got := inside(tt.x, tt.y, 100, 50); got != tt.want {
			t.Errorf("inside(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

type fakeTrack struct {
	path          string
	paused, ended bool
	pos, dur      time.Duration
}

func (f fakeTrack) Path() string            { return f.path }
func (f fakeTrack) Paused() bool            { return f.paused }
func (f fakeTrack) Ended() bool             { return f.ended }
func (f fakeTrack) Position() time.Duration { return f.pos }
func (f fakeTrack) Duration() time.Duration { return f.dur }

func TestTrackStatus(t *testing.T) {
	tests := []struct {
		name string
		in   fakeTrack
		want string
	}{
		{"playing", fakeTrack{path: "/music/song.mp3", pos: 12 * time.Second, dur: 220 * time.Second}, "song.mp3 playing 00:12 / 03:40"},
		{"paused", fakeTrack{path: "a.wav", paused: true, dur: time.Minute}, "a.wav paused 00:00 / 01:00"},
		{"ended wins over paused", fakeTrack{path: "a.wav", paused: true, ended: true, pos: time.Minute, dur: time.Minute}, "a.wav ended 01:00 / 01:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trackStatus(tt.in); got != tt.want {
				t.Errorf("trackStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}
