// Package audio plays an optional backing track and exposes its loudness as a level the
// renderer can react to.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/iburimskiy/wavebg/internal/shared"
	"github.com/ncruces/zenity"
)

// Player plays one file at a time through the system speaker.
//
// Methods must be called from a single goroutine (the game loop). Playback itself runs on
// the speaker's goroutine.
type Player struct {
	logger *log.Logger

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *visualTap
	path     string

	initDone bool
	paused   bool
	ended    atomic.Bool
	smooth   smoother
}

// NewPlayer returns a player with nothing loaded.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	return &Player{logger: logger, smooth: smoother{factor: SmoothingFactor}}
}

// decode opens path and decodes it by extension.
func decode(path string) (*os.File, beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, nil, beep.Format{}, fmt.Errorf("%w: %q", shared.ErrUnsupportedAudio, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return f, streamer, format, nil
}

// Load stops the current track, if any, and starts playing path.
func (p *Player) Load(path string) error {
	f, streamer, format, err := decode(path)
	if err != nil {
		return err
	}

	// Prepare audio chain: streamer -> tap -> ctrl
	t := newVisualTap(streamer, RingSize)
	ctrl := &beep.Ctrl{Streamer: t, Paused: false}

	// (Re)initialize speaker if needed
	bufferSize := format.SampleRate.N(time.Second / 20)
	if !p.initDone {
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("failed to init speaker: %w", err)
		}
		p.initDone = true
	} else if p.format.SampleRate != format.SampleRate {
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("failed to re-init speaker: %w", err)
		}
	} else {
		speaker.Clear()
	}
	p.closeCurrent()

	p.file = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = t
	p.path = path
	p.paused = false
	p.ended.Store(false)

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		p.ended.Store(true)
	})))

	p.logger.Info("playing", "file", filepath.Base(path), "duration", p.Duration(), "rate", int(format.SampleRate))
	return nil
}

// Loaded reports whether a track is loaded.
func (p *Player) Loaded() bool { return p.streamer != nil }

// Ended reports whether the loaded track played to the end.
func (p *Player) Ended() bool { return p.ended.Load() }

// Path returns the loaded file path.
func (p *Player) Path() string { return p.path }

// TogglePause pauses or resumes playback.
func (p *Player) TogglePause() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

// Paused reports whether playback is paused.
func (p *Player) Paused() bool { return p.paused }

// Level returns the smoothed loudness of the recently played samples, in [0,1].
// It decays to 0 while paused or after the track ends.
func (p *Player) Level() float64 {
	if p.tap == nil || p.paused || p.ended.Load() {
		return p.smooth.next(0)
	}
	return p.smooth.next(rmsLevel(p.tap.snapshot(LevelWindow)))
}

// Position returns the playback position.
func (p *Player) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

// Duration returns the length of the loaded track.
func (p *Player) Duration() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// Close stops playback and releases the loaded file.
func (p *Player) Close() error {
	if p.initDone {
		speaker.Clear()
	}
	return p.closeCurrent()
}

func (p *Player) closeCurrent() error {
	var errs []error
	if p.streamer != nil {
		errs = append(errs, p.streamer.Close())
		p.streamer = nil
	}
	if p.file != nil {
		if err := p.file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
		p.file = nil
	}
	p.ctrl = nil
	p.tap = nil
	p.path = ""
	return errors.Join(errs...)
}

// PickFile asks the user for an audio file. A cancelled dialog returns "" and no error.
func PickFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}
