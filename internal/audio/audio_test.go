package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/iburimskiy/wavebg/internal/shared"
)

// counter streams samples whose left and right channels hold a running sample index.
func counter(limit int) beep.Streamer {
	n := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if n >= limit {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && n < limit; i++ {
			samples[i] = [2]float64{float64(n), float64(n)}
			n++
		}
		return i, true
	})
}

func TestVisualTapSnapshot(t *testing.T) {
	tap := newVisualTap(counter(10), 4)
	buf := make([][2]float64, 3)

	if got := tap.snapshot(2); len(got) != 0 {
		t.Errorf("snapshot before streaming = %v, want empty", got)
	}

	tap.Stream(buf) // 0,1,2
	got := tap.snapshot(8)
	if len(got) != 3 || got[0][0] != 0 || got[2][0] != 2 {
		t.Errorf("snapshot(8) = %v, want [0 1 2]", got)
	}

	tap.Stream(buf) // 3,4,5 -> ring holds 2,3,4,5
	got = tap.snapshot(8)
	if len(got) != 4 {
		t.Fatalf("snapshot(8) len = %d, want ring size 4", len(got))
	}
	for i, want := range []float64{2, 3, 4, 5} {
		if got[i][0] != want {
			t.Errorf("snapshot[%d] = %v, want %v", i, got[i][0], want)
		}
	}

	got = tap.snapshot(2)
	if len(got) != 2 || got[0][0] != 4 || got[1][0] != 5 {
		t.Errorf("snapshot(2) = %v, want most recent [4 5]", got)
	}
}

func TestRMSLevel(t *testing.T) {
	if got := rmsLevel(nil); got != 0 {
		t.Errorf("rmsLevel(nil) = %v, want 0", got)
	}

	silent := make([][2]float64, 64)
	if got := rmsLevel(silent); got != 0 {
		t.Errorf("rmsLevel(silence) = %v, want 0", got)
	}

	full := make([][2]float64, 64)
	for i := range full {
		full[i] = [2]float64{1, 1}
	}
	if got := rmsLevel(full); math.Abs(got-1) > 1e-12 {
		t.Errorf("rmsLevel(full scale) = %v, want 1", got)
	}

	quiet := make([][2]float64, 64)
	for i := range quiet {
		quiet[i] = [2]float64{0.1, 0.1}
	}
	if got := rmsLevel(quiet); got <= 0.1 || got >= 1 {
		t.Errorf("rmsLevel(0.1) = %v, want compressed above 0.1", got)
	}
}

func TestSmoother(t *testing.T) {
	s := smoother{factor: SmoothingFactor}
	first := s.next(1)
	second := s.next(1)

	if first <= 0 || first >= 1 {
		t.Errorf("first = %v, want between 0 and 1", first)
	}
	if second <= first {
		t.Errorf("second = %v, want it to approach 1 past %v", second, first)
	}
}

func TestPlayerLevelWithoutTrack(t *testing.T) {
	p := NewPlayer(nil)
	if p.Loaded() {
		t.Error("new player should have nothing loaded")
	}
	if got := p.Level(); got != 0 {
		t.Errorf("Level() = %v, want 0", got)
	}
	if p.Position() != 0 || p.Duration() != 0 {
		t.Error("position and duration should be zero without a track")
	}
	p.TogglePause()
	if p.Paused() {
		t.Error("TogglePause() without a track should do nothing")
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, _, _, err := decode("song.ogg")
	if !errors.Is(err, shared.ErrUnsupportedAudio) {
		t.Errorf("decode(.ogg) error = %v, want ErrUnsupportedAudio", err)
	}
}

func TestDecodeMissingFile(t *testing.T) {
	if _, _, _, err := decode(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("decode() of a missing file should fail")
	}
}

func TestDecodeWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.WAV")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create wav: %v", err)
	}

	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	tone := beep.Take(8000, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{0.5, 0.5}
		}
		return len(samples), true
	}))
	if err := wav.Encode(f, tone, format); err != nil {
		t.Fatalf("wav.Encode() error = %v", err)
	}
	_ = f.Close()

	file, streamer, got, err := decode(path)
	if err != nil {
		t.Fatalf("decode() error = %v", err)
	}
	defer file.Close()
	defer streamer.Close()

	if got.SampleRate != 8000 {
		t.Errorf("sample rate = %v, want 8000", got.SampleRate)
	}
	if d := got.SampleRate.D(streamer.Len()); d != time.Second {
		t.Errorf("duration = %v, want 1s", d)
	}
}
