package tui

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sound plays the game's cues. Implementations must not block.
type Sound interface {
	Collect()
	GameOver()
	HighScore()
	Close()
}

// Mute is a Sound that plays nothing.
type Mute struct{}

func (Mute) Collect()   {}
func (Mute) GameOver()  {}
func (Mute) HighScore() {}
func (Mute) Close()     {}

// Speaker plays synthesized tones on the default audio device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

// NewSpeaker opens the audio device. Callers fall back to Mute on error.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	s := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

func (s *Speaker) Collect()   { s.play(collectTone()) }
func (s *Speaker) GameOver()  { s.play(gameOverTone()) }
func (s *Speaker) HighScore() { s.play(highScoreTone()) }

func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
}

func (s *Speaker) play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// tone is a sine at freq lasting d, attenuated by vol on a log2 scale.
func tone(freq float64, d time.Duration, vol float64) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil
	}
	return &effects.Volume{Streamer: beep.Take(sampleRate.N(d), sine), Base: 2, Volume: vol}
}

func collectTone() beep.Streamer {
	return tone(880, 60*time.Millisecond, -2)
}

func gameOverTone() beep.Streamer {
	return beep.Seq(
		tone(330, 120*time.Millisecond, -1.5),
		tone(220, 240*time.Millisecond, -1.5),
	)
}

func highScoreTone() beep.Streamer {
	return beep.Seq(
		tone(523, 90*time.Millisecond, -2),
		tone(659, 90*time.Millisecond, -2),
		tone(784, 180*time.Millisecond, -2),
	)
}
