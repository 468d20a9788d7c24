// Package audio plays short tones for game events.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

const (
	sampleRate = beep.SampleRate(44100)

	eatFreq       = 880.0
	eatDuration   = 60 * time.Millisecond
	overDuration  = 140 * time.Millisecond
	attack        = 5 * time.Millisecond
	release       = 30 * time.Millisecond
	defaultVolume = 0.4
)

// gameOverNotes is a falling triad played when the snake dies.
var gameOverNotes = []float64{392.0, 311.1, 261.6}

// Player reacts to game events with sound.
type Player interface {
	Eat()
	GameOver()
}

// Nop is a Player that stays silent.
type Nop struct{}

func (Nop) Eat()      {}
func (Nop) GameOver() {}

// Speaker plays tones on the default audio device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
}

// NewSpeaker initialises the audio device. It fails when no device is
// available; callers fall back to Nop.
func NewSpeaker() (*Speaker, error) {
	s := &Speaker{
		mixer:  &beep.Mixer{},
		volume: defaultVolume,
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, errors.Wrap(err, "failed to initialise speaker")
	}
	speaker.Play(s.mixer)

	return s, nil
}

// Eat plays a short high blip.
func (s *Speaker) Eat() {
	s.add(EatSound(s.volume))
}

// GameOver plays a falling triad.
func (s *Speaker) GameOver() {
	s.add(GameOverSound(s.volume))
}

// Close silences anything still playing.
func (s *Speaker) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}

func (s *Speaker) add(streamer beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// EatSound returns the streamer played when food is eaten.
func EatSound(volume float64) beep.Streamer {
	return withVolume(tone(eatFreq, eatDuration), volume)
}

// GameOverSound returns the streamer played when the game ends.
func GameOverSound(volume float64) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(gameOverNotes))
	for _, freq := range gameOverNotes {
		notes = append(notes, tone(freq, overDuration))
	}
	return withVolume(beep.Seq(notes...), volume)
}

func tone(freq float64, duration time.Duration) beep.Streamer {
	return newEnvelope(beep.Take(sampleRate.N(duration), &sine{freq: freq}), duration)
}

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}
}

// sine is an endless sine wave at freq.
type sine struct {
	freq  float64
	phase float64
}

func (o *sine) Stream(samples [][2]float64) (int, bool) {
	step := o.freq / float64(sampleRate)
	for i := range samples {
		v := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = v
		samples[i][1] = v
		o.phase += step
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *sine) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration time.Duration) *envelope {
	return &envelope{
		streamer: s,
		attack:   sampleRate.N(attack),
		release:  sampleRate.N(release),
		total:    sampleRate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; remaining < e.release {
			gain = math.Max(0, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
