// Package audio plays short editor cues through the beep speaker.
//
// Each cue is a named sound: a generated tone by default, or a WAV sample
// registered with LoadSample. Playback is fire-and-forget; the speaker mixes
// on its own goroutine.
package audio

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Tone is a generated cue: a sine sweeping from Start to End Hz with a
// linear fade-out.
type Tone struct {
	Start    float64
	End      float64
	Duration time.Duration
}

// DefaultTones are the built-in cue sounds, keyed by cue name.
var DefaultTones = map[string]Tone{
	"select":   {Start: 880, End: 880, Duration: 60 * time.Millisecond},
	"add":      {Start: 523, End: 784, Duration: 120 * time.Millisecond},
	"delete":   {Start: 440, End: 220, Duration: 150 * time.Millisecond},
	"mode-arm": {Start: 660, End: 990, Duration: 80 * time.Millisecond},
}

// Manager owns the speaker and the cue table.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	mixer       *beep.Mixer

	volume  float64
	tones   map[string]Tone
	samples map[string]*beep.Buffer
}

// New creates a manager with the default tones at full volume.
func New() *Manager {
	tones := make(map[string]Tone, len(DefaultTones))
	for k, v := range DefaultTones {
		tones[k] = v
	}
	return &Manager{
		sampleRate: DefaultSampleRate,
		mixer:      &beep.Mixer{},
		volume:     1.0,
		tones:      tones,
		samples:    make(map[string]*beep.Buffer),
	}
}

// Init opens the audio device. Callers treat failure as non-fatal.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close stops playback and releases the device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized reports whether Init succeeded.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the cue volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// LoadSample decodes a WAV stream and uses it for the named cue instead of
// its tone.
func (m *Manager) LoadSample(name string, r io.Reader) error {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return fmt.Errorf("decode %s sample: %w", name, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		src = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)

	m.mu.Lock()
	m.samples[name] = buf
	m.mu.Unlock()
	return nil
}

// Play starts the named cue. Unknown names and an uninitialized device are
// reported as errors; callers usually ignore them.
func (m *Manager) Play(name string) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.volume
	sample := m.samples[name]
	tone, hasTone := m.tones[name]
	m.mu.RUnlock()

	if !initialized {
		return fmt.Errorf("audio not initialized")
	}

	var src beep.Streamer
	switch {
	case sample != nil:
		src = sample.Streamer(0, sample.Len())
	case hasTone:
		src = Synth(tone, m.sampleRate)
	default:
		return fmt.Errorf("unknown cue %q", name)
	}

	speaker.Lock()
	m.mixer.Add(withVolume(src, vol))
	speaker.Unlock()
	return nil
}

func withVolume(s beep.Streamer, vol float64) *effects.Volume {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeToDb(vol) / 6.0206, // dB to base-2 exponent
		Silent:   vol <= 0,
	}
}

// Synth renders a tone as a finite stereo streamer.
func Synth(t Tone, sr beep.SampleRate) beep.Streamer {
	total := sr.N(t.Duration)
	pos := 0
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for n < len(samples) && pos < total {
			progress := float64(pos) / float64(total)
			freq := t.Start + (t.End-t.Start)*progress
			phase += 2 * math.Pi * freq / float64(sr)
			v := 0.5 * math.Sin(phase) * (1 - progress)
			samples[n] = [2]float64{v, v}
			n++
			pos++
		}
		return n, true
	})
}

// volumeToDb converts a 0-1 volume to decibels.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
