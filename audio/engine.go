package audio

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// EngineSound plays a continuous engine tone whose pitch follows the
// estimated belt speed. Audio is cosmetic: initialization failure is
// non-fatal and the nil receiver is safe everywhere
type EngineSound struct {
	streamer *toneStreamer
}

const (
	sampleRate = beep.SampleRate(44100)
	idleHz     = 55.0
	hzPerMps   = 12.0
	maxHz      = 400.0
	gain       = 0.15
)

// NewEngineSound initializes the speaker and starts the idle tone
func NewEngineSound() (*EngineSound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	s := &toneStreamer{rate: float64(sampleRate)}
	s.setFreq(idleHz)
	speaker.Play(s)
	return &EngineSound{streamer: s}, nil
}

// SetTrackSpeed retunes the tone; safe to call every render tick
func (e *EngineSound) SetTrackSpeed(speed float64) {
	if e == nil {
		return
	}
	freq := idleHz + math.Abs(speed)*hzPerMps
	if freq > maxHz {
		freq = maxHz
	}
	e.streamer.setFreq(freq)
}

// Close silences the speaker
func (e *EngineSound) Close() {
	if e == nil {
		return
	}
	speaker.Clear()
}

// toneStreamer is an endless sine generator with an atomically retunable
// frequency (written by the render tick, read by the speaker goroutine)
type toneStreamer struct {
	rate     float64
	phase    float64
	freqBits atomic.Uint64
}

func (t *toneStreamer) setFreq(hz float64) {
	t.freqBits.Store(math.Float64bits(hz))
}

func (t *toneStreamer) Stream(samples [][2]float64) (int, bool) {
	freq := math.Float64frombits(t.freqBits.Load())
	step := freq / t.rate
	for i := range samples {
		v := math.Sin(2*math.Pi*t.phase) * gain
		samples[i][0] = v
		samples[i][1] = v
		t.phase += step
		if t.phase >= 1 {
			t.phase -= 1
		}
	}
	return len(samples), true
}

func (t *toneStreamer) Err() error {
	return nil
}
