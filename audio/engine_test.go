package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToneStreamerProducesBoundedSamples(t *testing.T) {
	s := &toneStreamer{rate: 44100}
	s.setFreq(110)

	buf := make([][2]float64, 512)
	n, ok := s.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 512, n)

	nonZero := false
	for _, sample := range buf {
		require.LessOrEqual(t, math.Abs(sample[0]), gain)
		require.Equal(t, sample[0], sample[1])
		if sample[0] != 0 {
			nonZero = true
		}
	}
	require.True(t, nonZero)
	require.NoError(t, s.Err())
}

func TestToneStreamerRetune(t *testing.T) {
	s := &toneStreamer{rate: 44100}
	s.setFreq(55)

	buf := make([][2]float64, 64)
	s.Stream(buf)

	// Retuning mid-stream keeps the phase continuous: no sample jump
	// larger than one step of the new frequency allows
	last := buf[len(buf)-1][0]
	s.setFreq(400)
	s.Stream(buf)
	require.Less(t, math.Abs(buf[0][0]-last), 2*math.Pi*400/44100*gain+1e-9)
}

func TestEngineSoundNilReceiver(t *testing.T) {
	var e *EngineSound
	e.SetTrackSpeed(10) // must not panic
	e.Close()
}
