package transport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBeatsSecondsRoundTrip(t *testing.T) {
	tr := New(120)
	seconds := tr.BeatsToSeconds(8)
	require.InDelta(t, 4.0, seconds, 1e-9)
	require.InDelta(t, 8.0, tr.SecondsToBeats(seconds), 1e-9)
}

func TestAdvanceOnlyWhilePlaying(t *testing.T) {
	tr := New(60) // 1 beat/sec
	tr.Advance(44100, 44100)
	require.Equal(t, 0.0, tr.PlayheadBeat)

	tr.Play()
	tr.Advance(44100, 44100)
	require.InDelta(t, 1.0, tr.PlayheadBeat, 1e-9)
}

func TestResetStopsAndZeroes(t *testing.T) {
	tr := New(120)
	tr.Play()
	tr.PlayheadBeat = 10
	tr.Reset()
	require.False(t, tr.Playing)
	require.Equal(t, 0.0, tr.PlayheadBeat)
}

func TestQuantizeBoundaryIsStrictlyGreater(t *testing.T) {
	require.Equal(t, 4.0, QuantizeBoundary(0, 4))
	require.Equal(t, 8.0, QuantizeBoundary(4, 4))
	require.Equal(t, 4.0, QuantizeBoundary(3.5, 4))
}

func TestCrossedBoundary(t *testing.T) {
	require.True(t, CrossedBoundary(3.9, 4.1, 4))
	require.False(t, CrossedBoundary(4.1, 4.9, 4))
	require.True(t, CrossedBoundary(7.9, 8.0, 4))
}

func TestWrapBeat(t *testing.T) {
	require.InDelta(t, 1.0, WrapBeat(9, 4), 1e-9)
	require.InDelta(t, 3.0, WrapBeat(-1, 4), 1e-9)
}

// TestQuantizeBoundaryProperty checks the identity that underlies loop
// wrapping and Qboundary crossing: the boundary returned always lies in
// (playhead, playhead+quantize], and wrapping it back into [0,quantize)
// matches WrapBeat's own modulo.
func TestQuantizeBoundaryProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		playhead := rapid.Float64Range(0, 10000).Draw(rt, "playhead")
		quantize := rapid.Float64Range(0.25, 32).Draw(rt, "quantize")

		boundary := QuantizeBoundary(playhead, quantize)
		if boundary <= playhead {
			rt.Fatalf("boundary %v not strictly greater than playhead %v", boundary, playhead)
		}
		if boundary-playhead > quantize+1e-9 {
			rt.Fatalf("boundary %v more than one quantize unit ahead of playhead %v", boundary, playhead)
		}
		remainder := math.Mod(boundary, quantize)
		if remainder > 1e-6 && math.Abs(remainder-quantize) > 1e-6 {
			rt.Fatalf("boundary %v is not a multiple of quantize %v", boundary, quantize)
		}
	})
}
