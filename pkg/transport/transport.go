// Package transport implements the tempo clock and beat<->second
// conversion driving session playback (C5). Grounded on spec.md §4.5/§6;
// no direct teacher analog, since clapgo plugs into a host's transport
// rather than owning one, so this package is new but follows the
// teacher's plain-struct, no-allocation style used throughout pkg/audio.
package transport

import "math"

// Quantize is the musical boundary clip launches/stops snap to, expressed
// in beats (e.g. 1 beat, 4 beats for a bar at 4/4).
type Quantize float64

const (
	QuantizeBeat      Quantize = 1
	QuantizeHalfBar   Quantize = 2
	QuantizeBar       Quantize = 4
	QuantizeTwoBars   Quantize = 8
	QuantizeFourBars  Quantize = 16
)

// Transport owns the session's tempo clock and playhead. It has no
// internal locking: the audio thread is the sole writer during
// Advance/Play/Stop, matching the engine's single-threaded block-render
// model (session.Snapshot only carries a copy of the playhead and play
// state outward; nothing in it writes back to Transport).
type Transport struct {
	BPM            float64
	Playing        bool
	PlayheadBeat   float64
	Quantize       Quantize
	BeatsPerBar    float64
}

// New creates a transport at the given BPM with a 4/4 default meter.
func New(bpm float64) *Transport {
	return &Transport{
		BPM:         bpm,
		Quantize:    QuantizeBar,
		BeatsPerBar: 4,
	}
}

// SecondsPerBeat returns the duration of one beat at the current tempo.
func (t *Transport) SecondsPerBeat() float64 {
	if t.BPM <= 0 {
		return 0
	}
	return 60.0 / t.BPM
}

// BeatsToSeconds converts a beat duration to seconds at the current tempo.
func (t *Transport) BeatsToSeconds(beats float64) float64 {
	return beats * t.SecondsPerBeat()
}

// SecondsToBeats converts a second duration to beats at the current tempo.
func (t *Transport) SecondsToBeats(seconds float64) float64 {
	if t.BPM <= 0 {
		return 0
	}
	return seconds * t.BPM / 60.0
}

// Play starts the transport from the current playhead.
func (t *Transport) Play() { t.Playing = true }

// Stop halts the transport, leaving the playhead where it is.
func (t *Transport) Stop() { t.Playing = false }

// Reset stops the transport and returns the playhead to 0.
func (t *Transport) Reset() {
	t.Playing = false
	t.PlayheadBeat = 0
}

// Advance moves the playhead forward by frameCount samples at sampleRate,
// only while playing. Returns the new playhead position in beats.
func (t *Transport) Advance(frameCount int, sampleRate float64) float64 {
	if !t.Playing || sampleRate <= 0 {
		return t.PlayheadBeat
	}
	seconds := float64(frameCount) / sampleRate
	t.PlayheadBeat += t.SecondsToBeats(seconds)
	return t.PlayheadBeat
}

// NextBoundary returns the next multiple of the transport's quantize unit
// strictly greater than the current playhead.
func (t *Transport) NextBoundary() float64 {
	return QuantizeBoundary(t.PlayheadBeat, float64(t.Quantize))
}

// QuantizeBoundary returns the smallest multiple of quantizeBeats strictly
// greater than playheadBeat. If quantizeBeats <= 0, playheadBeat is
// returned unchanged (no quantization).
func QuantizeBoundary(playheadBeat, quantizeBeats float64) float64 {
	if quantizeBeats <= 0 {
		return playheadBeat
	}
	n := math.Floor(playheadBeat/quantizeBeats) + 1
	return n * quantizeBeats
}

// CrossedBoundary reports whether the playhead crossed a multiple of
// quantizeBeats while advancing from prevBeat (exclusive) to curBeat
// (inclusive) — used to detect Qboundary crossings within a block.
func CrossedBoundary(prevBeat, curBeat, quantizeBeats float64) bool {
	if quantizeBeats <= 0 {
		return false
	}
	prevN := math.Floor(prevBeat / quantizeBeats)
	curN := math.Floor(curBeat / quantizeBeats)
	return curN > prevN
}

// WrapBeat wraps a beat position into [0, lengthBeats) via modulo,
// matching overdub-wrap semantics for clip loop boundaries.
func WrapBeat(beat, lengthBeats float64) float64 {
	if lengthBeats <= 0 {
		return 0
	}
	wrapped := math.Mod(beat, lengthBeats)
	if wrapped < 0 {
		wrapped += lengthBeats
	}
	return wrapped
}
