package audio

import (
	"errors"
	"math"
)

// Common errors
var (
	ErrChannelMismatch    = errors.New("channel count mismatch")
	ErrFrameCountMismatch = errors.New("frame count mismatch")
)

// Buffer represents multi-channel audio data
type Buffer [][]float32

// NewBuffer creates a new audio buffer with the given dimensions
func NewBuffer(channels, frames int) Buffer {
	buf := make(Buffer, channels)
	for i := range buf {
		buf[i] = make([]float32, frames)
	}
	return buf
}

// Channels returns the number of channels
func (b Buffer) Channels() int {
	return len(b)
}

// Frames returns the number of frames (samples per channel)
func (b Buffer) Frames() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// GetPeak returns the peak (maximum absolute) value in the buffer
func GetPeak(buf Buffer) float32 {
	var peak float32

	for ch := range buf {
		for i := range buf[ch] {
			abs := float32(math.Abs(float64(buf[ch][i])))
			if abs > peak {
				peak = abs
			}
		}
	}

	return peak
}
