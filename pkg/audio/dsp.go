package audio

import (
	"math"
)

// Pan calculates left and right gains for a pan position
// pan: -1.0 (full left) to 1.0 (full right)
// Returns: leftGain, rightGain
func Pan(pan float32) (float32, float32) {
	// Constant power panning
	angle := float64(pan) * math.Pi / 4.0 // -45° to +45°
	leftGain := float32(math.Cos(angle + math.Pi/4.0))
	rightGain := float32(math.Sin(angle + math.Pi/4.0))
	return leftGain, rightGain
}

// ApplyPan applies panning to a stereo buffer
func ApplyPan(buf Buffer, pan float32) error {
	if buf.Channels() != 2 {
		return ErrChannelMismatch
	}
	
	leftGain, rightGain := Pan(pan)
	
	for i := range buf[0] {
		buf[0][i] *= leftGain
		buf[1][i] *= rightGain
	}
	
	return nil
}

// MonoToStereo converts mono to stereo by duplicating the channel
func MonoToStereo(dst Buffer, src []float32) error {
	if dst.Channels() != 2 {
		return ErrChannelMismatch
	}
	
	if dst.Frames() != len(src) {
		return ErrFrameCountMismatch
	}
	
	for i := range src {
		dst[0][i] = src[i]
		dst[1][i] = src[i]
	}
	
	return nil
}

// Clip limits samples to the range [-limit, limit]
func Clip(buf Buffer, limit float32) {
	for ch := range buf {
		for i := range buf[ch] {
			if buf[ch][i] > limit {
				buf[ch][i] = limit
			} else if buf[ch][i] < -limit {
				buf[ch][i] = -limit
			}
		}
	}
}

