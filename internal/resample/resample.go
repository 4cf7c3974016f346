// Package resample implements the pluggable resampler interface of
// spec.md §6 ("pure function... any algorithm admissible") with the
// linear-interpolation default, plus the 24.4 fixed-point sample-offset
// packing shared by every SAMPLE_OFFSET field.
package resample

import "math"

// Linear resamples pcm from inRate to outRate using linear interpolation,
// ported from original_source/src/resample.c's resample_linear. When
// inRate == outRate the input is returned unchanged (no copy needed,
// since callers never mutate it in place).
func Linear(pcm []int16, inRate, outRate uint32) []int16 {
	if inRate == outRate || len(pcm) == 0 {
		return pcm
	}

	ratio := float64(inRate) / float64(outRate)
	outCount := int(float64(len(pcm)) / ratio)
	out := make([]int16, outCount)

	for i := 0; i < outCount; i++ {
		position := float64(i) * ratio
		index := int(position)
		frac := position - float64(index)

		if index+1 < len(pcm) {
			out[i] = lerp(pcm[index], pcm[index+1], frac)
		} else {
			if index >= len(pcm) {
				index = len(pcm) - 1
			}
			out[i] = pcm[index]
		}
	}
	return out
}

func lerp(a, b int16, t float64) int16 {
	return int16(float64(a) + t*float64(b-a))
}

// ScaleLoopPoint rescales a loop/start/end offset from inRate to outRate
// by the same ratio the sample data itself was resampled by.
func ScaleLoopPoint(point uint32, inRate, outRate uint32) uint32 {
	if inRate == outRate {
		return point
	}
	return uint32(math.Round(float64(point) * float64(outRate) / float64(inRate)))
}

// SetSampleOffset packs a fractional sample position p (0 <= p <= max)
// into the 24.4 fixed-point representation used by every SAMPLE_OFFSET
// field: a whole-number integer part and a 4-bit sixteenths-of-a-sample
// fraction, per spec.md §4.3 / property 6. A fraction that rounds up to
// 16 carries into the integer part.
func SetSampleOffset(p float64) (integer uint32, fraction uint8) {
	whole := math.Floor(p)
	frac := math.Round((p - whole) * 16)
	if frac >= 16 {
		frac = 0
		whole++
	}
	return uint32(whole), uint8(frac)
}
