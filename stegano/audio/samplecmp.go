package audio

import (
	"veil/stegano/util"
)

/*
 * the embedding primitive. Samples are channel-interleaved; frame i of
 * a channel spans per-channel indices [i*frameSize, (i+1)*frameSize),
 * clipped at the end of the buffer. One bit per frame:
 *
 *   bit 1 -> frame[compareDistance] := frame[0]      (force equality)
 *   bit 0 -> perturb frame[compareDistance] by +1    (force inequality,
 *            -1 at the representable maximum; untouched if already unequal)
 *
 * every channel carries the same bit at the same offsets.
 */

// embedBits writes bits into samples in place and returns how many
// bits it managed to place before running out of frames.
func embedBits(samples []int, channels, frameSize, compareDistance, maxValue int, bits []byte) int {
	total := len(samples) / channels
	for i, bit := range bits {
		start := i * frameSize
		if start >= total {
			return i
		}
		end := start + frameSize
		if end > total {
			end = total
		}
		flen := end - start
		if flen < 2 {
			// a truncated final frame of one sample encodes nothing
			continue
		}
		cd := compareDistance
		if cd > flen-1 {
			cd = flen - 1
		}
		for ch := 0; ch < channels; ch++ {
			i0 := start*channels + ch
			i1 := (start+cd)*channels + ch
			if bit == 1 {
				samples[i1] = samples[i0]
			} else if samples[i1] == samples[i0] {
				if samples[i1] < maxValue {
					samples[i1] = samples[i0] + 1
				} else {
					samples[i1] = samples[i0] - 1
				}
			}
		}
	}
	return len(bits)
}

// extractBits reads one candidate bit per full frame from the first
// channel. The result is longer than the true payload; the
// synchronizer trims it.
func extractBits(samples []int, channels, frameSize, compareDistance, threshold int) []byte {
	total := len(samples) / channels
	nFrames := total / frameSize
	bits := make([]byte, 0, nFrames)
	for i := 0; i < nFrames; i++ {
		start := i * frameSize
		if total-start < compareDistance+1 {
			continue
		}
		s0 := samples[start*channels]
		s1 := samples[(start+compareDistance)*channels]
		if util.Abs(s1-s0) <= threshold {
			bits = append(bits, 1)
		} else {
			bits = append(bits, 0)
		}
	}
	return bits
}
