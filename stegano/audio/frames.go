package audio

import (
	"fmt"
	"math"
)

type frameSelection struct {
	frameSize int
	duration  float64 // actual seconds per frame, frameSize/rate
	maxBits   int
	adjusted  bool
}

// selectFrameSize runs the halving search: start from the requested
// duration and keep halving the frame until the required bits fit or
// the minimum frame size is crossed. Larger frames are less audible
// per bit but carry fewer bits total.
func selectFrameSize(rate, totalSamples int, duration float64, requiredBits, minFrameSize int) (frameSelection, bool) {
	candidate := roundPositive(float64(rate) * duration)
	if candidate < 1 {
		candidate = 1
	}
	initial := candidate
	for candidate >= minFrameSize {
		maxBits := ceilDiv(totalSamples, candidate)
		if maxBits >= requiredBits {
			return frameSelection{
				frameSize: candidate,
				duration:  float64(candidate) / float64(rate),
				maxBits:   maxBits,
				adjusted:  candidate != initial,
			}, true
		}
		candidate /= 2
	}
	return frameSelection{}, false
}

// resolveFrameSize applies the fallback policy on top of the search:
// when the caller's duration cannot fit the payload, retry once from
// the library default before giving up. The caller is told the result
// was adjusted, since the decoder needs the actual duration.
func resolveFrameSize(rate, totalSamples int, duration float64, requiredBits int) (frameSelection, error) {
	sel, ok := selectFrameSize(rate, totalSamples, duration, requiredBits, MinFrameSize)
	if !ok && duration != DefaultFrameDuration {
		sel, ok = selectFrameSize(rate, totalSamples, DefaultFrameDuration, requiredBits, MinFrameSize)
		sel.adjusted = true
	}
	if !ok {
		return frameSelection{}, fmt.Errorf(
			"%w: %d bits needed, but even frame size %d (~%.8fs) cannot hold them in %d samples",
			ErrCapacity, requiredBits, MinFrameSize, float64(MinFrameSize)/float64(rate), totalSamples)
	}
	return sel, nil
}

func roundPositive(x float64) int {
	return int(math.Round(x))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
