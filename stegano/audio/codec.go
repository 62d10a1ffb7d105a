package audio

import (
	"errors"
	"fmt"

	"veil/stegano/util"
)

/*
 * sample-comparison codec: hides one bit per fixed-size frame of PCM
 * samples by forcing or breaking equality between two samples of the
 * frame. The decoder needs the exact framing parameters the encoder
 * resolved (frame duration, compare fraction, header, footer); they are
 * exchanged out-of-band, like a handshake.
 */

const (
	DefaultFrameDuration   = 0.1
	DefaultCompareFraction = 0.5
	DefaultHeader          = "1010101010101010"
	DefaultFooter          = "0101010101010101"

	MinFrameSize   = 150
	MinPatternBits = 16

	SafeFractionMin = 0.05
	SafeFractionMax = 0.95

	DefaultBitDepth = 16
)

var (
	// ErrCapacity: the payload cannot fit even at the minimum frame size.
	ErrCapacity = errors.New("payload too large for this audio")

	// ErrSyncNotFound: header or footer absent from the extracted
	// bitstream. Almost always wrong framing parameters or, one layer
	// up, a wrong password. Not the same thing as an empty message.
	ErrSyncNotFound = errors.New("header or footer not found")

	// ErrShortBuffer: the audio cannot hold a single frame.
	ErrShortBuffer = errors.New("sample buffer shorter than one frame")
)

// Options carries the framing parameters shared between encoder and
// decoder. The zero value is not usable; start from DefaultOptions.
type Options struct {
	FrameDuration   float64 // seconds per frame
	CompareFraction float64 // compare distance as a fraction of the frame
	Header          string  // bit pattern marking the payload start
	Footer          string  // bit pattern marking the payload end
	BitDepth        int     // sample width in bits, bounds the +1 perturbation
	Threshold       int     // decode equality tolerance; 0 is the only value
	// bit-compatible with this encoder's +-1 perturbation
}

func DefaultOptions() Options {
	return Options{
		FrameDuration:   DefaultFrameDuration,
		CompareFraction: DefaultCompareFraction,
		Header:          DefaultHeader,
		Footer:          DefaultFooter,
		BitDepth:        DefaultBitDepth,
	}
}

// Report describes the parameters a call actually used, plus any
// warnings raised while normalizing the caller's options. The encoder
// side of this report must reach the decoder for the message to be
// recoverable.
type Report struct {
	FrameSize       int
	FrameDuration   float64
	CompareFraction float64
	CompareDistance int
	MaxBits         int
	TotalBits       int
	Adjusted        bool // frame duration differs from the requested one
	SampleRate      int
	TotalSamples    int // per channel
	HeaderIndex     int // decode: bit offset of the header match
	FooterIndex     int // decode: bit offset of the footer match
	Warnings        []string
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// normalizeOptions validates the caller's options, substituting
// defaults and clamping where a bad value is locally recoverable.
// Every substitution is recorded as a warning on the report.
func normalizeOptions(opts Options, rep *Report) (Options, []byte, []byte) {
	if opts.BitDepth <= 0 {
		opts.BitDepth = DefaultBitDepth
	}

	header, err := util.ParseBitString(opts.Header, MinPatternBits)
	if err != nil {
		rep.warnf("invalid header %q (%v); using default", opts.Header, err)
		opts.Header = DefaultHeader
		header, _ = util.ParseBitString(DefaultHeader, MinPatternBits)
	}
	footer, err := util.ParseBitString(opts.Footer, MinPatternBits)
	if err != nil {
		rep.warnf("invalid footer %q (%v); using default", opts.Footer, err)
		opts.Footer = DefaultFooter
		footer, _ = util.ParseBitString(DefaultFooter, MinPatternBits)
	}

	if opts.CompareFraction < SafeFractionMin {
		rep.warnf("compare fraction %g below safe range; clamped to %g", opts.CompareFraction, SafeFractionMin)
		opts.CompareFraction = SafeFractionMin
	} else if opts.CompareFraction > SafeFractionMax {
		rep.warnf("compare fraction %g above safe range; clamped to %g", opts.CompareFraction, SafeFractionMax)
		opts.CompareFraction = SafeFractionMax
	}

	if opts.FrameDuration <= 0 {
		rep.warnf("frame duration %g is not positive; using default %g", opts.FrameDuration, DefaultFrameDuration)
		opts.FrameDuration = DefaultFrameDuration
	}

	if opts.Threshold < 0 {
		rep.warnf("negative equality threshold %d; using 0", opts.Threshold)
		opts.Threshold = 0
	} else if opts.Threshold >= 1 {
		rep.warnf("equality threshold %d would mistake the encoder's perturbation for equality", opts.Threshold)
	}

	rep.CompareFraction = opts.CompareFraction
	return opts, header, footer
}

func checkBuffer(samples []int, rate, channels int) error {
	if rate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", rate)
	}
	if channels < 1 {
		return fmt.Errorf("channel count must be at least 1, got %d", channels)
	}
	if len(samples)%channels != 0 {
		return fmt.Errorf("buffer length %d is not a multiple of %d channels", len(samples), channels)
	}
	return nil
}

// Encode hides payload inside a copy of samples and returns the copy.
// The caller's buffer is never mutated. The returned report holds the
// resolved framing parameters the decoder will need.
func Encode(samples []int, rate, channels int, payload []byte, opts Options) ([]int, Report, error) {
	rep := Report{SampleRate: rate}
	if err := checkBuffer(samples, rate, channels); err != nil {
		return nil, rep, err
	}
	opts, header, footer := normalizeOptions(opts, &rep)

	total := len(samples) / channels
	rep.TotalSamples = total

	bits := make([]byte, 0, len(header)+len(payload)*8+len(footer))
	bits = append(bits, header...)
	bits = append(bits, util.BytesToBits(payload)...)
	bits = append(bits, footer...)
	rep.TotalBits = len(bits)

	sel, err := resolveFrameSize(rate, total, opts.FrameDuration, len(bits))
	if err != nil {
		return nil, rep, err
	}
	rep.FrameSize = sel.frameSize
	rep.FrameDuration = sel.duration
	rep.MaxBits = sel.maxBits
	rep.Adjusted = sel.adjusted
	if sel.adjusted {
		rep.warnf("frame duration adjusted to %.8fs (frame size %d samples); decode with this duration, not the requested one", sel.duration, sel.frameSize)
	}

	rep.CompareDistance = compareDistance(sel.frameSize, opts.CompareFraction)

	out := make([]int, len(samples))
	copy(out, samples)
	written := embedBits(out, channels, sel.frameSize, rep.CompareDistance, maxSample(opts.BitDepth), bits)
	if written < len(bits) {
		// capacity validation should make this unreachable
		rep.warnf("audio ended after %d of %d bits", written, len(bits))
	}
	return out, rep, nil
}

// Decode recovers a payload hidden by Encode. The options must carry
// the encoder's resolved frame duration: the decoder derives the frame
// size directly from it and never re-runs the halving search.
func Decode(samples []int, rate, channels int, opts Options) ([]byte, Report, error) {
	rep := Report{SampleRate: rate}
	if err := checkBuffer(samples, rate, channels); err != nil {
		return nil, rep, err
	}
	opts, header, footer := normalizeOptions(opts, &rep)

	total := len(samples) / channels
	rep.TotalSamples = total

	frameSize := roundPositive(float64(rate) * opts.FrameDuration)
	if frameSize < 2 {
		frameSize = 2
	}
	rep.FrameSize = frameSize
	rep.FrameDuration = float64(frameSize) / float64(rate)
	rep.CompareDistance = compareDistance(frameSize, opts.CompareFraction)

	if total < frameSize {
		return nil, rep, fmt.Errorf("%w: %d samples at frame size %d", ErrShortBuffer, total, frameSize)
	}

	bits := extractBits(samples, channels, frameSize, rep.CompareDistance, opts.Threshold)
	start, end, ok := findSync(bits, header, footer)
	if !ok {
		return nil, rep, fmt.Errorf("%w: check frame duration, compare fraction, header and footer", ErrSyncNotFound)
	}
	rep.HeaderIndex = start - len(header)
	rep.FooterIndex = end

	// strict truncation: a trailing partial byte never becomes data
	return util.BitsToBytes(bits[start:end]), rep, nil
}

func compareDistance(frameSize int, fraction float64) int {
	d := roundPositive(float64(frameSize) * fraction)
	if d < 1 {
		d = 1
	}
	if d > frameSize-1 {
		d = frameSize - 1
	}
	return d
}

func maxSample(bitDepth int) int {
	return 1<<(uint(bitDepth)-1) - 1
}
