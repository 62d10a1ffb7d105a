package img

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"veil/stegano/util"
)

/*
 * image LSB carrier. The payload is length-prefixed and spread over
 * the least significant bit of the color channels selected by mode,
 * row by row. PNG and BMP only: both round-trip pixels losslessly.
 */

const (
	RMode = uint8(1)
	GMode = uint8(2)
	BMode = uint8(4)

	AllChannels = RMode | GMode | BMode
)

func channelCount(mode uint8) int {
	n := 0
	for _, m := range []uint8{RMode, GMode, BMode} {
		if mode&m == m {
			n++
		}
	}
	return n
}

// embedLSB writes the payload bits into a fresh RGBA copy of src.
func embedLSB(mode uint8, data []byte, src image.Image) (*image.RGBA, error) {
	if channelCount(mode) == 0 {
		return nil, fmt.Errorf("mode selects no color channels")
	}
	bits := util.PackBits(data)

	bounds := src.Bounds()
	width, height := bounds.Max.X, bounds.Max.Y
	capacity := width * height * channelCount(mode)
	if len(bits) > capacity {
		return nil, fmt.Errorf("payload needs %d bits but the image holds only %d", len(bits), capacity)
	}

	rgba := image.NewRGBA(bounds)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			rgba.Set(x, y, src.At(x, y))
		}
	}

	bitIndex := 0
	for y := 0; y < height && bitIndex < len(bits); y++ {
		for x := 0; x < width && bitIndex < len(bits); x++ {
			r, g, b, a := rgba.At(x, y).RGBA()
			r8, g8, b8, a8 := uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)

			if mode&RMode == RMode {
				r8 = r8&0xfe | bits[bitIndex]
				bitIndex++
			}
			if mode&GMode == GMode && bitIndex < len(bits) {
				g8 = g8&0xfe | bits[bitIndex]
				bitIndex++
			}
			if mode&BMode == BMode && bitIndex < len(bits) {
				b8 = b8&0xfe | bits[bitIndex]
				bitIndex++
			}
			rgba.Set(x, y, color.RGBA{r8, g8, b8, a8})
		}
	}
	return rgba, nil
}

// extractLSB reads the selected channels back into a bitstream and
// unpacks the length-prefixed payload.
func extractLSB(mode uint8, src image.Image) ([]byte, error) {
	if channelCount(mode) == 0 {
		return nil, fmt.Errorf("mode selects no color channels")
	}
	bounds := src.Bounds()
	width, height := bounds.Max.X, bounds.Max.Y

	bits := make([]byte, 0, width*height*channelCount(mode))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			if mode&RMode == RMode {
				bits = append(bits, uint8(r>>8)&1)
			}
			if mode&GMode == GMode {
				bits = append(bits, uint8(g>>8)&1)
			}
			if mode&BMode == BMode {
				bits = append(bits, uint8(b>>8)&1)
			}
		}
	}
	return util.UnpackBits(bits)
}

// Hide dispatches on the image's magic bytes.
func Hide(decoy, data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(decoy, []byte("\x89PNG\r\n\x1a\n")):
		return EncodeWithLSB(AllChannels, data, decoy)
	case bytes.HasPrefix(decoy, []byte("BM")):
		return HideInBMP(decoy, data)
	}
	return nil, fmt.Errorf("unsupported image format")
}

func Reveal(decoy []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(decoy, []byte("\x89PNG\r\n\x1a\n")):
		return DecodeFromLSB(AllChannels, decoy)
	case bytes.HasPrefix(decoy, []byte("BM")):
		return RevealFromBMP(decoy)
	}
	return nil, fmt.Errorf("unsupported image format")
}
