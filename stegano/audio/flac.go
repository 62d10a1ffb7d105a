package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"veil/stegano/util"
)

// flac carrier: length-prefixed payload bits in the least significant
// bit of every subframe sample, re-encoded losslessly.

func HideInFlac(data, decoy []byte) ([]byte, error) {
	if len(data) == 0 {
		return decoy, nil
	}

	bits := util.PackBits(data)

	stream, err := flac.Parse(bytes.NewReader(decoy))
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	output := new(bytes.Buffer)
	encoder, err := flac.NewEncoder(output, stream.Info, stream.Blocks...)
	if err != nil {
		return nil, err
	}
	defer encoder.Close()

	idx := 0
	for {
		frame, err := stream.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if err = frame.Parse(); err != nil {
			return nil, err
		}
		for _, subframe := range frame.Subframes {
			if idx >= len(bits) {
				break
			}
			for i, sample := range subframe.Samples {
				if idx >= len(bits) {
					break
				}
				subframe.Samples[i] = sample&^1 | int32(bits[idx])
				idx++
			}
		}
		if err = encoder.WriteFrame(frame); err != nil {
			return nil, err
		}
	}
	if idx < len(bits) {
		return nil, fmt.Errorf("flac file too small: placed %d of %d bits", idx, len(bits))
	}
	return output.Bytes(), nil
}

func RevealFromFlac(decoy []byte) ([]byte, error) {
	if len(decoy) == 0 {
		return nil, fmt.Errorf("empty flac data")
	}

	stream, err := flac.Parse(bytes.NewReader(decoy))
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	bits := []byte{}
	for {
		frame, err := stream.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if err = frame.Parse(); err != nil {
			return nil, err
		}
		for _, subframe := range frame.Subframes {
			for _, sample := range subframe.Samples {
				bits = append(bits, byte(sample&1))
			}
		}
	}
	return util.UnpackBits(bits)
}
