package audio

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"veil/stegano/util"
)

// LSB wav carrier. Unlike the sample-comparison codec this one has no
// synchronization patterns; the payload is delimited by a length
// prefix instead. Only 1-3 least significant bits per sample are
// touched to keep the distortion inaudible.

const MaxLSBDepth = 3

func HideInWav(data, decoy []byte, nLSB int) ([]byte, error) {
	if len(data) == 0 {
		return decoy, nil
	}
	if nLSB < 1 || nLSB > MaxLSBDepth {
		return nil, fmt.Errorf("nLSB must be between 1 and %d, got %d", MaxLSBDepth, nLSB)
	}

	dec := wav.NewDecoder(bytes.NewReader(decoy))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	bits := util.PackBits(data)
	capacity := len(buf.Data) * nLSB
	if len(bits) > capacity {
		return nil, fmt.Errorf("payload needs %d bits but the audio holds only %d at %d LSBs", len(bits), capacity, nLSB)
	}

	mask := 1<<uint(nLSB) - 1
	bitIndex := 0
	for i := range buf.Data {
		if bitIndex >= len(bits) {
			break
		}
		group := 0
		for k := 0; k < nLSB; k++ {
			group <<= 1
			if bitIndex < len(bits) && bits[bitIndex] == 1 {
				group |= 1
			}
			bitIndex++
		}
		buf.Data[i] = buf.Data[i]&^mask | group
	}

	// the wav encoder wants a seekable sink, so go through a tempfile
	filename, err := util.CreateTempfile(nil)
	if err != nil {
		return nil, err
	}
	defer util.ShredFile(filename)

	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, err
	}
	enc := wav.NewEncoder(f, buf.Format.SampleRate, int(dec.BitDepth), buf.Format.NumChannels, 1)
	if err = enc.Write(buf); err != nil {
		f.Close()
		return nil, err
	}
	if err = enc.Close(); err != nil {
		f.Close()
		return nil, err
	}
	if err = f.Close(); err != nil {
		return nil, err
	}
	return os.ReadFile(filename)
}

func RevealFromWav(decoy []byte, nLSB int) ([]byte, error) {
	if len(decoy) == 0 {
		return nil, fmt.Errorf("empty wav data")
	}
	if nLSB < 1 || nLSB > MaxLSBDepth {
		return nil, fmt.Errorf("nLSB must be between 1 and %d, got %d", MaxLSBDepth, nLSB)
	}

	dec := wav.NewDecoder(bytes.NewReader(decoy))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	bits := make([]byte, 0, len(buf.Data)*nLSB)
	for _, s := range buf.Data {
		for k := nLSB - 1; k >= 0; k-- {
			bits = append(bits, byte(s>>uint(k))&1)
		}
	}
	return util.UnpackBits(bits)
}
