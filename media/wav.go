package media

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ReadWavFile loads a whole wav file into an integer PCM buffer.
func ReadWavFile(path string) (*audio.IntBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading wav %s: %w", path, err)
	}
	if buf.SourceBitDepth == 0 {
		buf.SourceBitDepth = 16
	}
	return buf, nil
}

// WriteWavFile writes an integer PCM buffer as a wav file.
func WriteWavFile(path string, buf *audio.IntBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}
	enc := wav.NewEncoder(f, buf.Format.SampleRate, depth, buf.Format.NumChannels, 1)
	if err = enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("writing wav %s: %w", path, err)
	}
	if err = enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
