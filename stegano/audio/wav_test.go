package audio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func makeWav(t *testing.T, n, rate, channels int) []byte {
	t.Helper()

	data := makeSamples(n*channels, 21)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}

	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create wav: %v", err)
	}
	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	if err = enc.Write(buf); err != nil {
		t.Fatalf("failed to write wav: %v", err)
	}
	if err = enc.Close(); err != nil {
		t.Fatalf("failed to close encoder: %v", err)
	}
	if err = f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read wav back: %v", err)
	}
	return raw
}

func TestWavLSBRoundTrip(t *testing.T) {
	decoy := makeWav(t, 8000, 48000, 1)

	tests := [][]byte{
		[]byte("x"),
		[]byte("HELLO WORLD"),
		bytes.Repeat([]byte("a"), 256),
	}
	for _, data := range tests {
		for nLSB := 1; nLSB <= MaxLSBDepth; nLSB++ {
			encoded, err := HideInWav(data, decoy, nLSB)
			if err != nil {
				t.Errorf("failed to hide %d bytes at %d LSBs: %v", len(data), nLSB, err)
				continue
			}
			decoded, err := RevealFromWav(encoded, nLSB)
			if err != nil {
				t.Errorf("failed to reveal at %d LSBs: %v", nLSB, err)
			} else if !bytes.Equal(decoded, data) {
				t.Errorf("carrier spoiled the data at %d LSBs. %v != %v", nLSB, data, decoded)
			}
		}
	}
}

func TestWavLSBStereo(t *testing.T) {
	decoy := makeWav(t, 4000, 44100, 2)
	data := []byte("stereo carrier")

	encoded, err := HideInWav(data, decoy, 2)
	if err != nil {
		t.Fatalf("failed to hide: %v", err)
	}
	decoded, err := RevealFromWav(encoded, 2)
	if err != nil {
		t.Fatalf("failed to reveal: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Fatalf("carrier spoiled the data. %v != %v", data, decoded)
	}
}

func TestWavLSBEmptyPayload(t *testing.T) {
	decoy := makeWav(t, 1000, 48000, 1)
	encoded, err := HideInWav(nil, decoy, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(encoded, decoy) {
		t.Fatal("an empty payload must leave the decoy untouched")
	}
}

func TestWavLSBCapacity(t *testing.T) {
	// 500 samples at 1 LSB carry 500 bits; the prefix alone needs 32
	decoy := makeWav(t, 500, 48000, 1)
	tooBig := bytes.Repeat([]byte("a"), 100) // 832 bits with the prefix
	if _, err := HideInWav(tooBig, decoy, 1); err == nil {
		t.Fatal("expected a capacity error")
	}
}

func TestWavLSBBadDepth(t *testing.T) {
	decoy := makeWav(t, 100, 48000, 1)
	for _, nLSB := range []int{0, 4, -1} {
		if _, err := HideInWav([]byte("x"), decoy, nLSB); err == nil {
			t.Errorf("expected depth %d to be rejected", nLSB)
		}
		if _, err := RevealFromWav(decoy, nLSB); err == nil {
			t.Errorf("expected depth %d to be rejected on reveal", nLSB)
		}
	}
}

func TestCarrierDispatch(t *testing.T) {
	decoy := makeWav(t, 8000, 48000, 1)
	data := []byte("dispatched")

	encoded, err := Hide("veil", decoy, data)
	if err != nil {
		t.Fatalf("failed to hide: %v", err)
	}
	decoded, err := Reveal("veil", encoded)
	if err != nil {
		t.Fatalf("failed to reveal: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Fatalf("dispatch spoiled the data. %v != %v", data, decoded)
	}
}
