package audio

import (
	"bytes"
	"testing"
)

// no flac fixture ships with the tests, so only the failure paths are
// covered here; the embedding math is shared with the wav carrier.

func TestFlacRejectsGarbage(t *testing.T) {
	garbage := []byte("fLaC but not really a stream")
	if _, err := HideInFlac([]byte("x"), garbage); err == nil {
		t.Fatal("expected a parse error for a malformed stream")
	}
	if _, err := RevealFromFlac(garbage); err == nil {
		t.Fatal("expected a parse error for a malformed stream")
	}
}

func TestFlacEmptyInputs(t *testing.T) {
	decoy := []byte("anything")
	encoded, err := HideInFlac(nil, decoy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(encoded, decoy) {
		t.Fatal("an empty payload must leave the decoy untouched")
	}
	if _, err = RevealFromFlac(nil); err == nil {
		t.Fatal("expected an error for empty data")
	}
}
