package util

import (
	"bytes"
	"testing"
)

func TestBytesToBits(t *testing.T) {
	// 'h' = 0x68 = 01101000
	bits := BytesToBits([]byte("h"))
	expected := []byte{0, 1, 1, 0, 1, 0, 0, 0}
	if !bytes.Equal(bits, expected) {
		t.Fatalf("expected %v, got %v", expected, bits)
	}

	if got := len(BytesToBits([]byte("hello"))); got != 40 {
		t.Errorf("expected 40 bits, got %d", got)
	}
	if got := len(BytesToBits(nil)); got != 0 {
		t.Errorf("expected no bits for empty input, got %d", got)
	}
}

func TestBitsToBytesRoundTrip(t *testing.T) {
	tests := [][]byte{
		nil,
		{},
		[]byte("a"),
		[]byte("Hello, world"),
		{0x00, 0xff, 0x80, 0x01},
		bytes.Repeat([]byte{0xaa}, 512),
	}
	for _, data := range tests {
		got := BitsToBytes(BytesToBits(data))
		if !bytes.Equal(got, data) && len(data) > 0 {
			t.Errorf("round trip spoiled the data: %v != %v", data, got)
		}
	}
}

func TestBitsToBytesStrictTruncation(t *testing.T) {
	// 12 bits: one full byte plus a partial group that must be dropped
	bits := append(BytesToBits([]byte{0xab}), 1, 0, 1, 1)
	got := BitsToBytes(bits)
	if len(got) != 1 || got[0] != 0xab {
		t.Fatalf("expected [0xab], got %v", got)
	}
}

func TestBitsToBytesPadded(t *testing.T) {
	bits := []byte{1, 0, 1, 1} // 1011 -> padded to 10110000
	got := BitsToBytesPadded(bits)
	if len(got) != 1 || got[0] != 0xb0 {
		t.Fatalf("expected [0xb0], got %v", got)
	}
}

func TestIntBitsRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 255, 256, 65535, 1 << 31}
	for _, v := range values {
		bits := IntToBits(v, 32)
		if len(bits) != 32 {
			t.Fatalf("expected 32 bits, got %d", len(bits))
		}
		if got := BitsToInt(bits); got != v {
			t.Errorf("round trip of %d gave %d", v, got)
		}
	}
}

func TestPackUnpackBits(t *testing.T) {
	tests := [][]byte{
		{},
		[]byte("x"),
		[]byte("some longer payload with bytes"),
		bytes.Repeat([]byte{0x00}, 64),
	}
	for _, data := range tests {
		unpacked, err := UnpackBits(PackBits(data))
		if err != nil {
			t.Errorf("failed to unpack: %v", err)
		} else if !bytes.Equal(unpacked, data) && len(data) > 0 {
			t.Errorf("pack/unpack spoiled the data: %v != %v", data, unpacked)
		}
	}
}

func TestUnpackBitsErrors(t *testing.T) {
	if _, err := UnpackBits([]byte{1, 0, 1}); err == nil {
		t.Error("expected an error for a stream shorter than the length prefix")
	}

	// declared length larger than the available bits
	bits := IntToBits(1000, LengthPrefixWidth)
	bits = append(bits, BytesToBits([]byte("short"))...)
	if _, err := UnpackBits(bits); err == nil {
		t.Error("expected an error for an overlong declared length")
	}
}

func TestParseBitString(t *testing.T) {
	valid := []string{"1010101010101010", "010101010101010101010101"}
	for _, s := range valid {
		bits, err := ParseBitString(s, 16)
		if err != nil {
			t.Errorf("expected %q to parse: %v", s, err)
		} else if len(bits) != len(s) {
			t.Errorf("expected %d bits, got %d", len(s), len(bits))
		}
	}

	invalid := []string{
		"",
		"10101010",          // too short
		"101010101010101",   // not a multiple of 8
		"1010101010101012",  // bad alphabet
		"1010101010101010x", // bad alphabet and length
	}
	for _, s := range invalid {
		if _, err := ParseBitString(s, 16); err == nil {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}
