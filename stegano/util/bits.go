package util

import (
	"fmt"
)

/*
 * conversions between byte payloads and bit sequences.
 * bits are always represented as one byte (0 or 1) per bit,
 * most significant bit of each payload byte first.
 */

const LengthPrefixWidth = 32

// BytesToBits expands a byte payload into its bit sequence, MSB first.
// The result always has exactly 8*len(data) elements.
func BytesToBits(data []byte) []byte {
	bits := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>uint(i))&1)
		}
	}
	return bits
}

// BitsToBytes packs bits back into bytes, MSB first.
// A trailing group of fewer than 8 bits is dropped so that
// decoders never produce spurious trailing bytes.
func BitsToBytes(bits []byte) []byte {
	result := make([]byte, 0, len(bits)/8)
	for i := 0; i+8 <= len(bits); i += 8 {
		result = append(result, packByte(bits[i:i+8]))
	}
	return result
}

// BitsToBytesPadded packs bits into bytes, zero-padding a trailing
// partial group instead of dropping it.
func BitsToBytesPadded(bits []byte) []byte {
	result := BitsToBytes(bits)
	if rem := len(bits) % 8; rem != 0 {
		tail := make([]byte, 8)
		copy(tail, bits[len(bits)-rem:])
		result = append(result, packByte(tail))
	}
	return result
}

func packByte(bits []byte) byte {
	var b byte
	for _, bit := range bits {
		b <<= 1
		if bit != 0 {
			b |= 1
		}
	}
	return b
}

// IntToBits encodes a non-negative integer as a fixed-width
// big-endian bit sequence.
func IntToBits(n uint64, width int) []byte {
	bits := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		bits[i] = byte(n & 1)
		n >>= 1
	}
	return bits
}

// BitsToInt interprets a bit sequence as a big-endian integer.
func BitsToInt(bits []byte) uint64 {
	var n uint64
	for _, bit := range bits {
		n <<= 1
		if bit != 0 {
			n |= 1
		}
	}
	return n
}

// PackBits frames a payload as a 32-bit big-endian length prefix
// followed by the payload bits. Used by the LSB carriers, which have
// no header/footer synchronization to delimit the payload.
func PackBits(data []byte) []byte {
	bits := IntToBits(uint64(len(data)), LengthPrefixWidth)
	return append(bits, BytesToBits(data)...)
}

// UnpackBits reverses PackBits. It fails when the bitstream is shorter
// than the declared length, which is the usual symptom of reading a
// carrier that holds no payload.
func UnpackBits(bits []byte) ([]byte, error) {
	if len(bits) < LengthPrefixWidth {
		return nil, fmt.Errorf("bitstream too short for a length prefix")
	}
	length := BitsToInt(bits[:LengthPrefixWidth])
	rest := bits[LengthPrefixWidth:]
	if length > uint64(len(rest)/8) {
		return nil, fmt.Errorf("declared payload length %d exceeds available data", length)
	}
	return BitsToBytes(rest[:length*8]), nil
}

// ParseBitString validates a framing pattern like "10101010..." and
// returns it as a bit sequence. Patterns must be at least minLen bits,
// a multiple of 8 and contain only '0' and '1'.
func ParseBitString(s string, minLen int) ([]byte, error) {
	if len(s) < minLen || len(s)%8 != 0 {
		return nil, fmt.Errorf("pattern must be at least %d bits and a multiple of 8, got %d", minLen, len(s))
	}
	bits := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			bits[i] = 0
		case '1':
			bits[i] = 1
		default:
			return nil, fmt.Errorf("pattern may contain only '0' and '1'")
		}
	}
	return bits, nil
}
