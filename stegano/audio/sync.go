package audio

/*
 * recovers the payload region from the raw extracted bitstream. The
 * payload is byte oriented, so both patterns can only start at
 * byte-aligned offsets; scanning in steps of 8 keeps random bit noise
 * from producing misaligned matches.
 */

// findSync locates the first byte-aligned header match followed by a
// byte-aligned footer match. It returns the bit offsets bounding the
// payload (header end, footer start).
func findSync(bits, header, footer []byte) (start, end int, ok bool) {
	hLen := len(header)
	fLen := len(footer)
	for i := 0; i+hLen+fLen <= len(bits); i += 8 {
		if !bitsEqual(bits[i:i+hLen], header) {
			continue
		}
		for j := i + hLen; j+fLen <= len(bits); j += 8 {
			if bitsEqual(bits[j:j+fLen], footer) {
				return i + hLen, j, true
			}
		}
	}
	return 0, 0, false
}

func bitsEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
