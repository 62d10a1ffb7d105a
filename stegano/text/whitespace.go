package text

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"veil/stegano/util"
)

/*
 * whitespace carrier: one bit per line of the host text, appended as a
 * trailing space (0) or tab (1). Invisible in most editors and diffs,
 * survives any encoding that keeps line endings intact. Capacity is
 * the number of lines.
 */

// EncodeWithWhitespace appends one whitespace character per payload
// bit to the host's lines. Fails when the host has fewer lines than
// the payload has bits.
func EncodeWithWhitespace(data []byte, host string) (string, error) {
	bits := util.BytesToBits(data)

	// split keeping the line structure; the last element after a
	// trailing newline is an empty string and stays untouched
	lines := strings.Split(host, "\n")
	usable := len(lines)
	if usable > 0 && lines[usable-1] == "" {
		usable--
	}
	if len(bits) > usable {
		return "", fmt.Errorf("host has %d usable lines but the payload needs %d bits", usable, len(bits))
	}

	for i, bit := range bits {
		line := strings.TrimRight(lines[i], " \t")
		if bit == 1 {
			lines[i] = line + "\t"
		} else {
			lines[i] = line + " "
		}
	}
	return strings.Join(lines, "\n"), nil
}

// DecodeFromWhitespace reads the trailing space/tab of each line back
// into bits. Lines without trailing whitespace contribute nothing, so
// the unmarked remainder of the host decodes cleanly.
func DecodeFromWhitespace(stego string) ([]byte, error) {
	lines := strings.Split(stego, "\n")
	bits := []byte{}
	for _, line := range lines {
		if line == "" {
			continue
		}
		switch line[len(line)-1] {
		case ' ':
			bits = append(bits, 0)
		case '\t':
			bits = append(bits, 1)
		}
	}
	if len(bits) < 8 {
		return nil, fmt.Errorf("no whitespace payload found")
	}
	return util.BitsToBytes(bits), nil
}

// DecodeText is DecodeFromWhitespace for textual payloads, with NFC
// normalization so combining characters compare predictably.
func DecodeText(stego string) (string, error) {
	data, err := DecodeFromWhitespace(stego)
	if err != nil {
		return "", err
	}
	return norm.NFC.String(string(data)), nil
}
