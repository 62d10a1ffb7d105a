package audio

import (
	"bytes"
)

// carrier dispatch by magic bytes, for callers that only have a blob
// and an extension-less idea of what it is.

const DefaultLSBDepth = 1

func Hide(description string, decoy, data []byte) ([]byte, error) {
	if bytes.HasPrefix(decoy, []byte("fLaC")) {
		return HideInFlac(data, decoy)
	} else if bytes.HasPrefix(decoy, []byte("RIFF")) {
		return HideInWav(data, decoy, DefaultLSBDepth)
	}
	return HideInMP3(description, data, decoy)
}

func Reveal(description string, decoy []byte) ([]byte, error) {
	if bytes.HasPrefix(decoy, []byte("fLaC")) {
		return RevealFromFlac(decoy)
	} else if bytes.HasPrefix(decoy, []byte("RIFF")) {
		return RevealFromWav(decoy, DefaultLSBDepth)
	}
	return RevealFromMP3(description, decoy)
}
