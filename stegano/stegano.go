package stegano

import (
	"fmt"
	"path/filepath"
	"strings"

	"veil/stegano/audio"
	"veil/stegano/img"
	"veil/stegano/text"
)

/*
 * carrier dispatch by file extension, for the generic hide/reveal
 * commands. The video path does not go through here: video decoys are
 * handled by the media package, which hides data in the audio track.
 */

const (
	TextFile    = int8(0)
	ImageFile   = int8(1)
	AudioFile   = int8(2)
	UnknownFile = int8(-1)
)

// MP3Description keys the ID3v2 comment frame used by the mp3 carrier.
const MP3Description = "veil"

func DetermineFileType(ext string) int8 {
	supportedTexts := []string{
		"txt", "md", "py", "java", "rs",
		"go", "sql", "c", "cpp", "h", "hpp",
		"ts", "js", "toml", "conf",
	}
	supportedImages := []string{"png", "bmp"}
	supportedAudios := []string{"wav", "flac", "mp3"}

	types := map[int8][]string{
		TextFile:  supportedTexts,
		ImageFile: supportedImages,
		AudioFile: supportedAudios,
	}
	for t, exts := range types {
		for _, e := range exts {
			if e == ext {
				return t
			}
		}
	}
	return UnknownFile
}

func fileExt(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// Hide embeds data into the decoy, choosing a carrier by extension.
func Hide(filename string, decoy, data []byte) ([]byte, error) {
	switch DetermineFileType(fileExt(filename)) {
	case TextFile:
		out, err := text.EncodeWithWhitespace(data, string(decoy))
		return []byte(out), err
	case ImageFile:
		return img.Hide(decoy, data)
	case AudioFile:
		return audio.Hide(MP3Description, decoy, data)
	}
	return nil, fmt.Errorf("unsupported carrier type %q", fileExt(filename))
}

// Reveal extracts data hidden by Hide.
func Reveal(filename string, decoy []byte) ([]byte, error) {
	switch DetermineFileType(fileExt(filename)) {
	case TextFile:
		return text.DecodeFromWhitespace(string(decoy))
	case ImageFile:
		return img.Reveal(decoy)
	case AudioFile:
		return audio.Reveal(MP3Description, decoy)
	}
	return nil, fmt.Errorf("unsupported carrier type %q", fileExt(filename))
}
