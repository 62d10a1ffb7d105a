package img

import (
	"bytes"

	"golang.org/x/image/bmp"
)

func HideInBMP(decoy, data []byte) ([]byte, error) {
	src, err := bmp.Decode(bytes.NewReader(decoy))
	if err != nil {
		return nil, err
	}
	rgba, err := embedLSB(AllChannels, data, src)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err = bmp.Encode(buf, rgba); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func RevealFromBMP(decoy []byte) ([]byte, error) {
	src, err := bmp.Decode(bytes.NewReader(decoy))
	if err != nil {
		return nil, err
	}
	return extractLSB(AllChannels, src)
}
