package img

import (
	"bytes"
	"image"
	"image/png"
)

func EncodeWithLSB(mode uint8, data []byte, imgBytes []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, err
	}
	rgba, err := embedLSB(mode, data, src)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err = png.Encode(buf, rgba); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeFromLSB(mode uint8, imgBytes []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, err
	}
	return extractLSB(mode, src)
}
