package audio

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"

	id3 "github.com/bogem/id3v2/v2"

	"veil/stegano/util"
)

// mp3 carrier: the payload rides base64-encoded inside an ID3v2
// comment frame. The description string doubles as the lookup key on
// extraction, so both sides must agree on it.

func HideInMP3(description string, data, decoy []byte) ([]byte, error) {
	if len(data) == 0 {
		return decoy, nil
	}

	// the id3 library edits files in place
	tempfile, err := util.CreateTempfile(decoy)
	if err != nil {
		return nil, err
	}
	defer util.ShredFile(tempfile)

	tag, err := id3.Open(tempfile, id3.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer tag.Close()

	tag.AddCommentFrame(id3.CommentFrame{
		Encoding:    id3.EncodingUTF8,
		Language:    "eng",
		Description: description,
		Text:        base64.StdEncoding.EncodeToString(data),
	})
	if err = tag.Save(); err != nil {
		return nil, err
	}
	return os.ReadFile(tempfile)
}

func RevealFromMP3(description string, decoy []byte) ([]byte, error) {
	if len(decoy) == 0 {
		return nil, fmt.Errorf("empty mp3 data")
	}

	tag, err := id3.ParseReader(bytes.NewReader(decoy), id3.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	for _, f := range tag.GetFrames(tag.CommonID("Comments")) {
		comment, ok := f.(id3.CommentFrame)
		if ok && comment.Description == description {
			return base64.StdEncoding.DecodeString(comment.Text)
		}
	}
	return nil, fmt.Errorf("no comment frame with description %q", description)
}
