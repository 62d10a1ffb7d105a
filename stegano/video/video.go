package video

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gaudio "github.com/go-audio/audio"

	"veil/cryptography"
	"veil/media"
	"veil/stegano/audio"
)

/*
 * the video pipeline: demux the audio track through the media
 * collaborator, run the sample-comparison codec over it, mux the
 * modified track back under the untouched video stream. The payload is
 * optionally sealed under a password before embedding.
 */

// ErrWrongParamsOrPassword folds the two indistinguishable decode
// failures together: synchronization not found (wrong framing
// parameters) and decryption failure (wrong password).
var ErrWrongParamsOrPassword = errors.New("wrong framing parameters or password")

type EncodeRequest struct {
	InputPath  string
	OutputPath string // empty: derived from InputPath
	Message    []byte
	Password   string // empty: embed the message unencrypted
	SampleRate int    // 0: media.DefaultSampleRate
	Options    audio.Options
}

// Encode hides the request's message in the audio track of the input
// video. The returned report carries the resolved framing parameters;
// without them (or the options they came from) the message is lost.
func Encode(ff *media.FFmpeg, req EncodeRequest) (string, audio.Report, error) {
	rate := req.SampleRate
	if rate == 0 {
		rate = media.DefaultSampleRate
	}
	outPath := req.OutputPath
	if outPath == "" {
		outPath = GenerateOutputPath(req.InputPath)
	}

	payload := req.Message
	if req.Password != "" {
		blob, err := cryptography.EncryptMessage(req.Password, req.Message)
		if err != nil {
			return "", audio.Report{}, err
		}
		payload = []byte(blob)
	}

	buf, err := ff.ExtractAudio(req.InputPath, rate)
	if err != nil {
		return "", audio.Report{}, err
	}

	// capacity and parameter failures surface here, before anything
	// is written
	modified, rep, err := audio.Encode(buf.Data, buf.Format.SampleRate,
		buf.Format.NumChannels, payload, req.Options)
	if err != nil {
		return "", rep, err
	}

	stego := &gaudio.IntBuffer{
		Format:         buf.Format,
		Data:           modified,
		SourceBitDepth: buf.SourceBitDepth,
	}
	if err = ff.MuxAudio(req.InputPath, stego, outPath); err != nil {
		return "", rep, err
	}
	return outPath, rep, nil
}

// Decode recovers a message hidden by Encode. The options must carry
// the encoder's resolved frame duration and matching parameters.
func Decode(ff *media.FFmpeg, inputPath, password string, rate int, opts audio.Options) ([]byte, audio.Report, error) {
	if rate == 0 {
		rate = media.DefaultSampleRate
	}
	buf, err := ff.ExtractAudio(inputPath, rate)
	if err != nil {
		return nil, audio.Report{}, err
	}

	payload, rep, err := audio.Decode(buf.Data, buf.Format.SampleRate,
		buf.Format.NumChannels, opts)
	if err != nil {
		if errors.Is(err, audio.ErrSyncNotFound) {
			return nil, rep, fmt.Errorf("%w: %v", ErrWrongParamsOrPassword, err)
		}
		return nil, rep, err
	}

	if password != "" {
		plaintext, err := cryptography.DecryptMessage(password, string(payload))
		if err != nil {
			return nil, rep, fmt.Errorf("%w: decryption failed", ErrWrongParamsOrPassword)
		}
		payload = plaintext
	}
	return payload, rep, nil
}

// GenerateOutputPath derives an output path next to the input by
// appending "_output" before the extension, de-duplicating with (1),
// (2), ... when the candidate already exists.
func GenerateOutputPath(inputPath string) string {
	dir := filepath.Dir(inputPath)
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	candidate := filepath.Join(dir, base+"_output"+ext)
	if _, err := os.Stat(candidate); err != nil {
		return candidate
	}
	for n := 1; ; n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_output(%d)%s", base, n, ext))
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}
