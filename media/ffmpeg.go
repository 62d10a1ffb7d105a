package media

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/go-audio/audio"

	sutil "veil/stegano/util"
	"veil/util"
)

/*
 * the external media collaborator. Container demux/mux is delegated to
 * ffmpeg: we only ever see a flat PCM track. A non-zero exit is fatal
 * and aborts the whole operation; retrying a deterministic tool
 * failure without changed inputs is pointless.
 */

const DefaultSampleRate = 48000

type FFmpeg struct {
	path string
}

func NewFFmpeg(path string) (*FFmpeg, error) {
	if path == "" {
		path = "ffmpeg"
	}
	resolved, err := util.PathToProgram(path)
	if err != nil {
		return nil, fmt.Errorf("media tool %q not found: %w", path, err)
	}
	return &FFmpeg{path: resolved}, nil
}

func (f *FFmpeg) run(args ...string) error {
	cmd := exec.Command(f.path, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("media tool failed: %w: %s", err, tail(out))
	}
	return nil
}

// ExtractAudio demuxes the video's audio track as lossless PCM at the
// given sample rate and returns it as an integer buffer.
func (f *FFmpeg) ExtractAudio(videoPath string, rate int) (*audio.IntBuffer, error) {
	tmpDir, err := os.MkdirTemp("", "veil-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	wavPath := filepath.Join(tmpDir, "audio.wav")
	err = f.run("-y", "-i", videoPath, "-vn",
		"-acodec", "pcm_s16le", "-ar", strconv.Itoa(rate), wavPath)
	if err != nil {
		return nil, err
	}
	defer sutil.ShredFile(wavPath)
	return ReadWavFile(wavPath)
}

// MuxAudio re-muxes the original video stream, untouched, with a
// replacement audio track. Nothing is written to outPath on failure.
func (f *FFmpeg) MuxAudio(videoPath string, track *audio.IntBuffer, outPath string) error {
	tmpDir, err := os.MkdirTemp("", "veil-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	wavPath := filepath.Join(tmpDir, "stego.wav")
	if err = WriteWavFile(wavPath, track); err != nil {
		return err
	}
	defer sutil.ShredFile(wavPath)
	return f.run("-y", "-i", videoPath, "-i", wavPath,
		"-c:v", "copy", "-map", "0:v:0", "-map", "1:a:0",
		"-c:a", "pcm_s16le", "-movflags", "+faststart", outPath)
}

// keep the interesting end of ffmpeg's output for error messages
func tail(out []byte) string {
	const keep = 400
	if len(out) > keep {
		out = out[len(out)-keep:]
	}
	return string(out)
}
