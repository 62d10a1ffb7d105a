package local

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"veil/stegano/audio"
	"veil/stegano/video"
)

// parseOptions fills codec options from optional form fields, leaving
// defaults in place for anything absent. Invalid header/footer values
// are passed through; the codec substitutes defaults and warns.
func (s *server) parseOptions(r *http.Request) audio.Options {
	opts := s.conf.Options()
	if v := r.FormValue("frame_duration"); v != "" {
		if fd, err := strconv.ParseFloat(v, 64); err == nil {
			opts.FrameDuration = fd
		}
	}
	if v := r.FormValue("compare_fraction"); v != "" {
		if cf, err := strconv.ParseFloat(v, 64); err == nil {
			opts.CompareFraction = cf
		}
	}
	if v := r.FormValue("header"); v != "" {
		opts.Header = v
	}
	if v := r.FormValue("footer"); v != "" {
		opts.Footer = v
	}
	return opts
}

// saveUpload spools the uploaded video into a temp file, keeping the
// original extension so the media tool can sniff the container.
func (s *server) saveUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("video")
	if err != nil {
		return "", fmt.Errorf("missing video upload: %w", err)
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	tmp, err := os.CreateTemp("", "veil-upload-*"+ext)
	if err != nil {
		return "", err
	}
	if _, err = io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func (s *server) handleEncode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.conf.ServerConfig.MaxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, err)
		return
	}
	message := r.FormValue("message")
	if message == "" {
		s.sendError(w, http.StatusBadRequest, errors.New("message is required"))
		return
	}

	inPath, err := s.saveUpload(r)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err)
		return
	}
	defer os.Remove(inPath)

	outPath := strings.TrimSuffix(inPath, filepath.Ext(inPath)) + "_stego" + filepath.Ext(inPath)
	defer os.Remove(outPath)

	_, rep, err := video.Encode(s.ff, video.EncodeRequest{
		InputPath:  inPath,
		OutputPath: outPath,
		Message:    []byte(message),
		Password:   r.FormValue("password"),
		SampleRate: s.conf.StegConfig.SampleRate,
		Options:    s.parseOptions(r),
	})
	if err != nil {
		if errors.Is(err, audio.ErrCapacity) {
			s.sendError(w, http.StatusUnprocessableEntity, err)
		} else {
			s.sendError(w, http.StatusInternalServerError, err)
		}
		return
	}
	for _, warning := range rep.Warnings {
		s.logger.LogWarning(warning)
	}

	// the decoder needs the resolved duration, not the requested one
	w.Header().Set("X-Frame-Duration", strconv.FormatFloat(rep.FrameDuration, 'f', -1, 64))
	w.Header().Set("X-Frame-Size", strconv.Itoa(rep.FrameSize))
	w.Header().Set("Content-Disposition", `attachment; filename="stego`+filepath.Ext(outPath)+`"`)
	http.ServeFile(w, r, outPath)
}

func (s *server) handleDecode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.conf.ServerConfig.MaxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, err)
		return
	}

	inPath, err := s.saveUpload(r)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err)
		return
	}
	defer os.Remove(inPath)

	payload, rep, err := video.Decode(s.ff, inPath, r.FormValue("password"),
		s.conf.StegConfig.SampleRate, s.parseOptions(r))
	if err != nil {
		// a mismatch is the client's problem, not the server's
		if errors.Is(err, video.ErrWrongParamsOrPassword) || errors.Is(err, audio.ErrShortBuffer) {
			s.sendError(w, http.StatusUnprocessableEntity, err)
		} else {
			s.sendError(w, http.StatusInternalServerError, err)
		}
		return
	}

	s.sendJSON(w, http.StatusOK, DecodeResponse{
		Message:  string(payload),
		Warnings: rep.Warnings,
	})
}

func (s *server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *server) sendError(w http.ResponseWriter, status int, err error) {
	s.logger.LogError(err)
	s.sendJSON(w, status, ErrorResponse{Error: err.Error()})
}
