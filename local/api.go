package local

import (
	"net/http"

	"veil/config"
	"veil/media"
	"veil/util"
)

/*
 * the local API server: a thin HTTP front over the video pipeline, for
 * the browser upload flow. Binds to loopback by default; nothing here
 * is meant to face a network.
 */

type server struct {
	conf   *config.FullConfig
	logger *util.Logger
	ff     *media.FFmpeg
}

func RunApiServer(conf *config.FullConfig, logger *util.Logger, ff *media.FFmpeg) error {
	s := &server{conf: conf, logger: logger, ff: ff}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/video/encode", s.handleEncode)
	mux.HandleFunc("POST /api/video/decode", s.handleDecode)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	logger.LogInfo("listening on " + conf.ServerConfig.Address)
	return http.ListenAndServe(conf.ServerConfig.Address, mux)
}
