package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"bitbucket.org/sotavant/dolly-skill/internal/gadget"
	"bitbucket.org/sotavant/dolly-skill/internal/logger"
	"bitbucket.org/sotavant/dolly-skill/internal/skill"
)

func main() {
	if err := parseFlags(); err != nil {
		panic(err)
	}
	if err := run(); err != nil {
		panic(err)
	}
}

func gzipMiddleware(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ow := w

		acceptEncoding := r.Header.Get("Accept-Encoding")
		supportGzip := strings.Contains(acceptEncoding, "gzip")

		if supportGzip {
			cw := newCompressWriter(w)
			ow = cw
			defer func() {
				if err := cw.Close(); err != nil {
					logger.Log.Debug("compressWriterError", zap.Error(err))
				}
			}()
		}

		contentEncoding := r.Header.Get("Content-Encoding")

		sendsGzip := strings.Contains(contentEncoding, "gzip")
		if sendsGzip {
			cr, err := newCompressReader(r.Body)
			if err != nil {
				logger.Log.Debug("newCompressReaderError", zap.Error(err))
				ow.WriteHeader(http.StatusBadRequest)
				return
			}
			r.Body = cr
			defer func() {
				if err := cr.Close(); err != nil {
					logger.Log.Debug("closeCompressReaderError", zap.Error(err))
				}
			}()
		}

		h.ServeHTTP(ow, r)
	}
}

func newRouter(a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Handle("/", logger.RequestLogger(gzipMiddleware(a.webhook)))
	return r
}

func run() error {
	if err := logger.Initialize(flagLogLevel); err != nil {
		return err
	}

	a := newApp(skill.New(gadget.NewClient(flagDiscoveryTimeout)), flagSkillID)

	logger.Log.Info("Running server",
		zap.String("address", flagRunAddr),
		zap.Bool("skill_id_check", flagSkillID != ""),
	)

	return http.ListenAndServe(flagRunAddr, newRouter(a))
}
