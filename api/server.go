// Package api exposes the analysis engine over HTTP: multipart file upload
// in, JSON (or rendered Markdown/HTML) report out.
package api

import (
	"net/http"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"datalens/internal/analyze"
	"datalens/internal/config"
	"datalens/internal/loader"
)

// Server wires the loader and analyzer behind a chi router with an
// in-memory response cache keyed by upload content hash.
type Server struct {
	cfg      *config.Config
	log      *logrus.Logger
	loader   *loader.Loader
	analyzer *analyze.Analyzer
	cache    *ristretto.Cache
	router   *chi.Mux
}

// NewServer builds a fully routed server
func NewServer(cfg *config.Config, log *logrus.Logger) (*Server, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     cfg.Server.CacheMaxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	analysisCfg := analyze.DefaultConfig()
	analysisCfg.PatternSampleSize = cfg.Analysis.PatternSampleSize
	analysisCfg.MinHistogramBins = cfg.Analysis.MinHistogramBins
	analysisCfg.MaxHistogramBins = cfg.Analysis.MaxHistogramBins
	analysisCfg.MaxTimelineBuckets = cfg.Analysis.MaxTimelineBuckets
	if cfg.Analysis.Workers > 0 {
		analysisCfg.Workers = cfg.Analysis.Workers
	}

	s := &Server{
		cfg: cfg,
		log: log,
		loader: loader.New(loader.CoerceConfig{
			NumericThreshold:  cfg.Loader.NumericThreshold,
			DatetimeThreshold: cfg.Loader.DatetimeThreshold,
		}),
		analyzer: analyze.New(analysisCfg),
		cache:    cache,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/formats", s.handleFormats)
	r.Post("/analyze", s.handleAnalyze)
	return r
}

// Handler returns the root http.Handler
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the HTTP server on the configured port
func (s *Server) ListenAndServe() error {
	addr := ":" + s.cfg.Server.Port
	s.log.WithField("addr", addr).Info("server listening")
	return http.ListenAndServe(addr, s.router)
}
