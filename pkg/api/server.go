/*
Package api serves the word search over HTTP.

	GET  /anagrams?input=cats&min=3&max=4   {"words": ["act", "cat", "cats"]}
	POST /filter   (newline separated words) {"valid": ["cat"]}
	POST /hunt     {"grid": ["ca", "ts"]}    {"matches": [{"word": "cats", "path": [[0,0],...]}]}
	GET  /health                             {"status": "ok", "words": 172820}

Every response is JSON and carries the CORS headers. Errors are {"error": message}
with a 4xx or 5xx status.
*/
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mkzafar/wordgames/pkg/config"
	"github.com/mkzafar/wordgames/pkg/dictionary"
	"github.com/mkzafar/wordgames/pkg/finder"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Server wires the handlers to a dictionary and a searcher.
type Server struct {
	dict       *dictionary.Dictionary
	searcher   finder.Searcher
	cfg        *config.Config
	logger     *log.Logger
	httpServer *http.Server
}

// NewServer creates a Server listening on cfg.Server.Addr once Run is called.
func NewServer(dict *dictionary.Dictionary, searcher finder.Searcher, cfg *config.Config, logger *log.Logger) *Server {
	s := &Server{
		dict:     dict,
		searcher: searcher,
		cfg:      cfg,
		logger:   logger,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
	}
	return s
}

// Handler returns the routed handler with CORS and access logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/anagrams", s.handleAnagrams)
	mux.HandleFunc("/filter", s.handleFilter)
	mux.HandleFunc("/hunt", s.handleHunt)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/_cors", s.handlePreflight)
	mux.HandleFunc("/", s.handleNotFound)
	return s.withAccessLog(s.withCORS(mux))
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Infof("Listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
