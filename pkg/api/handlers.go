package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/mkzafar/wordgames/internal/utils"
	"github.com/mkzafar/wordgames/pkg/finder"
	"github.com/mkzafar/wordgames/pkg/hunt"
)

const contentTypeJSON = "application/json; charset=UTF-8"

type anagramsResponse struct {
	Words []string `json:"words"`
}

type filterResponse struct {
	Valid []string `json:"valid"`
}

type huntRequest struct {
	Grid []string `json:"grid"`
	Min  int      `json:"min"`
	Max  int      `json:"max"`
}

type huntResponse struct {
	Matches []hunt.Match `json:"matches"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Words  int            `json:"words"`
	Cache  map[string]int `json:"cache,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnagrams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}
	q := r.URL.Query()
	input := q.Get("input")
	if input == "" {
		s.writeError(w, http.StatusBadRequest, "missing input")
		return
	}
	if len(input) > s.cfg.Search.MaxLetters {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("input must have at most %d letters, got %d", s.cfg.Search.MaxLetters, len(input)))
		return
	}
	minLength, err := intParam(q.Get("min"), 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "min: "+err.Error())
		return
	}
	maxLength, err := intParam(q.Get("max"), 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "max: "+err.Error())
		return
	}

	words := finder.ResultSet{}
	lo, hi, ok := finder.ClampRange(len(input), minLength, maxLength, s.cfg.Search.MinWordLength)
	if !ok {
		// Nothing to search, but the letters still have to be valid.
		if _, err := finder.ParseLetters(input); err != nil {
			s.writeSearchError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, anagramsResponse{Words: words})
		return
	}
	req, err := finder.NewRequest(input, lo, hi)
	if err != nil {
		s.writeSearchError(w, err)
		return
	}
	ctx, cancel := s.searchContext(r)
	defer cancel()
	if words, err = s.searcher.Search(ctx, req); err != nil {
		s.writeSearchError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, anagramsResponse{Words: words})
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	default:
		s.methodNotAllowed(w, http.MethodPost, http.MethodOptions)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(s.cfg.Server.MaxBodyBytes)))
	if err != nil {
		s.writeBodyError(w, err)
		return
	}
	valid := s.dict.Filter(utils.SplitLines(string(body)))
	if r.URL.Query().Get("unique") == "1" {
		valid = utils.UniqueSorted(valid)
	}
	s.writeJSON(w, http.StatusOK, filterResponse{Valid: valid})
}

func (s *Server) handleHunt(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	default:
		s.methodNotAllowed(w, http.MethodPost, http.MethodOptions)
		return
	}

	var req huntRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, int64(s.cfg.Server.MaxBodyBytes))).Decode(&req); err != nil {
		s.writeBodyError(w, err)
		return
	}
	grid, err := hunt.ParseGrid(req.Grid, s.cfg.Hunt.MaxRows, s.cfg.Hunt.MaxCols)
	if err != nil {
		s.writeSearchError(w, err)
		return
	}
	opts := hunt.Options{MinLength: s.cfg.Hunt.MinWordLength, MaxLength: s.cfg.Hunt.MaxWordLength}
	if req.Min > 0 {
		opts.MinLength = req.Min
	}
	if req.Max > 0 {
		opts.MaxLength = req.Max
	}

	ctx, cancel := s.searchContext(r)
	defer cancel()
	matches, err := hunt.Solve(ctx, s.dict, grid, opts)
	if err != nil {
		s.writeSearchError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, huntResponse{Matches: matches})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Words:  s.dict.Len(),
		Cache:  finder.Stats(s.searcher),
	})
}

// handlePreflight answers browsers probing the CORS headers.
func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, http.StatusNotFound, "no such endpoint: "+r.URL.Path)
}

func (s *Server) searchContext(r *http.Request) (context.Context, context.CancelFunc) {
	if d := s.cfg.Server.SearchTimeout(); d > 0 {
		return context.WithTimeout(r.Context(), d)
	}
	return context.WithCancel(r.Context())
}

// intParam parses an optional integer query parameter.
func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("must not be negative, got %d", v)
	}
	return v, nil
}

func (s *Server) writeSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, finder.ErrInvalidRequest):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.logger.Warnf("Search timed out: %v", err)
		s.writeError(w, http.StatusServiceUnavailable, "search timed out")
	case errors.Is(err, context.Canceled):
		// Client went away, nobody reads the response. The access log records 499.
		s.logger.Debugf("Search cancelled: %v", err)
	default:
		s.logger.Errorf("Search failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
		return
	}
	s.writeError(w, http.StatusBadRequest, "reading body: "+err.Error())
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	for _, m := range allowed {
		w.Header().Add("Allow", m)
	}
	s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("Writing response: %v", err)
	}
}
