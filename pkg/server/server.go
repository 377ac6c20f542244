package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mkzafar/wordgames/pkg/config"
	"github.com/mkzafar/wordgames/pkg/dictionary"
	"github.com/mkzafar/wordgames/pkg/finder"
	"github.com/mkzafar/wordgames/pkg/hunt"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	codeBadRequest  = 400
	codeInternal    = 500
	codeUnavailable = 503
)

// Server runs the IPC loop for one client.
type Server struct {
	dict     *dictionary.Dictionary
	searcher finder.Searcher
	cfg      *config.Config
	logger   *log.Logger

	dec *msgpack.Decoder
	out *bufio.Writer
	enc *msgpack.Encoder

	handled int
}

// NewServer creates a Server reading requests from r and writing responses to w.
// The command passes stdin and stdout.
func NewServer(dict *dictionary.Dictionary, searcher finder.Searcher, cfg *config.Config, logger *log.Logger, r io.Reader, w io.Writer) *Server {
	out := bufio.NewWriter(w)
	return &Server{
		dict:     dict,
		searcher: searcher,
		cfg:      cfg,
		logger:   logger,
		dec:      msgpack.NewDecoder(bufio.NewReader(r)),
		out:      out,
		enc:      msgpack.NewEncoder(out),
	}
}

// Start signals readiness and serves requests until EOF or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Debug("Starting IPC server")
	if err := s.send(map[string]string{"status": "ready"}); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Client closed input after %d requests", s.handled)
				return nil
			}
			return fmt.Errorf("reading request: %w", err)
		}

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.logger.Warnf("Malformed request: %v", err)
			if err := s.sendError("", "malformed request", codeBadRequest); err != nil {
				return err
			}
			continue
		}
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		s.handled++
		if err := s.handle(ctx, req); err != nil {
			return err
		}
	}
}

// handle routes one request. Only write failures are returned.
func (s *Server) handle(ctx context.Context, req Request) error {
	switch req.Action {
	case "anagrams":
		return s.handleAnagrams(ctx, req)
	case "filter":
		valid := s.dict.Filter(req.Words)
		return s.send(FilterResponse{ID: req.ID, Valid: valid, Count: len(valid)})
	case "hunt":
		return s.handleHunt(ctx, req)
	case "info":
		return s.send(InfoResponse{
			ID:     req.ID,
			Status: "ok",
			Words:  s.dict.Len(),
			Cache:  finder.Stats(s.searcher),
		})
	case "":
		return s.sendError(req.ID, "missing action", codeBadRequest)
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), codeBadRequest)
	}
}

func (s *Server) handleAnagrams(ctx context.Context, req Request) error {
	if req.Letters == "" {
		return s.sendError(req.ID, "missing letters", codeBadRequest)
	}
	if req.Min < 0 || req.Max < 0 {
		return s.sendError(req.ID, fmt.Sprintf("min and max must not be negative, got %d and %d", req.Min, req.Max), codeBadRequest)
	}
	if n := len(req.Letters); n > s.cfg.Search.MaxLetters {
		return s.sendError(req.ID, fmt.Sprintf("at most %d letters allowed, got %d", s.cfg.Search.MaxLetters, n), codeBadRequest)
	}

	start := time.Now()
	words := finder.ResultSet{}
	if lo, hi, ok := finder.ClampRange(len(req.Letters), req.Min, req.Max, s.cfg.Search.MinWordLength); ok {
		sreq, err := finder.NewRequest(req.Letters, lo, hi)
		if err != nil {
			return s.sendError(req.ID, err.Error(), codeBadRequest)
		}
		ctx, cancel := s.withTimeout(ctx)
		words, err = s.searcher.Search(ctx, sreq)
		cancel()
		if err != nil {
			return s.sendFailure(req.ID, err)
		}
	} else if _, err := finder.ParseLetters(req.Letters); err != nil {
		return s.sendError(req.ID, err.Error(), codeBadRequest)
	}

	return s.send(AnagramResponse{
		ID:        req.ID,
		Words:     words,
		Count:     len(words),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleHunt(ctx context.Context, req Request) error {
	grid, err := hunt.ParseGrid(req.Grid, s.cfg.Hunt.MaxRows, s.cfg.Hunt.MaxCols)
	if err != nil {
		return s.sendError(req.ID, err.Error(), codeBadRequest)
	}
	opts := hunt.Options{MinLength: s.cfg.Hunt.MinWordLength, MaxLength: s.cfg.Hunt.MaxWordLength}
	if req.Min > 0 {
		opts.MinLength = req.Min
	}
	if req.Max > 0 {
		opts.MaxLength = req.Max
	}

	start := time.Now()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	matches, err := hunt.Solve(ctx, s.dict, grid, opts)
	if err != nil {
		return s.sendFailure(req.ID, err)
	}
	return s.send(HuntResponse{
		ID:        req.ID,
		Matches:   matches,
		Count:     len(matches),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d := s.cfg.Server.SearchTimeout(); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

// sendFailure maps a search error to a response code.
func (s *Server) sendFailure(id string, err error) error {
	switch {
	case errors.Is(err, finder.ErrInvalidRequest):
		return s.sendError(id, err.Error(), codeBadRequest)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		s.logger.Warnf("Request %s timed out: %v", id, err)
		return s.sendError(id, "search timed out", codeUnavailable)
	default:
		s.logger.Errorf("Request %s failed: %v", id, err)
		return s.sendError(id, "internal error", codeInternal)
	}
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}

// send encodes one response and flushes it so the client sees it immediately.
func (s *Server) send(v any) error {
	if err := s.enc.Encode(v); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return err
	}
	return s.out.Flush()
}
