/*
Package finder enumerates the dictionary words that can be spelled from a bag of letters.

The search works on a table of distinct letters and their remaining counts rather than on
the raw input string. At every depth it tries each distinct letter that still has a
count left, so an input with repeated letters such as "aab" explores the sequence "ab"
once instead of once per copy of 'a'. Partial sequences live in a fixed buffer and the
counts are restored on the way back up, nothing is copied per step.

When the lexicon can answer prefix queries (see PrefixLexicon) every branch whose prefix
no word starts with is abandoned straight away. Without it the search still returns the
same words, it only has to visit every sequence up to the maximum length first.

	f := finder.New(dict)
	words, err := f.Find(ctx, "cats", 3, 4) // [act cat cats]

Long searches check ctx every few thousand steps and stop with ctx.Err().
*/
package finder

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// DefaultCheckInterval is how many visited sequences pass between context checks.
const DefaultCheckInterval = 1024

// Lexicon answers exact membership for lower case words.
type Lexicon interface {
	Contains(word string) bool
}

// PrefixLexicon is a Lexicon that can also tell whether any word starts with prefix.
// Finder uses it for pruning when the lexicon passed to New implements it.
type PrefixLexicon interface {
	Lexicon
	HasPrefix(prefix string) bool
}

// byteLexicon is implemented by lexicons that can answer both queries on a lower case
// byte slice, so the search does not build a string for every visited sequence.
type byteLexicon interface {
	ContainsBytes(word []byte) bool
	HasPrefixBytes(prefix []byte) bool
}

// Searcher runs validated search requests. Finder and Cache implement it.
type Searcher interface {
	Search(ctx context.Context, req SearchRequest) (ResultSet, error)
}

// SearchRequest is a validated (letters, minLength, maxLength) triple.
type SearchRequest struct {
	Letters   LetterMultiset
	MinLength int
	MaxLength int
}

// NewRequest validates the bounds against the letters.
// A minLength above the number of letters is accepted and later yields no words.
func NewRequest(letters string, minLength, maxLength int) (SearchRequest, error) {
	set, err := ParseLetters(letters)
	if err != nil {
		return SearchRequest{}, err
	}
	switch {
	case minLength < 1:
		return SearchRequest{}, invalid("min", "must be at least 1, got %d", minLength)
	case maxLength < minLength:
		return SearchRequest{}, invalid("max", "must not be below min (%d), got %d", minLength, maxLength)
	case minLength <= set.Len() && maxLength > set.Len():
		return SearchRequest{}, invalid("max", "must not exceed the %d input letters, got %d", set.Len(), maxLength)
	}
	return SearchRequest{Letters: set, MinLength: minLength, MaxLength: maxLength}, nil
}

// Key identifies requests that always produce the same result.
func (r SearchRequest) Key() string {
	return fmt.Sprintf("%s:%d:%d", r.Letters, r.MinLength, r.MaxLength)
}

// Finder searches a single Lexicon. It holds no per-search state and is safe for
// concurrent use as long as the Lexicon is.
type Finder struct {
	lexicon    Lexicon
	prune      bool
	checkEvery int
}

// Option configures a Finder.
type Option func(*Finder)

// WithoutPruning disables prefix pruning even when the lexicon supports it.
func WithoutPruning() Option {
	return func(f *Finder) {
		f.prune = false
	}
}

// WithCheckInterval sets how often the context is checked, n <= 0 disables checks.
func WithCheckInterval(n int) Option {
	return func(f *Finder) {
		f.checkEvery = n
	}
}

// New creates a Finder over lexicon.
func New(lexicon Lexicon, opts ...Option) *Finder {
	f := &Finder{
		lexicon:    lexicon,
		prune:      true,
		checkEvery: DefaultCheckInterval,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// pruning reports whether searches will use prefix pruning.
func (f *Finder) pruning() bool {
	switch f.lexicon.(type) {
	case PrefixLexicon, byteLexicon:
		return f.prune
	}
	return false
}

// FindWords validates the request and searches lexicon with the default options.
func FindWords(ctx context.Context, lexicon Lexicon, letters string, minLength, maxLength int) (ResultSet, error) {
	return New(lexicon).Find(ctx, letters, minLength, maxLength)
}

// Find validates the request and searches.
func (f *Finder) Find(ctx context.Context, letters string, minLength, maxLength int) (ResultSet, error) {
	req, err := NewRequest(letters, minLength, maxLength)
	if err != nil {
		return nil, err
	}
	return f.Search(ctx, req)
}

// Search returns every lexicon word spelled by a sub-multiset of req.Letters whose
// length lies in [req.MinLength, req.MaxLength]. A MinLength below 1 is rejected, a
// range that no word length can satisfy yields an empty result.
func (f *Finder) Search(ctx context.Context, req SearchRequest) (ResultSet, error) {
	if req.MinLength < 1 {
		return nil, invalid("min", "must be at least 1, got %d", req.MinLength)
	}
	maxLength := min(req.MaxLength, req.Letters.Len())
	if f.lexicon == nil || req.MinLength > maxLength {
		return ResultSet{}, nil
	}

	letters, counts := req.Letters.table()
	s := &search{
		ctx:        ctx,
		letters:    letters,
		counts:     counts,
		buf:        make([]byte, maxLength),
		minLength:  req.MinLength,
		maxLength:  maxLength,
		found:      make(map[string]struct{}),
		checkEvery: f.checkEvery,
	}
	if bl, ok := f.lexicon.(byteLexicon); ok {
		s.contains = bl.ContainsBytes
		if f.pruning() {
			s.hasPrefix = bl.HasPrefixBytes
		}
	} else {
		s.contains = func(word []byte) bool { return f.lexicon.Contains(string(word)) }
		if pl, ok := f.lexicon.(PrefixLexicon); ok && f.pruning() {
			s.hasPrefix = func(prefix []byte) bool { return pl.HasPrefix(string(prefix)) }
		}
	}

	s.walk(0)
	if s.err != nil {
		log.Debugf("Search for %q stopped after %d steps: %v", req.Letters.String(), s.visited, s.err)
		return nil, fmt.Errorf("searching %q: %w", req.Letters.String(), s.err)
	}
	log.Debugf("Search for %q visited %d sequences, found %d words (pruned=%t)",
		req.Letters.String(), s.visited, len(s.found), s.hasPrefix != nil)
	return newResultSet(s.found), nil
}

// search is the mutable state of one Search call.
type search struct {
	ctx        context.Context
	contains   func(word []byte) bool
	hasPrefix  func(prefix []byte) bool // nil when not pruning
	letters    []byte                   // distinct letters, ascending
	counts     []int                    // remaining count per letter, restored on backtrack
	buf        []byte                   // current sequence, buf[:depth]
	minLength  int
	maxLength  int
	found      map[string]struct{}
	visited    int
	checkEvery int
	err        error
}

// walk extends buf[:depth] by every distinct letter that has a count left.
func (s *search) walk(depth int) {
	for i, letter := range s.letters {
		if s.counts[i] == 0 {
			continue
		}
		if s.cancelled() {
			return
		}
		s.buf[depth] = letter
		n := depth + 1
		seq := s.buf[:n]

		if s.hasPrefix != nil && !s.hasPrefix(seq) {
			continue
		}
		if n >= s.minLength && s.contains(seq) {
			s.found[string(seq)] = struct{}{}
		}
		if n < s.maxLength {
			s.counts[i]--
			s.walk(n)
			s.counts[i]++
		}
		if s.err != nil {
			return
		}
	}
}

// cancelled counts a visited sequence and periodically polls the context.
func (s *search) cancelled() bool {
	if s.err != nil {
		return true
	}
	s.visited++
	if s.checkEvery > 0 && s.visited%s.checkEvery == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return true
		}
	}
	return false
}
