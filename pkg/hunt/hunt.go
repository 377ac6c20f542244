// Package hunt finds dictionary words traced through a letter grid, moving between
// horizontally, vertically or diagonally adjacent cells without reusing a cell.
package hunt

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mkzafar/wordgames/pkg/finder"
)

const (
	DefaultMinLength = 3
	DefaultMaxLength = 8
	DefaultMaxRows   = 8
	DefaultMaxCols   = 8

	// Empty marks a cell that no path may enter.
	Empty = '.'
)

var (
	// ErrInvalidGrid is returned for empty, ragged or oversized grids and for cells
	// that are neither letters nor Empty. It matches finder.ErrInvalidRequest.
	ErrInvalidGrid = fmt.Errorf("invalid grid: %w", finder.ErrInvalidRequest)
	// ErrInvalidBounds is returned when the word length bounds make no sense.
	ErrInvalidBounds = fmt.Errorf("invalid length bounds: %w", finder.ErrInvalidRequest)
)

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid is a rectangle of lower case letters.
type Grid struct {
	cells [][]byte
}

// ParseGrid builds a Grid from one string per row.
func ParseGrid(rows []string, maxRows, maxCols int) (Grid, error) {
	if len(rows) == 0 || rows[0] == "" {
		return Grid{}, fmt.Errorf("%w: no cells", ErrInvalidGrid)
	}
	if maxRows > 0 && len(rows) > maxRows {
		return Grid{}, fmt.Errorf("%w: %d rows, at most %d allowed", ErrInvalidGrid, len(rows), maxRows)
	}
	width := len(rows[0])
	if maxCols > 0 && width > maxCols {
		return Grid{}, fmt.Errorf("%w: %d columns, at most %d allowed", ErrInvalidGrid, width, maxCols)
	}

	cells := make([][]byte, len(rows))
	for r, row := range rows {
		if len(row) != width {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, r, len(row), width)
		}
		line := make([]byte, width)
		for c := 0; c < width; c++ {
			ch := row[c]
			switch {
			case ch >= 'A' && ch <= 'Z':
				ch += 'a' - 'A'
			case ch == Empty, ch >= 'a' && ch <= 'z':
			default:
				return Grid{}, fmt.Errorf("%w: unsupported character %q at row %d column %d", ErrInvalidGrid, ch, r, c)
			}
			line[c] = ch
		}
		cells[r] = line
	}
	return Grid{cells: cells}, nil
}

func (g Grid) Rows() int { return len(g.cells) }

func (g Grid) Cols() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// String renders the grid one row per line.
func (g Grid) String() string {
	rows := make([]string, len(g.cells))
	for i, row := range g.cells {
		rows[i] = string(row)
	}
	return strings.Join(rows, "\n")
}

// Options bounds the length of reported words. Zero values take the defaults.
type Options struct {
	MinLength int
	MaxLength int
}

func (o Options) withDefaults() Options {
	if o.MinLength == 0 {
		o.MinLength = DefaultMinLength
	}
	if o.MaxLength == 0 {
		o.MaxLength = DefaultMaxLength
	}
	return o
}

// Match is a found word and the cells that spell it, as [row, col] pairs.
type Match struct {
	Word string   `json:"word" msgpack:"w"`
	Path [][2]int `json:"path" msgpack:"p"`
}

// Solve returns every lexicon word that can be traced through g, longest first and
// alphabetical within a length. Each word is reported once, with the first path found
// scanning start cells in row-major order.
func Solve(ctx context.Context, lexicon finder.Lexicon, g Grid, opts Options) ([]Match, error) {
	opts = opts.withDefaults()
	switch {
	case opts.MinLength < 1:
		return nil, fmt.Errorf("%w: min must be at least 1, got %d", ErrInvalidBounds, opts.MinLength)
	case opts.MaxLength < opts.MinLength:
		return nil, fmt.Errorf("%w: max %d is below min %d", ErrInvalidBounds, opts.MaxLength, opts.MinLength)
	}
	if g.Rows() == 0 {
		return nil, fmt.Errorf("%w: no cells", ErrInvalidGrid)
	}
	if lexicon == nil {
		return []Match{}, nil
	}

	maxLength := min(opts.MaxLength, g.Rows()*g.Cols())
	s := &solver{
		grid:      g,
		lexicon:   lexicon,
		used:      make([][]bool, g.Rows()),
		buf:       make([]byte, 0, maxLength),
		path:      make([][2]int, 0, maxLength),
		minLength: opts.MinLength,
		maxLength: maxLength,
		found:     make(map[string][][2]int),
	}
	if pl, ok := lexicon.(finder.PrefixLexicon); ok {
		s.prefixes = pl
	}
	for r := range s.used {
		s.used[r] = make([]bool, g.Cols())
	}

	for r := 0; r < g.Rows(); r++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("solving grid: %w", err)
		}
		for c := 0; c < g.Cols(); c++ {
			s.visit(r, c)
		}
	}

	matches := make([]Match, 0, len(s.found))
	for w, p := range s.found {
		matches = append(matches, Match{Word: w, Path: p})
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i].Word, matches[j].Word
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	log.Debugf("Grid %dx%d produced %d words", g.Rows(), g.Cols(), len(matches))
	return matches, nil
}

type solver struct {
	grid      Grid
	lexicon   finder.Lexicon
	prefixes  finder.PrefixLexicon
	used      [][]bool
	buf       []byte
	path      [][2]int
	minLength int
	maxLength int
	found     map[string][][2]int
}

func (s *solver) visit(r, c int) {
	ch := s.grid.cells[r][c]
	if ch == Empty || s.used[r][c] {
		return
	}
	s.buf = append(s.buf, ch)
	s.path = append(s.path, [2]int{r, c})
	s.used[r][c] = true
	defer func() {
		s.buf = s.buf[:len(s.buf)-1]
		s.path = s.path[:len(s.path)-1]
		s.used[r][c] = false
	}()

	word := string(s.buf)
	if s.prefixes != nil && !s.prefixes.HasPrefix(word) {
		return
	}
	if len(word) >= s.minLength {
		if _, seen := s.found[word]; !seen && s.lexicon.Contains(word) {
			s.found[word] = append([][2]int(nil), s.path...)
		}
	}
	if len(s.buf) == s.maxLength {
		return
	}
	for _, d := range directions {
		nr, nc := r+d[0], c+d[1]
		if nr < 0 || nc < 0 || nr >= s.grid.Rows() || nc >= s.grid.Cols() {
			continue
		}
		s.visit(nr, nc)
	}
}
