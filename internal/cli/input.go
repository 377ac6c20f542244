// Package cli runs the interactive anagram prompt behind "wordgames play".
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mkzafar/wordgames/pkg/config"
	"github.com/mkzafar/wordgames/pkg/finder"
)

const invalidInput = "Invalid input. Please try again."

// InputHandler asks for a length and a set of letters, then prints every word
// the letters spell, grouped by length. It loops until the input ends.
type InputHandler struct {
	searcher finder.Searcher
	cfg      config.SearchConfig
	timeout  time.Duration
	in       *bufio.Scanner
	out      io.Writer
	term     terminal
	rounds   int
}

// NewInputHandler creates a handler reading from in and writing to out.
// Output is styled only when out is a terminal.
func NewInputHandler(searcher finder.Searcher, cfg config.SearchConfig, timeout time.Duration, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		searcher: searcher,
		cfg:      cfg,
		timeout:  timeout,
		in:       bufio.NewScanner(in),
		out:      out,
		term:     detectTerminal(out),
	}
}

// Start runs prompt rounds until EOF or ctx is done.
func (h *InputHandler) Start(ctx context.Context) error {
	for ctx.Err() == nil {
		more, err := h.round(ctx)
		if err != nil || !more {
			if h.term.styled {
				fmt.Fprintln(h.out)
			}
			log.Debugf("Prompt finished after %d rounds", h.rounds)
			return err
		}
	}
	return nil
}

// round handles one length/letters exchange. It returns false at EOF.
func (h *InputHandler) round(ctx context.Context) (bool, error) {
	line, ok, err := h.ask(fmt.Sprintf("Enter the length of the input string (%d-%d): ", h.cfg.MinLetters, h.cfg.MaxLetters))
	if !ok {
		return false, err
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < h.cfg.MinLetters || n > h.cfg.MaxLetters {
		fmt.Fprintln(h.out, invalidInput)
		return true, nil
	}

	line, ok, err = h.ask("Enter the input characters (letters only): ")
	if !ok {
		return false, err
	}
	letters := strings.ToLower(line)
	if len(letters) != n || !onlyLetters(letters) {
		fmt.Fprintln(h.out, invalidInput)
		return true, nil
	}

	h.rounds++
	h.show(ctx, letters)
	return true, nil
}

// ask prints prompt and reads one trimmed line. ok is false at EOF.
func (h *InputHandler) ask(prompt string) (line string, ok bool, err error) {
	fmt.Fprint(h.out, prompt)
	if !h.in.Scan() {
		return "", false, h.in.Err()
	}
	return strings.TrimSpace(h.in.Text()), true, nil
}

// show searches once over the whole range and prints one group per length,
// including lengths without any words.
func (h *InputHandler) show(ctx context.Context, letters string) {
	n := len(letters)
	lo, hi, ok := finder.ClampRange(n, h.cfg.MinWordLength, n, h.cfg.MinWordLength)
	if !ok {
		return
	}
	req, err := finder.NewRequest(letters, lo, hi)
	if err != nil {
		fmt.Fprintln(h.out, invalidInput)
		return
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	start := time.Now()
	words, err := h.searcher.Search(ctx, req)
	if err != nil {
		log.Errorf("Search for %q failed: %v", letters, err)
		return
	}
	log.Debugf("Took [ %v ] for %q, %d words", time.Since(start), letters, len(words))

	for length := lo; length <= hi; length++ {
		fmt.Fprintln(h.out, h.term.header(fmt.Sprintf("%d-letter words:", length)))
		h.term.printWords(h.out, words.OfLength(length))
		fmt.Fprintln(h.out)
	}
}

func onlyLetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
