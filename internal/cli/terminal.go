package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	columnGap    = 2
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	wordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// terminal decides how results are laid out. Plain output is one word per line.
type terminal struct {
	styled bool
	width  int
}

func detectTerminal(w io.Writer) terminal {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return terminal{}
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		width = defaultWidth
	}
	return terminal{styled: true, width: width}
}

func (t terminal) header(s string) string {
	if !t.styled {
		return s
	}
	return headerStyle.Render(s)
}

// printWords writes words in as many padded columns as the terminal width allows.
func (t terminal) printWords(w io.Writer, words []string) {
	if !t.styled {
		for _, word := range words {
			fmt.Fprintln(w, word)
		}
		return
	}
	if len(words) == 0 {
		return
	}

	cell := 0
	for _, word := range words {
		cell = max(cell, runewidth.StringWidth(word))
	}
	cell += columnGap
	perRow := max(1, t.width/cell)

	var line strings.Builder
	for i, word := range words {
		line.WriteString(wordStyle.Render(runewidth.FillRight(word, cell)))
		if (i+1)%perRow == 0 || i == len(words)-1 {
			fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
			line.Reset()
		}
	}
}
