package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mkzafar/wordgames/pkg/config"
	"github.com/mkzafar/wordgames/pkg/dictionary"
	"github.com/mkzafar/wordgames/pkg/finder"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

const (
	lengthPrompt  = "Enter the length of the input string (3-15): "
	lettersPrompt = "Enter the input characters (letters only): "
)

func run(t *testing.T, input string) string {
	t.Helper()
	dict := dictionary.New("cat", "act", "cats", "tack", "at")
	var out bytes.Buffer
	h := NewInputHandler(finder.New(dict), config.DefaultConfig().Search, 0, strings.NewReader(input), &out)
	if err := h.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return out.String()
}

func TestPromptRounds(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "grouped by length",
			input: "4\ncats\n",
			want: lengthPrompt + lettersPrompt +
				"3-letter words:\nact\ncat\n\n" +
				"4-letter words:\ncats\n\n" +
				lengthPrompt,
		},
		{
			name:  "upper case letters",
			input: "3\nTAC\n",
			want:  lengthPrompt + lettersPrompt + "3-letter words:\nact\ncat\n\n" + lengthPrompt,
		},
		{
			name:  "empty groups are still printed",
			input: "5\nxcats\n",
			want: lengthPrompt + lettersPrompt +
				"3-letter words:\nact\ncat\n\n" +
				"4-letter words:\ncats\n\n" +
				"5-letter words:\n\n" +
				lengthPrompt,
		},
		{
			name:  "length out of range",
			input: "2\n",
			want:  lengthPrompt + invalidInput + "\n" + lengthPrompt,
		},
		{
			name:  "length not a number",
			input: "four\n",
			want:  lengthPrompt + invalidInput + "\n" + lengthPrompt,
		},
		{
			name:  "letters do not match length",
			input: "4\ncat\n",
			want:  lengthPrompt + lettersPrompt + invalidInput + "\n" + lengthPrompt,
		},
		{
			name:  "letters with digits",
			input: "4\nca7s\n",
			want:  lengthPrompt + lettersPrompt + invalidInput + "\n" + lengthPrompt,
		},
		{
			name:  "retry after invalid round",
			input: "16\n3\ncat\n",
			want:  lengthPrompt + invalidInput + "\n" + lengthPrompt + lettersPrompt + "3-letter words:\nact\ncat\n\n" + lengthPrompt,
		},
		{
			name:  "eof while waiting for letters",
			input: "4\n",
			want:  lengthPrompt + lettersPrompt,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := run(t, tc.input); got != tc.want {
				t.Errorf("output:\n%q\nwant:\n%q", got, tc.want)
			}
		})
	}
}

func TestStyledColumns(t *testing.T) {
	var out bytes.Buffer
	term := terminal{styled: true, width: 12}
	term.printWords(&out, []string{"act", "cat", "cats", "tack", "at"})

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	// Cells are 6 wide, so two words per row.
	if len(lines) != 3 {
		t.Fatalf("got %d lines: %q", len(lines), out.String())
	}
	for _, w := range []string{"act", "cat", "cats", "tack", "at"} {
		if !strings.Contains(out.String(), w) {
			t.Errorf("%q missing from %q", w, out.String())
		}
	}
}

func TestPlainTerminalForBuffers(t *testing.T) {
	if detectTerminal(&bytes.Buffer{}).styled {
		t.Error("a buffer is not a terminal")
	}
}
