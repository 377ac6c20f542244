package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// maxLineSize bounds a single line of a word list.
const maxLineSize = 1024 * 1024

// LoadError is returned when a word list cannot be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("loading dictionary: %v", e.Err)
	}
	return fmt.Sprintf("loading dictionary %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads a newline separated word list.
// Lines are trimmed and lower cased, empty lines are discarded.
func Load(r io.Reader) (*Dictionary, error) {
	if r == nil {
		return nil, &LoadError{Err: errors.New("reader required")}
	}
	d := empty()
	if err := scanLines(r, d.add); err != nil {
		return nil, &LoadError{Err: err}
	}
	return d, nil
}

// LoadFile loads a dictionary from path, detecting its format from the file name.
// A missing or empty file yields an empty dictionary so the caller can decide whether
// that is acceptable; any other failure is a *LoadError.
func LoadFile(path string) (*Dictionary, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warnf("Dictionary file %s not found, using an empty dictionary", path)
		return empty(), nil
	case err != nil:
		return nil, &LoadError{Path: path, Err: err}
	case info.IsDir():
		return nil, &LoadError{Path: path, Err: errors.New("is a directory")}
	case info.Size() == 0:
		log.Warnf("Dictionary file %s is empty", path)
		return empty(), nil
	}

	format := DetectFormat(path)
	if err := ValidateFile(path, format); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	var d *Dictionary
	switch format {
	case FormatSnapshot:
		d, err = ReadSnapshot(file)
	default:
		d, err = Load(file)
	}
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
			return nil, loadErr
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	log.Debugf("Loaded %s words (%s) from %s", humanize.Comma(int64(d.Len())), format, path)
	return d, nil
}

// ReadLines splits r into normalized, non-empty lines.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	err := scanLines(r, func(line string) {
		if w := Normalize(line); w != "" {
			lines = append(lines, w)
		}
	})
	return lines, err
}

func scanLines(r io.Reader, fn func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	return scanner.Err()
}
