package dictionary

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")
	d, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v, want nil for missing file", err)
	}
	if d.Len() != 0 {
		t.Errorf("Len() = %d, want 0", d.Len())
	}
}

func TestLoadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("Len() = %d, want 0", d.Len())
	}
}

func TestLoadFileDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadFile(dir)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("LoadFile(dir) error = %v, want *LoadError", err)
	}
	if loadErr.Path != dir {
		t.Errorf("LoadError.Path = %q, want %q", loadErr.Path, dir)
	}
}

func TestLoadFileText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.txt")
	if err := os.WriteFile(path, []byte("Cat\nact\n\ncats\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	want := []string{"act", "cat", "cats"}
	if got := d.Words(); !reflect.DeepEqual(want, got) {
		t.Errorf("Words() = %v, want %v", got, want)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	d := New("tack", "cat", "act")
	path := filepath.Join(t.TempDir(), "dict.msgpack")

	var buf bytes.Buffer
	if err := d.WriteSnapshot(&buf); err != nil {
		t.Fatalf("WriteSnapshot() error = %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile(snapshot) error = %v", err)
	}
	if !reflect.DeepEqual(d.Words(), got.Words()) {
		t.Errorf("snapshot words = %v, want %v", got.Words(), d.Words())
	}
}

func TestSnapshotBadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.msgpack")
	if err := os.WriteFile(path, []byte("cat\nact\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFile(path)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("LoadFile() error = %v, want *LoadError", err)
	}
}

func TestDetectFormat(t *testing.T) {
	testCases := []struct {
		name string
		want FileFormat
	}{
		{"dictionary.txt", FormatText},
		{"words", FormatText},
		{"/usr/share/dict/words", FormatText},
		{"dict.msgpack", FormatSnapshot},
		{"DICT.MPK", FormatSnapshot},
	}
	for _, tc := range testCases {
		if got := DetectFormat(tc.name); got != tc.want {
			t.Errorf("DetectFormat(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
