package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// FileFormat represents the dictionary file formats LoadFile understands
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatText                // Newline separated word list
	FormatSnapshot            // msgpack encoded Snapshot
)

// SnapshotVersion is written into every snapshot and checked on read.
const SnapshotVersion = 1

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word List",
		Extensions:  []string{".txt", ".lst", ".dic", ""},
		MinSize:     1,
	},
	FormatSnapshot: {
		Format:      FormatSnapshot,
		Description: "Msgpack Dictionary Snapshot",
		Extensions:  []string{".msgpack", ".mpk"},
		MinSize:     3, // fixmap header + two keys at least
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// Snapshot is the on-disk form of a prebuilt dictionary.
type Snapshot struct {
	Version int      `msgpack:"v"`
	Words   []string `msgpack:"w"`
}

// DetectFormat picks a format from the file extension.
// Anything that is not a known snapshot extension is read as a text word list.
func DetectFormat(filename string) FileFormat {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range supportedFormats[FormatSnapshot].Extensions {
		if ext == e {
			return FormatSnapshot
		}
	}
	return FormatText
}

// ValidateFile checks that a file looks like the expected format before it is loaded.
func ValidateFile(filename string, expected FileFormat) error {
	info, ok := supportedFormats[expected]
	if !ok {
		return fmt.Errorf("unknown format: %d", expected)
	}
	stat, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if stat.Size() < info.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, stat.Size(), info.Description, info.MinSize)
	}
	if expected == FormatSnapshot {
		return validateSnapshotHeader(filename)
	}
	return nil
}

// validateSnapshotHeader peeks at the first byte, a snapshot always starts with a msgpack map.
func validateSnapshotHeader(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var header [1]byte
	if _, err := io.ReadFull(file, header[:]); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	b := header[0]
	if (b < 0x80 || b > 0x8f) && b != 0xde && b != 0xdf {
		return fmt.Errorf("file %s does not start with a msgpack map (0x%02x)", filename, b)
	}
	log.Debugf("Snapshot file %s validated", filename)
	return nil
}

// WriteSnapshot encodes the dictionary as a msgpack Snapshot.
func (d *Dictionary) WriteSnapshot(w io.Writer) error {
	bw := bufio.NewWriter(w)
	enc := msgpack.NewEncoder(bw)
	snap := Snapshot{Version: SnapshotVersion, Words: d.Words()}
	if err := enc.Encode(&snap); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return bw.Flush()
}

// ReadSnapshot decodes a Snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Dictionary, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(bufio.NewReader(r)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d (want %d)", snap.Version, SnapshotVersion)
	}
	return New(snap.Words...), nil
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
