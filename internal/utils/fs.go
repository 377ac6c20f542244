package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DirStatus is the outcome of probing a directory.
type DirStatus struct {
	Exists   bool
	Writable bool
	Err      error
}

// FileExists reports whether path can be stat'ed.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dir and its parents when missing.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// ProbeDir creates dir if needed and checks that a file can be written inside it.
func ProbeDir(dir string) DirStatus {
	if err := EnsureDir(dir); err != nil {
		log.Debugf("Cannot create directory %s: %v", dir, err)
		return DirStatus{Err: err}
	}
	status := DirStatus{Exists: true}
	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		log.Debugf("Directory %s is not writable: %v", dir, err)
		status.Err = err
		return status
	}
	probe.Close()
	os.Remove(probe.Name())
	status.Writable = true
	return status
}

// ExecutableDir returns the directory holding the running binary, symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// AbsPath returns path made absolute, or path unchanged when that fails.
func AbsPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
