package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// LooperFS is where the daemon finds its config. It resolves paths against
// its own notion of home and working directory so tests never touch the
// host filesystem.
type LooperFS interface {
	afero.Fs
	Abs(string) (string, error)
	HomeDir() (string, error)
}

type osFS struct {
	afero.Fs
}

func NewLooperOSFS() LooperFS {
	return &osFS{Fs: afero.NewOsFs()}
}

func (*osFS) Abs(path string) (string, error) { return filepath.Abs(path) }
func (*osFS) HomeDir() (string, error)        { return os.UserHomeDir() }

// memFS is rooted at "/", which is also its home and working directory.
type memFS struct {
	afero.Fs
}

func NewLooperMemFS() LooperFS {
	return &memFS{Fs: afero.NewMemMapFs()}
}

func (*memFS) Abs(path string) (string, error) { return filepath.Join("/", path), nil }
func (*memFS) HomeDir() (string, error)        { return "/", nil }

// ResolvePath expands a leading "~" to the home directory of fsys and makes
// the result absolute. Config paths often arrive through systemd units and
// environment variables, where the shell never expanded them.
func ResolvePath(fsys LooperFS, path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		home, err := fsys.HomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return fsys.Abs(path)
}
