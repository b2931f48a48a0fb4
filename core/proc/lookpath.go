package proc

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ErrNotFound is the error resulting if a path search failed to find an
// executable file.
var ErrNotFound = errors.New("command not found")

// SplitPath splits a PATH style list, dropping empty elements.
func SplitPath(path string) []string {
	var dirs []string
	for _, dir := range filepath.SplitList(path) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}
	if d.IsDir() {
		return fs.ErrPermission
	}
	if err := unix.Access(file, unix.X_OK); err != nil {
		return fs.ErrPermission
	}
	return nil
}

// LookPath searches for an executable named file in dirs, the first match
// wins. If file contains a slash, it is tried directly and dirs aren't
// consulted.
func LookPath(dirs []string, file string) (string, error) {
	if file == "" {
		return "", ErrNotFound
	}

	if strings.Contains(file, "/") {
		if err := findExecutable(file); err != nil {
			return "", pkgerrors.Wrap(err, file)
		}
		return file, nil
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", pkgerrors.Wrap(ErrNotFound, file)
}
