package manifest

import (
	"bufio"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/pypin/pkg/errors"
)

// ReadLines reads the manifest at path, one entry per line, with line
// endings removed. A missing file yields FILE_NOT_FOUND.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fileError(err, "read %s", path)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fileError(err, "read %s", path)
	}
	return lines, nil
}

// WriteFile writes out to path, creating missing parent directories.
// Permission failures yield PERMISSION_DENIED.
func WriteFile(path string, out Output) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fileError(err, "create directory %s", dir)
		}
	}
	if err := os.WriteFile(path, []byte(out.String()), 0o644); err != nil {
		return fileError(err, "write %s", path)
	}
	return nil
}

func fileError(err error, format string, args ...any) error {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.Wrap(errors.ErrCodeFileNotFound, err, format, args...)
	case stderrors.Is(err, fs.ErrPermission):
		return errors.Wrap(errors.ErrCodePermissionDenied, err, format, args...)
	default:
		return errors.Wrap(errors.ErrCodeInternal, err, format, args...)
	}
}
