// Package documents manages the uploaded identity files attached to parties.
package documents

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Store removes party document files from the upload directory.
type Store interface {
	Remove(paths ...string) int
}

type aferoStore struct {
	fs     afero.Fs
	root   string
	logger logrus.FieldLogger
}

// NewStore returns a Store rooted at dir on fs. Paths outside dir are ignored.
func NewStore(fs afero.Fs, dir string, logger logrus.FieldLogger) Store {
	return &aferoStore{fs: fs, root: filepath.Clean(dir), logger: logger}
}

// Remove deletes each file and returns how many were removed. Missing files
// and failures are logged and skipped.
func (s *aferoStore) Remove(paths ...string) int {
	removed := 0
	for _, p := range paths {
		if p == "" {
			continue
		}

		full, ok := s.resolve(p)
		if !ok {
			s.logger.WithField("path", p).Warn("Refusing to remove document outside upload dir")
			continue
		}

		if err := s.fs.Remove(full); err != nil {
			if !os.IsNotExist(err) {
				s.logger.WithError(err).WithField("path", full).Warn("Failed to remove document")
			}
			continue
		}
		removed++
	}
	return removed
}

func (s *aferoStore) resolve(p string) (string, bool) {
	name := filepath.Clean(strings.TrimPrefix(filepath.ToSlash(p), "/uploads/"))
	full := name
	if !filepath.IsAbs(name) {
		full = filepath.Join(s.root, name)
	}
	if full != s.root && !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", false
	}
	return full, true
}
