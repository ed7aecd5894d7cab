// Package fsblob stores blobs on the local filesystem, served back under a
// public base URL. It stands in for a hosted object store when the portal
// runs self-contained.
package fsblob

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/rohitbokare05/Project-Connect-IITR/storage/blob"
)

type store struct {
	rootDir string
	baseURL string
}

var _ blob.Store = (*store)(nil)

func Open(rootDir, baseURL string) (blob.Store, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating blob root dir")
	}
	return &store{
		rootDir: rootDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *store) Upload(_ context.Context, path string, r io.Reader) (string, error) {
	fp, err := s.localPath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(fp), 0o755); err != nil {
		return "", errors.Wrap(err, "creating blob dir")
	}

	f, err := os.Create(fp)
	if err != nil {
		return "", errors.Wrap(err, "creating blob file")
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", errors.Wrap(err, "writing blob file")
	}
	return s.baseURL + "/" + path, nil
}

func (s *store) Delete(_ context.Context, url string) error {
	path := strings.TrimPrefix(url, s.baseURL+"/")
	fp, err := s.localPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(fp); err != nil {
		if os.IsNotExist(err) {
			return blob.ErrNotFound
		}
		return errors.Wrap(err, "removing blob file")
	}
	return nil
}

// localPath maps a blob path to a file under rootDir, refusing path escapes.
func (s *store) localPath(path string) (string, error) {
	fp := filepath.Join(s.rootDir, filepath.FromSlash(path))
	if !strings.HasPrefix(fp, filepath.Clean(s.rootDir)+string(os.PathSeparator)) {
		return "", errors.Errorf("invalid blob path %q", path)
	}
	return fp, nil
}
