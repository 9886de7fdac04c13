package mediasvc

import (
	"context"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/studysphere/core"
)

// MediaURLPrefix is the path the API serves disk-stored files under.
const MediaURLPrefix = "/media"

type diskStore struct {
	dir     string
	baseURL string
}

var _ core.MediaStore = (*diskStore)(nil)

func NewDiskStore(conf *core.Config) *diskStore {
	return &diskStore{dir: conf.Storage.DiskDir, baseURL: conf.BaseURL}
}

func (s *diskStore) Upload(_ context.Context, folder, key, _ string, r io.Reader) (string, error) {
	rel := path.Clean(path.Join("/", folder, key))
	if strings.HasSuffix(rel, "/") || rel == "/" {
		return "", errors.New("invalid object key")
	}

	fp := filepath.Join(s.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(fp), 0o755); err != nil {
		return "", errors.Wrap(err, "creating media folder")
	}

	// a failed upload never leaves a partial file behind
	tmp, err := os.CreateTemp(filepath.Dir(fp), ".upload-*")
	if err != nil {
		return "", errors.Wrap(err, "creating temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", errors.Wrap(err, "writing file")
	}
	if err = tmp.Close(); err != nil {
		return "", errors.Wrap(err, "closing file")
	}
	if err = os.Rename(tmp.Name(), fp); err != nil {
		return "", errors.Wrap(err, "moving file")
	}

	u := url.URL{Path: MediaURLPrefix + rel}
	return s.baseURL + u.EscapedPath(), nil
}
