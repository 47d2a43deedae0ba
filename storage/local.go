package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore writes menu files under a directory that the HTTP server
// exposes at publicPath.
type LocalStore struct {
	root       string
	publicPath string
}

func NewLocalStore(root, publicPath string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(root, menusDir), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &LocalStore{root: root, publicPath: strings.TrimRight(publicPath, "/")}, nil
}

// Root is the directory served under the public path.
func (l *LocalStore) Root() string { return l.root }

// Save copies r to disk and returns its public path, e.g. /media/menus/<uuid>_menu.pdf.
func (l *LocalStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := objectKey(name)
	dst := filepath.Join(l.root, filepath.FromSlash(key))

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("close %s: %w", key, err)
	}
	return l.publicPath + "/" + menusDir + "/" + url.PathEscape(path.Base(key)), nil
}

// Delete removes the file behind ref. Missing files are not an error.
func (l *LocalStore) Delete(ctx context.Context, ref string) error {
	base, err := url.PathUnescape(path.Base(ref))
	if err != nil {
		return fmt.Errorf("invalid file reference %q: %w", ref, err)
	}
	if base == "" || base == "." || base == "/" {
		return fmt.Errorf("invalid file reference %q", ref)
	}
	err = os.Remove(filepath.Join(l.root, menusDir, base))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", base, err)
	}
	return nil
}
