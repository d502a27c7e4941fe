// Package localfs implements the binary store on a local filesystem
// through afero.
//
// Puts are staged: bytes are first written into a hidden staging area
// inside the store, then moved into place with Rename. On filesystems
// with atomic rename a crash mid-write never leaves a half-written file
// visible under its final key.
package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/segmentio/ksuid"
	"github.com/spf13/afero"

	"github.com/lakeland-data/lakeland/pkg/blob"
	"github.com/lakeland-data/lakeland/pkg/blob/status"
)

// stageName is the staging area key prefix. Keys reaching into it are
// rejected.
const stageName = ".put-stage"

// New creates a local filesystem backed binary store.
func New(fs afero.Fs) blob.Store {
	if fs == nil {
		fs = afero.NewBasePathFs(afero.NewOsFs(), filepath.Join(".lakeland", "blobs"))
	}
	return &localFS{fs: fs}
}

type localFS struct {
	fs afero.Fs
}

func maybeInvalidKey(key string) error {
	parts := strings.Split(strings.TrimLeft(key, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return status.ErrInvalidKey
	}
	if parts[0] == stageName {
		return status.ErrInvalidKey.Wrap(
			fmt.Errorf("key %q conflicts with staging area %q", key, stageName))
	}
	for _, p := range parts {
		if p == "." || p == ".." {
			return status.ErrInvalidKey.Wrap(fmt.Errorf("key %q contains a relative segment", key))
		}
	}
	return nil
}

func (l *localFS) String() string {
	const localfs = "localfs"
	switch fs := l.fs.(type) {
	case *afero.BasePathFs:
		pp, err := fs.RealPath("")
		if err != nil {
			return localfs
		}
		return localfs + "@" + pp
	default:
		return localfs
	}
}

func (l *localFS) Initialize() error {
	if err := l.fs.MkdirAll(stageName, 0700); err != nil {
		return fmt.Errorf("ensuring staging directory %q: %w", stageName, err)
	}
	return nil
}

func (l *localFS) Has(_ context.Context, key string) (bool, error) {
	if err := maybeInvalidKey(key); err != nil {
		return false, err
	}
	fi, err := l.fs.Stat(key)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !fi.IsDir(), nil
}

func (l *localFS) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	has, err := l.Has(ctx, key)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, status.ErrNotFound
	}
	return l.fs.Open(key)
}

func (l *localFS) GetAttr(ctx context.Context, key string) (blob.Attrs, error) {
	if err := maybeInvalidKey(key); err != nil {
		return blob.Attrs{}, err
	}
	fi, err := l.fs.Stat(key)
	if err != nil {
		if os.IsNotExist(err) {
			return blob.Attrs{}, status.ErrNotFound
		}
		return blob.Attrs{}, err
	}
	if fi.IsDir() {
		return blob.Attrs{}, status.ErrNotFound
	}
	return blob.Attrs{Size: fi.Size()}, nil
}

func (l *localFS) Put(_ context.Context, key string, source io.Reader) error {
	if err := maybeInvalidKey(key); err != nil {
		return err
	}
	// stage under a unique name so concurrent puts of the same key
	// cannot interleave within one staging file
	stageKey := filepath.Join(stageName, ksuid.New().String())
	if err := l.writeFile(stageKey, source); err != nil {
		return err
	}
	// Rename doesn't create directories automatically
	if dir := filepath.Dir(key); dir != "" {
		if err := l.fs.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("ensuring directories for %q: %w", key, err)
		}
	}
	return l.fs.Rename(stageKey, key)
}

func (l *localFS) writeFile(key string, source io.Reader) error {
	if dir := filepath.Dir(key); dir != "" {
		if err := l.fs.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("ensuring directories for %q: %w", key, err)
		}
	}
	target, err := l.fs.OpenFile(key, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_SYNC, 0600)
	if err != nil {
		return fmt.Errorf("create record for %q: %w", key, err)
	}
	if _, err = io.Copy(target, source); err != nil {
		_ = target.Close()
		return fmt.Errorf("write record for %q: %w", key, err)
	}
	return target.Close()
}

func (l *localFS) Delete(_ context.Context, key string) error {
	if err := maybeInvalidKey(key); err != nil {
		return err
	}
	if err := l.fs.Remove(key); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %q: %w", key, err)
	}
	return nil
}

func (l *localFS) Keys(_ context.Context) ([]string, error) {
	const root = "."
	var res []string
	e := afero.Walk(l.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return nil
			}
			return err
		}
		if path == root {
			return nil
		}
		if info.IsDir() {
			if filepath.Base(path) == stageName {
				return filepath.SkipDir
			}
			return nil
		}
		res = append(res, filepath.ToSlash(path))
		return nil
	})
	if e != nil {
		return nil, e
	}
	return res, nil
}

func (l *localFS) Clear(_ context.Context) error {
	return l.fs.RemoveAll("/")
}
