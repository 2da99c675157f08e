package snapshot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// File stores one JSON envelope per key in a directory tree. Keys are
// hashed into paths, so any key is safe to use.
type File struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// FileOption configures a File backend.
type FileOption func(*File)

// WithFileTTL expires entries ttl after they were written. Zero (the
// default) keeps them forever.
func WithFileTTL(ttl time.Duration) FileOption {
	return func(f *File) { f.ttl = ttl }
}

// NewFile creates a file backend rooted at dir, creating it if needed.
func NewFile(dir string, opts ...FileOption) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	f := &File{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// fileEntry wraps stored data with the key and expiry.
type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (f *File) Name() string { return "file" }

func (f *File) Put(_ context.Context, key string, data []byte) error {
	entry := fileEntry{Key: key, Data: data}
	if f.ttl > 0 {
		entry.ExpiresAt = f.now().Add(f.ttl)
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := f.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	entry, ok, err := f.read(f.path(key))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return entry.Data, nil
}

// read loads the entry at path. Corrupt and expired entries are removed
// and reported as missing.
func (f *File) read(path string) (fileEntry, bool, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileEntry{}, false, nil
	}
	if err != nil {
		return fileEntry{}, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		_ = os.Remove(path)
		return fileEntry{}, false, nil
	}
	if !entry.ExpiresAt.IsZero() && f.now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return fileEntry{}, false, nil
	}
	return entry, true, nil
}

func (f *File) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (f *File) List(ctx context.Context) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(f.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		entry, ok, err := f.read(path)
		if err != nil {
			return err
		}
		if ok {
			keys = append(keys, entry.Key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", f.dir, err)
	}
	slices.Sort(keys)
	return keys, nil
}

func (f *File) Close() error { return nil }

// path spreads entries over subdirectories named by the first two hex
// characters of the key's SHA-256.
func (f *File) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	h := hex.EncodeToString(sum[:])
	return filepath.Join(f.dir, h[:2], h[2:]+".json")
}

var _ Backend = (*File)(nil)
