package zarr

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

const (
	MemoryStoreType = "MemoryStore"
	LocalStoreType  = "LocalStore"

	dirPermissionBits  = 0755
	filePermissionBits = 0644
)

// Store is a flat key/value abstraction over array storage. Keys are
// slash-joined logical paths ("crop0/.zarray", "crop0/0.0.0.1.1"). Put
// fully replaces any existing value; there is no partial update.
type Store interface {
	Get(key string) (io.ReadCloser, error)
	Put(key string, val io.Reader) error
	Type() string
}

// MemoryStore holds values in process memory. Useful for tests and for
// staging trees before copying them out.
type MemoryStore struct {
	lk   sync.Mutex
	data map[string][]byte
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: map[string][]byte{},
	}
}

func (s *MemoryStore) Type() string { return MemoryStoreType }

func (s *MemoryStore) Get(key string) (io.ReadCloser, error) {
	s.lk.Lock()
	defer s.lk.Unlock()
	d, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return io.NopCloser(bytes.NewBuffer(d)), nil
}

func (s *MemoryStore) Put(key string, val io.Reader) error {
	d, err := io.ReadAll(val)
	if err != nil {
		return err
	}

	s.lk.Lock()
	defer s.lk.Unlock()
	s.data[key] = d

	return nil
}

// LocalStore keeps values as files under a base directory. Writes go
// through a temp file and rename, so concurrent readers of a key observe
// either the old or the new value, never a torn one. Writes to the same
// key still race last-write-wins.
type LocalStore struct {
	base string
}

var _ Store = (*LocalStore)(nil)

func NewLocalStore(base string) (*LocalStore, error) {
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(base, dirPermissionBits); err != nil {
		return nil, fmt.Errorf("%w: creating store base %s: %v", ErrIO, base, err)
	}

	return &LocalStore{
		base: base,
	}, nil
}

func (s *LocalStore) Type() string { return LocalStoreType }

func (s *LocalStore) Get(key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.base, key))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return f, err
}

func (s *LocalStore) Put(key string, val io.Reader) error {
	path := filepath.Join(s.base, key)
	if err := os.MkdirAll(filepath.Dir(path), dirPermissionBits); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrIO, filepath.Dir(path), err)
	}
	if err := writeFileAtomic(path, val); err != nil {
		return err
	}
	if c, ok := val.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// writeFileAtomic stages val in a temp file in the target's directory,
// then renames it into place.
func writeFileAtomic(path string, val io.Reader) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".zarr-tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file in %s: %v", ErrIO, dir, err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, val); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%w: syncing %s: %v", ErrIO, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", ErrIO, tmpPath, err)
	}
	tmp = nil

	if err := os.Chmod(tmpPath, filePermissionBits); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: chmod %s: %v", ErrIO, tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: renaming into %s: %v", ErrIO, path, err)
	}
	return nil
}
