package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// diskCacheSchemaVersion guards against loading a payload written by an
// older, incompatible layout. Bump it whenever DiskPayload's fields change.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file simplification summaries on disk, keyed by the
// SHA-256 of the file's raw content, so a SimplifyDir batch run over an
// unchanged tree can skip the pipeline entirely for files it has already
// seen. It is safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is what gets serialized for one cached file.
type DiskPayload struct {
	Schema       uint16
	Monomorphs   []string
	ErrorCount   int
	WarningCount int
}

// OpenDiskCache opens (creating if necessary) the on-disk cache directory
// for app under $XDG_CACHE_HOME, or ~/.cache if that's unset.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "files", hex.EncodeToString(key[:])+".mp")
}

// Put writes payload to the cache under key, replacing any prior entry.
func (c *DiskCache) Put(key [32]byte, payload DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskCacheSchemaVersion

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		os.Remove(tmpName)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, p)
}

// Get reads the cached payload for key. The second return value is false
// when there is no entry, or the entry was written by an incompatible
// schema version, and is not itself an error.
func (c *DiskCache) Get(key [32]byte) (DiskPayload, bool, error) {
	var out DiskPayload
	if c == nil {
		return out, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, false, nil
		}
		return out, false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return DiskPayload{}, false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return DiskPayload{}, false, nil
	}
	return out, true, nil
}

// hashFile returns the SHA-256 of path's raw bytes, used as the cache key
// so an edited file always misses.
func hashFile(path string) ([32]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(content), nil
}
