package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"flux/internal/format"
)

// Schema version, incremented whenever cachePayload or the output format of
// the formatter changes.
const cacheSchemaVersion uint16 = 1

// Cache keeps canonical renderings on disk keyed by the digest of the input
// content and the formatting options. A nil *Cache is a valid no-op cache.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema    uint16
	Formatted []byte
}

// OpenCache initializes a disk cache at the standard location.
func OpenCache(app string) (*Cache, error) {
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
	return &Cache{dir: dir}, nil
}

// OpenCacheAt initializes a disk cache rooted at an explicit directory.
func OpenCacheAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// cacheKey derives the lookup digest from the source content hash and every
// option that affects the rendered bytes.
func cacheKey(contentHash [32]byte, opt format.Options) [32]byte {
	h := sha256.New()
	h.Write(contentHash[:])

	var fields [11]byte
	binary.LittleEndian.PutUint16(fields[0:], cacheSchemaVersion)
	binary.LittleEndian.PutUint32(fields[2:], uint32(opt.IndentWidth)) // #nosec G115 -- indent width is a small positive setting
	binary.LittleEndian.PutUint32(fields[6:], uint32(opt.MaxWidth))   // #nosec G115 -- max width is a small positive setting
	if opt.UseTabs {
		fields[10] = 1
	}
	h.Write(fields[:])

	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (c *Cache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "fmt", hex.EncodeToString(key[:])+".mp")
}

// Put serializes the formatted output to the cache.
func (c *Cache) Put(key [32]byte, formatted []byte) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&cachePayload{Schema: cacheSchemaVersion, Formatted: formatted}); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace.
	return os.Rename(f.Name(), p)
}

// Get reads a cached rendering. The boolean reports a hit; stale schema
// versions read as misses.
func (c *Cache) Get(key [32]byte) ([]byte, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		_ = f.Close()
	}()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return payload.Formatted, true, nil
}
