package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// увеличивать при изменении формата CleanEntry
const cleanCacheSchemaVersion uint16 = 1

// Cache remembers documents that produced no record at all, so that an
// unchanged document under an unchanged configuration and lexicon is not
// processed again. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// CleanEntry is the msgpack payload of one clean document.
type CleanEntry struct {
	Schema    uint16 `msgpack:"schema"`
	Path      string `msgpack:"path"`
	CheckedAt int64  `msgpack:"checked_at"`
}

// CacheDir returns $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func CacheDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenCache opens (and creates) a cache rooted at dir.
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// CacheKey combines the content hash of a document with the configuration
// and lexicon digests.
func CacheKey(content [32]byte, configDigest, lexiconDigest string) string {
	h := sha256.New()
	_, _ = h.Write(content[:])
	_, _ = h.Write([]byte(configDigest))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(lexiconDigest))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) pathFor(key string) string {
	// подкаталог по первым двум символам, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "clean", key[:2], key+".mp")
}

// IsClean reports whether key was recorded as clean. A nil cache is always a miss.
func (c *Cache) IsClean(key string) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	var entry CleanEntry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		// битая запись равна промаху
		return false, nil
	}
	return entry.Schema == cleanCacheSchemaVersion, nil
}

// MarkClean records key as clean, atomically.
func (c *Cache) MarkClean(key, path string) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := msgpack.Marshal(&CleanEntry{
		Schema:    cleanCacheSchemaVersion,
		Path:      path,
		CheckedAt: time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(f.Name(), p)
}

// DropAll invalidates the cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
