package research

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// fileCache stores fetched page bodies on disk keyed by URL hash. Entries
// older than the TTL are treated as missing.
type fileCache struct {
	dir string
	ttl time.Duration
}

func newFileCache(dir string, ttl time.Duration) *fileCache {
	return &fileCache{dir: dir, ttl: ttl}
}

func (c *fileCache) path(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".html")
}

func (c *fileCache) Get(url string) ([]byte, bool) {
	if c.dir == "" {
		return nil, false
	}

	path := c.path(url)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *fileCache) Put(url string, body []byte) error {
	if c.dir == "" {
		return nil
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create cache directory", goerr.V("dir", c.dir))
	}
	if err := os.WriteFile(c.path(url), body, 0o644); err != nil {
		return goerr.Wrap(err, "failed to write cache entry", goerr.V("url", url))
	}
	return nil
}
