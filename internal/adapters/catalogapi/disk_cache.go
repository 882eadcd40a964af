package catalogapi

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/andrescamacho/gunsmith-go/internal/domain/shared"
)

// cacheEnvelope is the on-disk shape for every cache file (§6 "Cache layout
// on disk"): {timestamp, version, data}.
type cacheEnvelope struct {
	Timestamp int64           `json:"timestamp"`
	Version   int             `json:"version"`
	Data      json.RawMessage `json:"data"`
}

// DiskCache stores raw GraphQL responses under dir, one file per
// md5(query+sorted-variables), honoring a TTL and a version tag that
// invalidates every entry when bumped (§6).
type DiskCache struct {
	dir     string
	ttl     int64 // seconds
	version int
	clock   shared.Clock
}

func NewDiskCache(dir string, ttlSeconds int64, version int, clock shared.Clock) *DiskCache {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &DiskCache{dir: dir, ttl: ttlSeconds, version: version, clock: clock}
}

// Key hashes a query and its variables into a stable cache filename stem.
func (c *DiskCache) Key(query string, variables map[string]any) string {
	keys := make([]string, 0, len(variables))
	for k := range variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	canonical := query
	for _, k := range keys {
		canonical += fmt.Sprintf("%s=%v;", k, variables[k])
	}
	sum := md5.Sum([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

func (c *DiskCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Get returns cached data for key if present, version-matched, and not yet
// expired; nil otherwise. Any read or parse error is treated as a miss, not
// an error, matching the source's "except Exception: pass" behavior.
func (c *DiskCache) Get(key string) json.RawMessage {
	raw, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil
	}
	var env cacheEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil
	}
	if env.Version != c.version {
		return nil
	}
	if c.clock.Now().Unix()-env.Timestamp >= c.ttl {
		return nil
	}
	return env.Data
}

// Put writes data under key, creating the cache directory if needed.
func (c *DiskCache) Put(key string, data json.RawMessage) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	env := cacheEnvelope{Timestamp: c.clock.Now().Unix(), Version: c.version, Data: data}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	return os.WriteFile(c.path(key), raw, 0o644)
}
