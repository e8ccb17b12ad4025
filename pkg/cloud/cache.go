package cloud

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"

	"gitlab.com/davidxarnold/agentless/pkg/util"
)

// cacheSize bounds the number of instances kept in memory.
const cacheSize = 10000

// minLRUTTL is the shortest TTL handed to the LRU, whose janitor ticks at a
// fraction of it. Shorter TTLs are still honored through entry timestamps.
const minLRUTTL = time.Second

// cacheEntry holds cached cloud provider information with its fetch time.
type cacheEntry struct {
	InstanceType string
	State        string
	Timestamp    time.Time
}

// Cache holds the in-memory cloud info cache with TTL and optional disk
// persistence. The cache key is the full provider ID string.
type Cache struct {
	lru       *expirable.LRU[string, cacheEntry]
	ttl       time.Duration
	path      string
	providers map[string]Provider
}

// NewCache creates a new cloud cache with the specified TTL and disk setting.
func NewCache(ttl time.Duration, useDisk bool) *Cache {
	path := ""
	if useDisk {
		path = defaultCachePath()
	}
	return newCache(ttl, path)
}

// newCache creates a cache persisted at path, or memory-only when path is
// empty.
func newCache(ttl time.Duration, path string) *Cache {
	lruTTL := ttl
	if lruTTL > 0 && lruTTL < minLRUTTL {
		lruTTL = minLRUTTL
	}
	c := &Cache{
		lru:       expirable.NewLRU[string, cacheEntry](cacheSize, nil, lruTTL),
		ttl:       ttl,
		path:      path,
		providers: make(map[string]Provider),
	}
	if path != "" {
		c.loadFromDisk()
	}
	return c
}

// Get retrieves a cached cloud info entry if it exists and is not expired.
func (c *Cache) Get(key string) (*Metadata, bool) {
	entry, ok := c.lru.Get(key)
	if !ok || c.expired(entry) {
		return nil, false
	}
	return &Metadata{
		InstanceType: entry.InstanceType,
		State:        entry.State,
	}, true
}

// Set stores a cloud info entry in the cache.
func (c *Cache) Set(key string, metadata *Metadata) {
	c.lru.Add(key, cacheEntry{
		InstanceType: metadata.InstanceType,
		State:        metadata.State,
		Timestamp:    time.Now(),
	})
}

func (c *Cache) expired(e cacheEntry) bool {
	return c.ttl > 0 && time.Since(e.Timestamp) > c.ttl
}

// Len returns the number of cached entries, expired ones included until
// they are evicted.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// GetOrFetch returns cached metadata when available or asks the provider
// named by the provider ID scheme and populates the cache. Unknown
// providers return nil metadata and no error.
func (c *Cache) GetOrFetch(ctx context.Context, providerID string) (*Metadata, error) {
	if md, ok := c.Get(providerID); ok {
		return md, nil
	}

	name, parts := util.ParseProviderID(providerID)
	provider := c.provider(name)
	if provider == nil {
		return nil, nil
	}

	md, err := provider.InstanceMetadata(ctx, strings.TrimPrefix(strings.Join(parts, "/"), "/"))
	if err != nil || md == nil {
		return nil, err
	}

	c.Set(providerID, md)
	return md, nil
}

// provider returns the memoized provider for name so that SDK clients are
// reused across lookups.
func (c *Cache) provider(name string) Provider {
	if p, ok := c.providers[name]; ok {
		return p
	}
	p := LookupProvider(name)
	if p != nil {
		c.providers[name] = p
	}
	return p
}

// defaultCachePath returns the path to the disk cache file.
func defaultCachePath() string {
	home, err := homedir.Dir()
	if err != nil {
		log.Debugf("failed to get home directory for cloud cache: %v", err)
		return ""
	}
	return filepath.Join(home, ".agentless", "cloud-cache.json")
}

// loadFromDisk loads cached cloud info from disk, skipping expired entries.
func (c *Cache) loadFromDisk() {
	// #nosec G304 - path is computed from home directory, not user input
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debugf("failed to read cloud cache from disk: %v", err)
		}
		return
	}

	var diskCache map[string]cacheEntry
	if err := json.Unmarshal(data, &diskCache); err != nil {
		log.Debugf("failed to unmarshal cloud cache: %v", err)
		return
	}

	for key, entry := range diskCache {
		if !c.expired(entry) {
			c.lru.Add(key, entry)
		}
	}

	log.Debugf("loaded %d cloud cache entries from disk", c.lru.Len())
}

// Save writes the unexpired entries to disk. It is a no-op for a
// memory-only cache.
func (c *Cache) Save() error {
	if c.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0750); err != nil {
		return err
	}

	out := make(map[string]cacheEntry, c.lru.Len())
	for _, key := range c.lru.Keys() {
		if e, ok := c.lru.Peek(key); ok && !c.expired(e) {
			out[key] = e
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0600)
}
