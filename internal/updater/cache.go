package updater

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

const (
	cacheFileName = "version-check.json"
	// DefaultCacheMaxAge is how long a release lookup is reused.
	DefaultCacheMaxAge = 24 * time.Hour
)

// VersionCache holds the result of the last release lookup.
type VersionCache struct {
	LatestVersion string    `json:"latest_version"`
	ReleaseURL    string    `json:"release_url,omitempty"`
	CheckedAt     time.Time `json:"checked_at"`
}

// LoadCache reads the cache from dir. It returns nil, nil on first run.
func LoadCache(fsys afero.Fs, dir string) (*VersionCache, error) {
	path := filepath.Join(dir, cacheFileName)

	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	var cache VersionCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return &cache, nil
}

// SaveCache writes cache to dir, creating dir if needed.
func SaveCache(fsys afero.Fs, dir string, cache *VersionCache) error {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}

	if err := afero.WriteFile(fsys, filepath.Join(dir, cacheFileName), data, 0644); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}

// IsCacheStale returns true if the cache is nil or older than maxAge.
func IsCacheStale(cache *VersionCache, maxAge time.Duration) bool {
	if cache == nil {
		return true
	}
	return time.Since(cache.CheckedAt) > maxAge
}
