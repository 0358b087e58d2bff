package updater

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"
)

// Notice describes an available upgrade.
type Notice struct {
	Current string
	Latest  string
	URL     string
}

// Check returns a Notice when a newer release exists, or nil. A fresh cache
// answers without network access; otherwise the latest release is fetched and
// cached. Development builds are never checked. Lookup failures are returned
// so callers can log them, but they should never fail a run.
func (u *Updater) Check(ctx context.Context, fsys afero.Fs) (*Notice, error) {
	if u.currentVersion == "" || u.currentVersion == "dev" {
		return nil, nil
	}

	cache, err := LoadCache(fsys, u.configDir)
	if err != nil {
		cache = nil
	}

	if IsCacheStale(cache, u.maxAge) {
		release, err := u.LatestRelease(ctx)
		if err != nil {
			return nil, err
		}
		cache = &VersionCache{
			LatestVersion: release.Version,
			ReleaseURL:    release.HTMLURL,
			CheckedAt:     time.Now(),
		}
		if err := SaveCache(fsys, u.configDir, cache); err != nil {
			return nil, err
		}
	}

	newer, err := Newer(u.currentVersion, cache.LatestVersion)
	if err != nil || !newer {
		return nil, err
	}
	return &Notice{Current: u.currentVersion, Latest: cache.LatestVersion, URL: cache.ReleaseURL}, nil
}

// PrintNotice prints n to w.
func PrintNotice(w io.Writer, n *Notice) {
	fmt.Fprintf(w, "\nUpdate available: %s -> %s\n", n.Current, n.Latest)
	if n.URL != "" {
		fmt.Fprintf(w, "    Download it from %s\n\n", n.URL)
	}
}
