package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/branding"
)

const (
	defaultAPIBase = "https://api.github.com"
	// DefaultTimeout bounds the release lookup so a slow network never
	// delays the command noticeably.
	DefaultTimeout = 2 * time.Second
)

// Release is the subset of a GitHub release the notice needs.
type Release struct {
	Version string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Updater checks for newer releases.
type Updater struct {
	currentVersion string
	httpClient     *http.Client
	apiBase        string
	configDir      string
	maxAge         time.Duration
}

// Option configures an Updater.
type Option func(*Updater)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) { u.httpClient = c }
}

// WithAPIBase points release lookups at another GitHub API root.
func WithAPIBase(base string) Option {
	return func(u *Updater) { u.apiBase = strings.TrimRight(base, "/") }
}

// WithMaxAge overrides how long a cached lookup stays fresh.
func WithMaxAge(d time.Duration) Option {
	return func(u *Updater) { u.maxAge = d }
}

// New returns an Updater for currentVersion that caches into configDir.
func New(currentVersion, configDir string, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		httpClient:     &http.Client{Timeout: DefaultTimeout},
		apiBase:        defaultAPIBase,
		configDir:      configDir,
		maxAge:         DefaultCacheMaxAge,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// LatestRelease fetches the latest release from GitHub.
func (u *Updater) LatestRelease(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", u.apiBase, branding.GitHubRepo())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", branding.CLIName())
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "token "+token)
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("parsing release JSON: %w", err)
	}
	return &release, nil
}

// Newer reports whether latest is a higher version than current. A leading
// "v" is accepted on both.
func Newer(current, latest string) (bool, error) {
	cv, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	lv, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing latest version %q: %w", latest, err)
	}
	return lv.GreaterThan(cv), nil
}
