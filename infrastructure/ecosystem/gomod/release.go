package gomod

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"
)

const (
	releaseFeedURL     = "https://go.dev/dl/?mode=json"
	releaseFeedTimeout = 15 * time.Second
)

// toolchainResolver resolves the latest Go toolchain version once per run.
// A pinned version short-circuits the release-feed query entirely, keeping
// toolchain analysis free of network access.
type toolchainResolver struct {
	pinned  string
	feedURL string

	once   sync.Once
	latest string
}

func newToolchainResolver(pinned string) *toolchainResolver {
	return &toolchainResolver{
		pinned:  strings.TrimPrefix(pinned, "v"),
		feedURL: releaseFeedURL,
	}
}

// Resolve returns the latest known Go version, or the empty string when it
// cannot be determined (the toolchain entry then classifies as unknown).
func (r *toolchainResolver) Resolve(ctx context.Context) string {
	if r.pinned != "" {
		return r.pinned
	}

	r.once.Do(func() {
		version, err := fetchLatestRelease(ctx, r.feedURL)
		if err != nil {
			logger.Warnf("[gomod] Failed to fetch latest Go version: %v", err)
			return
		}
		if !canonical(version) {
			logger.Warnf("[gomod] Release feed returned non-semantic version %q", version)
			return
		}
		logger.Infof("[gomod] Latest stable Go version: %s", version)
		r.latest = version
	})

	return r.latest
}

// goRelease is one entry of the go.dev download feed.
type goRelease struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

// fetchLatestRelease queries the release feed for the first stable version.
func fetchLatestRelease(ctx context.Context, feedURL string) (string, error) {
	client := &http.Client{Timeout: releaseFeedTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch Go versions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var releases []goRelease
	if decodeErr := json.NewDecoder(resp.Body).Decode(&releases); decodeErr != nil {
		return "", fmt.Errorf("failed to parse Go versions: %w", decodeErr)
	}

	for _, release := range releases {
		if release.Stable {
			return strings.TrimPrefix(release.Version, "go"), nil
		}
	}

	return "", errors.New("no stable Go version found")
}
