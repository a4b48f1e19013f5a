package nodejs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"
)

const (
	// batchSize bounds the number of concurrent outbound registry lookups.
	batchSize = 10
	// batchDelay is the pause between batches, honoring the registry's
	// fair-use expectations.
	batchDelay    = 500 * time.Millisecond
	lookupTimeout = 15 * time.Second
)

// RegistryClient resolves package names to their latest published version
// against an npm-compatible registry.
type RegistryClient struct {
	baseURL string
	client  *http.Client
}

// NewRegistryClient creates a client for the given registry base URL.
func NewRegistryClient(baseURL string) *RegistryClient {
	return &RegistryClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: lookupTimeout},
	}
}

// FetchLatest resolves the latest published version for every given name.
// Names are processed in fixed-size batches; lookups within a batch run
// concurrently and batches run sequentially with a fixed delay in between.
// A failed lookup records the empty string for its name and never aborts
// the batch; no lookup is retried.
func (c *RegistryClient) FetchLatest(ctx context.Context, names []string) map[string]string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	results := make(map[string]string, len(sorted))
	var mu sync.Mutex

	for start := 0; start < len(sorted); start += batchSize {
		if start > 0 {
			time.Sleep(batchDelay)
		}

		end := start + batchSize
		if end > len(sorted) {
			end = len(sorted)
		}

		var wg sync.WaitGroup
		for _, name := range sorted[start:end] {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()

				version, err := c.fetchOne(ctx, name)
				if err != nil {
					logger.Warnf("[nodejs] Failed to fetch latest version of %q: %v", name, err)
					version = ""
				}

				mu.Lock()
				results[name] = version
				mu.Unlock()
			}(name)
		}
		wg.Wait()
	}

	return results
}

// latestResponse is the registry's <name>/latest payload.
type latestResponse struct {
	Version string `json:"version"`
}

func (c *RegistryClient) fetchOne(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/latest", c.baseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("registry lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload latestResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return "", fmt.Errorf("failed to parse registry response: %w", decodeErr)
	}
	if payload.Version == "" {
		return "", fmt.Errorf("registry returned no version for %q", name)
	}
	return payload.Version, nil
}
