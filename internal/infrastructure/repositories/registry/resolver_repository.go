package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
	"github.com/rios0rios0/depscan/internal/domain/versions"
)

const (
	defaultPyPIBaseURL   = "https://pypi.org/pypi"
	defaultGitHubBaseURL = "https://api.github.com"
	userAgent            = "depscan (+https://github.com/rios0rios0/depscan)"
)

// ResolverRepository implements repositories.ResolverRepository against the
// PyPI JSON API and the GitHub releases/tags API. One instance owns an HTTP
// client and an unbounded result cache; cached entries (including failures)
// are served without a network call for the instance's lifetime.
type ResolverRepository struct {
	githubToken   string
	httpClient    *http.Client
	comparator    *versions.Comparator
	pypiBaseURL   string
	githubBaseURL string

	mu    sync.Mutex
	cache map[string]entities.Resolution
}

// NewResolverRepository creates a resolver with the given configuration.
// A non-positive timeout is a configuration error and fails immediately.
func NewResolverRepository(
	config repositories.ResolverConfig,
	comparator *versions.Comparator,
) (*ResolverRepository, error) {
	if config.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", config.Timeout)
	}

	return &ResolverRepository{
		githubToken:   config.GitHubToken,
		httpClient:    &http.Client{Timeout: config.Timeout},
		comparator:    comparator,
		pypiBaseURL:   defaultPyPIBaseURL,
		githubBaseURL: defaultGitHubBaseURL,
		cache:         make(map[string]entities.Resolution),
	}, nil
}

// ResolveOne resolves a single dependency: registry dependencies through the
// PyPI package-info endpoint, Git dependencies through the GitHub releases
// and tags endpoints. All failures degrade to an unknown Resolution.
func (it *ResolverRepository) ResolveOne(
	ctx context.Context,
	dep entities.Dependency,
) entities.Resolution {
	if dep.IsGit() {
		owner, repo, ok := parseGitHubURL(dep.Git.URL)
		if !ok {
			return entities.UnknownResolution(
				fmt.Sprintf("Could not parse GitHub URL: %q", dep.Git.URL),
			)
		}
		return it.resolveGitHub(ctx, owner, repo)
	}

	return it.resolvePyPI(ctx, dep.Name)
}

// ResolveMany resolves all unique dependency names with at most concurrency
// lookups in flight. A failure in one dependency never aborts the others.
// The caller guarantees a positive concurrency bound.
func (it *ResolverRepository) ResolveMany(
	ctx context.Context,
	deps []entities.Dependency,
	concurrency int,
) map[string]entities.Resolution {
	seen := make(map[string]bool, len(deps))
	unique := make([]entities.Dependency, 0, len(deps))
	for _, dep := range deps {
		if seen[dep.Name] {
			continue // first occurrence wins
		}
		seen[dep.Name] = true
		unique = append(unique, dep)
	}

	results := make(map[string]entities.Resolution, len(unique))
	var resultsMu sync.Mutex

	group := new(errgroup.Group)
	group.SetLimit(concurrency)
	for _, dep := range unique {
		group.Go(func() error {
			resolution := it.ResolveOne(ctx, dep)

			resultsMu.Lock()
			results[dep.Name] = resolution
			resultsMu.Unlock()
			return nil
		})
	}
	// Workers never return errors; failures live inside the Resolutions.
	_ = group.Wait()

	return results
}

// cached returns the stored resolution for a key, if present.
func (it *ResolverRepository) cached(key string) (entities.Resolution, bool) {
	it.mu.Lock()
	defer it.mu.Unlock()
	resolution, ok := it.cache[key]
	return resolution, ok
}

// store records a resolution for a key before it is returned to the caller,
// so repeated lookups within the resolver's lifetime skip the network.
func (it *ResolverRepository) store(key string, resolution entities.Resolution) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.cache[key] = resolution
}

// getJSON performs a GET request with the resolver's standard headers and
// decodes the JSON response into v. The GitHub credential is attached only
// to GitHub requests.
func (it *ResolverRepository) getJSON(
	ctx context.Context,
	url string,
	forGitHub bool,
	v any,
) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if forGitHub && it.githubToken != "" {
		req.Header.Set("Authorization", "token "+it.githubToken)
	}

	resp, err := it.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("API error (status %d)", resp.StatusCode)
	}

	if unmarshalErr := json.Unmarshal(body, v); unmarshalErr != nil {
		return fmt.Errorf("failed to parse response: %w", unmarshalErr)
	}
	return nil
}
