package registry

import (
	"context"
	"fmt"

	"github.com/rios0rios0/depscan/internal/domain/entities"
)

// pypiResponse mirrors the subset of the PyPI package-info payload the
// resolver needs.
type pypiResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
}

// resolvePyPI looks up the latest version of a package on PyPI, consulting
// the cache first.
func (it *ResolverRepository) resolvePyPI(
	ctx context.Context,
	name string,
) entities.Resolution {
	key := "pypi:" + name
	if resolution, ok := it.cached(key); ok {
		return resolution
	}

	resolution := it.fetchPyPI(ctx, name)
	it.store(key, resolution)
	return resolution
}

func (it *ResolverRepository) fetchPyPI(
	ctx context.Context,
	name string,
) entities.Resolution {
	url := fmt.Sprintf("%s/%s/json", it.pypiBaseURL, name)

	var payload pypiResponse
	if err := it.getJSON(ctx, url, false, &payload); err != nil {
		return entities.UnknownResolution(
			fmt.Sprintf("PyPI lookup for %q failed: %v", name, err),
		)
	}

	if payload.Info.Version == "" {
		return entities.UnknownResolution("")
	}
	return entities.ResolvedVersion(payload.Info.Version)
}
