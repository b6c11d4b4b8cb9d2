//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
)

// StubManifestRepository implements repositories.ManifestRepository with a
// canned manifest.
type StubManifestRepository struct {
	Manifest entities.Manifest
	Err      error

	// --- spy: paths requested ---
	LoadedPaths []string
}

var _ repositories.ManifestRepository = (*StubManifestRepository)(nil)

func (r *StubManifestRepository) Load(path string) (entities.Manifest, error) {
	r.LoadedPaths = append(r.LoadedPaths, path)
	if r.Err != nil {
		return entities.Manifest{}, r.Err
	}
	return r.Manifest, nil
}
