package repositories

import (
	"github.com/rios0rios0/depscan/internal/domain/entities"
)

// ManifestRepository reads a project manifest and produces the dependency
// records and supported Python versions consumed by the analyzer.
type ManifestRepository interface {
	Load(path string) (entities.Manifest, error)
}
