package pyproject

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depscan/internal/domain/entities"
)

// Known manifest sections that carry dependency declarations.
const (
	sourceProjectDeps     = "project.dependencies"
	sourceProjectOptional = "project.optional-dependencies"
	sourceBuildRequires   = "build-system.requires"
	sourcePoetryDeps      = "tool.poetry.dependencies"
	sourcePoetryDev       = "tool.poetry.dev-dependencies"
	sourcePDMDeps         = "tool.pdm.dependencies"
	sourcePDMDev          = "tool.pdm.dev-dependencies"
	sourceHatchDeps       = "tool.hatch.metadata.dependencies"
	sourceFlitRequires    = "tool.flit.metadata.requires"
)

// ManifestRepository reads pyproject.toml manifests across the build-tool
// dialects in the wild: PEP 621, Poetry, PDM, Hatch, Flit and PEP 735
// dependency groups.
type ManifestRepository struct{}

// NewManifestRepository creates a new pyproject.toml manifest reader.
func NewManifestRepository() *ManifestRepository {
	return &ManifestRepository{}
}

// Load parses the manifest at path into dependency records and the set of
// supported Python versions.
func (it *ManifestRepository) Load(path string) (entities.Manifest, error) {
	var data map[string]any
	if _, err := toml.DecodeFile(path, &data); err != nil {
		return entities.Manifest{}, fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}

	requiresPython, _ := getNested(data, "project.requires-python").(string)
	if requiresPython == "" {
		// Poetry projects declare the interpreter range as a dependency.
		requiresPython, _ = getNested(data, "tool.poetry.dependencies.python").(string)
	}

	manifest := entities.Manifest{
		Path:           path,
		RequiresPython: requiresPython,
		Dependencies:   extractDependencies(data),
		PythonVersions: ParseRequiresPython(requiresPython),
	}

	logger.Debugf("Extracted %d dependencies from %s", len(manifest.Dependencies), path)
	return manifest, nil
}

// extractDependencies collects dependency records from every known section.
func extractDependencies(data map[string]any) []entities.Dependency {
	var result []entities.Dependency

	// Standard PEP 621
	result = append(result, extractFromPath(data, "project.dependencies", sourceProjectDeps)...)
	result = append(result, extractOptionalDependencies(data)...)
	result = append(result, extractFromPath(data, "build-system.requires", sourceBuildRequires)...)

	// Build tool sections
	result = append(result, extractFromPath(data, "tool.poetry.dependencies", sourcePoetryDeps)...)
	result = append(result, extractFromPath(data, "tool.poetry.dev-dependencies", sourcePoetryDev)...)
	result = append(result, extractPoetryGroups(data)...)
	result = append(result, extractFromPath(data, "tool.pdm.dependencies", sourcePDMDeps)...)
	result = append(result, extractFromPath(data, "tool.pdm.dev-dependencies", sourcePDMDev)...)
	result = append(result, extractFromPath(data, "tool.hatch.metadata.dependencies", sourceHatchDeps)...)
	result = append(result, extractHatchEnvs(data)...)
	result = append(result, extractFromPath(data, "tool.flit.metadata.requires", sourceFlitRequires)...)

	// PEP 735 dependency-groups
	result = append(result, extractDependencyGroups(data)...)

	return result
}

// getNested walks a dot-separated path through nested tables.
func getNested(data map[string]any, path string) any {
	var current any = data
	for _, key := range strings.Split(path, ".") {
		table, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = table[key]
		if current == nil {
			return nil
		}
	}
	return current
}

func extractFromPath(data map[string]any, path, source string) []entities.Dependency {
	switch nested := getNested(data, path).(type) {
	case []any:
		return extractFromList(nested, source)
	case map[string]any:
		return extractFromTable(nested, source)
	default:
		return nil
	}
}

// extractFromList parses a list of PEP 508 dependency strings.
func extractFromList(deps []any, source string) []entities.Dependency {
	var result []entities.Dependency
	for _, raw := range deps {
		spec, ok := raw.(string)
		if !ok {
			continue
		}
		if dep, parsed := parseDependencyString(spec, source); parsed {
			result = append(result, dep)
		}
	}
	return result
}

// extractFromTable parses a Poetry/PDM style table of name -> spec entries,
// where spec is either a constraint string or a table with version, python,
// extras and git fields. The interpreter's own "python" entry is skipped.
func extractFromTable(deps map[string]any, source string) []entities.Dependency {
	var result []entities.Dependency
	for name, spec := range deps {
		if strings.EqualFold(name, "python") {
			continue
		}
		switch value := spec.(type) {
		case string:
			if dep, parsed := parseDependencyString(name+value, source); parsed {
				result = append(result, dep)
			}
		case map[string]any:
			result = append(result, parsePoetryTableSpec(name, value, source))
		}
	}
	return result
}

// extractOptionalDependencies walks project.optional-dependencies extras.
func extractOptionalDependencies(data map[string]any) []entities.Dependency {
	optional, ok := getNested(data, "project.optional-dependencies").(map[string]any)
	if !ok {
		return nil
	}

	var result []entities.Dependency
	for extra, deps := range optional {
		list, isList := deps.([]any)
		if !isList {
			continue
		}
		source := fmt.Sprintf("%s.%s", sourceProjectOptional, extra)
		result = append(result, extractFromList(list, source)...)
	}
	return result
}

// extractPoetryGroups walks tool.poetry.group.<name>.dependencies tables.
func extractPoetryGroups(data map[string]any) []entities.Dependency {
	groups, ok := getNested(data, "tool.poetry.group").(map[string]any)
	if !ok {
		return nil
	}

	var result []entities.Dependency
	for group, groupData := range groups {
		table, isTable := groupData.(map[string]any)
		if !isTable {
			continue
		}
		source := fmt.Sprintf("tool.poetry.group.%s.dependencies", group)
		switch deps := table["dependencies"].(type) {
		case map[string]any:
			result = append(result, extractFromTable(deps, source)...)
		case []any:
			result = append(result, extractFromList(deps, source)...)
		}
	}
	return result
}

// extractHatchEnvs walks tool.hatch.envs.<name>.dependencies lists.
func extractHatchEnvs(data map[string]any) []entities.Dependency {
	envs, ok := getNested(data, "tool.hatch.envs").(map[string]any)
	if !ok {
		return nil
	}

	var result []entities.Dependency
	for env, envData := range envs {
		table, isTable := envData.(map[string]any)
		if !isTable {
			continue
		}
		deps, isList := table["dependencies"].([]any)
		if !isList {
			continue
		}
		source := fmt.Sprintf("tool.hatch.envs.%s.dependencies", env)
		result = append(result, extractFromList(deps, source)...)
	}
	return result
}

// extractDependencyGroups walks PEP 735 dependency-groups lists.
func extractDependencyGroups(data map[string]any) []entities.Dependency {
	groups, ok := data["dependency-groups"].(map[string]any)
	if !ok {
		return nil
	}

	var result []entities.Dependency
	for group, deps := range groups {
		list, isList := deps.([]any)
		if !isList {
			continue
		}
		source := "dependency-groups." + group
		result = append(result, extractFromList(list, source)...)
	}
	return result
}
