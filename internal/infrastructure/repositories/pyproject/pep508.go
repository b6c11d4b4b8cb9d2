package pyproject

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rios0rios0/depscan/internal/domain/entities"
)

var (
	// Poetry parenthesized constraint: "package[extras] (>=1.0)".
	poetrySpecPattern = regexp.MustCompile(`^([a-zA-Z0-9._-]+)(?:\[([^\]]+)\])?\(([^)]+)\)(.*)$`)
	// Standard PEP 508 spec: "package[extras]>=1.0".
	standardSpecPattern = regexp.MustCompile(`^([a-zA-Z0-9._-]+)(?:\[([^\]]+)\])?(.*)$`)
	// "package @ git+https://..." direct reference form.
	gitNameURLPattern = regexp.MustCompile(`^([a-zA-Z0-9._-]+)\s*@\s*(.+)$`)
	// URL with an optional trailing "@ref".
	gitRefPattern = regexp.MustCompile(`^(.+?)(?:@([^@]+))?$`)
	// Repository name segment of a git URL.
	repoNamePattern = regexp.MustCompile(`/([a-zA-Z0-9._-]+?)(?:\.git)?(?:@|$)`)
)

// normalizePackageName lowercases a package name and unifies separators,
// following PEP 503.
func normalizePackageName(name string) string {
	replacer := strings.NewReplacer("-", "_", ".", "_")
	return replacer.Replace(strings.ToLower(name))
}

// parseDependencyString parses one dependency specification, either PEP 508
// or Poetry format. The second return value is false for blank or
// unparseable specs.
func parseDependencyString(spec, source string) (entities.Dependency, bool) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return entities.Dependency{}, false
	}

	if isGitDependency(spec) {
		return parseGitDependency(spec, source), true
	}
	return parseRegistryDependency(spec, source)
}

func isGitDependency(spec string) bool {
	lowered := strings.ToLower(spec)
	for _, prefix := range []string{"git+", "git://", "@git+"} {
		if strings.Contains(lowered, prefix) {
			return true
		}
	}
	return false
}

func parseRegistryDependency(spec, source string) (entities.Dependency, bool) {
	// Normalize Poetry-style parentheses: "package (>=1.0)" -> "package(>=1.0)"
	normalized := strings.ReplaceAll(spec, " (", "(")
	normalized = strings.ReplaceAll(normalized, "( ", "(")

	// The part after a semicolon carries environment markers.
	specPart, markers, _ := strings.Cut(normalized, ";")
	specPart = strings.TrimSpace(specPart)
	markers = strings.TrimSpace(markers)

	name, extras, constraints := parseSpecPart(specPart)
	if name == "" {
		return entities.Dependency{}, false
	}

	return entities.Dependency{
		Name:     normalizePackageName(name),
		RawSpec:  spec,
		Source:   source,
		Markers:  markers,
		Extras:   extras,
		Registry: &entities.RegistrySource{Constraints: constraints},
	}, true
}

// parseSpecPart splits "name[extras]constraints" into its components.
func parseSpecPart(spec string) (string, []string, string) {
	if match := poetrySpecPattern.FindStringSubmatch(spec); match != nil {
		return match[1], splitExtras(match[2]), match[3]
	}

	match := standardSpecPattern.FindStringSubmatch(spec)
	if match == nil {
		return "", nil, ""
	}
	return match[1], splitExtras(match[2]), strings.TrimSpace(match[3])
}

func splitExtras(raw string) []string {
	if raw == "" {
		return nil
	}
	var extras []string
	for _, extra := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(extra); trimmed != "" {
			extras = append(extras, trimmed)
		}
	}
	return extras
}

// parseGitDependency parses "git+url" and "package @ git+url" forms.
func parseGitDependency(spec, source string) entities.Dependency {
	name := ""
	gitURL := spec
	if match := gitNameURLPattern.FindStringSubmatch(spec); match != nil {
		name = match[1]
		gitURL = strings.TrimSpace(match[2])
	}

	gitURL, gitRef := splitGitRef(gitURL)

	if name == "" && gitURL != "" {
		name = extractRepoName(gitURL)
	}
	if name == "" {
		name = "unknown"
	} else {
		name = normalizePackageName(name)
	}

	return entities.Dependency{
		Name:    name,
		RawSpec: spec,
		Source:  source,
		Git:     &entities.GitSource{URL: gitURL, Ref: gitRef},
	}
}

// splitGitRef separates a trailing "@ref" from a git URL.
func splitGitRef(gitURL string) (string, string) {
	match := gitRefPattern.FindStringSubmatch(gitURL)
	if match == nil {
		return gitURL, ""
	}
	return match[1], match[2]
}

// extractRepoName pulls the repository name out of a git URL.
func extractRepoName(gitURL string) string {
	match := repoNamePattern.FindStringSubmatch(gitURL)
	if match == nil {
		return ""
	}
	return match[1]
}

// parsePoetryTableSpec parses a Poetry table spec like
// {version = ">=2.0", python = "^3.8", extras = ["security"]} or a git table
// with rev/tag/branch pinning.
func parsePoetryTableSpec(name string, spec map[string]any, source string) entities.Dependency {
	gitURL, _ := spec["git"].(string)
	markers, _ := spec["python"].(string)
	extras := stringList(spec["extras"])

	if gitURL != "" {
		ref := firstString(spec, "rev", "tag", "branch")
		return entities.Dependency{
			Name:    normalizePackageName(name),
			RawSpec: fmt.Sprintf("%s @ %s", name, gitURL),
			Source:  source,
			Markers: markers,
			Extras:  extras,
			Git:     &entities.GitSource{URL: gitURL, Ref: ref},
		}
	}

	constraints, _ := spec["version"].(string)
	rawSpec := name
	if constraints != "" {
		rawSpec = name + constraints
		// Poetry's caret means "at least this version" for our purposes.
		constraints = strings.ReplaceAll(constraints, "^", ">=")
	}

	return entities.Dependency{
		Name:     normalizePackageName(name),
		RawSpec:  rawSpec,
		Source:   source,
		Markers:  markers,
		Extras:   extras,
		Registry: &entities.RegistrySource{Constraints: constraints},
	}
}

func firstString(spec map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := spec[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func stringList(raw any) []string {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var result []string
	for _, item := range list {
		if value, isString := item.(string); isString {
			result = append(result, value)
		}
	}
	return result
}
