package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultTimeout is the per-request timeout, in seconds.
	DefaultTimeout = 30.0
	// DefaultConcurrency caps simultaneous in-flight registry requests.
	DefaultConcurrency = 10

	envPrefix = "DEPSCAN_"
)

// Settings is the runtime configuration for the analyzer.
type Settings struct {
	GitHubToken string  `json:"github_token" yaml:"github_token"` // Inline, ${ENV_VAR}, or file path
	Timeout     float64 `json:"timeout"      yaml:"timeout"`      // Request timeout in seconds
	Concurrency int     `json:"concurrency"  yaml:"concurrency"`  // Maximum concurrent API requests
	Output      string  `json:"output"       yaml:"output"`       // Default report output path (optional)
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings loads settings from an optional YAML file, applies native
// environment variable overrides, and validates the result. An empty path
// yields the built-in defaults.
func NewSettings(path string) (*Settings, error) {
	settings := &Settings{
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	settings.GitHubToken = resolveToken(settings.GitHubToken)
	settings.applyEnvOverrides()

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// applyEnvOverrides applies DEPSCAN_* environment variables on top of the
// file values. Invalid numeric values keep the configured value.
func (it *Settings) applyEnvOverrides() {
	if token := os.Getenv(envPrefix + "GITHUB_TOKEN"); token != "" {
		it.GitHubToken = token
	}
	if raw := os.Getenv(envPrefix + "TIMEOUT"); raw != "" {
		if timeout, err := strconv.ParseFloat(raw, 64); err == nil {
			it.Timeout = timeout
		} else {
			logger.Warnf("Ignoring invalid %sTIMEOUT value %q", envPrefix, raw)
		}
	}
	if raw := os.Getenv(envPrefix + "CONCURRENCY"); raw != "" {
		if concurrency, err := strconv.Atoi(raw); err == nil {
			it.Concurrency = concurrency
		} else {
			logger.Warnf("Ignoring invalid %sCONCURRENCY value %q", envPrefix, raw)
		}
	}
}

// Validate checks the configuration invariants. Violations are fatal and
// reported before any analysis starts.
func (it *Settings) Validate() error {
	if it.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", it.Timeout)
	}
	if it.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", it.Concurrency)
	}
	return nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".depscan.yaml",
		".depscan.yml",
		"depscan.yaml",
		"depscan.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}
