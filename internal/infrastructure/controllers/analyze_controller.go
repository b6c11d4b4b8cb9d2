package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depscan/internal/domain/commands"
	"github.com/rios0rios0/depscan/internal/domain/entities"
)

const reportFileMode = 0o644

// AnalyzeController handles the "analyze" subcommand.
type AnalyzeController struct {
	command commands.Analyze
}

// NewAnalyzeController creates a new AnalyzeController.
func NewAnalyzeController(command commands.Analyze) *AnalyzeController {
	return &AnalyzeController{command: command}
}

// GetBind returns the Cobra command metadata for the analyze controller.
func (it *AnalyzeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "analyze [path]",
		Short: "Analyze the dependencies of a pyproject.toml manifest",
		Long: `Analyze the dependencies declared in a pyproject.toml manifest.

Each dependency is resolved to its latest available version (PyPI for
registry packages, GitHub releases and tags for git pins) and evaluated
against every Python version the project supports, producing one of the
actions: update, delete, none or check manually.`,
	}
}

// Execute runs one analysis over the manifest given as argument, defaulting
// to ./pyproject.toml.
func (it *AnalyzeController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}
	applyFlagOverrides(cmd, settings)

	manifestPath := "pyproject.toml"
	if len(args) > 0 {
		manifestPath = args[0]
	}

	report, err := it.command.Execute(ctx, manifestPath, settings)
	if err != nil {
		logger.Errorf("Analysis failed: %v", err)
		return
	}

	if settings.Output == "" {
		if printErr := printReport(cmd, report); printErr != nil {
			logger.Errorf("Failed to print report: %v", printErr)
		}
		return
	}
	if writeErr := writeReport(settings.Output, report); writeErr != nil {
		logger.Errorf("Failed to write report: %v", writeErr)
		return
	}
	logger.Infof("Report written to %s", settings.Output)
}

// AddFlags adds the analyze-specific flags to the given Cobra command.
func (it *AnalyzeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Write the JSON report to this file instead of stdout")
	cmd.Flags().Float64("timeout", entities.DefaultTimeout, "Per-request timeout in seconds")
	cmd.Flags().Int("concurrency", entities.DefaultConcurrency, "Maximum concurrent registry lookups")
}

// loadSettings resolves the configuration file from the --config flag or the
// default search path, falling back to built-in defaults when none exists.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return entities.NewSettings("")
		}
		configPath = found
	}

	logger.Debugf("Using config file: %s", configPath)
	return entities.NewSettings(configPath)
}

// applyFlagOverrides lets explicitly-set flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command, settings *entities.Settings) {
	if cmd.Flags().Changed("token") {
		settings.GitHubToken, _ = cmd.Flags().GetString("token")
	}
	if cmd.Flags().Changed("timeout") {
		settings.Timeout, _ = cmd.Flags().GetFloat64("timeout")
	}
	if cmd.Flags().Changed("concurrency") {
		settings.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	}
	if cmd.Flags().Changed("output") {
		settings.Output, _ = cmd.Flags().GetString("output")
	}
}

func printReport(cmd *cobra.Command, report entities.Report) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// writeReport serializes the report to path, creating parent directories as
// needed. An existing directory at path is never overwritten.
func writeReport(path string, report entities.Report) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("output path %q is a directory", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), reportFileMode); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
