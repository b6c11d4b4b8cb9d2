package controllers

import (
	"encoding/json"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depscan/internal/domain/entities"
)

const redactedToken = "***"

// ConfigController handles the "config" subcommand, showing the effective
// settings after file, environment and flag resolution.
type ConfigController struct{}

// NewConfigController creates a new ConfigController.
func NewConfigController() *ConfigController {
	return &ConfigController{}
}

// GetBind returns the Cobra command metadata for the config controller.
func (it *ConfigController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration after merging the config file,
environment variables and command-line flags. The GitHub token is redacted.`,
	}
}

// Execute prints the effective settings.
func (it *ConfigController) Execute(cmd *cobra.Command, _ []string) {
	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}
	applyFlagOverrides(cmd, settings)

	token := "(not set)"
	if settings.GitHubToken != "" {
		token = redactedToken
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		redacted := *settings
		if redacted.GitHubToken != "" {
			redacted.GitHubToken = redactedToken
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if encodeErr := encoder.Encode(redacted); encodeErr != nil {
			logger.Errorf("Failed to print config: %v", encodeErr)
		}
		return
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "github_token: %s\n", token)
	fmt.Fprintf(out, "timeout:      %g\n", settings.Timeout)
	fmt.Fprintf(out, "concurrency:  %d\n", settings.Concurrency)
	fmt.Fprintf(out, "output:       %s\n", settings.Output)
}

// AddFlags adds the config-specific flags to the given Cobra command.
func (it *ConfigController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print the configuration as JSON")
	cmd.Flags().Float64("timeout", entities.DefaultTimeout, "Per-request timeout in seconds")
	cmd.Flags().Int("concurrency", entities.DefaultConcurrency, "Maximum concurrent registry lookups")
	cmd.Flags().StringP("output", "o", "", "Report output path")
}
