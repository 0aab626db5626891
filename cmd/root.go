package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/dig"

	"github.com/rios0rios0/depdoctor/application"
	"github.com/rios0rios0/depdoctor/config"
	"github.com/rios0rios0/depdoctor/internal"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	configPath string
	verbose    bool
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var rootCmd = &cobra.Command{
	Use:   "depdoctor",
	Short: "Workspace dependency health engine",
	Long: `Inspects a source tree, determines which declared third-party packages
are missing from the local installation, and reduces the findings to a
single 0-100 health score with an actionable report.

Supported ecosystems: npm, pip, go, cargo, gem, terraform.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetLevel(logger.DebugLevel)
		}
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
}

// injectEngineFactory builds the engine factory through the DIG container.
func injectEngineFactory() *internal.EngineFactory {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var factory *internal.EngineFactory
	if err := container.Invoke(func(f *internal.EngineFactory) {
		factory = f
	}); err != nil {
		panic(err)
	}

	return factory
}

// resolveRoot turns the optional positional argument into an absolute
// repository root, defaulting to the current directory.
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", root, err)
	}

	info, statErr := os.Stat(abs)
	if statErr != nil {
		return "", fmt.Errorf("repository root %q is not accessible: %w", abs, statErr)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("repository root %q is not a directory", abs)
	}

	return abs, nil
}

// buildEngine loads configuration and constructs an engine for the given
// command arguments.
func buildEngine(args []string) (*application.Engine, error) {
	root, err := resolveRoot(args)
	if err != nil {
		return nil, err
	}

	cfg, cfgErr := config.LoadOrDefault(configPath)
	if cfgErr != nil {
		return nil, fmt.Errorf("failed to load config: %w", cfgErr)
	}

	return injectEngineFactory().Build(root, cfg), nil
}
