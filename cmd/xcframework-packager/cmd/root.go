package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/xcframework-packager/internal/config"
	"github.com/oshokin/xcframework-packager/internal/logger"
	"github.com/oshokin/xcframework-packager/internal/service/packager"
	"github.com/oshokin/xcframework-packager/internal/version"
)

var (
	// configPath to the release settings YAML file.
	configPath string
	// repoPath to the framework source checkout.
	repoPath string
	// tag is the revision to package.
	tag string
	// platforms selects the multi-platform build when non-empty.
	platforms string
	// outputDir overrides the derived output directory.
	outputDir string
	// identity is the codesign identity.
	identity string
	// logLevel is the logging verbosity.
	logLevel string

	// rootCmd represents the base command for packaging a release.
	rootCmd = &cobra.Command{
		Use:   "xcframework-packager",
		Short: "Build, sign, zip and checksum xcframework release bundles",
		Long: "Reset a framework source checkout to a tagged revision, run its build driver, " +
			"then package each produced xcframework bundle: copy, sign, zip, checksum, " +
			"publish to the download directory and print Package.swift snippets.",
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &packager.Options{
				ConfigPath:      configPath,
				RepoPath:        repoPath,
				Tag:             tag,
				Platforms:       platforms,
				OutputDir:       outputDir,
				SigningIdentity: identity,
				Configuration:   os.Getenv("CONFIGURATION"),
			}

			return packager.Run(ctx, options)
		},
	}
)

// Execute runs the xcframework-packager CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVar(&repoPath, "repo", "", "path to the framework source checkout (required)")
	rootCmd.Flags().StringVar(&tag, "tag", config.DefaultTag, "tag to package")
	rootCmd.Flags().StringVar(&platforms, "platforms", "",
		"platform list passed to the build driver; any non-empty value selects the multi-platform build")
	rootCmd.Flags().StringVar(&outputDir, "out", "", "output directory (default <repo>/build/<CONFIGURATION>/spm)")
	rootCmd.Flags().StringVar(&identity, "identity", "", "codesign identity; empty disables signing")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to release settings file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", logger.Level().String(), "logging level (debug, info, warn, error)")
}
