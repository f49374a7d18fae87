// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/qautil/tcmapper/internal/config"
	"github.com/qautil/tcmapper/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	envFile    string
	logLevel   string
	logFormat  string
	backend    string
	dictionary string
	sqlitePath string
}

// cfg is populated by loadConfig before any subcommand runs.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "tcmapper",
	Short: "Map manual test cases to Katalon Studio scripts",
	Long: "tcmapper parses manual test cases, resolves each step to a Katalon\n" +
		"WebUI action and assembles a runnable Groovy test script.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.configPath, "config", os.Getenv("TCMAPPER_CONFIG"), "Path to the YAML config file")
	f.StringVar(&rootFlags.envFile, "env-file", ".env", "Dotenv file for TCMAPPER_* variables; set variables win")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&rootFlags.logFormat, "log-format", "", "Log format: text or json")
	f.StringVar(&rootFlags.backend, "backend", "", "Mapping backend: auto, supabase, sqlite, dictionary, none")
	f.StringVar(&rootFlags.dictionary, "dictionary", "", "Mapping dictionary file (YAML or JSON)")
	f.StringVar(&rootFlags.sqlitePath, "sqlite", "", "Offline mapping database path")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(metadataCmd)
	rootCmd.AddCommand(scaffoldCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(dictionaryCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := loadEnvFile(cmd); err != nil {
		return err
	}

	loaded, err := config.Load(rootFlags.configPath)
	if err != nil {
		return err
	}

	if rootFlags.logLevel != "" {
		loaded.Logging.Level = rootFlags.logLevel
	}
	if rootFlags.logFormat != "" {
		loaded.Logging.Format = rootFlags.logFormat
	}
	if rootFlags.backend != "" {
		loaded.Mapping.Backend = rootFlags.backend
	}
	if rootFlags.dictionary != "" {
		loaded.Mapping.DictionaryPath = rootFlags.dictionary
	}
	if rootFlags.sqlitePath != "" {
		loaded.Mapping.SQLitePath = rootFlags.sqlitePath
	}
	if errs := loaded.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid flags: %s", strings.Join(errs, "; "))
	}

	level, err := logging.ParseLevel(loaded.Logging.Level)
	if err != nil {
		return err
	}
	logging.Init(level, loaded.Logging.Format, cmd.ErrOrStderr())
	cfg = loaded
	return nil
}

// loadEnvFile loads --env-file without overriding variables already set.
// A missing default file is ignored.
func loadEnvFile(cmd *cobra.Command) error {
	path := rootFlags.envFile
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("env-file") {
			return nil
		}
		return fmt.Errorf("env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("env file %s: %w", path, err)
	}
	return nil
}
