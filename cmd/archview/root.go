package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"archview/internal/config"
	"archview/internal/slogutil"
	"archview/internal/version"
)

var (
	verbosity int
	quiet     bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "archview",
	Short: "archview - architecture diagrams from source conventions",
	Long: `archview statically analyzes a two-tier web codebase (a decorator-
annotated server tree and a file-routed client tree) and renders the
inferred architecture as a Mermaid diagram. Recognition is heuristic text
matching, so the diagram is approximate but always regenerable.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("archview version {{.Version}}\n")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "State directory holding config.json (default <cwd>/.archview)")
}

// stateDir returns the .archview state directory, honoring --config.
func stateDir(root string) string {
	if configDir != "" {
		return configDir
	}
	return config.Dir(root)
}

// newLogger builds the command logger from the verbosity flags.
func newLogger() *slog.Logger {
	return slogutil.NewLogger(os.Stderr, slogutil.LevelFromVerbosity(verbosity, quiet))
}

// newLoggerFor takes the log level from the configuration; an explicit
// verbosity flag overrides it.
func newLoggerFor(cfg *config.Config) *slog.Logger {
	if verbosity == 0 && !quiet {
		return slogutil.NewLogger(os.Stderr, slogutil.LevelFromString(cfg.Logging.Level))
	}
	return newLogger()
}

// mustGetProjectRoot returns the project root (the working directory) or
// exits.
func mustGetProjectRoot() string {
	root, err := os.Getwd()
	if err != nil {
		cobra.CheckErr(err)
	}
	return root
}

// resolvePath interprets p relative to root unless it is absolute.
func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
