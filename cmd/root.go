package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is the application version.
const Version = "0.1.0"

var (
	modelsDir    string
	skipDownload bool
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:     "faceanalysis",
	Short:   "Face detection, embedding and similarity queries for video frames",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		log.SetLevel(level)
		if modelsDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to resolve home directory: %w", err)
			}
			modelsDir = filepath.Join(home, ".faceanalysis", "models")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&modelsDir, "models-dir", "", "Directory holding model files (default ~/.faceanalysis/models)")
	rootCmd.PersistentFlags().BoolVar(&skipDownload, "skip-download", false, "Never download model files; fail if they are missing")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
