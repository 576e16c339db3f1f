// Package cmd implements the lumen-diag CLI. The binary stands in
// for the host application: it drives the collector on a drain
// cadence, supplies the export destination and clipboard
// collaborators, and surfaces collection status.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lumen-media/lumen-diagnostics/internal/config"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	cfg config.Config

	// Version info - set via SetVersion()
	appVersion string
	appCommit  string
	appDate    string
)

var rootCmd = &cobra.Command{
	Use:   "lumen-diag",
	Short: "Collect and export anonymized Lumen diagnostics",
	Long: `lumen-diag runs the Lumen diagnostics pipeline standalone: it
samples system resources into a bounded in-memory buffer and exports
an anonymized report. Paths, usernames, addresses and domains are
replaced by salted one-way hashes before anything leaves the process.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion injects build-time version information.
func SetVersion(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

func initConfig() error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: built-in defaults plus LUMEN_DIAG_* env)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format: auto, text, json")
}
