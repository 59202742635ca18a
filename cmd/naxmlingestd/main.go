package main

import (
	"fmt"
	"os"

	"github.com/cuemby/naxml-ingest/pkg/log"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "naxmlingestd",
	Short: "NAXML ingestion core for fuel/convenience-retail POS data",
	Long: `naxmlingestd watches per-store file-exchange folders for NAXML
documents produced by Gilbarco Passport, Verifone Ruby2, and compatible
point-of-sale controllers, parses them into a normalized domain model,
and projects the result into the operational store while keeping an
immutable audit trail.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"naxmlingestd version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("config", "", "Path to config YAML (default: built-in defaults)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")

	cobra.OnInitialize(initLogging)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(integrationCmd)

	integrationCmd.AddCommand(syncCmd)
	integrationCmd.AddCommand(importCmd)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")

	log.Init(log.Config{
		Level:      log.Level(logLevel),
		JSONOutput: logJSON,
	})
}
