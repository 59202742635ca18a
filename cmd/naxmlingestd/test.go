package main

import (
	"context"
	"fmt"

	"github.com/cuemby/naxml-ingest/pkg/health"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test <store-id>",
	Short: "Test a store's exchange directory connectivity",
	Long: `Verify that a store's configured exchange paths are reachable
and writable, and report the NAXML version observed in the first
classifiable pending file.`,
	Args: cobra.ExactArgs(1),
	RunE: runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	storeID := args[0]

	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	integ, err := findIntegration(a.store, storeID)
	if err != nil {
		return err
	}

	checker := &health.FilesystemChecker{Integration: integ}
	result := checker.Test(context.Background())

	if result.Success {
		fmt.Printf("OK: %s (pos_version=%s latency_ms=%d)\n", result.Message, result.POSVersion, result.LatencyMS)
	} else {
		fmt.Printf("FAIL [%s]: %s (latency_ms=%d)\n", result.ErrorCode, result.Message, result.LatencyMS)
	}
	if len(result.Preview) > 0 {
		fmt.Println("pending files:")
		for _, name := range result.Preview {
			fmt.Printf("  %s\n", name)
		}
	}
	if !result.Success {
		return fmt.Errorf("connection test failed: %s", result.ErrorCode)
	}
	return nil
}
