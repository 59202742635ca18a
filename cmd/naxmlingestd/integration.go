package main

import (
	"fmt"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/security"
	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var integrationCmd = &cobra.Command{
	Use:   "integration",
	Short: "Manage POS integrations",
}

var integrationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered POS integrations",
	RunE:  runIntegrationList,
}

var integrationAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new POS integration",
	RunE:  runIntegrationAdd,
}

func init() {
	integrationCmd.AddCommand(integrationListCmd)
	integrationCmd.AddCommand(integrationAddCmd)

	integrationAddCmd.Flags().String("store-id", "", "Store ID (required)")
	integrationAddCmd.Flags().String("company-id", "", "Company ID (required)")
	integrationAddCmd.Flags().String("pos-type", "", "POS vendor type, e.g. GILBARCO_PASSPORT, VERIFONE_RUBY2")
	integrationAddCmd.Flags().String("exchange-root", "", "Exchange root directory")
	integrationAddCmd.Flags().Int("poll-interval", types.DefaultPollIntervalSec, "Poll interval in seconds")
	integrationAddCmd.Flags().Int("sync-interval-mins", 15, "Sync cycle interval in minutes")
	integrationAddCmd.Flags().String("credentials", "", "Plaintext credentials to encrypt at rest (optional, requires NAXML_CREDENTIAL_KEY)")
	_ = integrationAddCmd.MarkFlagRequired("store-id")
	_ = integrationAddCmd.MarkFlagRequired("company-id")
	_ = integrationAddCmd.MarkFlagRequired("pos-type")
	_ = integrationAddCmd.MarkFlagRequired("exchange-root")
}

func runIntegrationList(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	integrations, err := a.store.ListActiveIntegrations()
	if err != nil {
		return err
	}
	for _, integ := range integrations {
		fmt.Printf("%-12s %-10s %-24s active=%v sync=%v poll=%ds\n",
			integ.StoreID, integ.POSType, integ.ExchangeRoot, integ.IsActive, integ.SyncEnabled, integ.PollIntervalSeconds)
	}
	return nil
}

func runIntegrationAdd(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	storeID, _ := cmd.Flags().GetString("store-id")
	companyID, _ := cmd.Flags().GetString("company-id")
	posType, _ := cmd.Flags().GetString("pos-type")
	exchangeRoot, _ := cmd.Flags().GetString("exchange-root")
	pollInterval, _ := cmd.Flags().GetInt("poll-interval")
	syncIntervalMins, _ := cmd.Flags().GetInt("sync-interval-mins")
	credentials, _ := cmd.Flags().GetString("credentials")

	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	if existing, _ := a.store.GetIntegrationByStore(storeID); existing != nil {
		return fmt.Errorf("store %q already has a registered integration", storeID)
	}

	if pollInterval < types.MinPollIntervalSeconds {
		pollInterval = types.MinPollIntervalSeconds
	}
	if pollInterval > types.MaxPollIntervalSeconds {
		pollInterval = types.MaxPollIntervalSeconds
	}

	now := time.Now()
	integ := &types.POSIntegration{
		ID:                  uuid.NewString(),
		CompanyID:           companyID,
		StoreID:             storeID,
		POSType:             types.POSType(posType),
		ConnectionMode:      types.ConnectionModeFileExchange,
		ExchangeRoot:        exchangeRoot,
		PollIntervalSeconds: pollInterval,
		SyncIntervalMins:    syncIntervalMins,
		IsActive:            true,
		SyncEnabled:         true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if credentials != "" {
		cipher, cerr := security.NewCredentialCipherFromEnv()
		if cerr != nil {
			return fmt.Errorf("encrypt credentials: %w", cerr)
		}
		encrypted, eerr := cipher.Encrypt([]byte(credentials))
		if eerr != nil {
			return fmt.Errorf("encrypt credentials: %w", eerr)
		}
		integ.EncryptedCredentials = encrypted
	}

	if err := a.store.CreateIntegration(integ); err != nil {
		return fmt.Errorf("create integration: %w", err)
	}
	fmt.Printf("registered store %q (id=%s)\n", storeID, integ.ID)
	return nil
}
