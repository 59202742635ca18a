// Package config loads the process-wide configuration for the ingest
// daemon: where its database lives, where metrics are served, and the
// fixed set of POS integrations it manages. It is deliberately thin --
// per-integration behavior (paths, sync flags, poll interval) lives on
// types.POSIntegration rows in the store, not here.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/types"
	"gopkg.in/yaml.v3"
)

// Config is the top-level daemon configuration, loaded from a YAML file
// at startup (see cmd/naxmlingestd).
type Config struct {
	DataDir     string           `yaml:"dataDir"`
	MetricsAddr string           `yaml:"metricsAddr"`
	LogLevel    string           `yaml:"logLevel"`
	LogJSON     bool             `yaml:"logJSON"`
	Integrations []IntegrationSeed `yaml:"integrations"`
}

// IntegrationSeed describes one POS integration to register at startup.
// It mirrors the subset of types.POSIntegration an operator configures
// by hand; IDs and timestamps are assigned when the row is created.
type IntegrationSeed struct {
	StoreID             string   `yaml:"storeId"`
	CompanyID           string   `yaml:"companyId"`
	StoreLocationID     string   `yaml:"storeLocationId"`
	POSType             string   `yaml:"posType"`
	NAXMLVersion        string   `yaml:"naxmlVersion"`
	ExchangeRoot        string   `yaml:"exchangeRoot"`
	PollIntervalSeconds int      `yaml:"pollIntervalSeconds"`
	SyncIntervalMins    int      `yaml:"syncIntervalMins"`
	GenerateAcknowledgments bool `yaml:"generateAcknowledgments"`
	SyncDepartments     bool     `yaml:"syncDepartments"`
	SyncTenderTypes     bool     `yaml:"syncTenderTypes"`
	SyncTaxRates        bool     `yaml:"syncTaxRates"`
	SyncCashiers        bool     `yaml:"syncCashiers"`
}

// Default returns a Config with the values the daemon falls back to when
// no file is supplied.
func Default() *Config {
	return &Config{
		DataDir:     "./data",
		MetricsAddr: "127.0.0.1:9090",
		LogLevel:    "info",
		LogJSON:     false,
	}
}

// Load reads and parses a YAML config file. A missing path is not an
// error; Default is returned instead, matching how optional --config
// flags behave elsewhere in this core's CLI.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// ToIntegration builds the POSIntegration row an IntegrationSeed
// describes, applying the same poll-interval clamp the orchestrator
// enforces at runtime so a misconfigured file can't register an
// interval outside the supported range.
func (s IntegrationSeed) ToIntegration(id string, now time.Time) *types.POSIntegration {
	poll := s.PollIntervalSeconds
	if poll < types.MinPollIntervalSeconds {
		poll = types.MinPollIntervalSeconds
	}
	if poll > types.MaxPollIntervalSeconds {
		poll = types.MaxPollIntervalSeconds
	}
	syncMins := s.SyncIntervalMins
	if syncMins <= 0 {
		syncMins = 15
	}

	return &types.POSIntegration{
		ID:                      id,
		StoreID:                 s.StoreID,
		CompanyID:               s.CompanyID,
		StoreLocationID:         s.StoreLocationID,
		POSType:                 types.POSType(s.POSType),
		NAXMLVersion:            s.NAXMLVersion,
		ConnectionMode:          types.ConnectionModeFileExchange,
		ExchangeRoot:            s.ExchangeRoot,
		PollIntervalSeconds:     poll,
		SyncIntervalMins:        syncMins,
		GenerateAcknowledgments: s.GenerateAcknowledgments,
		SyncDepartments:         s.SyncDepartments,
		SyncTenderTypes:         s.SyncTenderTypes,
		SyncTaxRates:            s.SyncTaxRates,
		SyncCashiers:            s.SyncCashiers,
		SyncEnabled:             true,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}
