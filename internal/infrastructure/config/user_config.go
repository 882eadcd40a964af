package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig represents user preferences stored in ~/.gunsmith/config.json.
// This file stores ONLY preferences, never API credentials.
type UserConfig struct {
	// Default weapon item ID to optimize when not specified via CLI
	DefaultWeaponID string `json:"default_weapon_id,omitempty"`

	// Default trader levels, keyed by trader name, overriding the
	// built-in pricing.DefaultTraderLevels when present
	DefaultTraderLevels map[string]int `json:"default_trader_levels,omitempty"`

	// Default currency for price display: RUB, USD, EUR
	DefaultCurrency string `json:"default_currency,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a new user config handler
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".gunsmith")
	configPath := filepath.Join(configDir, "config.json")

	// Ensure config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &UserConfigHandler{
		configPath: configPath,
	}, nil
}

// Load reads the user config from disk
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	// If file doesn't exist, return empty config
	if _, err := os.Stat(h.configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(h.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &config, nil
}

// Save writes the user config to disk
func (h *UserConfigHandler) Save(config *UserConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// SetDefaultWeapon sets the default weapon item ID
func (h *UserConfigHandler) SetDefaultWeapon(itemID string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultWeaponID = itemID
	return h.Save(config)
}

// SetTraderLevel sets the user's level for a single trader, creating the map if needed
func (h *UserConfigHandler) SetTraderLevel(trader string, level int) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	if config.DefaultTraderLevels == nil {
		config.DefaultTraderLevels = make(map[string]int)
	}
	config.DefaultTraderLevels[trader] = level
	return h.Save(config)
}

// ClearDefaultWeapon removes the default weapon setting
func (h *UserConfigHandler) ClearDefaultWeapon() error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultWeaponID = ""
	return h.Save(config)
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
