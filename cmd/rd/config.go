package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/zulandar/relaydesk/internal/api"
	"github.com/zulandar/relaydesk/internal/config"
)

const defaultConfigPath = "relaydesk.yaml"

func addConfigFlag(cmd *cobra.Command, configPath *string) {
	cmd.Flags().StringVarP(configPath, "config", "c", defaultConfigPath, "path to Relaydesk config file")
}

// loadConfig reads the config file. A missing default file falls back to the
// environment so containers can run without one.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == defaultConfigPath {
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			configPath = ""
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// clientFromConfig builds a backend client from the config file.
func clientFromConfig(configPath string) (*api.Client, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return api.New(cfg.API.BaseURL, cfg.API.Token), nil
}
