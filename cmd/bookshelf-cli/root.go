package main

import (
	"errors"
	"io/fs"
	"time"

	"bookshelf/internal/client"
	"bookshelf/internal/shared"

	"github.com/spf13/cobra"
)

var (
	configPath string
	serverURL  string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "bookshelf-cli",
	Short:         "Talk to a bookshelf server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./bookshelf-cli.json", "path to client config json")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server base URL, overrides the config file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "request timeout, overrides the config file")
}

// newClient loads the client config, falling back to defaults when the file
// does not exist, and applies flag overrides.
func newClient() (*client.Client, error) {
	cfg, err := shared.LoadClientConfig(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = shared.DefaultClientConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if timeout > 0 {
		cfg.TimeoutSeconds = int(timeout / time.Second)
		if cfg.TimeoutSeconds == 0 {
			cfg.TimeoutSeconds = 1
		}
	}
	return client.New(cfg), nil
}
