package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"bookshelf/internal/config"
	"bookshelf/internal/logging"
	"bookshelf/internal/seed"
	"bookshelf/internal/server"

	"github.com/spf13/cobra"
)

var (
	configPath string
	addrFlag   string
	seedFlag   string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "bookshelf-server",
	Short: "Serve the bookshelf JSON API",
	Long: `Start the bookshelf HTTP server. Books and users are kept in memory
unless store.driver is set to sqlite. Settings come from an optional
config file and BOOKSHELF_* environment variables; PORT is honoured
when no address is configured.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML, TOML or JSON config file")
	rootCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address, overrides server.addr")
	rootCmd.Flags().StringVar(&seedFlag, "seed", "", "book catalogue to load at startup, overrides store.seed_file")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "log at debug level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addrFlag != "" {
		cfg.Server.Addr = addrFlag
	}
	if seedFlag != "" {
		cfg.Store.SeedFile = seedFlag
	}
	if debugFlag {
		cfg.Logging.Level = "debug"
	}

	logger, closer := logging.New(cfg.Logging)
	defer closer.Close()

	if err := ensureDBDir(cfg.Store); err != nil {
		logger.Error().Err(err).Msg("Failed to create database directory")
		return err
	}

	store, err := server.OpenStore(cfg.Store, logging.WithComponent(logger, "store"))
	if err != nil {
		logger.Error().Err(err).Str("driver", cfg.Store.Driver).Msg("Failed to open store")
		return err
	}
	defer store.Close()

	if cfg.Store.SeedFile != "" {
		books, err := seed.Load(cfg.Store.SeedFile)
		if err != nil {
			logger.Error().Err(err).Str("file", cfg.Store.SeedFile).Msg("Failed to read seed file")
			return err
		}
		n, err := server.Seed(cmd.Context(), store, books)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to seed store")
			return err
		}
		logger.Info().Int("books", n).Str("file", cfg.Store.SeedFile).Msg("Seeded store")
	}

	srv := server.NewServer(cfg.Server, store, logging.WithComponent(logger, "http"))

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error().Err(err).Msg("Server error")
			return err
		}
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Error during shutdown")
			return err
		}
		logger.Info().Msg("Server stopped gracefully")
	}
	return nil
}

// ensureDBDir creates the parent directory of a file-backed SQLite DSN.
func ensureDBDir(cfg config.StoreConfig) error {
	if cfg.Driver != config.DriverSQLite {
		return nil
	}
	path := strings.TrimPrefix(cfg.DSN, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.HasPrefix(path, ":memory:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
