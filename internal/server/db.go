package server

import (
	"database/sql"
	"fmt"
	"strings"

	"bookshelf/internal/config"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// OpenDB opens the SQLite database at dsn and applies connection pragmas.
// In-memory databases are pinned to one connection: every new connection
// to ":memory:" would otherwise see its own empty database.
func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if isMemoryDSN(dsn) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	pragmas := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA busy_timeout=5000;`,
		`PRAGMA foreign_keys=ON;`,
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", p, err)
		}
	}
	return db, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory") || strings.HasPrefix(dsn, "file::memory:")
}

// OpenStore builds the record store selected by cfg.Driver.
func OpenStore(cfg config.StoreConfig, logger zerolog.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return NewMemoryStore(), nil
	case config.DriverSQLite:
		db, err := OpenDB(cfg.DSN)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(db, logger); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
		return NewSQLiteStore(db), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
