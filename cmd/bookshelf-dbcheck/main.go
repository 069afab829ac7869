package main

import (
	"fmt"
	"os"

	"bookshelf/internal/logging"
	"bookshelf/internal/server"

	"github.com/spf13/cobra"
)

var (
	dsn     string
	migrate bool
)

var rootCmd = &cobra.Command{
	Use:          "bookshelf-dbcheck",
	Short:        "Inspect a bookshelf SQLite database",
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	defaultDSN := os.Getenv("BOOKSHELF_STORE_DSN")
	if defaultDSN == "" {
		defaultDSN = "./data/bookshelf.db"
	}
	rootCmd.Flags().StringVar(&dsn, "dsn", defaultDSN, "SQLite database path or DSN")
	rootCmd.Flags().BoolVar(&migrate, "migrate", true, "apply migrations before inspecting")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	db, err := server.OpenDB(dsn)
	if err != nil {
		return fmt.Errorf("open %s: %w", dsn, err)
	}
	defer db.Close()

	if migrate {
		if err := server.RunMigrations(db, logging.Nop()); err != nil {
			return fmt.Errorf("migrations failed: %w", err)
		}
	}

	rows, err := db.QueryContext(cmd.Context(), `SELECT name FROM sqlite_master WHERE type='table' ORDER BY name;`)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Tables:")
	tables := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		tables[name] = true
		fmt.Fprintln(out, " -", name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, t := range []string{"books", "users"} {
		if !tables[t] {
			fmt.Fprintf(out, "%s: missing\n", t)
			continue
		}
		var n int
		if err := db.QueryRowContext(cmd.Context(), `SELECT COUNT(*) FROM `+t).Scan(&n); err != nil {
			return fmt.Errorf("count %s: %w", t, err)
		}
		fmt.Fprintf(out, "%s: %d\n", t, n)
	}
	return nil
}
