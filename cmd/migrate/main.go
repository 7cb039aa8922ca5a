package main

import (
	"database/sql"
	"fmt"
	"os"

	"blogicum/migrations"
	"blogicum/pkg/config"
	"blogicum/pkg/database"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the blog database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		schemaCommand("up", "Apply all pending migrations", func(db *sql.DB) error {
			if err := goose.Up(db, "."); err != nil {
				return err
			}
			fmt.Println("Migrations applied successfully")
			return nil
		}),
		schemaCommand("down", "Roll back the latest migration", func(db *sql.DB) error {
			if err := goose.Down(db, "."); err != nil {
				return err
			}
			fmt.Println("Migrations rolled back successfully")
			return nil
		}),
		schemaCommand("status", "Print the status of every migration", func(db *sql.DB) error {
			return goose.Status(db, ".")
		}),
		newCreateCommand(),
	)
	return root
}

// schemaCommand runs fn against the configured database with the embedded
// migrations.
func schemaCommand(use, short string, fn func(db *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			goose.SetBaseFS(migrations.FS)
			return fn(db)
		},
	}
}

func newCreateCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty SQL migration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goose.SetBaseFS(nil)
			if err := goose.Create(nil, dir, args[0], "sql"); err != nil {
				return fmt.Errorf("failed to create migration: %w", err)
			}
			fmt.Printf("Created migration: %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "migrations", "directory with migration files")
	return cmd
}

func openDB() (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sql.Open("postgres", database.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set dialect: %w", err)
	}
	return db, nil
}
