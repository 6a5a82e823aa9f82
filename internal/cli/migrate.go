package cli

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/fadedpez/tong777/pkg/db/migrations"
)

func newMigrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQLite migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := e.cfg.SQLitePath
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("error creating database directory: %w", err)
			}

			db, err := sql.Open("sqlite3", path)
			if err != nil {
				return fmt.Errorf("error opening database: %w", err)
			}
			defer db.Close()

			migrator := migrations.NewMigrator(db, migrations.Source(e.cfg.MigrationsDir)).WithLogger(e.logger.Named("migrations"))
			applied, err := migrator.MigrateUp()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s) to %s\n", applied, path)
			return nil
		},
	}

	cmd.AddCommand(newMigrateCreateCmd())
	return cmd
}

func newMigrateCreateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "create <description>",
		Short: "Create an empty numbered migration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := migrations.CreateMigration(dir, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "migrations", "Directory to store migrations")

	return cmd
}
