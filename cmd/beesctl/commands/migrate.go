package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"b2bees-backend/internal/config"
	"b2bees-backend/internal/infrastructure/database"
)

var dbURL string

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Apply các migration embedded chưa chạy.

Examples:
  beesctl migrate up                        # dùng DB_* từ env/.env
  beesctl migrate up --db postgres://...    # chỉ định DSN
  beesctl migrate list                      # liệt kê migration có trong binary`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateUp(cmd)
	},
}

var migrateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List embedded migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		migrations, err := database.Migrations()
		if err != nil {
			return err
		}
		for _, m := range migrations {
			fmt.Fprintln(cmd.OutOrStdout(), m.Version)
		}
		return nil
	},
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (mặc định build từ DB_*)")
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateListCmd)
}

func runMigrateUp(cmd *cobra.Command) error {
	dsn := dbURL
	if dsn == "" {
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return err
		}
		dsn = dbConfig.DSN()
	}

	db, err := database.OpenSQL(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}

	if len(applied) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Database is up to date")
		return nil
	}
	for _, v := range applied {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Applied %s\n", v)
	}
	return nil
}
