package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"b2bees-backend/internal/shared/utils"
	"b2bees-backend/pkg/logger"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "beesctl",
	Short: "Bees backend tooling",
	Long: `beesctl chứa các tác vụ vận hành cho Bees backend.

Commands:
  migrate        - Apply / list database migrations
  hash-password  - Tạo bcrypt hash cho ADMIN_PASSWORD_HASH`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		logger.Init(utils.GetEnvVariable("APP_ENV", "development"))
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}
