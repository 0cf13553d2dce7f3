package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/your-org/ecommerce-platform/internal/config"
	"github.com/your-org/ecommerce-platform/internal/infrastructure/database/postgres"
	"github.com/your-org/ecommerce-platform/internal/pkg/logger"
)

var verbose bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the e-commerce database schema",
	Long: `migrate creates, inspects and drops the e-commerce database schema.

Connection settings are read from the environment (DB_HOST, DB_PORT, DB_NAME,
DB_USER, DB_PW) and an optional .env file, exactly as the API service does.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every schema statement")

	rootCmd.AddCommand(upCmd, statusCmd, seedCmd, dropCmd, hashCmd)
}

// withMigration connects to the configured database and hands a Migration to fn
func withMigration(ctx context.Context, fn func(context.Context, *config.Config, *postgres.Migration) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	db, err := postgres.NewConnection(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(ctx, cfg, postgres.NewMigration(db.GetDB(), log))
}
