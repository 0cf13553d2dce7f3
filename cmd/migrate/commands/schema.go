package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/your-org/ecommerce-platform/internal/config"
	"github.com/your-org/ecommerce-platform/internal/infrastructure/database/postgres"
	"github.com/your-org/ecommerce-platform/internal/pkg/password"
)

var confirmDrop bool

// upCmd creates whatever part of the schema is missing
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Create missing tables, constraints, indexes and triggers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigration(cmd.Context(), func(ctx context.Context, cfg *config.Config, m *postgres.Migration) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.Database.MigrationTimeout)
			defer cancel()
			return m.Run(ctx)
		})
	},
}

// statusCmd lists every table with its row count
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show tables and row counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigration(cmd.Context(), func(ctx context.Context, _ *config.Config, m *postgres.Migration) error {
			info, err := m.GetTableInfo(ctx)
			if err != nil {
				return err
			}
			return printTableInfo(cmd, m.Schema(), info)
		})
	},
}

// seedCmd inserts demo data
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo catalog, user and coupon",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigration(cmd.Context(), func(ctx context.Context, cfg *config.Config, m *postgres.Migration) error {
			return m.SeedInitialData(ctx, password.NewHasher(cfg.Security.BcryptCost))
		})
	},
}

// dropCmd removes the whole schema
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop every table, enum type and trigger function",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmDrop {
			return errors.New("refusing to drop the schema without --yes")
		}
		return withMigration(cmd.Context(), func(ctx context.Context, _ *config.Config, m *postgres.Migration) error {
			return m.DropAllTables(ctx)
		})
	},
}

// hashCmd prints a bcrypt hash for manually provisioned accounts
var hashCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the bcrypt hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		hasher := password.NewHasher(cfg.Security.BcryptCost)

		hash, err := hasher.Hash(args[0])
		if err != nil {
			return err
		}
		if !hasher.Verify(args[0], hash) {
			return errors.New("hash verification failed")
		}

		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	dropCmd.Flags().BoolVar(&confirmDrop, "yes", false, "Confirm dropping all data")
}

func printTableInfo(cmd *cobra.Command, schema *postgres.Schema, info []postgres.TableInfo) error {
	present := make(map[string]bool, len(info))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tROWS")
	for _, t := range info {
		present[t.Name] = true
		fmt.Fprintf(w, "%s\t%d\n", t.Name, t.Rows)
	}
	for _, name := range schema.TableNames() {
		if !present[name] {
			fmt.Fprintf(w, "%s\tmissing\n", name)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(present) == 0 {
		fmt.Fprintln(os.Stderr, "No tables found, run `migrate up` first")
	}
	return nil
}
